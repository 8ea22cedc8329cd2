package fiscalconfig

import (
	"context"
	"time"
)

// Repository defines fiscal configuration persistence operations.
type Repository interface {
	Create(ctx context.Context, config *FiscalConfig) error
	Get(ctx context.Context, id string) (*FiscalConfig, error)

	// GetVigent returns the single configuration vigent for the clinic at the
	// given date, or an ErrNotFound-marked error when none covers it.
	GetVigent(ctx context.Context, clinicID string, date time.Time) (*FiscalConfig, error)

	// ListByClinic returns all configurations of a clinic ordered by
	// vigency start.
	ListByClinic(ctx context.Context, clinicID string) ([]*FiscalConfig, error)
}

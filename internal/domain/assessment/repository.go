package assessment

import (
	"context"

	"github.com/medfiscal/medfiscal/internal/types"
)

// Repository defines assessment persistence operations. Create must enforce
// the unique (clinic, month, year) key; a duplicate insert is reported with an
// ErrAlreadyExists mark so callers can resolve the race by re-reading.
type Repository interface {
	Create(ctx context.Context, assessment *Assessment) error
	Get(ctx context.Context, id string) (*Assessment, error)
	GetByPeriod(ctx context.Context, clinicID string, period types.MonthPeriod) (*Assessment, error)
	Update(ctx context.Context, assessment *Assessment) error
	ListByClinic(ctx context.Context, clinicID string) ([]*Assessment, error)
}

package testutil

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type InMemoryFiscalConfigStore struct {
	store *InMemoryStore[*fiscalconfig.FiscalConfig]
}

func NewInMemoryFiscalConfigStore() *InMemoryFiscalConfigStore {
	return &InMemoryFiscalConfigStore{store: NewInMemoryStore[*fiscalconfig.FiscalConfig]()}
}

func (s *InMemoryFiscalConfigStore) Create(ctx context.Context, config *fiscalconfig.FiscalConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// vigency ranges for the same clinic never overlap
	overlapping := s.store.List(func(existing *fiscalconfig.FiscalConfig) bool {
		return existing.ClinicID == config.ClinicID && rangesOverlap(existing, config)
	})
	if len(overlapping) > 0 {
		return ierr.NewError("overlapping fiscal configuration vigency").
			WithHint("A fiscal configuration already covers part of this vigency range").
			Mark(ierr.ErrAlreadyExists)
	}

	return s.store.Create(config.ID, config)
}

func rangesOverlap(a, b *fiscalconfig.FiscalConfig) bool {
	if a.VigentTo != nil && a.VigentTo.Before(b.VigentFrom) {
		return false
	}
	if b.VigentTo != nil && b.VigentTo.Before(a.VigentFrom) {
		return false
	}
	return true
}

func (s *InMemoryFiscalConfigStore) Get(ctx context.Context, id string) (*fiscalconfig.FiscalConfig, error) {
	return s.store.Get(id)
}

func (s *InMemoryFiscalConfigStore) GetVigent(ctx context.Context, clinicID string, date time.Time) (*fiscalconfig.FiscalConfig, error) {
	matches := s.store.List(func(config *fiscalconfig.FiscalConfig) bool {
		return config.ClinicID == clinicID && config.IsVigentAt(date)
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("no vigent fiscal configuration").
			WithHintf("No fiscal configuration is vigent for clinic %s at %s", clinicID, date.Format("2006-01-02")).
			Mark(ierr.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemoryFiscalConfigStore) ListByClinic(ctx context.Context, clinicID string) ([]*fiscalconfig.FiscalConfig, error) {
	return s.store.List(func(config *fiscalconfig.FiscalConfig) bool {
		return config.ClinicID == clinicID
	}), nil
}

func (s *InMemoryFiscalConfigStore) Clear() {
	s.store.Clear()
}

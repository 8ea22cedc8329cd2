package testutil

import (
	"context"

	"github.com/medfiscal/medfiscal/internal/domain/clinic"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type InMemoryClinicStore struct {
	store *InMemoryStore[*clinic.Clinic]
}

func NewInMemoryClinicStore() *InMemoryClinicStore {
	return &InMemoryClinicStore{store: NewInMemoryStore[*clinic.Clinic]()}
}

// Add seeds a clinic for tests.
func (s *InMemoryClinicStore) Add(c *clinic.Clinic) {
	s.store.Set(c.ID, c)
}

func (s *InMemoryClinicStore) Get(ctx context.Context, id string) (*clinic.Clinic, error) {
	return s.store.Get(id)
}

func (s *InMemoryClinicStore) GetByCNPJ(ctx context.Context, cnpj string) (*clinic.Clinic, error) {
	matches := s.store.List(func(c *clinic.Clinic) bool {
		return c.CNPJ == cnpj
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("clinic not found").
			WithHintf("No clinic registered with tax id %s", cnpj).
			Mark(ierr.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemoryClinicStore) Clear() {
	s.store.Clear()
}

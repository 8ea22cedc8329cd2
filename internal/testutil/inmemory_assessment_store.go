package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/types"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type InMemoryAssessmentStore struct {
	mu        sync.Mutex
	store     *InMemoryStore[*assessment.Assessment]
	periodKey map[string]string
}

func NewInMemoryAssessmentStore() *InMemoryAssessmentStore {
	return &InMemoryAssessmentStore{
		store:     NewInMemoryStore[*assessment.Assessment](),
		periodKey: make(map[string]string),
	}
}

func periodKeyOf(clinicID string, month, year int) string {
	return fmt.Sprintf("%s:%04d-%02d", clinicID, year, month)
}

// Create enforces the unique (clinic, month, year) key the way the database
// index does: a duplicate insert is reported with an ErrAlreadyExists mark.
func (s *InMemoryAssessmentStore) Create(ctx context.Context, a *assessment.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := periodKeyOf(a.ClinicID, a.Month, a.Year)
	if _, exists := s.periodKey[key]; exists {
		return ierr.NewError("assessment already exists for period").
			WithHintf("An assessment already exists for %02d/%04d", a.Month, a.Year).
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.store.Create(a.ID, a); err != nil {
		return err
	}
	s.periodKey[key] = a.ID
	return nil
}

func (s *InMemoryAssessmentStore) Get(ctx context.Context, id string) (*assessment.Assessment, error) {
	return s.store.Get(id)
}

func (s *InMemoryAssessmentStore) GetByPeriod(ctx context.Context, clinicID string, period types.MonthPeriod) (*assessment.Assessment, error) {
	s.mu.Lock()
	id, exists := s.periodKey[periodKeyOf(clinicID, period.Month, period.Year)]
	s.mu.Unlock()
	if !exists {
		return nil, ierr.NewError("assessment not found for period").
			WithHintf("No assessment exists for %s", period.String()).
			Mark(ierr.ErrNotFound)
	}
	return s.store.Get(id)
}

func (s *InMemoryAssessmentStore) Update(ctx context.Context, a *assessment.Assessment) error {
	return s.store.Update(a.ID, a)
}

func (s *InMemoryAssessmentStore) ListByClinic(ctx context.Context, clinicID string) ([]*assessment.Assessment, error) {
	matches := s.store.List(func(a *assessment.Assessment) bool {
		return a.ClinicID == clinicID
	})
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Year != matches[j].Year {
			return matches[i].Year < matches[j].Year
		}
		return matches[i].Month < matches[j].Month
	})
	return matches, nil
}

func (s *InMemoryAssessmentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
	s.periodKey = make(map[string]string)
}

package testutil

import (
	"context"

	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/types"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type InMemoryTaxBreakdownStore struct {
	store *InMemoryStore[*taxbreakdown.TaxBreakdown]
}

func NewInMemoryTaxBreakdownStore() *InMemoryTaxBreakdownStore {
	return &InMemoryTaxBreakdownStore{store: NewInMemoryStore[*taxbreakdown.TaxBreakdown]()}
}

func (s *InMemoryTaxBreakdownStore) Create(ctx context.Context, breakdown *taxbreakdown.TaxBreakdown) error {
	return s.store.Create(breakdown.ID, breakdown)
}

func (s *InMemoryTaxBreakdownStore) Get(ctx context.Context, id string) (*taxbreakdown.TaxBreakdown, error) {
	return s.store.Get(id)
}

func (s *InMemoryTaxBreakdownStore) GetByInvoice(ctx context.Context, invoiceID string) (*taxbreakdown.TaxBreakdown, error) {
	matches := s.store.List(func(b *taxbreakdown.TaxBreakdown) bool {
		return b.InvoiceID == invoiceID && b.Status == types.StatusPublished
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("tax breakdown not found").
			WithHintf("Invoice %s has no current tax breakdown", invoiceID).
			Mark(ierr.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemoryTaxBreakdownStore) ListByInvoices(ctx context.Context, invoiceIDs []string) (map[string]*taxbreakdown.TaxBreakdown, error) {
	wanted := make(map[string]bool, len(invoiceIDs))
	for _, id := range invoiceIDs {
		wanted[id] = true
	}

	out := make(map[string]*taxbreakdown.TaxBreakdown)
	for _, b := range s.store.List(nil) {
		if wanted[b.InvoiceID] && b.Status == types.StatusPublished {
			out[b.InvoiceID] = b
		}
	}
	return out, nil
}

func (s *InMemoryTaxBreakdownStore) Archive(ctx context.Context, id string) error {
	breakdown, err := s.store.Get(id)
	if err != nil {
		return err
	}
	breakdown.Status = types.StatusArchived
	return s.store.Update(id, breakdown)
}

func (s *InMemoryTaxBreakdownStore) Clear() {
	s.store.Clear()
}

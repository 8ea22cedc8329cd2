package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

type InMemoryInvoiceStore struct {
	store *InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{store: NewInMemoryStore[*invoice.Invoice]()}
}

// Add seeds an invoice for tests.
func (s *InMemoryInvoiceStore) Add(inv *invoice.Invoice) {
	s.store.Set(inv.ID, inv)
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	return s.store.Get(id)
}

func (s *InMemoryInvoiceStore) ListAuthorized(ctx context.Context, issuerCNPJ string, from, to time.Time) ([]*invoice.Invoice, error) {
	matches := s.store.List(func(inv *invoice.Invoice) bool {
		return inv.IsAuthorized() &&
			inv.IssuerCNPJ == issuerCNPJ &&
			!inv.IssueDate.Before(from) &&
			!inv.IssueDate.After(to)
	})
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].IssueDate.Before(matches[j].IssueDate)
	})
	return matches, nil
}

func (s *InMemoryInvoiceStore) SumAuthorized(ctx context.Context, issuerCNPJ string, from, to time.Time) (decimal.Decimal, error) {
	matches, err := s.ListAuthorized(ctx, issuerCNPJ, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range matches {
		total = total.Add(inv.ServiceAmount)
	}
	return total, nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.store.Clear()
}

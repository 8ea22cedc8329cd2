package taxbreakdown

import "context"

// Repository defines tax breakdown persistence operations. Breakdowns are
// append-only; Archive retires a row without deleting it.
type Repository interface {
	Create(ctx context.Context, breakdown *TaxBreakdown) error
	Get(ctx context.Context, id string) (*TaxBreakdown, error)

	// GetByInvoice returns the current (non-archived) breakdown for an
	// invoice, or an ErrNotFound-marked error.
	GetByInvoice(ctx context.Context, invoiceID string) (*TaxBreakdown, error)

	// ListByInvoices returns the current breakdowns for the given invoices,
	// keyed by invoice id. Invoices without a breakdown are absent.
	ListByInvoices(ctx context.Context, invoiceIDs []string) (map[string]*TaxBreakdown, error)

	// Archive retires a breakdown so a recomputed one can take its place.
	Archive(ctx context.Context, id string) error
}

package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the read-only invoice lookups consumed by the engine.
type Repository interface {
	Get(ctx context.Context, id string) (*Invoice, error)

	// ListAuthorized returns authorized invoices issued by the given CNPJ
	// within [from, to], ordered by issue date.
	ListAuthorized(ctx context.Context, issuerCNPJ string, from, to time.Time) ([]*Invoice, error)

	// SumAuthorized returns the total authorized gross service amount issued
	// by the given CNPJ within [from, to]. Used for the rolling 12-month
	// revenue figure.
	SumAuthorized(ctx context.Context, issuerCNPJ string, from, to time.Time) (decimal.Decimal, error)
}

package taxbreakdown

import (
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// Line is the amount and rate computed for one tax category.
type Line struct {
	Category types.TaxCategory `db:"category" json:"category"`
	Rate     decimal.Decimal   `db:"rate" json:"rate"`
	Amount   decimal.Decimal   `db:"amount" json:"amount"`
	Withheld bool              `db:"withheld" json:"withheld"`
}

// TaxBreakdown is the per-invoice tax computation result. Breakdowns are
// immutable once created: recomputation archives the previous row and inserts
// a new one, never mutates in place.
type TaxBreakdown struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
	ClinicID    string          `db:"clinic_id" json:"clinic_id"`
	Regime      types.TaxRegime `db:"regime" json:"regime"`
	GrossAmount decimal.Decimal `db:"gross_amount" json:"gross_amount"`
	Lines       []Line          `db:"-" json:"lines" gorm:"-"`
	Total       decimal.Decimal `db:"total" json:"total"`

	// EffectiveRate and RBT12 are only populated under Simples Nacional.
	EffectiveRate decimal.Decimal `db:"effective_rate" json:"effective_rate"`
	RBT12         decimal.Decimal `db:"rbt12" json:"rbt12"`

	// CeilingExceeded flags that RBT12 lay above the top bracket and the rate
	// was clamped. Surfaced to callers as a warning, not an error.
	CeilingExceeded bool `db:"ceiling_exceeded" json:"ceiling_exceeded"`

	types.BaseModel
}

// AmountFor returns the computed amount for a category, zero when absent.
func (b *TaxBreakdown) AmountFor(category types.TaxCategory) decimal.Decimal {
	for _, line := range b.Lines {
		if line.Category == category {
			return line.Amount
		}
	}
	return decimal.Zero
}

// RateFor returns the applied rate for a category, zero when absent.
func (b *TaxBreakdown) RateFor(category types.TaxCategory) decimal.Decimal {
	for _, line := range b.Lines {
		if line.Category == category {
			return line.Rate
		}
	}
	return decimal.Zero
}

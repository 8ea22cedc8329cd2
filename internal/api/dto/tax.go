package dto

import (
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// TaxLineResponse is one per-category line of a breakdown.
type TaxLineResponse struct {
	Category types.TaxCategory `json:"category"`
	Rate     decimal.Decimal   `json:"rate"`
	Amount   decimal.Decimal   `json:"amount"`
	Withheld bool              `json:"withheld"`
}

// TaxBreakdownResponse is the per-invoice tax computation result.
type TaxBreakdownResponse struct {
	ID              string            `json:"id"`
	InvoiceID       string            `json:"invoice_id"`
	Regime          types.TaxRegime   `json:"regime"`
	GrossAmount     decimal.Decimal   `json:"gross_amount"`
	Lines           []TaxLineResponse `json:"lines"`
	Total           decimal.Decimal   `json:"total"`
	EffectiveRate   decimal.Decimal   `json:"effective_rate"`
	RBT12           decimal.Decimal   `json:"rbt12"`
	CeilingExceeded bool              `json:"ceiling_exceeded"`
}

func ToTaxBreakdownResponse(b *taxbreakdown.TaxBreakdown) *TaxBreakdownResponse {
	lines := make([]TaxLineResponse, len(b.Lines))
	for i, line := range b.Lines {
		lines[i] = TaxLineResponse{
			Category: line.Category,
			Rate:     line.Rate,
			Amount:   line.Amount,
			Withheld: line.Withheld,
		}
	}
	return &TaxBreakdownResponse{
		ID:              b.ID,
		InvoiceID:       b.InvoiceID,
		Regime:          b.Regime,
		GrossAmount:     b.GrossAmount,
		Lines:           lines,
		Total:           b.Total,
		EffectiveRate:   b.EffectiveRate,
		RBT12:           b.RBT12,
		CeilingExceeded: b.CeilingExceeded,
	}
}

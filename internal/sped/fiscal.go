package sped

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// Fiscal layout record codes (blocks 0, A, M).
const (
	RecBlockAOpen      = "A001"
	RecServiceInvoice  = "A100"
	RecBlockAClose     = "A990"
	RecBlockMOpen      = "M001"
	RecAssessmentTotal = "M200"
	RecBlockMClose     = "M990"
)

// FiscalInput carries everything the fiscal layout serializes.
type FiscalInput struct {
	Clinic        *clinic.Clinic
	PeriodStart   time.Time
	PeriodEnd     time.Time
	LayoutVersion string
	Invoices      []*invoice.Invoice
	// Breakdowns is keyed by invoice id; invoices without a breakdown are
	// exported with a zero tax column.
	Breakdowns map[string]*taxbreakdown.TaxBreakdown
	Assessment *assessment.Assessment
}

// BuildFiscal serializes the fiscal layout: authorized service invoices in
// block A, assessment totals in block M.
func BuildFiscal(in FiscalInput) string {
	w := NewWriter()

	w.Write(RecOpening,
		in.LayoutVersion,
		formatDate(in.PeriodStart),
		formatDate(in.PeriodEnd),
		in.Clinic.LegalName,
		in.Clinic.CNPJ,
		in.Clinic.CityCode,
	)

	w.Write(RecBlock0Open, movementIndicator(true))
	w.WriteBlockClose(RecBlock0Close)

	w.Write(RecBlockAOpen, movementIndicator(len(in.Invoices) > 0))
	for _, inv := range in.Invoices {
		issRate := decimal.Zero
		issAmount := decimal.Zero
		if breakdown, ok := in.Breakdowns[inv.ID]; ok {
			issRate = breakdown.RateFor(types.TaxCategoryISS)
			issAmount = breakdown.AmountFor(types.TaxCategoryISS)
		}
		w.Write(RecServiceInvoice,
			inv.Number,
			formatDate(inv.IssueDate),
			inv.TakerDocument,
			formatAmount(inv.ServiceAmount),
			formatRate(issRate),
			formatAmount(issAmount),
		)
	}
	w.WriteBlockClose(RecBlockAClose)

	w.Write(RecBlockMOpen, movementIndicator(in.Assessment != nil))
	if in.Assessment != nil {
		for _, category := range types.AllTaxCategories() {
			w.Write(RecAssessmentTotal,
				category.String(),
				formatAmount(in.Assessment.TotalFor(category)),
			)
		}
	}
	w.WriteBlockClose(RecBlockMClose)

	w.Write(RecBlock9Open, movementIndicator(true))
	w.WriteTrailer()

	return w.String()
}

package assessment

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// Assessment is the monthly tax assessment (apuração) of a clinic. The pair
// (ClinicID, Month, Year) is unique: at most one assessment exists per period.
type Assessment struct {
	ID            string           `db:"id" json:"id"`
	ClinicID      string           `db:"clinic_id" json:"clinic_id"`
	Month         int              `db:"month" json:"month"`
	Year          int              `db:"year" json:"year"`
	Regime        types.TaxRegime  `db:"regime" json:"regime"`
	ReferenceCode string           `db:"reference_code" json:"reference_code"`

	GrossRevenue decimal.Decimal `db:"gross_revenue" json:"gross_revenue"`
	PISTotal     decimal.Decimal `db:"pis_total" json:"pis_total"`
	COFINSTotal  decimal.Decimal `db:"cofins_total" json:"cofins_total"`
	IRPJTotal    decimal.Decimal `db:"irpj_total" json:"irpj_total"`
	CSLLTotal    decimal.Decimal `db:"csll_total" json:"csll_total"`
	ISSTotal     decimal.Decimal `db:"iss_total" json:"iss_total"`
	CPPTotal     decimal.Decimal `db:"cpp_total" json:"cpp_total"`
	TaxTotal     decimal.Decimal `db:"tax_total" json:"tax_total"`

	// RBT12 and EffectiveRate are populated under Simples Nacional only.
	RBT12         decimal.Decimal `db:"rbt12" json:"rbt12"`
	EffectiveRate decimal.Decimal `db:"effective_rate" json:"effective_rate"`

	AssessmentStatus types.AssessmentStatus `db:"assessment_status" json:"assessment_status"`
	PaidAt           *time.Time             `db:"paid_at" json:"paid_at,omitempty"`
	PaymentProof     string                 `db:"payment_proof" json:"payment_proof,omitempty"`

	types.BaseModel
}

// Period returns the assessment's month period.
func (a *Assessment) Period() types.MonthPeriod {
	return types.MonthPeriod{Month: a.Month, Year: a.Year}
}

// TotalFor returns the aggregated amount for a category.
func (a *Assessment) TotalFor(category types.TaxCategory) decimal.Decimal {
	switch category {
	case types.TaxCategoryPIS:
		return a.PISTotal
	case types.TaxCategoryCOFINS:
		return a.COFINSTotal
	case types.TaxCategoryIRPJ:
		return a.IRPJTotal
	case types.TaxCategoryCSLL:
		return a.CSLLTotal
	case types.TaxCategoryISS:
		return a.ISSTotal
	case types.TaxCategoryCPP:
		return a.CPPTotal
	default:
		return decimal.Zero
	}
}

// AddCategoryTotal accumulates an amount into the category total.
func (a *Assessment) AddCategoryTotal(category types.TaxCategory, amount decimal.Decimal) {
	switch category {
	case types.TaxCategoryPIS:
		a.PISTotal = a.PISTotal.Add(amount)
	case types.TaxCategoryCOFINS:
		a.COFINSTotal = a.COFINSTotal.Add(amount)
	case types.TaxCategoryIRPJ:
		a.IRPJTotal = a.IRPJTotal.Add(amount)
	case types.TaxCategoryCSLL:
		a.CSLLTotal = a.CSLLTotal.Add(amount)
	case types.TaxCategoryISS:
		a.ISSTotal = a.ISSTotal.Add(amount)
	case types.TaxCategoryCPP:
		a.CPPTotal = a.CPPTotal.Add(amount)
	}
}

// TransitionTo moves the assessment to the target status, enforcing the
// transition table. The assessment is not mutated when the transition is
// rejected.
func (a *Assessment) TransitionTo(target types.AssessmentStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !a.AssessmentStatus.CanTransitionTo(target) {
		return ierr.NewError("assessment status transition not allowed").
			WithHintf("Cannot move assessment from %s to %s", a.AssessmentStatus, target).
			WithReportableDetails(map[string]any{
				"assessment_id": a.ID,
				"from":          a.AssessmentStatus.String(),
				"to":            target.String(),
			}).
			Mark(ierr.ErrInvalidTransition)
	}
	a.AssessmentStatus = target
	return nil
}

// RecordPayment transitions the assessment to PAID and stores the payment
// evidence. Rejected with an invalid-transition error when the current status
// does not allow payment.
func (a *Assessment) RecordPayment(date time.Time, proof string) error {
	if err := a.TransitionTo(types.AssessmentStatusPaid); err != nil {
		return err
	}
	paidAt := date.UTC()
	a.PaidAt = &paidAt
	a.PaymentProof = proof
	return nil
}

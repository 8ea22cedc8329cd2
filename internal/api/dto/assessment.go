package dto

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// GenerateAssessmentRequest asks for the monthly assessment of a clinic.
type GenerateAssessmentRequest struct {
	ClinicID string `json:"clinic_id" binding:"required"`
	Month    int    `json:"month" binding:"required"`
	Year     int    `json:"year" binding:"required"`
}

// RecordPaymentRequest records a payment against an assessment.
type RecordPaymentRequest struct {
	PaidAt time.Time `json:"paid_at" binding:"required"`
	Proof  string    `json:"proof" binding:"required"`
}

// AssessmentResponse is the API shape of a monthly assessment.
type AssessmentResponse struct {
	ID            string          `json:"id"`
	ClinicID      string          `json:"clinic_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Regime        types.TaxRegime `json:"regime"`
	ReferenceCode string          `json:"reference_code"`

	GrossRevenue decimal.Decimal                       `json:"gross_revenue"`
	Totals       map[types.TaxCategory]decimal.Decimal `json:"totals"`
	TaxTotal     decimal.Decimal                       `json:"tax_total"`

	RBT12         decimal.Decimal `json:"rbt12"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`

	Status       types.AssessmentStatus `json:"status"`
	PaidAt       *time.Time             `json:"paid_at,omitempty"`
	PaymentProof string                 `json:"payment_proof,omitempty"`
}

func ToAssessmentResponse(a *assessment.Assessment) *AssessmentResponse {
	totals := make(map[types.TaxCategory]decimal.Decimal, len(types.AllTaxCategories()))
	for _, category := range types.AllTaxCategories() {
		totals[category] = a.TotalFor(category)
	}
	return &AssessmentResponse{
		ID:            a.ID,
		ClinicID:      a.ClinicID,
		Month:         a.Month,
		Year:          a.Year,
		Regime:        a.Regime,
		ReferenceCode: a.ReferenceCode,
		GrossRevenue:  a.GrossRevenue,
		Totals:        totals,
		TaxTotal:      a.TaxTotal,
		RBT12:         a.RBT12,
		EffectiveRate: a.EffectiveRate,
		Status:        a.AssessmentStatus,
		PaidAt:        a.PaidAt,
		PaymentProof:  a.PaymentProof,
	}
}

func ToAssessmentListResponse(items []*assessment.Assessment) []*AssessmentResponse {
	return lo.Map(items, func(a *assessment.Assessment, _ int) *AssessmentResponse {
		return ToAssessmentResponse(a)
	})
}

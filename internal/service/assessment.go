package service

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/simples"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type AssessmentService interface {
	// GenerateAssessment consolidates a clinic's authorized invoices for a
	// month into a single assessment. Idempotent: when the period already has
	// an assessment it is returned unchanged.
	GenerateAssessment(ctx context.Context, clinicID string, period types.MonthPeriod) (*assessment.Assessment, error)
	GetAssessment(ctx context.Context, id string) (*assessment.Assessment, error)
	ListAssessments(ctx context.Context, clinicID string) ([]*assessment.Assessment, error)
	RecordPayment(ctx context.Context, id string, paidAt time.Time, proof string) (*assessment.Assessment, error)
	MarkOverdue(ctx context.Context, id string) (*assessment.Assessment, error)
	StartInstallment(ctx context.Context, id string) (*assessment.Assessment, error)
}

type assessmentService struct {
	ServiceParams
	taxService TaxService
}

func NewAssessmentService(params ServiceParams, taxService TaxService) AssessmentService {
	return &assessmentService{ServiceParams: params, taxService: taxService}
}

func (s *assessmentService) GenerateAssessment(ctx context.Context, clinicID string, period types.MonthPeriod) (*assessment.Assessment, error) {
	if clinicID == "" {
		return nil, ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.AssessmentRepo.GetByPeriod(ctx, clinicID, period); err == nil {
		s.Logger.Infow("assessment already exists for period, returning unchanged",
			"clinic_id", clinicID,
			"period", period.String(),
			"assessment_id", existing.ID,
		)
		return existing, nil
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	cl, err := s.ClinicRepo.Get(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	from, to := period.Window()
	invoices, err := s.InvoiceRepo.ListAuthorized(ctx, cl.CNPJ, from, to)
	if err != nil {
		return nil, err
	}

	result := &assessment.Assessment{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ASSESSMENT),
		ClinicID:         clinicID,
		Month:            period.Month,
		Year:             period.Year,
		ReferenceCode:    types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ASSESSMENT),
		AssessmentStatus: types.AssessmentStatusAssessed,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}

	for _, inv := range invoices {
		breakdown, err := s.breakdownFor(ctx, inv)
		if err != nil {
			return nil, err
		}

		result.GrossRevenue = result.GrossRevenue.Add(inv.ServiceAmount)
		result.TaxTotal = result.TaxTotal.Add(breakdown.Total)
		for _, line := range breakdown.Lines {
			result.AddCategoryTotal(line.Category, line.Amount)
		}

		result.Regime = breakdown.Regime
	}

	if len(invoices) == 0 {
		if err := s.fillEmptyPeriodRegime(ctx, clinicID, to, result); err != nil {
			return nil, err
		}
	}

	if result.Regime == types.TaxRegimeSimplesNacional {
		if err := s.fillSimplesFigures(ctx, cl.CNPJ, clinicID, period, result); err != nil {
			return nil, err
		}
	}

	if err := s.AssessmentRepo.Create(ctx, result); err != nil {
		if ierr.IsAlreadyExists(err) {
			// concurrent generation for the same period: the unique key won,
			// resolve by re-reading
			s.Logger.Warnw("concurrent assessment generation detected, re-reading",
				"clinic_id", clinicID,
				"period", period.String(),
			)
			return s.AssessmentRepo.GetByPeriod(ctx, clinicID, period)
		}
		return nil, err
	}

	s.Logger.Infow("generated assessment",
		"assessment_id", result.ID,
		"clinic_id", clinicID,
		"period", period.String(),
		"invoices", len(invoices),
		"tax_total", result.TaxTotal,
	)

	return result, nil
}

// breakdownFor returns the invoice's current breakdown, computing one on the
// fly when the invoice was never assessed individually.
func (s *assessmentService) breakdownFor(ctx context.Context, inv *invoice.Invoice) (*taxbreakdown.TaxBreakdown, error) {
	breakdown, err := s.TaxBreakdownRepo.GetByInvoice(ctx, inv.ID)
	if err == nil {
		return breakdown, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}
	return s.taxService.ComputeInvoiceTax(ctx, inv.ID)
}

// fillSimplesFigures stamps the rolling 12-month revenue and effective rate
// as of generation time. Breakdowns may predate later authorized revenue, so
// their RBT12 cannot be trusted for the month's figure.
func (s *assessmentService) fillSimplesFigures(ctx context.Context, cnpj, clinicID string, period types.MonthPeriod, result *assessment.Assessment) error {
	_, to := period.Window()
	config, err := s.FiscalConfigRepo.GetVigent(ctx, clinicID, to)
	if err != nil {
		return err
	}
	table, err := simples.BracketTableFor(config.Annex)
	if err != nil {
		return err
	}

	from, trailingTo := period.TrailingTwelveMonthsWindow()
	rbt12, err := s.InvoiceRepo.SumAuthorized(ctx, cnpj, from, trailingTo)
	if err != nil {
		return err
	}
	rate, err := simples.EffectiveRate(rbt12, table)
	if err != nil {
		return err
	}

	result.RBT12 = rbt12
	result.EffectiveRate = rate.EffectiveRate
	return nil
}

// fillEmptyPeriodRegime stamps the regime of a no-revenue period from the
// vigent configuration so the assessment is still classifiable.
func (s *assessmentService) fillEmptyPeriodRegime(ctx context.Context, clinicID string, at time.Time, result *assessment.Assessment) error {
	config, err := s.FiscalConfigRepo.GetVigent(ctx, clinicID, at)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	result.Regime = config.Regime
	result.GrossRevenue = decimal.Zero
	result.TaxTotal = decimal.Zero
	return nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, id string) (*assessment.Assessment, error) {
	if id == "" {
		return nil, ierr.NewError("assessment id is required").
			WithHint("Assessment ID is required").
			Mark(ierr.ErrValidation)
	}
	return s.AssessmentRepo.Get(ctx, id)
}

func (s *assessmentService) ListAssessments(ctx context.Context, clinicID string) ([]*assessment.Assessment, error) {
	if clinicID == "" {
		return nil, ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}
	return s.AssessmentRepo.ListByClinic(ctx, clinicID)
}

func (s *assessmentService) RecordPayment(ctx context.Context, id string, paidAt time.Time, proof string) (*assessment.Assessment, error) {
	return s.transition(ctx, id, func(a *assessment.Assessment) error {
		return a.RecordPayment(paidAt, proof)
	})
}

func (s *assessmentService) MarkOverdue(ctx context.Context, id string) (*assessment.Assessment, error) {
	return s.transition(ctx, id, func(a *assessment.Assessment) error {
		return a.TransitionTo(types.AssessmentStatusOverdue)
	})
}

func (s *assessmentService) StartInstallment(ctx context.Context, id string) (*assessment.Assessment, error) {
	return s.transition(ctx, id, func(a *assessment.Assessment) error {
		return a.TransitionTo(types.AssessmentStatusInstallment)
	})
}

func (s *assessmentService) transition(ctx context.Context, id string, apply func(*assessment.Assessment) error) (*assessment.Assessment, error) {
	if id == "" {
		return nil, ierr.NewError("assessment id is required").
			WithHint("Assessment ID is required").
			Mark(ierr.ErrValidation)
	}

	current, err := s.AssessmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := current.AssessmentStatus
	if err := apply(current); err != nil {
		return nil, err
	}

	if err := s.AssessmentRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.Logger.Infow("assessment status changed",
		"assessment_id", current.ID,
		"from", from,
		"to", current.AssessmentStatus,
	)

	return current, nil
}

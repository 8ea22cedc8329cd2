package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medfiscal/medfiscal/internal/cache"
	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/simples"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Default flat rates (percentages) applied when the fiscal configuration
// carries no override for a category.
var (
	lucroPresumidoDefaults = map[types.TaxCategory]decimal.Decimal{
		types.TaxCategoryPIS:    decimal.RequireFromString("0.65"),
		types.TaxCategoryCOFINS: decimal.RequireFromString("3.00"),
		types.TaxCategoryIRPJ:   decimal.RequireFromString("4.80"),
		types.TaxCategoryCSLL:   decimal.RequireFromString("2.88"),
		types.TaxCategoryISS:    decimal.RequireFromString("5.00"),
		types.TaxCategoryCPP:    decimal.Zero,
	}
	lucroRealDefaults = map[types.TaxCategory]decimal.Decimal{
		types.TaxCategoryPIS:    decimal.RequireFromString("1.65"),
		types.TaxCategoryCOFINS: decimal.RequireFromString("7.60"),
		types.TaxCategoryIRPJ:   decimal.RequireFromString("15.00"),
		types.TaxCategoryCSLL:   decimal.RequireFromString("9.00"),
		types.TaxCategoryISS:    decimal.RequireFromString("5.00"),
		types.TaxCategoryCPP:    decimal.Zero,
	}
)

type TaxService interface {
	// ComputeInvoiceTax computes the tax breakdown for an invoice under the
	// configuration vigent at its issue date. A previous breakdown is
	// archived, never mutated.
	ComputeInvoiceTax(ctx context.Context, invoiceID string) (*taxbreakdown.TaxBreakdown, error)
}

type taxService struct {
	ServiceParams
}

func NewTaxService(params ServiceParams) TaxService {
	return &taxService{ServiceParams: params}
}

func (s *taxService) ComputeInvoiceTax(ctx context.Context, invoiceID string) (*taxbreakdown.TaxBreakdown, error) {
	if invoiceID == "" {
		return nil, ierr.NewError("invoice_id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	config, err := s.getVigentConfig(ctx, inv.ClinicID, inv.IssueDate)
	if err != nil {
		s.Logger.Warnw("no vigent fiscal configuration for invoice",
			"invoice_id", inv.ID,
			"clinic_id", inv.ClinicID,
			"issue_date", inv.IssueDate,
		)
		return nil, err
	}

	breakdown := &taxbreakdown.TaxBreakdown{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_BREAKDOWN),
		InvoiceID:   inv.ID,
		ClinicID:    inv.ClinicID,
		Regime:      config.Regime,
		GrossAmount: inv.ServiceAmount,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}

	switch config.Regime {
	case types.TaxRegimeSimplesNacional:
		err = s.computeSimples(ctx, inv, config, breakdown)
	case types.TaxRegimeLucroPresumido:
		err = s.computeFlat(config, breakdown, lucroPresumidoDefaults)
	case types.TaxRegimeLucroReal:
		err = s.computeFlat(config, breakdown, lucroRealDefaults)
	case types.TaxRegimeMEI:
		// MEI pays a fixed monthly amount outside the invoice flow; every
		// per-invoice category is zero and no bracket lookup happens.
		s.computeMEI(breakdown)
	default:
		return nil, ierr.NewError("unhandled tax regime").
			WithHintf("No tax computation registered for regime %s", config.Regime).
			Mark(ierr.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	// Create before archiving: if the insert fails the previous breakdown
	// stays current, and readers always see the newest published row.
	previous, err := s.TaxBreakdownRepo.GetByInvoice(ctx, inv.ID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if err := s.TaxBreakdownRepo.Create(ctx, breakdown); err != nil {
		s.Logger.Errorw("failed to persist tax breakdown",
			"error", err,
			"invoice_id", inv.ID,
		)
		return nil, err
	}

	if previous != nil {
		if err := s.TaxBreakdownRepo.Archive(ctx, previous.ID); err != nil {
			return nil, err
		}
	}

	s.Logger.Infow("computed invoice tax breakdown",
		"invoice_id", inv.ID,
		"regime", config.Regime,
		"total", breakdown.Total,
	)

	return breakdown, nil
}

func (s *taxService) computeSimples(ctx context.Context, inv *invoice.Invoice, config *fiscalconfig.FiscalConfig, breakdown *taxbreakdown.TaxBreakdown) error {
	bracketTable, err := simples.BracketTableFor(config.Annex)
	if err != nil {
		return err
	}
	distribution, err := simples.DistributionTableFor(config.Annex)
	if err != nil {
		return err
	}

	from, to := types.PeriodOf(inv.IssueDate).TrailingTwelveMonthsWindow()
	rbt12, err := s.InvoiceRepo.SumAuthorized(ctx, inv.IssuerCNPJ, from, to)
	if err != nil {
		return err
	}

	rate, err := simples.EffectiveRate(rbt12, bracketTable)
	if err != nil {
		return err
	}
	if rate.CeilingExceeded {
		s.Logger.Warnw("rolling 12-month revenue above simples ceiling, rate clamped to top bracket",
			"invoice_id", inv.ID,
			"rbt12", rbt12,
		)
	}

	total := inv.ServiceAmount.Mul(rate.EffectiveRate).Div(hundred).Round(2)
	parts := simples.Distribute(total, distribution)

	breakdown.RBT12 = rbt12
	breakdown.EffectiveRate = rate.EffectiveRate
	breakdown.CeilingExceeded = rate.CeilingExceeded
	breakdown.Total = total
	for _, share := range distribution.Shares() {
		breakdown.Lines = append(breakdown.Lines, taxbreakdown.Line{
			Category: share.Category,
			Rate:     rate.EffectiveRate.Mul(share.Percent).Div(hundred).Round(4),
			Amount:   parts[share.Category],
		})
	}
	return nil
}

func (s *taxService) computeFlat(config *fiscalconfig.FiscalConfig, breakdown *taxbreakdown.TaxBreakdown, defaults map[types.TaxCategory]decimal.Decimal) error {
	total := decimal.Zero
	for _, category := range types.AllTaxCategories() {
		rate := config.RateFor(category, defaults[category])
		amount := breakdown.GrossAmount.Mul(rate).Div(hundred).Round(2)
		total = total.Add(amount)
		breakdown.Lines = append(breakdown.Lines, taxbreakdown.Line{
			Category: category,
			Rate:     rate,
			Amount:   amount,
			Withheld: config.WithheldFor(category),
		})
	}
	breakdown.Total = total
	return nil
}

func (s *taxService) computeMEI(breakdown *taxbreakdown.TaxBreakdown) {
	breakdown.Total = decimal.Zero
	for _, category := range types.AllTaxCategories() {
		breakdown.Lines = append(breakdown.Lines, taxbreakdown.Line{
			Category: category,
			Rate:     decimal.Zero,
			Amount:   decimal.Zero,
		})
	}
}

// getVigentConfig resolves the configuration vigent for a clinic at a date,
// memoized per (clinic, month) through the cache.
func (s *taxService) getVigentConfig(ctx context.Context, clinicID string, date time.Time) (*fiscalconfig.FiscalConfig, error) {
	key := fmt.Sprintf("%s%s:%s", cache.PrefixFiscalConfig, clinicID, date.UTC().Format("2006-01"))
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if config, ok := cached.(*fiscalconfig.FiscalConfig); ok && config.IsVigentAt(date) {
				return config, nil
			}
		}
	}

	config, err := s.FiscalConfigRepo.GetVigent(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, config, cache.DefaultExpiryTime)
	}
	return config, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/testutil"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type TaxServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TaxService
}

func TestTaxService(t *testing.T) {
	suite.Run(t, new(TaxServiceSuite))
}

func (s *TaxServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTaxService(s.params())
}

func (s *TaxServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		Cache:            s.GetCache(),
		ClinicRepo:       stores.ClinicRepo,
		InvoiceRepo:      stores.InvoiceRepo,
		FiscalConfigRepo: stores.FiscalConfigRepo,
		TaxBreakdownRepo: stores.TaxBreakdownRepo,
		AssessmentRepo:   stores.AssessmentRepo,
		AccountRepo:      stores.AccountRepo,
		EntryRepo:        stores.EntryRepo,
		StatementRepo:    stores.StatementRepo,
	}
}

const (
	testClinicID = "clin_test"
	testCNPJ     = "12345678000190"
)

func (s *TaxServiceSuite) seedConfig(regime types.TaxRegime, annex types.SimplesAnnex) {
	err := s.GetStores().FiscalConfigRepo.Create(s.GetContext(), &fiscalconfig.FiscalConfig{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FISCAL_CONFIG),
		ClinicID:   testClinicID,
		Regime:     regime,
		Annex:      annex,
		VigentFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Require().NoError(err)
}

func (s *TaxServiceSuite) seedInvoice(amount string, issueDate time.Time) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClinicID:      testClinicID,
		Number:        "101",
		IssuerCNPJ:    testCNPJ,
		TakerDocument: "98765432100",
		IssueDate:     issueDate,
		ServiceAmount: decimal.RequireFromString(amount),
		InvoiceStatus: types.InvoiceStatusAuthorized,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	s.GetStores().InvoiceRepo.Add(inv)
	return inv
}

// seedRevenue adds one authorized invoice in a prior month so the trailing
// twelve-month figure reaches the wanted bracket.
func (s *TaxServiceSuite) seedRevenue(amount string, issueDate time.Time) {
	s.seedInvoice(amount, issueDate)
}

func (s *TaxServiceSuite) TestSimplesAnnexIIIBracketTwo() {
	s.seedConfig(types.TaxRegimeSimplesNacional, types.SimplesAnnexIII)
	issueDate := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.seedRevenue("190000.00", issueDate.AddDate(0, -3, 0))
	inv := s.seedInvoice("10000.00", issueDate)

	breakdown, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	// rbt12 = 190,000 + 10,000 = 200,000 -> bracket two of Annex III
	s.True(breakdown.RBT12.Equal(decimal.RequireFromString("200000.00")), "rbt12: %s", breakdown.RBT12)
	s.True(breakdown.EffectiveRate.Equal(decimal.RequireFromString("11.2")), "rate: %s", breakdown.EffectiveRate)
	s.True(breakdown.Total.Equal(decimal.RequireFromString("1120.00")), "total: %s", breakdown.Total)
	s.False(breakdown.CeilingExceeded)
	s.Len(breakdown.Lines, 6)

	sum := decimal.Zero
	for _, line := range breakdown.Lines {
		sum = sum.Add(line.Amount)
	}
	s.True(sum.Equal(breakdown.Total), "lines sum %s != total %s", sum, breakdown.Total)
}

func (s *TaxServiceSuite) TestSimplesAnnexIIIBracketThree() {
	s.seedConfig(types.TaxRegimeSimplesNacional, types.SimplesAnnexIII)
	issueDate := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)
	s.seedRevenue("550000.00", issueDate.AddDate(0, -2, 0))
	inv := s.seedInvoice("50000.00", issueDate)

	breakdown, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	s.True(breakdown.EffectiveRate.Equal(decimal.RequireFromString("13.5")), "rate: %s", breakdown.EffectiveRate)
	s.True(breakdown.Total.Equal(decimal.RequireFromString("6750.00")), "total: %s", breakdown.Total)
}

func (s *TaxServiceSuite) TestMEIAllZero() {
	s.seedConfig(types.TaxRegimeMEI, "")
	inv := s.seedInvoice("5000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	breakdown, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	s.True(breakdown.Total.IsZero())
	s.Len(breakdown.Lines, 6)
	for _, line := range breakdown.Lines {
		s.True(line.Amount.IsZero())
		s.True(line.Rate.IsZero())
	}
}

func (s *TaxServiceSuite) TestLucroPresumidoDefaults() {
	s.seedConfig(types.TaxRegimeLucroPresumido, "")
	inv := s.seedInvoice("10000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	breakdown, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	// 0.65 + 3.00 + 4.80 + 2.88 + 5.00 = 16.33% of 10,000
	s.True(breakdown.Total.Equal(decimal.RequireFromString("1633.00")), "total: %s", breakdown.Total)
	s.True(breakdown.AmountFor(types.TaxCategoryISS).Equal(decimal.RequireFromString("500.00")))
	s.True(breakdown.AmountFor(types.TaxCategoryCPP).IsZero())
}

func (s *TaxServiceSuite) TestLucroRealRateOverride() {
	iss := decimal.RequireFromString("2.00")
	err := s.GetStores().FiscalConfigRepo.Create(s.GetContext(), &fiscalconfig.FiscalConfig{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FISCAL_CONFIG),
		ClinicID:   testClinicID,
		Regime:     types.TaxRegimeLucroReal,
		ISSRate:    &iss,
		VigentFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Require().NoError(err)
	inv := s.seedInvoice("10000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	breakdown, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	s.True(breakdown.AmountFor(types.TaxCategoryISS).Equal(decimal.RequireFromString("200.00")))
	s.True(breakdown.AmountFor(types.TaxCategoryPIS).Equal(decimal.RequireFromString("165.00")))
}

func (s *TaxServiceSuite) TestWithholdingFlagsComeFromConfig() {
	err := s.GetStores().FiscalConfigRepo.Create(s.GetContext(), &fiscalconfig.FiscalConfig{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FISCAL_CONFIG),
		ClinicID:    testClinicID,
		Regime:      types.TaxRegimeLucroPresumido,
		ISSWithheld: true,
		VigentFrom:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Require().NoError(err)
	inv := s.seedInvoice("10000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	breakdown, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	for _, line := range breakdown.Lines {
		if line.Category == types.TaxCategoryISS {
			s.True(line.Withheld)
		} else {
			s.False(line.Withheld)
		}
	}
}

func (s *TaxServiceSuite) TestMissingVigentConfigIsFatal() {
	inv := s.seedInvoice("10000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	_, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TaxServiceSuite) TestRecomputationArchivesPrevious() {
	s.seedConfig(types.TaxRegimeLucroPresumido, "")
	inv := s.seedInvoice("10000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	first, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	second, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	archived, err := s.GetStores().TaxBreakdownRepo.Get(s.GetContext(), first.ID)
	s.Require().NoError(err)
	s.Equal(types.StatusArchived, archived.Status)

	current, err := s.GetStores().TaxBreakdownRepo.GetByInvoice(s.GetContext(), inv.ID)
	s.Require().NoError(err)
	s.Equal(second.ID, current.ID)
}

// flakyBreakdownRepo fails inserts on demand to exercise the recomputation
// ordering guarantee.
type flakyBreakdownRepo struct {
	taxbreakdown.Repository
	failCreate bool
}

func (r *flakyBreakdownRepo) Create(ctx context.Context, b *taxbreakdown.TaxBreakdown) error {
	if r.failCreate {
		return ierr.NewError("insert failed").
			WithHint("Could not persist the tax breakdown").
			Mark(ierr.ErrDatabase)
	}
	return r.Repository.Create(ctx, b)
}

func (s *TaxServiceSuite) TestFailedRecomputationKeepsPreviousCurrent() {
	s.seedConfig(types.TaxRegimeLucroPresumido, "")
	inv := s.seedInvoice("10000.00", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	first, err := s.service.ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	params := s.params()
	flaky := &flakyBreakdownRepo{Repository: params.TaxBreakdownRepo, failCreate: true}
	params.TaxBreakdownRepo = flaky

	_, err = NewTaxService(params).ComputeInvoiceTax(s.GetContext(), inv.ID)
	s.Error(err)

	// the previous breakdown was not archived by the failed recomputation
	current, err := s.GetStores().TaxBreakdownRepo.GetByInvoice(s.GetContext(), inv.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, current.ID)
	s.Equal(types.StatusPublished, current.Status)
}

func (s *TaxServiceSuite) TestEmptyInvoiceIDRejected() {
	_, err := s.service.ComputeInvoiceTax(s.GetContext(), "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

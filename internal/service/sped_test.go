package service

import (
	"strings"
	"testing"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/testutil"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type SpedServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     SpedService
	assessments AssessmentService
}

func TestSpedService(t *testing.T) {
	suite.Run(t, new(SpedServiceSuite))
}

func (s *SpedServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := s.params()
	ledgerSvc := NewLedgerService(params)
	s.service = NewSpedService(params, ledgerSvc)
	s.assessments = NewAssessmentService(params, NewTaxService(params))
}

func (s *SpedServiceSuite) params() ServiceParams {
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

func (s *SpedServiceSuite) seedClinic() {
	s.GetStores().ClinicRepo.Add(&clinic.Clinic{
		ID:        testClinicID,
		Name:      "Clinica Vida",
		LegalName: "Clinica Vida Ltda",
		CNPJ:      testCNPJ,
		CityCode:  "3550308",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	})
}

func (s *SpedServiceSuite) seedFiscalPeriod() (time.Time, time.Time) {
	s.seedClinic()
	err := s.GetStores().FiscalConfigRepo.Create(s.GetContext(), &fiscalconfig.FiscalConfig{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FISCAL_CONFIG),
		ClinicID:   testClinicID,
		Regime:     types.TaxRegimeSimplesNacional,
		Annex:      types.SimplesAnnexIII,
		VigentFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Require().NoError(err)

	s.GetStores().InvoiceRepo.Add(&invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClinicID:      testClinicID,
		Number:        "101",
		IssuerCNPJ:    testCNPJ,
		TakerDocument: "98765432100",
		IssueDate:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		ServiceAmount: decimal.RequireFromString("1500.00"),
		InvoiceStatus: types.InvoiceStatusAuthorized,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	})

	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
}

func (s *SpedServiceSuite) TestFiscalExportRoundTrip() {
	from, to := s.seedFiscalPeriod()

	content, err := s.service.Export(s.GetContext(), testClinicID, from, to, types.SpedFileKindFiscal)
	s.Require().NoError(err)

	result := s.service.Validate(s.GetContext(), content)
	s.True(result.IsValid, "errors: %v", result.Errors)
	s.Empty(result.Errors)
	s.Contains(content, "|A100|101|10032025|98765432100|1500,00|0,0000|0,00|")
}

func (s *SpedServiceSuite) TestFiscalExportCarriesAssessmentTotals() {
	from, to := s.seedFiscalPeriod()

	_, err := s.assessments.GenerateAssessment(s.GetContext(), testClinicID, types.MonthPeriod{Month: 3, Year: 2025})
	s.Require().NoError(err)

	content, err := s.service.Export(s.GetContext(), testClinicID, from, to, types.SpedFileKindFiscal)
	s.Require().NoError(err)

	result := s.service.Validate(s.GetContext(), content)
	s.True(result.IsValid, "errors: %v", result.Errors)
	s.Contains(content, "|M200|PIS|")
	s.Contains(content, "|M200|ISS|")
}

func (s *SpedServiceSuite) TestAccountingExportRoundTrip() {
	s.seedClinic()
	account := &ledger.Account{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		ClinicID:   testClinicID,
		Code:       "1.1.01",
		Name:       "Caixa",
		Type:       types.AccountTypeAsset,
		Nature:     types.AccountNatureDebtor,
		IsAnalytic: true,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.GetStores().AccountRepo.Add(account)
	err := s.GetStores().EntryRepo.Create(s.GetContext(), &ledger.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_JOURNAL_ENTRY),
		AccountID: account.ID,
		ClinicID:  testClinicID,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("1000.00"),
		Direction: types.EntryDirectionDebit,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Require().NoError(err)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	content, err := s.service.Export(s.GetContext(), testClinicID, from, to, types.SpedFileKindAccounting)
	s.Require().NoError(err)

	result := s.service.Validate(s.GetContext(), content)
	s.True(result.IsValid, "errors: %v", result.Errors)
	s.Contains(content, "|I050|1.1.01|Caixa|ASSET|D|A|")
	s.True(strings.HasPrefix(content, "|0000|LECD|"))
}

func (s *SpedServiceSuite) TestExportRejectsUnknownKind() {
	s.seedClinic()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	_, err := s.service.Export(s.GetContext(), testClinicID, from, to, types.SpedFileKind("PAYROLL"))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SpedServiceSuite) TestExportRejectsInvertedPeriod() {
	s.seedClinic()
	from := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.service.Export(s.GetContext(), testClinicID, from, to, types.SpedFileKindFiscal)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SpedServiceSuite) TestValidateEmptyContent() {
	result := s.service.Validate(s.GetContext(), "   ")
	s.False(result.IsValid)
	s.Require().Len(result.Errors, 1)
	s.Equal("empty content", result.Errors[0])
}

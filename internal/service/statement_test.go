package service

import (
	"testing"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/testutil"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StatementServiceSuite struct {
	testutil.BaseServiceTestSuite
	service StatementService
	ledger  LedgerService
}

func TestStatementService(t *testing.T) {
	suite.Run(t, new(StatementServiceSuite))
}

func (s *StatementServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := s.params()
	s.ledger = NewLedgerService(params)
	s.service = NewStatementService(params, s.ledger)
}

func (s *StatementServiceSuite) params() ServiceParams {
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

func (s *StatementServiceSuite) seedAccount(code, name string, accountType types.AccountType, analytic bool, parentID string) *ledger.Account {
	account := &ledger.Account{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		ClinicID:   testClinicID,
		Code:       code,
		Name:       name,
		Type:       accountType,
		Nature:     accountType.DefaultNature(),
		ParentID:   parentID,
		IsAnalytic: analytic,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.GetStores().AccountRepo.Add(account)
	return account
}

func (s *StatementServiceSuite) post(accountID, amount string, direction types.EntryDirection, date time.Time) {
	err := s.GetStores().EntryRepo.Create(s.GetContext(), &ledger.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_JOURNAL_ENTRY),
		AccountID: accountID,
		ClinicID:  testClinicID,
		Date:      date,
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Require().NoError(err)
}

func (s *StatementServiceSuite) periodWindow() (time.Time, time.Time) {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
}

func (s *StatementServiceSuite) TestIncomeStatementPipeline() {
	from, to := s.periodWindow()
	mid := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	revenue := s.seedAccount("3.1.01", "Receita de Servicos", types.AccountTypeRevenue, true, "")
	cost := s.seedAccount("4.1.01", "Custo dos Servicos", types.AccountTypeCost, true, "")
	expense := s.seedAccount("5.1.01", "Despesas Administrativas", types.AccountTypeExpense, true, "")

	s.post(revenue.ID, "100000.00", types.EntryDirectionCredit, mid)
	s.post(cost.ID, "40000.00", types.EntryDirectionDebit, mid)
	s.post(expense.ID, "30000.00", types.EntryDirectionDebit, mid)

	stmt, err := s.service.GenerateIncomeStatement(s.GetContext(), testClinicID, from, to)
	s.Require().NoError(err)

	s.True(stmt.GrossRevenue.Equal(decimal.RequireFromString("100000.00")))
	s.True(stmt.NetRevenue.Equal(decimal.RequireFromString("100000.00")))
	s.True(stmt.GrossProfit.Equal(decimal.RequireFromString("60000.00")))
	s.True(stmt.GrossMargin.Equal(decimal.RequireFromString("60")), "gross margin: %s", stmt.GrossMargin)
	s.True(stmt.EBITDA.Equal(decimal.RequireFromString("30000.00")), "ebitda: %s", stmt.EBITDA)
	s.True(stmt.NetProfit.Equal(decimal.RequireFromString("30000.00")))
	s.True(stmt.NetMargin.Equal(decimal.RequireFromString("30")))
}

func (s *StatementServiceSuite) TestIncomeStatementZeroRevenueMargins() {
	from, to := s.periodWindow()

	stmt, err := s.service.GenerateIncomeStatement(s.GetContext(), testClinicID, from, to)
	s.Require().NoError(err)

	s.True(stmt.GrossMargin.IsZero())
	s.True(stmt.NetMargin.IsZero())
}

func (s *StatementServiceSuite) TestIncomeStatementRegenerationKeepsIdentity() {
	from, to := s.periodWindow()
	mid := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	revenue := s.seedAccount("3.1.01", "Receita de Servicos", types.AccountTypeRevenue, true, "")
	s.post(revenue.ID, "50000.00", types.EntryDirectionCredit, mid)

	first, err := s.service.GenerateIncomeStatement(s.GetContext(), testClinicID, from, to)
	s.Require().NoError(err)

	s.post(revenue.ID, "25000.00", types.EntryDirectionCredit, mid)

	second, err := s.service.GenerateIncomeStatement(s.GetContext(), testClinicID, from, to)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.True(second.GrossRevenue.Equal(decimal.RequireFromString("75000.00")))
}

func (s *StatementServiceSuite) TestBalanceSheetIdentityHolds() {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cash := s.seedAccount("1.1.01", "Caixa", types.AccountTypeAsset, true, "")
	fixed := s.seedAccount("1.2.01", "Imobilizado", types.AccountTypeAsset, true, "")
	payable := s.seedAccount("2.1.01", "Fornecedores", types.AccountTypeLiability, true, "")
	loan := s.seedAccount("2.2.01", "Emprestimos LP", types.AccountTypeLiability, true, "")

	s.post(cash.ID, "80000.00", types.EntryDirectionDebit, mid)
	s.post(fixed.ID, "20000.00", types.EntryDirectionDebit, mid)
	s.post(payable.ID, "15000.00", types.EntryDirectionCredit, mid)
	s.post(loan.ID, "25000.00", types.EntryDirectionCredit, mid)

	sheet, err := s.service.GenerateBalanceSheet(s.GetContext(), testClinicID, asOf)
	s.Require().NoError(err)

	s.True(sheet.CurrentAssets.Equal(decimal.RequireFromString("80000.00")))
	s.True(sheet.NonCurrentAssets.Equal(decimal.RequireFromString("20000.00")))
	s.True(sheet.TotalAssets.Equal(decimal.RequireFromString("100000.00")))
	s.True(sheet.CurrentLiabilities.Equal(decimal.RequireFromString("15000.00")))
	s.True(sheet.NonCurrentLiabilities.Equal(decimal.RequireFromString("25000.00")))
	s.True(sheet.TotalLiabilities.Equal(decimal.RequireFromString("40000.00")))

	// no ledger equity: identity derives equity as assets minus liabilities
	s.True(sheet.Equity.Equal(decimal.RequireFromString("60000.00")), "equity: %s", sheet.Equity)
	s.True(sheet.TotalAssets.Equal(sheet.TotalLiabilities.Add(sheet.Equity)),
		"identity: %s != %s + %s", sheet.TotalAssets, sheet.TotalLiabilities, sheet.Equity)
}

func (s *StatementServiceSuite) TestBalanceSheetEstimatedAllocationSumsBack() {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cash := s.seedAccount("1.1.01", "Caixa", types.AccountTypeAsset, true, "")
	s.post(cash.ID, "99999.99", types.EntryDirectionDebit, mid)

	sheet, err := s.service.GenerateBalanceSheet(s.GetContext(), testClinicID, asOf)
	s.Require().NoError(err)

	sum := sheet.CashAndEquivalents.
		Add(sheet.Receivables).
		Add(sheet.PrepaidExpenses).
		Add(sheet.OtherCurrentAssets)
	s.True(sum.Equal(sheet.CurrentAssets), "allocation sum %s != current assets %s", sum, sheet.CurrentAssets)
}

func (s *StatementServiceSuite) TestBalanceSheetBalancingCorrectionApplied() {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cash := s.seedAccount("1.1.01", "Caixa", types.AccountTypeAsset, true, "")
	equity := s.seedAccount("2.3.01", "Capital Social", types.AccountTypeEquity, true, "")

	// ledger equity exceeds assets minus liabilities: the residual is folded
	// into retained earnings
	s.post(cash.ID, "50000.00", types.EntryDirectionDebit, mid)
	s.post(equity.ID, "70000.00", types.EntryDirectionCredit, mid)

	sheet, err := s.service.GenerateBalanceSheet(s.GetContext(), testClinicID, asOf)
	s.Require().NoError(err)

	s.False(sheet.BalancingAdjustment.IsZero())
	s.True(sheet.TotalAssets.Equal(sheet.TotalLiabilities.Add(sheet.Equity)),
		"identity after correction: %s != %s + %s", sheet.TotalAssets, sheet.TotalLiabilities, sheet.Equity)
}

func (s *StatementServiceSuite) TestSyntheticAccountsNotDoubleCounted() {
	from, to := s.periodWindow()
	mid := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	parent := s.seedAccount("3.1", "Receitas", types.AccountTypeRevenue, false, "")
	child := s.seedAccount("3.1.01", "Receita de Servicos", types.AccountTypeRevenue, true, parent.ID)
	s.post(child.ID, "10000.00", types.EntryDirectionCredit, mid)

	total, err := s.ledger.BalanceByType(s.GetContext(), testClinicID, types.AccountTypeRevenue, from, to)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.RequireFromString("10000.00")), "total: %s", total)

	// the synthetic parent aggregates its subtree
	parentBalance, err := s.ledger.Balance(s.GetContext(), parent.ID, from, to)
	s.Require().NoError(err)
	s.True(parentBalance.Equal(decimal.RequireFromString("10000.00")))
}

func (s *StatementServiceSuite) TestPostingToSyntheticAccountRejected() {
	parent := s.seedAccount("3.1", "Receitas", types.AccountTypeRevenue, false, "")

	err := s.GetStores().EntryRepo.Create(s.GetContext(), &ledger.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_JOURNAL_ENTRY),
		AccountID: parent.ID,
		ClinicID:  testClinicID,
		Date:      time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("100.00"),
		Direction: types.EntryDirectionCredit,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	})
	s.Error(err)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/statement"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// Estimated allocation of current assets into sub-items. These are fixed
// percentages, an estimate only, not a sub-ledger breakdown.
var estimatedAllocation = []struct {
	name    string
	percent decimal.Decimal
}{
	{"cash", decimal.RequireFromString("30")},
	{"receivables", decimal.RequireFromString("50")},
	{"prepaid", decimal.RequireFromString("15")},
	{"other", decimal.RequireFromString("5")},
}

type StatementService interface {
	// GenerateIncomeStatement derives the DRE for a period from the ledger.
	// Regeneration replaces the stored values and keeps the identity.
	GenerateIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*statement.IncomeStatement, error)

	// GenerateBalanceSheet derives the balance sheet at a date from the
	// ledger. Regeneration replaces the stored values and keeps the identity.
	GenerateBalanceSheet(ctx context.Context, clinicID string, asOf time.Time) (*statement.BalanceSheet, error)

	GetIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*statement.IncomeStatement, error)
	GetBalanceSheet(ctx context.Context, clinicID string, asOf time.Time) (*statement.BalanceSheet, error)
}

type statementService struct {
	ServiceParams
	ledger LedgerService
}

func NewStatementService(params ServiceParams, ledger LedgerService) StatementService {
	return &statementService{ServiceParams: params, ledger: ledger}
}

func (s *statementService) GenerateIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*statement.IncomeStatement, error) {
	if err := validateStatementWindow(clinicID, periodStart, periodEnd); err != nil {
		return nil, err
	}

	grossRevenue, err := s.ledger.BalanceByType(ctx, clinicID, types.AccountTypeRevenue, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	costOfServices, err := s.ledger.BalanceByType(ctx, clinicID, types.AccountTypeCost, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	operatingExpenses, err := s.ledger.BalanceByType(ctx, clinicID, types.AccountTypeExpense, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	stmt := &statement.IncomeStatement{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INCOME_STMT),
		ClinicID:    clinicID,
		PeriodStart: periodStart.UTC(),
		PeriodEnd:   periodEnd.UTC(),
		BaseModel:   types.GetDefaultBaseModel(ctx),

		GrossRevenue:      grossRevenue,
		Deductions:        decimal.Zero,
		CostOfServices:    costOfServices,
		OperatingExpenses: operatingExpenses,
	}

	stmt.NetRevenue = stmt.GrossRevenue.Sub(stmt.Deductions)
	stmt.GrossProfit = stmt.NetRevenue.Sub(stmt.CostOfServices)
	stmt.GrossMargin = marginOf(stmt.GrossProfit, stmt.NetRevenue)
	stmt.EBITDA = stmt.GrossProfit.Sub(stmt.OperatingExpenses)
	stmt.EBIT = stmt.EBITDA.Sub(stmt.DepreciationAmortization)
	stmt.FinancialResult = stmt.FinancialIncome.Sub(stmt.FinancialExpense)
	stmt.PretaxProfit = stmt.EBIT.Add(stmt.FinancialResult)

	if err := s.fillTaxLines(ctx, clinicID, periodStart, stmt); err != nil {
		return nil, err
	}

	stmt.NetProfit = stmt.PretaxProfit.Sub(stmt.IncomeTax).Sub(stmt.SocialContribution)
	stmt.NetMargin = marginOf(stmt.NetProfit, stmt.NetRevenue)

	persisted, err := s.StatementRepo.UpsertIncomeStatement(ctx, stmt)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("generated income statement",
		"clinic_id", clinicID,
		"period_start", periodStart,
		"period_end", periodEnd,
		"net_profit", persisted.NetProfit,
	)

	return persisted, nil
}

// fillTaxLines takes the income-tax and social-contribution lines from the
// period's assessment when one exists; a period without an assessment keeps
// both at zero.
func (s *statementService) fillTaxLines(ctx context.Context, clinicID string, periodStart time.Time, stmt *statement.IncomeStatement) error {
	period := types.PeriodOf(periodStart)
	assessed, err := s.AssessmentRepo.GetByPeriod(ctx, clinicID, period)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	stmt.IncomeTax = assessed.IRPJTotal
	stmt.SocialContribution = assessed.CSLLTotal
	return nil
}

func (s *statementService) GenerateBalanceSheet(ctx context.Context, clinicID string, asOf time.Time) (*statement.BalanceSheet, error) {
	if clinicID == "" {
		return nil, ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}

	// stock figures accumulate from the beginning of the books
	openOfBooks := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf = asOf.UTC()

	currentAssets, nonCurrentAssets, err := s.splitByTerm(ctx, clinicID, types.AccountTypeAsset, openOfBooks, asOf)
	if err != nil {
		return nil, err
	}
	currentLiabilities, nonCurrentLiabilities, err := s.splitByTerm(ctx, clinicID, types.AccountTypeLiability, openOfBooks, asOf)
	if err != nil {
		return nil, err
	}
	ledgerEquity, err := s.ledger.BalanceByType(ctx, clinicID, types.AccountTypeEquity, openOfBooks, asOf)
	if err != nil {
		return nil, err
	}

	sheet := &statement.BalanceSheet{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BALANCE_SHEET),
		ClinicID:  clinicID,
		AsOfDate:  asOf,
		BaseModel: types.GetDefaultBaseModel(ctx),

		CurrentAssets:         currentAssets,
		NonCurrentAssets:      nonCurrentAssets,
		TotalAssets:           currentAssets.Add(nonCurrentAssets),
		CurrentLiabilities:    currentLiabilities,
		NonCurrentLiabilities: nonCurrentLiabilities,
		TotalLiabilities:      currentLiabilities.Add(nonCurrentLiabilities),
	}

	s.allocateCurrentAssets(sheet)

	// equity trusts the accounting identity over potentially incomplete
	// postings: the larger of ledger equity and assets minus liabilities
	identityEquity := sheet.TotalAssets.Sub(sheet.TotalLiabilities)
	sheet.Equity = decimal.Max(ledgerEquity, identityEquity)

	// single balancing correction: any residual is folded into retained
	// earnings exactly once and recorded on the sheet
	residual := sheet.TotalAssets.Sub(sheet.TotalLiabilities.Add(sheet.Equity))
	if !residual.IsZero() {
		sheet.BalancingAdjustment = residual
		sheet.RetainedEarnings = sheet.RetainedEarnings.Add(residual)
		sheet.Equity = sheet.Equity.Add(residual)
		s.Logger.Warnw("balance sheet required a balancing correction",
			"clinic_id", clinicID,
			"as_of", asOf,
			"adjustment", residual,
		)
	}

	persisted, err := s.StatementRepo.UpsertBalanceSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("generated balance sheet",
		"clinic_id", clinicID,
		"as_of", asOf,
		"total_assets", persisted.TotalAssets,
	)

	return persisted, nil
}

// splitByTerm classifies analytic accounts of a type into current and
// non-current by the second code segment: x.1.* is current, everything else
// long-term.
func (s *statementService) splitByTerm(ctx context.Context, clinicID string, accountType types.AccountType, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	accounts, err := s.AccountRepo.ListByType(ctx, clinicID, accountType)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	current, nonCurrent := decimal.Zero, decimal.Zero
	for _, account := range accounts {
		if !account.IsAnalytic {
			continue
		}
		balance, err := s.ledger.Balance(ctx, account.ID, from, to)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if isCurrentTerm(account.Code) {
			current = current.Add(balance)
		} else {
			nonCurrent = nonCurrent.Add(balance)
		}
	}
	return current, nonCurrent, nil
}

func isCurrentTerm(code string) bool {
	segments := strings.Split(code, ".")
	return len(segments) < 2 || segments[1] == "1"
}

// allocateCurrentAssets splits current assets into the estimated sub-items.
// The residue of cent rounding lands on the last item so the parts always sum
// back to the aggregate.
func (s *statementService) allocateCurrentAssets(sheet *statement.BalanceSheet) {
	allocated := decimal.Zero
	parts := make([]decimal.Decimal, len(estimatedAllocation))
	for i, item := range estimatedAllocation {
		part := sheet.CurrentAssets.Mul(item.percent).Div(hundred).Round(2)
		parts[i] = part
		allocated = allocated.Add(part)
	}
	residue := sheet.CurrentAssets.Sub(allocated)
	parts[len(parts)-1] = parts[len(parts)-1].Add(residue)

	sheet.CashAndEquivalents = parts[0]
	sheet.Receivables = parts[1]
	sheet.PrepaidExpenses = parts[2]
	sheet.OtherCurrentAssets = parts[3]
}

func (s *statementService) GetIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*statement.IncomeStatement, error) {
	if err := validateStatementWindow(clinicID, periodStart, periodEnd); err != nil {
		return nil, err
	}
	return s.StatementRepo.GetIncomeStatement(ctx, clinicID, periodStart.UTC(), periodEnd.UTC())
}

func (s *statementService) GetBalanceSheet(ctx context.Context, clinicID string, asOf time.Time) (*statement.BalanceSheet, error) {
	if clinicID == "" {
		return nil, ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}
	return s.StatementRepo.GetBalanceSheet(ctx, clinicID, asOf.UTC())
}

func validateStatementWindow(clinicID string, periodStart, periodEnd time.Time) error {
	if clinicID == "" {
		return ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}
	if periodEnd.Before(periodStart) {
		return ierr.NewError("statement period is inverted").
			WithHint("Period end must not precede period start").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// marginOf returns part/whole as a percentage, zero when the denominator is
// zero.
func marginOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

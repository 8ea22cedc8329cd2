package service

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type LedgerService interface {
	// Balance returns the natural-sign balance of an account over [from, to].
	// Analytic accounts aggregate their own postings; synthetic accounts
	// aggregate their subtree's analytic leaves.
	Balance(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)

	// BalanceByType sums the balances of a clinic's analytic accounts of the
	// given type over [from, to]. Synthetic accounts are skipped so nothing is
	// counted twice.
	BalanceByType(ctx context.Context, clinicID string, accountType types.AccountType, from, to time.Time) (decimal.Decimal, error)

	// Movement returns the raw debit and credit totals of an analytic account
	// over [from, to], before any nature sign convention is applied.
	Movement(ctx context.Context, accountID string, from, to time.Time) (debits, credits decimal.Decimal, err error)

	ListAccounts(ctx context.Context, clinicID string) ([]*ledger.Account, error)
}

type ledgerService struct {
	ServiceParams
}

func NewLedgerService(params ServiceParams) LedgerService {
	return &ledgerService{ServiceParams: params}
}

func (s *ledgerService) Balance(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	if accountID == "" {
		return decimal.Zero, ierr.NewError("account id is required").
			WithHint("Account ID is required").
			Mark(ierr.ErrValidation)
	}

	account, err := s.AccountRepo.Get(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balanceOf(ctx, account, from, to)
}

func (s *ledgerService) balanceOf(ctx context.Context, account *ledger.Account, from, to time.Time) (decimal.Decimal, error) {
	if account.IsAnalytic {
		return s.analyticBalance(ctx, account, from, to)
	}

	children, err := s.AccountRepo.ListChildren(ctx, account.ID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, child := range children {
		balance, err := s.balanceOf(ctx, child, from, to)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
	}
	return total, nil
}

// analyticBalance folds an account's postings under its nature sign
// convention: debtor accounts grow with debits, creditor accounts with
// credits.
func (s *ledgerService) analyticBalance(ctx context.Context, account *ledger.Account, from, to time.Time) (decimal.Decimal, error) {
	debits, credits, err := s.Movement(ctx, account.ID, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	if account.Nature == types.AccountNatureCreditor {
		return credits.Sub(debits), nil
	}
	return debits.Sub(credits), nil
}

func (s *ledgerService) Movement(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	entries, err := s.EntryRepo.ListByAccount(ctx, accountID, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	debits, credits := decimal.Zero, decimal.Zero
	for _, entry := range entries {
		switch entry.Direction {
		case types.EntryDirectionDebit:
			debits = debits.Add(entry.Amount)
		case types.EntryDirectionCredit:
			credits = credits.Add(entry.Amount)
		}
	}
	return debits, credits, nil
}

func (s *ledgerService) BalanceByType(ctx context.Context, clinicID string, accountType types.AccountType, from, to time.Time) (decimal.Decimal, error) {
	if err := accountType.Validate(); err != nil {
		return decimal.Zero, err
	}

	accounts, err := s.AccountRepo.ListByType(ctx, clinicID, accountType)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, account := range accounts {
		if !account.IsAnalytic {
			continue
		}
		balance, err := s.analyticBalance(ctx, account, from, to)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
	}
	return total, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, clinicID string) ([]*ledger.Account, error) {
	if clinicID == "" {
		return nil, ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}
	return s.AccountRepo.ListByClinic(ctx, clinicID)
}

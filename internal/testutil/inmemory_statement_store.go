package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/statement"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// InMemoryStatementStore implements statement.Repository with upsert-by-period
// semantics: regenerating for an existing period replaces the stored values
// and keeps the row's identity.
type InMemoryStatementStore struct {
	mu       sync.Mutex
	income   map[string]*statement.IncomeStatement
	balances map[string]*statement.BalanceSheet
}

func NewInMemoryStatementStore() *InMemoryStatementStore {
	return &InMemoryStatementStore{
		income:   make(map[string]*statement.IncomeStatement),
		balances: make(map[string]*statement.BalanceSheet),
	}
}

func incomeKey(clinicID string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s", clinicID, start.UTC().Format("2006-01-02"), end.UTC().Format("2006-01-02"))
}

func balanceKey(clinicID string, asOf time.Time) string {
	return fmt.Sprintf("%s:%s", clinicID, asOf.UTC().Format("2006-01-02"))
}

func (s *InMemoryStatementStore) UpsertIncomeStatement(ctx context.Context, stmt *statement.IncomeStatement) (*statement.IncomeStatement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := incomeKey(stmt.ClinicID, stmt.PeriodStart, stmt.PeriodEnd)
	if existing, ok := s.income[key]; ok {
		replacement := *stmt
		replacement.ID = existing.ID
		replacement.CreatedAt = existing.CreatedAt
		replacement.CreatedBy = existing.CreatedBy
		s.income[key] = &replacement
		return &replacement, nil
	}
	s.income[key] = stmt
	return stmt, nil
}

func (s *InMemoryStatementStore) GetIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*statement.IncomeStatement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmt, ok := s.income[incomeKey(clinicID, periodStart, periodEnd)]
	if !ok {
		return nil, ierr.NewError("income statement not found").
			WithHint("No income statement was generated for this period").
			Mark(ierr.ErrNotFound)
	}
	return stmt, nil
}

func (s *InMemoryStatementStore) UpsertBalanceSheet(ctx context.Context, sheet *statement.BalanceSheet) (*statement.BalanceSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := balanceKey(sheet.ClinicID, sheet.AsOfDate)
	if existing, ok := s.balances[key]; ok {
		replacement := *sheet
		replacement.ID = existing.ID
		replacement.CreatedAt = existing.CreatedAt
		replacement.CreatedBy = existing.CreatedBy
		s.balances[key] = &replacement
		return &replacement, nil
	}
	s.balances[key] = sheet
	return sheet, nil
}

func (s *InMemoryStatementStore) GetBalanceSheet(ctx context.Context, clinicID string, asOfDate time.Time) (*statement.BalanceSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.balances[balanceKey(clinicID, asOfDate)]
	if !ok {
		return nil, ierr.NewError("balance sheet not found").
			WithHint("No balance sheet was generated for this date").
			Mark(ierr.ErrNotFound)
	}
	return sheet, nil
}

func (s *InMemoryStatementStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.income = make(map[string]*statement.IncomeStatement)
	s.balances = make(map[string]*statement.BalanceSheet)
}

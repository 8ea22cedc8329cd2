package statement

import (
	"context"
	"time"
)

// Repository defines statement persistence. Upserts are keyed by period: a
// regeneration for an existing period replaces the stored values and keeps
// the row's identity.
type Repository interface {
	UpsertIncomeStatement(ctx context.Context, stmt *IncomeStatement) (*IncomeStatement, error)
	GetIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*IncomeStatement, error)

	UpsertBalanceSheet(ctx context.Context, sheet *BalanceSheet) (*BalanceSheet, error)
	GetBalanceSheet(ctx context.Context, clinicID string, asOfDate time.Time) (*BalanceSheet, error)
}

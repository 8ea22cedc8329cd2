package statement

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// BalanceSheet is the derived balance sheet for a (clinic, date). At most one
// exists per date; regeneration replaces the values and keeps the identity.
//
// The current-asset sub-items are an estimated allocation by fixed
// percentages, not a ledger-derived breakdown; they must not be mistaken for
// sub-ledger precision.
type BalanceSheet struct {
	ID       string    `db:"id" json:"id"`
	ClinicID string    `db:"clinic_id" json:"clinic_id"`
	AsOfDate time.Time `db:"as_of_date" json:"as_of_date"`

	// Estimated allocation of current assets (see EstimatedAllocation).
	CashAndEquivalents decimal.Decimal `db:"cash_and_equivalents" json:"cash_and_equivalents"`
	Receivables        decimal.Decimal `db:"receivables" json:"receivables"`
	PrepaidExpenses    decimal.Decimal `db:"prepaid_expenses" json:"prepaid_expenses"`
	OtherCurrentAssets decimal.Decimal `db:"other_current_assets" json:"other_current_assets"`

	CurrentAssets    decimal.Decimal `db:"current_assets" json:"current_assets"`
	NonCurrentAssets decimal.Decimal `db:"non_current_assets" json:"non_current_assets"`
	TotalAssets      decimal.Decimal `db:"total_assets" json:"total_assets"`

	CurrentLiabilities    decimal.Decimal `db:"current_liabilities" json:"current_liabilities"`
	NonCurrentLiabilities decimal.Decimal `db:"non_current_liabilities" json:"non_current_liabilities"`
	TotalLiabilities      decimal.Decimal `db:"total_liabilities" json:"total_liabilities"`

	Equity           decimal.Decimal `db:"equity" json:"equity"`
	RetainedEarnings decimal.Decimal `db:"retained_earnings" json:"retained_earnings"`

	// BalancingAdjustment is the residual folded into retained earnings to
	// enforce TotalAssets == TotalLiabilities + Equity. Applied exactly once
	// per generation.
	BalancingAdjustment decimal.Decimal `db:"balancing_adjustment" json:"balancing_adjustment"`

	types.BaseModel
}

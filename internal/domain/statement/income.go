package statement

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// IncomeStatement is the derived DRE for a (clinic, period). At most one
// exists per period; regeneration replaces the values and keeps the identity.
type IncomeStatement struct {
	ID          string    `db:"id" json:"id"`
	ClinicID    string    `db:"clinic_id" json:"clinic_id"`
	PeriodStart time.Time `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time `db:"period_end" json:"period_end"`

	GrossRevenue decimal.Decimal `db:"gross_revenue" json:"gross_revenue"`
	Deductions   decimal.Decimal `db:"deductions" json:"deductions"`
	NetRevenue   decimal.Decimal `db:"net_revenue" json:"net_revenue"`

	CostOfServices decimal.Decimal `db:"cost_of_services" json:"cost_of_services"`
	GrossProfit    decimal.Decimal `db:"gross_profit" json:"gross_profit"`
	GrossMargin    decimal.Decimal `db:"gross_margin" json:"gross_margin"`

	OperatingExpenses decimal.Decimal `db:"operating_expenses" json:"operating_expenses"`
	EBITDA            decimal.Decimal `db:"ebitda" json:"ebitda"`

	DepreciationAmortization decimal.Decimal `db:"depreciation_amortization" json:"depreciation_amortization"`
	EBIT                     decimal.Decimal `db:"ebit" json:"ebit"`

	FinancialIncome  decimal.Decimal `db:"financial_income" json:"financial_income"`
	FinancialExpense decimal.Decimal `db:"financial_expense" json:"financial_expense"`
	FinancialResult  decimal.Decimal `db:"financial_result" json:"financial_result"`

	PretaxProfit       decimal.Decimal `db:"pretax_profit" json:"pretax_profit"`
	IncomeTax          decimal.Decimal `db:"income_tax" json:"income_tax"`
	SocialContribution decimal.Decimal `db:"social_contribution" json:"social_contribution"`
	NetProfit          decimal.Decimal `db:"net_profit" json:"net_profit"`
	NetMargin          decimal.Decimal `db:"net_margin" json:"net_margin"`

	types.BaseModel
}

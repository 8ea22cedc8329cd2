package sped

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/domain/statement"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// Accounting layout record codes (blocks 0, I, J).
const (
	RecBlock0Open     = "0001"
	RecBlock0Close    = "0990"
	RecBlockIOpen     = "I001"
	RecAccount        = "I050"
	RecPeriodBalance  = "I155"
	RecBlockIClose    = "I990"
	RecBlockJOpen     = "J001"
	RecBalanceLine    = "J100"
	RecIncomeLine     = "J150"
	RecBlockJClose    = "J990"
)

// AccountBalance is the aggregated period movement of one analytic account.
type AccountBalance struct {
	Account *ledger.Account
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Final   decimal.Decimal
}

// AccountingInput carries everything the accounting layout serializes.
type AccountingInput struct {
	Clinic        *clinic.Clinic
	PeriodStart   time.Time
	PeriodEnd     time.Time
	LayoutVersion string
	Accounts      []*ledger.Account
	Balances      []AccountBalance
	Income        *statement.IncomeStatement
	Balance       *statement.BalanceSheet
}

// BuildAccounting serializes the bookkeeping layout: chart of accounts and
// period balances in block I, derived statements in block J.
func BuildAccounting(in AccountingInput) string {
	w := NewWriter()

	w.Write(RecOpening,
		"LECD",
		in.LayoutVersion,
		formatDate(in.PeriodStart),
		formatDate(in.PeriodEnd),
		in.Clinic.LegalName,
		in.Clinic.CNPJ,
		in.Clinic.CityCode,
	)

	w.Write(RecBlock0Open, movementIndicator(true))
	w.WriteBlockClose(RecBlock0Close)

	w.Write(RecBlockIOpen, movementIndicator(len(in.Accounts) > 0))
	for _, account := range in.Accounts {
		w.Write(RecAccount,
			account.Code,
			account.Name,
			account.Type.String(),
			account.Nature.String()[:1],
			analyticIndicator(account),
		)
	}
	for _, balance := range in.Balances {
		w.Write(RecPeriodBalance,
			balance.Account.Code,
			formatAmount(balance.Debits),
			formatAmount(balance.Credits),
			formatAmount(balance.Final.Abs()),
			balanceSide(balance),
		)
	}
	w.WriteBlockClose(RecBlockIClose)

	hasStatements := in.Income != nil || in.Balance != nil
	w.Write(RecBlockJOpen, movementIndicator(hasStatements))
	if in.Balance != nil {
		writeBalanceLines(w, in.Balance)
	}
	if in.Income != nil {
		writeIncomeLines(w, in.Income)
	}
	w.WriteBlockClose(RecBlockJClose)

	w.Write(RecBlock9Open, movementIndicator(true))
	w.WriteTrailer()

	return w.String()
}

func analyticIndicator(account *ledger.Account) string {
	if account.IsAnalytic {
		return "A"
	}
	return "S"
}

// balanceSide reports which side the final balance sits on: positive balances
// sit on the account's own nature, negative ones on the opposite side.
func balanceSide(balance AccountBalance) string {
	nature := balance.Account.Nature
	if balance.Final.IsNegative() {
		if nature == types.AccountNatureDebtor {
			nature = types.AccountNatureCreditor
		} else {
			nature = types.AccountNatureDebtor
		}
	}
	return nature.String()[:1]
}

func writeBalanceLines(w *Writer, sheet *statement.BalanceSheet) {
	lines := []struct {
		code  string
		desc  string
		value decimal.Decimal
	}{
		{"1", "ATIVO", sheet.TotalAssets},
		{"1.01", "ATIVO CIRCULANTE", sheet.CurrentAssets},
		{"1.02", "ATIVO NAO CIRCULANTE", sheet.NonCurrentAssets},
		{"2", "PASSIVO", sheet.TotalLiabilities},
		{"2.01", "PASSIVO CIRCULANTE", sheet.CurrentLiabilities},
		{"2.02", "PASSIVO NAO CIRCULANTE", sheet.NonCurrentLiabilities},
		{"2.03", "PATRIMONIO LIQUIDO", sheet.Equity},
	}
	for _, line := range lines {
		w.Write(RecBalanceLine, line.code, line.desc, formatAmount(line.value))
	}
}

func writeIncomeLines(w *Writer, stmt *statement.IncomeStatement) {
	lines := []struct {
		code  string
		desc  string
		value decimal.Decimal
	}{
		{"3.01", "RECEITA BRUTA", stmt.GrossRevenue},
		{"3.02", "DEDUCOES", stmt.Deductions},
		{"3.03", "RECEITA LIQUIDA", stmt.NetRevenue},
		{"3.04", "CUSTO DOS SERVICOS", stmt.CostOfServices},
		{"3.05", "LUCRO BRUTO", stmt.GrossProfit},
		{"3.06", "DESPESAS OPERACIONAIS", stmt.OperatingExpenses},
		{"3.07", "EBITDA", stmt.EBITDA},
		{"3.08", "RESULTADO FINANCEIRO", stmt.FinancialResult},
		{"3.09", "RESULTADO ANTES DOS TRIBUTOS", stmt.PretaxProfit},
		{"3.10", "LUCRO LIQUIDO", stmt.NetProfit},
	}
	for _, line := range lines {
		w.Write(RecIncomeLine, line.code, line.desc, formatAmount(line.value))
	}
}

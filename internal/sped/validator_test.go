package sped

import (
	"strings"
	"testing"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClinic() *clinic.Clinic {
	return &clinic.Clinic{
		ID:        "clin_test",
		Name:      "Clinica Vida",
		LegalName: "Clinica Vida Ltda",
		CNPJ:      "12345678000190",
		CityCode:  "3550308",
	}
}

func TestValidate_EmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\n\t"} {
		result := Validate(content)
		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "empty content", result.Errors[0])
	}
}

func TestValidate_UnboundedLine(t *testing.T) {
	result := Validate("0000|LECD|9.0|")
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors[0], "not delimiter-bounded")
}

func TestValidate_WrongOpeningRecord(t *testing.T) {
	w := NewWriter()
	w.Write("0001", "0")
	w.WriteBlockClose("0990")
	w.Write("9001", "0")
	w.WriteTrailer()

	result := Validate(w.String())
	assert.False(t, result.IsValid)
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "first record must be 0000") {
			found = true
		}
	}
	assert.True(t, found, "errors: %v", result.Errors)
}

func TestValidate_TamperedBlockCount(t *testing.T) {
	w := NewWriter()
	w.Write("0000", "x")
	w.Write("0001", "0")
	w.WriteBlockClose("0990")
	w.Write("9001", "0")
	w.WriteTrailer()

	tampered := strings.Replace(w.String(), "|0990|3|", "|0990|7|", 1)
	result := Validate(tampered)
	assert.False(t, result.IsValid)
}

func TestValidate_TamperedHistogram(t *testing.T) {
	w := NewWriter()
	w.Write("0000", "x")
	w.Write("0001", "0")
	w.WriteBlockClose("0990")
	w.Write("9001", "0")
	w.WriteTrailer()

	tampered := strings.Replace(w.String(), "|9900|0001|1|", "|9900|0001|2|", 1)
	result := Validate(tampered)
	assert.False(t, result.IsValid)
}

func TestValidate_MissingOptionalBlockIsWarning(t *testing.T) {
	in := FiscalInput{
		Clinic:        testClinic(),
		PeriodStart:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
		LayoutVersion: "006",
	}
	content := BuildFiscal(in)

	result := Validate(content)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

func TestBuildFiscal_RoundTrip(t *testing.T) {
	in := FiscalInput{
		Clinic:        testClinic(),
		PeriodStart:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
		LayoutVersion: "006",
		Invoices: []*invoice.Invoice{
			{
				ID:            "inv_1",
				Number:        "101",
				IssueDate:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
				TakerDocument: "98765432100",
				ServiceAmount: decimal.RequireFromString("1500.00"),
			},
		},
		Breakdowns: map[string]*taxbreakdown.TaxBreakdown{
			"inv_1": {
				InvoiceID: "inv_1",
				Lines: []taxbreakdown.Line{
					{
						Category: types.TaxCategoryISS,
						Rate:     decimal.RequireFromString("5.00"),
						Amount:   decimal.RequireFromString("75.00"),
					},
				},
			},
		},
	}
	content := BuildFiscal(in)

	result := Validate(content)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Contains(t, content, "|A100|101|10032025|98765432100|1500,00|5,0000|75,00|")
}

func TestBuildAccounting_RoundTrip(t *testing.T) {
	account := &ledger.Account{
		ID:         "acct_1",
		Code:       "1.1.01",
		Name:       "Caixa",
		Type:       types.AccountTypeAsset,
		Nature:     types.AccountNatureDebtor,
		IsAnalytic: true,
	}
	in := AccountingInput{
		Clinic:        testClinic(),
		PeriodStart:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
		LayoutVersion: "9.0",
		Accounts:      []*ledger.Account{account},
		Balances: []AccountBalance{
			{
				Account: account,
				Debits:  decimal.RequireFromString("1000.00"),
				Credits: decimal.RequireFromString("250.00"),
				Final:   decimal.RequireFromString("750.00"),
			},
		},
	}
	content := BuildAccounting(in)

	result := Validate(content)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Contains(t, content, "|I050|1.1.01|Caixa|ASSET|D|A|")
	assert.Contains(t, content, "|I155|1.1.01|1000,00|250,00|750,00|D|")
	// optional statements block absent is at most a warning
	assert.Empty(t, result.Errors)
}

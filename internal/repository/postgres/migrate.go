package postgres

import (
	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/domain/statement"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"gorm.io/gorm"
)

// Migrate creates the engine-owned tables and the indexes the invariants rely
// on. The unique (clinic_id, month, year) index is the storage-level guard
// behind assessment idempotency.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&clinic.Clinic{},
		&invoice.Invoice{},
		&fiscalconfig.FiscalConfig{},
		&taxbreakdown.TaxBreakdown{},
		&taxBreakdownLine{},
		&assessment.Assessment{},
		&ledger.Account{},
		&ledger.Entry{},
		&statement.IncomeStatement{},
		&statement.BalanceSheet{},
	); err != nil {
		return err
	}

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_assessments_clinic_period
			ON assessments (clinic_id, month, year)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_issuer_date
			ON invoices (issuer_cnpj, issue_date)`,
		`CREATE INDEX IF NOT EXISTS idx_tax_breakdowns_invoice
			ON tax_breakdowns (invoice_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_account_date
			ON entries (account_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_fiscal_configs_clinic
			ON fiscal_configs (clinic_id, vigent_from)`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/domain/statement"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/logger"
	pgrepo "github.com/medfiscal/medfiscal/internal/repository/postgres"
	"gorm.io/gorm"
)

func NewClinicRepository(db *gorm.DB, logger *logger.Logger) clinic.Repository {
	return pgrepo.NewClinicRepository(db, logger)
}

func NewInvoiceRepository(db *gorm.DB, logger *logger.Logger) invoice.Repository {
	return pgrepo.NewInvoiceRepository(db, logger)
}

func NewFiscalConfigRepository(db *gorm.DB, logger *logger.Logger) fiscalconfig.Repository {
	return pgrepo.NewFiscalConfigRepository(db, logger)
}

func NewTaxBreakdownRepository(db *gorm.DB, logger *logger.Logger) taxbreakdown.Repository {
	return pgrepo.NewTaxBreakdownRepository(db, logger)
}

func NewAssessmentRepository(db *gorm.DB, logger *logger.Logger) assessment.Repository {
	return pgrepo.NewAssessmentRepository(db, logger)
}

func NewAccountRepository(db *gorm.DB, logger *logger.Logger) ledger.AccountRepository {
	return pgrepo.NewAccountRepository(db, logger)
}

func NewEntryRepository(db *gorm.DB, logger *logger.Logger, accounts ledger.AccountRepository) ledger.EntryRepository {
	return pgrepo.NewEntryRepository(db, logger, accounts)
}

func NewStatementRepository(db *gorm.DB, logger *logger.Logger) statement.Repository {
	return pgrepo.NewStatementRepository(db, logger)
}

// Migrate creates the engine-owned tables and indexes.
func Migrate(db *gorm.DB) error {
	return pgrepo.Migrate(db)
}

package service

import (
	"github.com/medfiscal/medfiscal/internal/cache"
	"github.com/medfiscal/medfiscal/internal/config"
	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/domain/statement"
	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	ClinicRepo       clinic.Repository
	InvoiceRepo      invoice.Repository
	FiscalConfigRepo fiscalconfig.Repository
	TaxBreakdownRepo taxbreakdown.Repository
	AssessmentRepo   assessment.Repository
	AccountRepo      ledger.AccountRepository
	EntryRepo        ledger.EntryRepository
	StatementRepo    statement.Repository
}

// NewServiceParams assembles the common service dependencies for fx.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	clinicRepo clinic.Repository,
	invoiceRepo invoice.Repository,
	fiscalConfigRepo fiscalconfig.Repository,
	taxBreakdownRepo taxbreakdown.Repository,
	assessmentRepo assessment.Repository,
	accountRepo ledger.AccountRepository,
	entryRepo ledger.EntryRepository,
	statementRepo statement.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		Cache:            cache,
		ClinicRepo:       clinicRepo,
		InvoiceRepo:      invoiceRepo,
		FiscalConfigRepo: fiscalConfigRepo,
		TaxBreakdownRepo: taxBreakdownRepo,
		AssessmentRepo:   assessmentRepo,
		AccountRepo:      accountRepo,
		EntryRepo:        entryRepo,
		StatementRepo:    statementRepo,
	}
}

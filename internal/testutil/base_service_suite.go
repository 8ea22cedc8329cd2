package testutil

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/cache"
	"github.com/medfiscal/medfiscal/internal/config"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories backing a service test suite.
type Stores struct {
	ClinicRepo       *InMemoryClinicStore
	InvoiceRepo      *InMemoryInvoiceStore
	FiscalConfigRepo *InMemoryFiscalConfigStore
	TaxBreakdownRepo *InMemoryTaxBreakdownStore
	AssessmentRepo   *InMemoryAssessmentStore
	AccountRepo      *InMemoryAccountStore
	EntryRepo        *InMemoryEntryStore
	StatementRepo    *InMemoryStatementStore
}

// BaseServiceTestSuite provides common functionality for all service test
// suites: a scoped context, fresh in-memory stores per test, logger and config.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.cache = cache.Initialize()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.cache.Flush(s.ctx)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	accountRepo := NewInMemoryAccountStore()
	s.stores = Stores{
		ClinicRepo:       NewInMemoryClinicStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		FiscalConfigRepo: NewInMemoryFiscalConfigStore(),
		TaxBreakdownRepo: NewInMemoryTaxBreakdownStore(),
		AssessmentRepo:   NewInMemoryAssessmentStore(),
		AccountRepo:      accountRepo,
		EntryRepo:        NewInMemoryEntryStore(accountRepo),
		StatementRepo:    NewInMemoryStatementStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ClinicRepo.Clear()
	s.stores.InvoiceRepo.Clear()
	s.stores.FiscalConfigRepo.Clear()
	s.stores.TaxBreakdownRepo.Clear()
	s.stores.AssessmentRepo.Clear()
	s.stores.AccountRepo.Clear()
	s.stores.EntryRepo.Clear()
	s.stores.StatementRepo.Clear()
}

// GetContext returns the test context scoped to the default clinic and user.
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the suite's in-memory stores for direct seeding.
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetNow returns the suite's reference time.
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetConfig returns the suite's configuration.
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetLogger returns the suite's logger.
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetCache returns the suite's cache.
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

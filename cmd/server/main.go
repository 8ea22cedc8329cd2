package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/medfiscal/medfiscal/internal/api"
	v1 "github.com/medfiscal/medfiscal/internal/api/v1"
	"github.com/medfiscal/medfiscal/internal/cache"
	"github.com/medfiscal/medfiscal/internal/config"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/postgres"
	"github.com/medfiscal/medfiscal/internal/repository"
	"github.com/medfiscal/medfiscal/internal/service"
	"github.com/medfiscal/medfiscal/internal/validator"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Best effort; the env file is optional outside local runs
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewClient,

			// Repositories
			repository.NewClinicRepository,
			repository.NewInvoiceRepository,
			repository.NewFiscalConfigRepository,
			repository.NewTaxBreakdownRepository,
			repository.NewAssessmentRepository,
			repository.NewAccountRepository,
			repository.NewEntryRepository,
			repository.NewStatementRepository,

			// Services
			service.NewServiceParams,
			service.NewTaxService,
			service.NewAssessmentService,
			service.NewLedgerService,
			service.NewStatementService,
			service.NewSpedService,

			// API
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			runMigrations,
			startServer,
		),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	taxService service.TaxService,
	assessmentService service.AssessmentService,
	statementService service.StatementService,
	spedService service.SpedService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(logger),
		Tax:        v1.NewTaxHandler(taxService, logger),
		Assessment: v1.NewAssessmentHandler(assessmentService, logger),
		Statement:  v1.NewStatementHandler(statementService, logger),
		Sped:       v1.NewSpedHandler(spedService, logger),
	}
}

func runMigrations(db *gorm.DB, log *logger.Logger) error {
	log.Info("Running database migrations...")
	if err := repository.Migrate(db); err != nil {
		return err
	}
	log.Info("Migrations completed")
	return nil
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

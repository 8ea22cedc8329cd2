package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/medfiscal/medfiscal/internal/config"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/postgres"
	"github.com/medfiscal/medfiscal/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewClient(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}

	logger.Info("Running database migrations...")
	if err := repository.Migrate(db); err != nil {
		logger.Fatalw("Failed to run migrations", "error", err)
	}
	logger.Info("Migration completed successfully")
}

package postgres

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/config"
	"github.com/medfiscal/medfiscal/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewClient opens the connection pool. Schema migration is owned by
// AutoMigrate in the repository package, invoked from the server bootstrap.
func NewClient(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg)),
		// unique-violation and friends surface as gorm sentinel errors
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName,
	)

	return db, nil
}

func gormLogLevel(cfg *config.Configuration) gormlogger.LogLevel {
	if cfg.Logging.Level == "debug" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

package postgres

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/fiscalconfig"
	"github.com/medfiscal/medfiscal/internal/logger"
	"gorm.io/gorm"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type fiscalConfigRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewFiscalConfigRepository(db *gorm.DB, logger *logger.Logger) fiscalconfig.Repository {
	return &fiscalConfigRepository{db: db, logger: logger}
}

// Create rejects configurations whose vigency overlaps an existing one for
// the same clinic.
func (r *fiscalConfigRepository) Create(ctx context.Context, config *fiscalconfig.FiscalConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	var overlapping int64
	query := r.db.WithContext(ctx).
		Model(&fiscalconfig.FiscalConfig{}).
		Where("clinic_id = ?", config.ClinicID).
		Where("vigent_to IS NULL OR vigent_to >= ?", config.VigentFrom)
	if config.VigentTo != nil {
		query = query.Where("vigent_from <= ?", *config.VigentTo)
	}
	if err := query.Count(&overlapping).Error; err != nil {
		return translateErr(err, "FiscalConfig")
	}
	if overlapping > 0 {
		return ierr.NewError("overlapping fiscal configuration vigency").
			WithHint("A fiscal configuration already covers part of this vigency range").
			Mark(ierr.ErrAlreadyExists)
	}

	if err := r.db.WithContext(ctx).Create(config).Error; err != nil {
		return translateErr(err, "FiscalConfig")
	}
	return nil
}

func (r *fiscalConfigRepository) Get(ctx context.Context, id string) (*fiscalconfig.FiscalConfig, error) {
	var config fiscalconfig.FiscalConfig
	if err := r.db.WithContext(ctx).First(&config, "id = ?", id).Error; err != nil {
		return nil, translateErr(err, "FiscalConfig")
	}
	return &config, nil
}

func (r *fiscalConfigRepository) GetVigent(ctx context.Context, clinicID string, date time.Time) (*fiscalconfig.FiscalConfig, error) {
	var config fiscalconfig.FiscalConfig
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND vigent_from <= ? AND (vigent_to IS NULL OR vigent_to >= ?)",
			clinicID, date, date).
		First(&config).Error
	if err != nil {
		return nil, translateErr(err, "FiscalConfig")
	}
	return &config, nil
}

func (r *fiscalConfigRepository) ListByClinic(ctx context.Context, clinicID string) ([]*fiscalconfig.FiscalConfig, error) {
	var configs []*fiscalconfig.FiscalConfig
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("vigent_from asc").
		Find(&configs).Error
	if err != nil {
		return nil, translateErr(err, "FiscalConfig")
	}
	return configs, nil
}

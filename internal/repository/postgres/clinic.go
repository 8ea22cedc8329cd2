package postgres

import (
	"context"

	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/logger"
	"gorm.io/gorm"
)

type clinicRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewClinicRepository(db *gorm.DB, logger *logger.Logger) clinic.Repository {
	return &clinicRepository{db: db, logger: logger}
}

func (r *clinicRepository) Get(ctx context.Context, id string) (*clinic.Clinic, error) {
	var c clinic.Clinic
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translateErr(err, "Clinic")
	}
	return &c, nil
}

func (r *clinicRepository) GetByCNPJ(ctx context.Context, cnpj string) (*clinic.Clinic, error) {
	var c clinic.Clinic
	if err := r.db.WithContext(ctx).First(&c, "cnpj = ?", cnpj).Error; err != nil {
		return nil, translateErr(err, "Clinic")
	}
	return &c, nil
}

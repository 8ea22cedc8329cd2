package postgres

import (
	"context"

	"github.com/medfiscal/medfiscal/internal/domain/assessment"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/types"
	"gorm.io/gorm"
)

type assessmentRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewAssessmentRepository(db *gorm.DB, logger *logger.Logger) assessment.Repository {
	return &assessmentRepository{db: db, logger: logger}
}

// Create relies on the unique (clinic_id, month, year) index: a concurrent
// duplicate insert surfaces as an ErrAlreadyExists mark for the caller to
// resolve by re-reading.
func (r *assessmentRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return translateErr(err, "Assessment")
	}
	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, id string) (*assessment.Assessment, error) {
	var a assessment.Assessment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translateErr(err, "Assessment")
	}
	return &a, nil
}

func (r *assessmentRepository) GetByPeriod(ctx context.Context, clinicID string, period types.MonthPeriod) (*assessment.Assessment, error) {
	var a assessment.Assessment
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND month = ? AND year = ?", clinicID, period.Month, period.Year).
		First(&a).Error
	if err != nil {
		return nil, translateErr(err, "Assessment")
	}
	return &a, nil
}

func (r *assessmentRepository) Update(ctx context.Context, a *assessment.Assessment) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return translateErr(err, "Assessment")
	}
	return nil
}

func (r *assessmentRepository) ListByClinic(ctx context.Context, clinicID string) ([]*assessment.Assessment, error) {
	var assessments []*assessment.Assessment
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("year asc, month asc").
		Find(&assessments).Error
	if err != nil {
		return nil, translateErr(err, "Assessment")
	}
	return assessments, nil
}

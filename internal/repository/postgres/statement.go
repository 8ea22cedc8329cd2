package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/statement"
	"github.com/medfiscal/medfiscal/internal/logger"
	"gorm.io/gorm"
)

type statementRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewStatementRepository(db *gorm.DB, logger *logger.Logger) statement.Repository {
	return &statementRepository{db: db, logger: logger}
}

// UpsertIncomeStatement replaces the stored values for an existing period and
// keeps the row's identity.
func (r *statementRepository) UpsertIncomeStatement(ctx context.Context, stmt *statement.IncomeStatement) (*statement.IncomeStatement, error) {
	var existing statement.IncomeStatement
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND period_start = ? AND period_end = ?",
			stmt.ClinicID, stmt.PeriodStart, stmt.PeriodEnd).
		First(&existing).Error

	switch {
	case err == nil:
		stmt.ID = existing.ID
		stmt.CreatedAt = existing.CreatedAt
		stmt.CreatedBy = existing.CreatedBy
		if err := r.db.WithContext(ctx).Save(stmt).Error; err != nil {
			return nil, translateErr(err, "IncomeStatement")
		}
		return stmt, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(stmt).Error; err != nil {
			return nil, translateErr(err, "IncomeStatement")
		}
		return stmt, nil
	default:
		return nil, translateErr(err, "IncomeStatement")
	}
}

func (r *statementRepository) GetIncomeStatement(ctx context.Context, clinicID string, periodStart, periodEnd time.Time) (*statement.IncomeStatement, error) {
	var stmt statement.IncomeStatement
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND period_start = ? AND period_end = ?", clinicID, periodStart, periodEnd).
		First(&stmt).Error
	if err != nil {
		return nil, translateErr(err, "IncomeStatement")
	}
	return &stmt, nil
}

// UpsertBalanceSheet replaces the stored values for an existing date and keeps
// the row's identity.
func (r *statementRepository) UpsertBalanceSheet(ctx context.Context, sheet *statement.BalanceSheet) (*statement.BalanceSheet, error) {
	var existing statement.BalanceSheet
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND as_of_date = ?", sheet.ClinicID, sheet.AsOfDate).
		First(&existing).Error

	switch {
	case err == nil:
		sheet.ID = existing.ID
		sheet.CreatedAt = existing.CreatedAt
		sheet.CreatedBy = existing.CreatedBy
		if err := r.db.WithContext(ctx).Save(sheet).Error; err != nil {
			return nil, translateErr(err, "BalanceSheet")
		}
		return sheet, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(sheet).Error; err != nil {
			return nil, translateErr(err, "BalanceSheet")
		}
		return sheet, nil
	default:
		return nil, translateErr(err, "BalanceSheet")
	}
}

func (r *statementRepository) GetBalanceSheet(ctx context.Context, clinicID string, asOfDate time.Time) (*statement.BalanceSheet, error) {
	var sheet statement.BalanceSheet
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND as_of_date = ?", clinicID, asOfDate).
		First(&sheet).Error
	if err != nil {
		return nil, translateErr(err, "BalanceSheet")
	}
	return &sheet, nil
}

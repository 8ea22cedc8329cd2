package postgres

import (
	"context"

	"github.com/medfiscal/medfiscal/internal/domain/taxbreakdown"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// taxBreakdownLine is the row shape of one per-category line. Lines live in
// their own table keyed by the breakdown id.
type taxBreakdownLine struct {
	ID          string            `gorm:"primaryKey"`
	BreakdownID string            `gorm:"index"`
	Category    types.TaxCategory
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	Withheld    bool
}

func (taxBreakdownLine) TableName() string {
	return "tax_breakdown_lines"
}

type taxBreakdownRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewTaxBreakdownRepository(db *gorm.DB, logger *logger.Logger) taxbreakdown.Repository {
	return &taxBreakdownRepository{db: db, logger: logger}
}

func (r *taxBreakdownRepository) Create(ctx context.Context, breakdown *taxbreakdown.TaxBreakdown) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(breakdown).Error; err != nil {
			return err
		}
		for _, line := range breakdown.Lines {
			row := taxBreakdownLine{
				ID:          types.GenerateUUID(),
				BreakdownID: breakdown.ID,
				Category:    line.Category,
				Rate:        line.Rate,
				Amount:      line.Amount,
				Withheld:    line.Withheld,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateErr(err, "TaxBreakdown")
}

func (r *taxBreakdownRepository) Get(ctx context.Context, id string) (*taxbreakdown.TaxBreakdown, error) {
	var breakdown taxbreakdown.TaxBreakdown
	if err := r.db.WithContext(ctx).First(&breakdown, "id = ?", id).Error; err != nil {
		return nil, translateErr(err, "TaxBreakdown")
	}
	if err := r.loadLines(ctx, &breakdown); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (r *taxBreakdownRepository) GetByInvoice(ctx context.Context, invoiceID string) (*taxbreakdown.TaxBreakdown, error) {
	var breakdown taxbreakdown.TaxBreakdown
	err := r.db.WithContext(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, types.StatusPublished).
		Order("created_at desc").
		First(&breakdown).Error
	if err != nil {
		return nil, translateErr(err, "TaxBreakdown")
	}
	if err := r.loadLines(ctx, &breakdown); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (r *taxBreakdownRepository) ListByInvoices(ctx context.Context, invoiceIDs []string) (map[string]*taxbreakdown.TaxBreakdown, error) {
	out := make(map[string]*taxbreakdown.TaxBreakdown, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return out, nil
	}

	var breakdowns []*taxbreakdown.TaxBreakdown
	err := r.db.WithContext(ctx).
		Where("invoice_id IN ? AND status = ?", invoiceIDs, types.StatusPublished).
		Find(&breakdowns).Error
	if err != nil {
		return nil, translateErr(err, "TaxBreakdown")
	}

	for _, breakdown := range breakdowns {
		if err := r.loadLines(ctx, breakdown); err != nil {
			return nil, err
		}
		out[breakdown.InvoiceID] = breakdown
	}
	return out, nil
}

func (r *taxBreakdownRepository) Archive(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&taxbreakdown.TaxBreakdown{}).
		Where("id = ?", id).
		Update("status", types.StatusArchived)
	if result.Error != nil {
		return translateErr(result.Error, "TaxBreakdown")
	}
	if result.RowsAffected == 0 {
		return translateErr(gorm.ErrRecordNotFound, "TaxBreakdown")
	}
	return nil
}

func (r *taxBreakdownRepository) loadLines(ctx context.Context, breakdown *taxbreakdown.TaxBreakdown) error {
	var rows []taxBreakdownLine
	err := r.db.WithContext(ctx).
		Where("breakdown_id = ?", breakdown.ID).
		Find(&rows).Error
	if err != nil {
		return translateErr(err, "TaxBreakdown")
	}

	breakdown.Lines = make([]taxbreakdown.Line, len(rows))
	for i, row := range rows {
		breakdown.Lines[i] = taxbreakdown.Line{
			Category: row.Category,
			Rate:     row.Rate,
			Amount:   row.Amount,
			Withheld: row.Withheld,
		}
	}
	return nil
}

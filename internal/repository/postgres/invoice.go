package postgres

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/invoice"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *gorm.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, translateErr(err, "Invoice")
	}
	return &inv, nil
}

func (r *invoiceRepository) ListAuthorized(ctx context.Context, issuerCNPJ string, from, to time.Time) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.WithContext(ctx).
		Where("issuer_cnpj = ? AND invoice_status = ? AND issue_date BETWEEN ? AND ?",
			issuerCNPJ, types.InvoiceStatusAuthorized, from, to).
		Order("issue_date asc").
		Find(&invoices).Error
	if err != nil {
		return nil, translateErr(err, "Invoice")
	}
	return invoices, nil
}

func (r *invoiceRepository) SumAuthorized(ctx context.Context, issuerCNPJ string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&invoice.Invoice{}).
		Select("SUM(service_amount)").
		Where("issuer_cnpj = ? AND invoice_status = ? AND issue_date BETWEEN ? AND ?",
			issuerCNPJ, types.InvoiceStatusAuthorized, from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, translateErr(err, "Invoice")
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

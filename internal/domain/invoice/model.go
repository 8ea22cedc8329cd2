package invoice

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is the read-only view of a service invoice (NFS-e). Invoices are
// created and authorized by the upstream billing flow; this engine only reads
// them for tax computation, assessment and export.
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	ClinicID      string              `db:"clinic_id" json:"clinic_id"`
	Number        string              `db:"number" json:"number"`
	IssuerCNPJ    string              `db:"issuer_cnpj" json:"issuer_cnpj"`
	TakerDocument string              `db:"taker_document" json:"taker_document"`
	IssueDate     time.Time           `db:"issue_date" json:"issue_date"`
	ServiceAmount decimal.Decimal     `db:"service_amount" json:"service_amount"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	types.BaseModel
}

// IsAuthorized reports whether the invoice participates in assessments and
// regulatory exports.
func (i *Invoice) IsAuthorized() bool {
	return i.InvoiceStatus == types.InvoiceStatusAuthorized
}

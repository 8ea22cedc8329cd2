package types

import (
	"slices"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// InvoiceStatus is the authorization status of a service invoice (NFS-e).
// Only authorized invoices participate in assessments and regulatory exports.
type InvoiceStatus string

const (
	InvoiceStatusDraft      InvoiceStatus = "DRAFT"
	InvoiceStatusAuthorized InvoiceStatus = "AUTHORIZED"
	InvoiceStatusCancelled  InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowedValues := []string{
		InvoiceStatusDraft.String(),
		InvoiceStatusAuthorized.String(),
		InvoiceStatusCancelled.String(),
	}
	if !slices.Contains(allowedValues, string(s)) {
		return ierr.NewError("invalid invoice status").
			WithHint("Invoice status must be one of DRAFT, AUTHORIZED or CANCELLED").
			Mark(ierr.ErrValidation)
	}
	return nil
}

package types

import (
	"slices"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// SpedFileKind selects which regulatory flat-file layout to export.
type SpedFileKind string

const (
	// SpedFileKindAccounting exports the bookkeeping layout: chart of
	// accounts, period balances and financial statements (blocks 0, I, J, 9).
	SpedFileKindAccounting SpedFileKind = "ACCOUNTING"
	// SpedFileKindFiscal exports the fiscal layout: service invoices and
	// assessment totals (blocks 0, A, M, 9).
	SpedFileKindFiscal SpedFileKind = "FISCAL"
)

func (k SpedFileKind) String() string {
	return string(k)
}

func (k SpedFileKind) Validate() error {
	allowedValues := []string{
		SpedFileKindAccounting.String(),
		SpedFileKindFiscal.String(),
	}
	if !slices.Contains(allowedValues, string(k)) {
		return ierr.NewError("invalid sped file kind").
			WithHint("Export kind must be either ACCOUNTING or FISCAL").
			Mark(ierr.ErrValidation)
	}
	return nil
}

package types

import (
	"slices"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// TaxRegime is the tax framework a clinic operates under.
type TaxRegime string

const (
	// TaxRegimeSimplesNacional uses the progressive bracket tables (annexes)
	// keyed by rolling 12-month revenue.
	TaxRegimeSimplesNacional TaxRegime = "SIMPLES_NACIONAL"
	// TaxRegimeLucroPresumido applies flat per-category rates over a presumed
	// profit base.
	TaxRegimeLucroPresumido TaxRegime = "LUCRO_PRESUMIDO"
	// TaxRegimeLucroReal applies flat per-category rates over actual results.
	TaxRegimeLucroReal TaxRegime = "LUCRO_REAL"
	// TaxRegimeMEI pays a fixed monthly amount outside the invoice flow, so
	// per-invoice taxes are always zero.
	TaxRegimeMEI TaxRegime = "MEI"
)

func (r TaxRegime) String() string {
	return string(r)
}

func (r TaxRegime) Validate() error {
	allowedValues := []string{
		TaxRegimeSimplesNacional.String(),
		TaxRegimeLucroPresumido.String(),
		TaxRegimeLucroReal.String(),
		TaxRegimeMEI.String(),
	}
	if !slices.Contains(allowedValues, string(r)) {
		return ierr.NewError("invalid tax regime").
			WithHint("Tax regime must be one of SIMPLES_NACIONAL, LUCRO_PRESUMIDO, LUCRO_REAL or MEI").
			WithReportableDetails(map[string]any{"regime": string(r)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SimplesAnnex selects the bracket and distribution tables used under the
// Simples Nacional regime. Service clinics fall under annex III or V depending
// on the payroll-to-revenue ratio (fator R).
type SimplesAnnex string

const (
	SimplesAnnexIII SimplesAnnex = "ANNEX_III"
	SimplesAnnexV   SimplesAnnex = "ANNEX_V"
)

func (a SimplesAnnex) String() string {
	return string(a)
}

func (a SimplesAnnex) Validate() error {
	allowedValues := []string{
		SimplesAnnexIII.String(),
		SimplesAnnexV.String(),
	}
	if !slices.Contains(allowedValues, string(a)) {
		return ierr.NewError("invalid simples annex").
			WithHint("Annex must be either ANNEX_III or ANNEX_V").
			Mark(ierr.ErrValidation)
	}
	return nil
}

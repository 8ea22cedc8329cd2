package types

import (
	"slices"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// TaxCategory identifies one of the federal/municipal sub-taxes that make up
// an invoice tax breakdown.
type TaxCategory string

const (
	TaxCategoryPIS    TaxCategory = "PIS"
	TaxCategoryCOFINS TaxCategory = "COFINS"
	TaxCategoryIRPJ   TaxCategory = "IRPJ"
	TaxCategoryCSLL   TaxCategory = "CSLL"
	TaxCategoryISS    TaxCategory = "ISS"
	TaxCategoryCPP    TaxCategory = "CPP"
)

// AllTaxCategories returns the categories in their canonical order. The order
// is stable because breakdown lines and SPED records are emitted in it.
func AllTaxCategories() []TaxCategory {
	return []TaxCategory{
		TaxCategoryPIS,
		TaxCategoryCOFINS,
		TaxCategoryIRPJ,
		TaxCategoryCSLL,
		TaxCategoryISS,
		TaxCategoryCPP,
	}
}

func (c TaxCategory) String() string {
	return string(c)
}

func (c TaxCategory) Validate() error {
	if !slices.Contains(AllTaxCategories(), c) {
		return ierr.NewError("invalid tax category").
			WithHint("Tax category must be one of PIS, COFINS, IRPJ, CSLL, ISS or CPP").
			WithReportableDetails(map[string]any{"category": string(c)}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

package fiscalconfig

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// FiscalConfig is the fiscal configuration vigent for a clinic over a date
// range. Exactly one configuration is vigent for a given (clinic, date);
// vigency ranges for the same clinic never overlap.
type FiscalConfig struct {
	ID       string          `db:"id" json:"id"`
	ClinicID string          `db:"clinic_id" json:"clinic_id"`
	Regime   types.TaxRegime `db:"regime" json:"regime"`

	// Annex selects the bracket/distribution tables under Simples Nacional.
	Annex types.SimplesAnnex `db:"annex" json:"annex,omitempty"`

	// Flat per-category rates (percentages) used when regime is not Simples.
	// A nil rate means the regime default applies.
	PISRate    *decimal.Decimal `db:"pis_rate" json:"pis_rate,omitempty"`
	COFINSRate *decimal.Decimal `db:"cofins_rate" json:"cofins_rate,omitempty"`
	IRPJRate   *decimal.Decimal `db:"irpj_rate" json:"irpj_rate,omitempty"`
	CSLLRate   *decimal.Decimal `db:"csll_rate" json:"csll_rate,omitempty"`
	ISSRate    *decimal.Decimal `db:"iss_rate" json:"iss_rate,omitempty"`
	CPPRate    *decimal.Decimal `db:"cpp_rate" json:"cpp_rate,omitempty"`

	// Withholding flags. Whether a sub-tax is withheld at source depends on
	// configuration, never on the amount.
	ISSWithheld  bool `db:"iss_withheld" json:"iss_withheld"`
	IRPJWithheld bool `db:"irpj_withheld" json:"irpj_withheld"`

	VigentFrom time.Time  `db:"vigent_from" json:"vigent_from"`
	VigentTo   *time.Time `db:"vigent_to" json:"vigent_to,omitempty"`
	types.BaseModel
}

// Validate checks the configuration's internal consistency.
func (c *FiscalConfig) Validate() error {
	if err := c.Regime.Validate(); err != nil {
		return err
	}
	if c.Regime == types.TaxRegimeSimplesNacional {
		if err := c.Annex.Validate(); err != nil {
			return err
		}
	}
	if c.VigentTo != nil && c.VigentTo.Before(c.VigentFrom) {
		return ierr.NewError("vigency range is inverted").
			WithHint("Vigency end must not precede vigency start").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsVigentAt reports whether the configuration covers the given date. An open
// VigentTo means vigent indefinitely.
func (c *FiscalConfig) IsVigentAt(date time.Time) bool {
	if date.Before(c.VigentFrom) {
		return false
	}
	if c.VigentTo != nil && date.After(*c.VigentTo) {
		return false
	}
	return true
}

// RateFor returns the configured flat rate for a category, or the given
// fallback when the configuration carries no override.
func (c *FiscalConfig) RateFor(category types.TaxCategory, fallback decimal.Decimal) decimal.Decimal {
	var override *decimal.Decimal
	switch category {
	case types.TaxCategoryPIS:
		override = c.PISRate
	case types.TaxCategoryCOFINS:
		override = c.COFINSRate
	case types.TaxCategoryIRPJ:
		override = c.IRPJRate
	case types.TaxCategoryCSLL:
		override = c.CSLLRate
	case types.TaxCategoryISS:
		override = c.ISSRate
	case types.TaxCategoryCPP:
		override = c.CPPRate
	}
	if override == nil {
		return fallback
	}
	return *override
}

// WithheldFor reports whether the category is withheld at source under this
// configuration.
func (c *FiscalConfig) WithheldFor(category types.TaxCategory) bool {
	switch category {
	case types.TaxCategoryISS:
		return c.ISSWithheld
	case types.TaxCategoryIRPJ:
		return c.IRPJWithheld
	default:
		return false
	}
}

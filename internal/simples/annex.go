package simples

import (
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Annex III bracket ladder for service activities under fator R. Deduction
// amounts are zeroed to match the nominal-rate behavior the assessment flow
// is pinned to; the formula in EffectiveRate supports non-zero deductions for
// custom tables.
var annexIIIBrackets = BracketTable{
	Annex: types.SimplesAnnexIII,
	Brackets: []Bracket{
		{LowerBound: d("0"), UpperBound: d("180000.00"), NominalRate: d("6.00"), DeductionAmount: decimal.Zero},
		{LowerBound: d("180000.01"), UpperBound: d("360000.00"), NominalRate: d("11.20"), DeductionAmount: decimal.Zero},
		{LowerBound: d("360000.01"), UpperBound: d("720000.00"), NominalRate: d("13.50"), DeductionAmount: decimal.Zero},
		{LowerBound: d("720000.01"), UpperBound: d("1800000.00"), NominalRate: d("16.00"), DeductionAmount: decimal.Zero},
		{LowerBound: d("1800000.01"), UpperBound: d("3600000.00"), NominalRate: d("21.00"), DeductionAmount: decimal.Zero},
		{LowerBound: d("3600000.01"), UpperBound: d("4800000.00"), NominalRate: d("33.00"), DeductionAmount: decimal.Zero},
	},
}

var annexVBrackets = BracketTable{
	Annex: types.SimplesAnnexV,
	Brackets: []Bracket{
		{LowerBound: d("0"), UpperBound: d("180000.00"), NominalRate: d("15.50"), DeductionAmount: decimal.Zero},
		{LowerBound: d("180000.01"), UpperBound: d("360000.00"), NominalRate: d("18.00"), DeductionAmount: decimal.Zero},
		{LowerBound: d("360000.01"), UpperBound: d("720000.00"), NominalRate: d("19.50"), DeductionAmount: decimal.Zero},
		{LowerBound: d("720000.01"), UpperBound: d("1800000.00"), NominalRate: d("20.50"), DeductionAmount: decimal.Zero},
		{LowerBound: d("1800000.01"), UpperBound: d("3600000.00"), NominalRate: d("23.00"), DeductionAmount: decimal.Zero},
		{LowerBound: d("3600000.01"), UpperBound: d("4800000.00"), NominalRate: d("30.50"), DeductionAmount: decimal.Zero},
	},
}

var annexIIIDistribution = mustDistribution([]DistributionShare{
	{Category: types.TaxCategoryPIS, Percent: d("2.78")},
	{Category: types.TaxCategoryCOFINS, Percent: d("12.82")},
	{Category: types.TaxCategoryIRPJ, Percent: d("4.00")},
	{Category: types.TaxCategoryCSLL, Percent: d("3.50")},
	{Category: types.TaxCategoryISS, Percent: d("33.50")},
	{Category: types.TaxCategoryCPP, Percent: d("43.40")},
})

var annexVDistribution = mustDistribution([]DistributionShare{
	{Category: types.TaxCategoryPIS, Percent: d("3.05")},
	{Category: types.TaxCategoryCOFINS, Percent: d("14.10")},
	{Category: types.TaxCategoryIRPJ, Percent: d("25.00")},
	{Category: types.TaxCategoryCSLL, Percent: d("15.00")},
	{Category: types.TaxCategoryISS, Percent: d("14.00")},
	{Category: types.TaxCategoryCPP, Percent: d("28.85")},
})

func mustDistribution(shares []DistributionShare) DistributionTable {
	table, err := NewDistributionTable(shares)
	if err != nil {
		panic(err)
	}
	return table
}

// BracketTableFor returns the built-in bracket ladder for an annex.
func BracketTableFor(annex types.SimplesAnnex) (BracketTable, error) {
	switch annex {
	case types.SimplesAnnexIII:
		return annexIIIBrackets, nil
	case types.SimplesAnnexV:
		return annexVBrackets, nil
	default:
		return BracketTable{}, ierr.NewError("unknown simples annex").
			WithHintf("No bracket table registered for annex %s", annex).
			Mark(ierr.ErrValidation)
	}
}

// DistributionTableFor returns the built-in sub-tax distribution for an annex.
func DistributionTableFor(annex types.SimplesAnnex) (DistributionTable, error) {
	switch annex {
	case types.SimplesAnnexIII:
		return annexIIIDistribution, nil
	case types.SimplesAnnexV:
		return annexVDistribution, nil
	default:
		return DistributionTable{}, ierr.NewError("unknown simples annex").
			WithHintf("No distribution table registered for annex %s", annex).
			Mark(ierr.ErrValidation)
	}
}

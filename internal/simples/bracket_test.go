package simples

import (
	"testing"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

func TestEffectiveRate_AnnexIII(t *testing.T) {
	table, err := BracketTableFor(types.SimplesAnnexIII)
	require.NoError(t, err)

	tests := []struct {
		name     string
		rbt12    string
		wantRate string
		ceiling  bool
	}{
		{name: "zero revenue returns first bracket nominal", rbt12: "0", wantRate: "6"},
		{name: "first bracket", rbt12: "120000", wantRate: "6"},
		{name: "second bracket", rbt12: "200000", wantRate: "11.2"},
		{name: "second bracket upper bound inclusive", rbt12: "360000", wantRate: "11.2"},
		{name: "third bracket", rbt12: "600000", wantRate: "13.5"},
		{name: "top bracket", rbt12: "4000000", wantRate: "33"},
		{name: "above ceiling clamps to top bracket", rbt12: "5000000", wantRate: "33", ceiling: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EffectiveRate(decimal.RequireFromString(tt.rbt12), table)
			require.NoError(t, err)
			assert.True(t, result.EffectiveRate.Equal(decimal.RequireFromString(tt.wantRate)),
				"got %s, want %s", result.EffectiveRate, tt.wantRate)
			assert.Equal(t, tt.ceiling, result.CeilingExceeded)
		})
	}
}

func TestEffectiveRate_MonotonicAcrossBrackets(t *testing.T) {
	table, err := BracketTableFor(types.SimplesAnnexIII)
	require.NoError(t, err)

	previous := decimal.Zero
	for _, rbt12 := range []string{"0", "90000", "180000", "180000.01", "300000", "500000", "1000000", "2000000", "4000000"} {
		result, err := EffectiveRate(decimal.RequireFromString(rbt12), table)
		require.NoError(t, err)
		assert.True(t, result.EffectiveRate.GreaterThanOrEqual(previous),
			"rate decreased at rbt12=%s: %s < %s", rbt12, result.EffectiveRate, previous)
		previous = result.EffectiveRate
	}
}

func TestEffectiveRate_WithDeduction(t *testing.T) {
	table := BracketTable{
		Annex: types.SimplesAnnexIII,
		Brackets: []Bracket{
			{LowerBound: d("0"), UpperBound: d("180000.00"), NominalRate: d("6.00")},
			{LowerBound: d("180000.01"), UpperBound: d("360000.00"), NominalRate: d("11.20"), DeductionAmount: d("9360.00")},
		},
	}

	// (200000 * 11.2% - 9360) / 200000 = 6.52%
	result, err := EffectiveRate(d("200000"), table)
	require.NoError(t, err)
	assert.True(t, result.EffectiveRate.Equal(d("6.52")), "got %s", result.EffectiveRate)
}

func TestEffectiveRate_NeverNegative(t *testing.T) {
	table := BracketTable{
		Annex: types.SimplesAnnexIII,
		Brackets: []Bracket{
			{LowerBound: d("0"), UpperBound: d("100000.00"), NominalRate: d("1.00"), DeductionAmount: d("50000.00")},
		},
	}

	result, err := EffectiveRate(d("10000"), table)
	require.NoError(t, err)
	assert.True(t, result.EffectiveRate.IsZero())
}

func TestEffectiveRate_RejectsNegativeRevenue(t *testing.T) {
	table, err := BracketTableFor(types.SimplesAnnexIII)
	require.NoError(t, err)

	_, err = EffectiveRate(d("-1"), table)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBracketTable_Validate(t *testing.T) {
	t.Run("gap between brackets rejected", func(t *testing.T) {
		table := BracketTable{
			Brackets: []Bracket{
				{LowerBound: d("0"), UpperBound: d("100.00"), NominalRate: d("1")},
				{LowerBound: d("200.00"), UpperBound: d("300.00"), NominalRate: d("2")},
			},
		}
		require.Error(t, table.Validate())
	})

	t.Run("overlapping brackets rejected", func(t *testing.T) {
		table := BracketTable{
			Brackets: []Bracket{
				{LowerBound: d("0"), UpperBound: d("100.00"), NominalRate: d("1")},
				{LowerBound: d("50.00"), UpperBound: d("300.00"), NominalRate: d("2")},
			},
		}
		require.Error(t, table.Validate())
	})

	t.Run("empty table rejected", func(t *testing.T) {
		require.Error(t, BracketTable{}.Validate())
	})

	t.Run("built-in tables are valid", func(t *testing.T) {
		for _, annex := range []types.SimplesAnnex{types.SimplesAnnexIII, types.SimplesAnnexV} {
			table, err := BracketTableFor(annex)
			require.NoError(t, err)
			require.NoError(t, table.Validate())
		}
	})
}

func TestNewDistributionTable_RejectsBadWeights(t *testing.T) {
	_, err := NewDistributionTable([]DistributionShare{
		{Category: types.TaxCategoryPIS, Percent: d("50")},
		{Category: types.TaxCategoryCOFINS, Percent: d("49")},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestDistribute_SumsBackToTotal(t *testing.T) {
	table, err := DistributionTableFor(types.SimplesAnnexIII)
	require.NoError(t, err)

	for _, total := range []string{"1120.00", "6750.00", "0.01", "999999.99", "33.33"} {
		parts := Distribute(d(total), table)

		sum := decimal.Zero
		for _, part := range parts {
			sum = sum.Add(part)
		}
		assert.True(t, sum.Equal(d(total)), "parts for %s sum to %s", total, sum)
	}
}

func TestDistribute_ShareProportions(t *testing.T) {
	table, err := DistributionTableFor(types.SimplesAnnexIII)
	require.NoError(t, err)

	parts := Distribute(d("1000.00"), table)
	assert.True(t, parts[types.TaxCategoryISS].Equal(d("335.00")))
	assert.True(t, parts[types.TaxCategoryIRPJ].Equal(d("40.00")))
	assert.True(t, parts[types.TaxCategoryCSLL].Equal(d("35.00")))
}

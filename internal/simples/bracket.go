package simples

import (
	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

var (
	hundred = decimal.NewFromInt(100)
	// money amounts are compared at cent granularity
	cent = decimal.New(1, -2)
)

// Bracket is one revenue band of a Simples Nacional annex table. Bounds are
// inclusive. Rates are expressed as percentages (11.2 means 11.2%).
type Bracket struct {
	LowerBound      decimal.Decimal
	UpperBound      decimal.Decimal
	NominalRate     decimal.Decimal
	DeductionAmount decimal.Decimal
}

// Contains reports whether the rolling 12-month revenue falls in this band.
func (b Bracket) Contains(rbt12 decimal.Decimal) bool {
	return rbt12.GreaterThanOrEqual(b.LowerBound) && rbt12.LessThanOrEqual(b.UpperBound)
}

// BracketTable is an ordered, contiguous, non-overlapping set of brackets.
type BracketTable struct {
	Annex    types.SimplesAnnex
	Brackets []Bracket
}

// Validate checks ordering, contiguity and non-overlap of the bands.
func (t BracketTable) Validate() error {
	if len(t.Brackets) == 0 {
		return ierr.NewError("bracket table is empty").
			WithHint("A bracket table must contain at least one bracket").
			Mark(ierr.ErrValidation)
	}

	for i, b := range t.Brackets {
		if b.UpperBound.LessThan(b.LowerBound) {
			return ierr.NewError("bracket bounds are inverted").
				WithHintf("Bracket %d has upper bound below lower bound", i+1).
				Mark(ierr.ErrValidation)
		}
		if b.NominalRate.IsNegative() || b.DeductionAmount.IsNegative() {
			return ierr.NewError("bracket rate or deduction is negative").
				WithHintf("Bracket %d carries a negative rate or deduction", i+1).
				Mark(ierr.ErrValidation)
		}
		if i == 0 {
			continue
		}
		prev := t.Brackets[i-1]
		gap := b.LowerBound.Sub(prev.UpperBound)
		if gap.LessThanOrEqual(decimal.Zero) || gap.GreaterThan(cent) {
			return ierr.NewError("bracket table is not contiguous").
				WithHintf("Bracket %d does not start one cent above the previous upper bound", i+1).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// Ceiling returns the upper bound of the top bracket.
func (t BracketTable) Ceiling() decimal.Decimal {
	return t.Brackets[len(t.Brackets)-1].UpperBound
}

// RateResult is the outcome of an effective-rate lookup.
type RateResult struct {
	// EffectiveRate is a percentage (e.g. 11.20 for 11.20%).
	EffectiveRate decimal.Decimal
	Bracket       Bracket
	// CeilingExceeded is set when rbt12 lies above the top bracket. The rate
	// is clamped to the top bracket; callers surface the breach as a warning.
	CeilingExceeded bool
}

// EffectiveRate computes the progressive effective rate for the given rolling
// 12-month revenue: (rbt12 * nominal - deduction) / rbt12, floored at zero.
// A zero rbt12 returns the first bracket's nominal rate directly.
func EffectiveRate(rbt12 decimal.Decimal, table BracketTable) (RateResult, error) {
	if rbt12.IsNegative() {
		return RateResult{}, ierr.NewError("rolling 12-month revenue is negative").
			WithHint("Rolling 12-month revenue must be non-negative").
			WithReportableDetails(map[string]any{"rbt12": rbt12.String()}).
			Mark(ierr.ErrValidation)
	}
	if err := table.Validate(); err != nil {
		return RateResult{}, err
	}

	bracket, exceeded := locate(rbt12, table)

	if rbt12.IsZero() {
		return RateResult{EffectiveRate: bracket.NominalRate, Bracket: bracket}, nil
	}

	// nominal - deduction*100/rbt12, which is (rbt12*nominal% - deduction)/rbt12
	// expressed as a percentage
	rate := bracket.NominalRate.Sub(bracket.DeductionAmount.Mul(hundred).Div(rbt12))
	if rate.IsNegative() {
		rate = decimal.Zero
	}

	return RateResult{
		EffectiveRate:   rate.Round(4),
		Bracket:         bracket,
		CeilingExceeded: exceeded,
	}, nil
}

func locate(rbt12 decimal.Decimal, table BracketTable) (Bracket, bool) {
	for _, b := range table.Brackets {
		if b.Contains(rbt12) {
			return b, false
		}
	}
	// above the ceiling: clamp to the top bracket
	return table.Brackets[len(table.Brackets)-1], true
}

// DistributionShare is one named sub-tax weight of a distribution table.
type DistributionShare struct {
	Category types.TaxCategory
	Percent  decimal.Decimal
}

// DistributionTable allocates a total tax amount across sub-taxes using
// percentage weights that sum to 100. The invariant is checked at definition
// time, not at call time.
type DistributionTable struct {
	shares []DistributionShare
}

// NewDistributionTable builds a distribution table, rejecting weights that do
// not sum to exactly 100%.
func NewDistributionTable(shares []DistributionShare) (DistributionTable, error) {
	if len(shares) == 0 {
		return DistributionTable{}, ierr.NewError("distribution table is empty").
			WithHint("A distribution table must contain at least one share").
			Mark(ierr.ErrValidation)
	}

	sum := decimal.Zero
	for _, s := range shares {
		if err := s.Category.Validate(); err != nil {
			return DistributionTable{}, err
		}
		if s.Percent.IsNegative() {
			return DistributionTable{}, ierr.NewError("distribution share is negative").
				WithHintf("Share for %s must be non-negative", s.Category).
				Mark(ierr.ErrValidation)
		}
		sum = sum.Add(s.Percent)
	}

	if !sum.Equal(hundred) {
		return DistributionTable{}, ierr.NewError("distribution weights do not sum to 100%").
			WithHintf("Distribution weights sum to %s, expected 100", sum.String()).
			Mark(ierr.ErrValidation)
	}

	return DistributionTable{shares: shares}, nil
}

// Shares returns the shares in definition order.
func (t DistributionTable) Shares() []DistributionShare {
	return t.shares
}

// Distribute allocates total across the table's categories. Each part is
// rounded to cents; any rounding residue is folded into the largest share so
// the parts always sum back to the total.
func Distribute(total decimal.Decimal, table DistributionTable) map[types.TaxCategory]decimal.Decimal {
	parts := make(map[types.TaxCategory]decimal.Decimal, len(table.shares))

	allocated := decimal.Zero
	largestIdx := 0
	for i, s := range table.shares {
		part := total.Mul(s.Percent).Div(hundred).Round(2)
		parts[s.Category] = part
		allocated = allocated.Add(part)
		if s.Percent.GreaterThan(table.shares[largestIdx].Percent) {
			largestIdx = i
		}
	}

	residue := total.Round(2).Sub(allocated)
	if !residue.IsZero() {
		largest := table.shares[largestIdx].Category
		parts[largest] = parts[largest].Add(residue)
	}

	return parts
}

package ledger

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// roundHalfUp rounds to the given decimal places with halves going toward
// positive infinity, so -2.345 becomes -2.34 and 2.345 becomes 2.35.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	shift := decimal.New(1, places)
	return d.Mul(shift).Add(half).Floor().Div(shift)
}

// AdjustmentPercentage returns round2((newFee - previousFee) / previousFee * 100).
func AdjustmentPercentage(previousFee, newFee float64) (float64, error) {
	if previousFee == 0 {
		return 0, invalid("previous_fee", "base fee must not be zero")
	}
	prev := decimal.NewFromFloat(previousFee)
	pct := decimal.NewFromFloat(newFee).Sub(prev).Div(prev).Mul(hundred)
	return roundHalfUp(pct, 2).InexactFloat64(), nil
}

// projectFee compounds an accumulated percentage once against fee and rounds
// to whole currency units.
func projectFee(fee, accumulatedPercentage float64) float64 {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(accumulatedPercentage).Div(hundred))
	return roundHalfUp(decimal.NewFromFloat(fee).Mul(factor), 0).InexactFloat64()
}

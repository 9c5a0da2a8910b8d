package output

import (
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Breakdown is the split of a total into contributed amount and growth,
// as drawn by the proportion chart.
type Breakdown struct {
	ContributedPct decimal.Decimal `json:"contributed_pct"`
	GrowthPct      decimal.Decimal `json:"growth_pct"`
}

var decimalHundred = decimal.NewFromInt(100)

// AnalyzeResult computes the percentage shares of contributed amount and growth.
// A zero total yields zero shares. Growth is negative when the rate is.
func AnalyzeResult(result domain.CalculationResult) Breakdown {
	if result.Total.IsZero() {
		return Breakdown{ContributedPct: decimal.Zero, GrowthPct: decimal.Zero}
	}
	contributed := result.Contributed.Decimal.DivRound(result.Total.Decimal, 8).Mul(decimalHundred)
	return Breakdown{
		ContributedPct: contributed,
		GrowthPct:      decimalHundred.Sub(contributed),
	}
}

package calculation

import (
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// PeriodicEngine computes growth of a fixed monthly deposit (SIP), compounded monthly.
type PeriodicEngine struct{}

// Summarize returns the future value of an annuity-due: each deposit is made
// at the start of its month and so earns one extra month of growth.
//
//	total = amount * (((1+r)^n - 1) / r) * (1+r),  r = rate/1200, n = years*12
//
// A zero monthly rate degenerates to total = amount * n with no growth.
func (PeriodicEngine) Summarize(periodicAmount money.Money, annualRatePercent decimal.Decimal, years int) (domain.CalculationResult, error) {
	if err := validateInputs(periodicAmount, years); err != nil {
		return domain.CalculationResult{}, err
	}
	months := years * monthsPerYear
	contributed := periodicAmount.Times(months)

	total := contributed
	if r := periodRate(annualRatePercent, monthsPerYear); !r.IsZero() {
		factor := one.Add(r)
		annuity := powInt(factor, months).Sub(one).DivRound(r, scale).Mul(factor)
		total = periodicAmount.Mul(annuity)
	}

	result := domain.CalculationResult{
		Contributed: contributed,
		Growth:      total.Sub(contributed),
		Total:       total,
	}
	if err := checkResult(result); err != nil {
		return domain.CalculationResult{}, err
	}
	return result, nil
}

// Project simulates the account month by month and samples it at every year end.
// Each month the running balance grows first and the deposit is credited after,
// so the last point is Summarize's total divided by (1+r), up to rounding. The two conventions
// are kept as they are.
func (PeriodicEngine) Project(periodicAmount money.Money, annualRatePercent decimal.Decimal, years int) (domain.ProjectionSeries, error) {
	if err := validateInputs(periodicAmount, years); err != nil {
		return nil, err
	}
	factor := one.Add(periodRate(annualRatePercent, monthsPerYear))

	series := make(domain.ProjectionSeries, 0, years)
	balance := money.Zero()
	for month := 1; month <= years*monthsPerYear; month++ {
		balance = money.NewMoneyFromDecimal(balance.Decimal.Mul(factor).Round(scale)).Add(periodicAmount)
		if month%monthsPerYear == 0 {
			series = append(series, domain.ProjectionPoint{Year: month / monthsPerYear, Value: balance})
		}
	}
	if err := checkSeries(series); err != nil {
		return nil, err
	}
	return series, nil
}

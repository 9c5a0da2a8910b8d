package calculation

import (
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// LumpsumEngine computes growth of a single deposit compounded once a year.
type LumpsumEngine struct{}

// Summarize returns principal, growth and final value after years of annual compounding:
// total = principal * (1 + rate/100)^years.
func (LumpsumEngine) Summarize(principal money.Money, annualRatePercent decimal.Decimal, years int) (domain.CalculationResult, error) {
	if err := validateInputs(principal, years); err != nil {
		return domain.CalculationResult{}, err
	}
	total := lumpsumValue(principal, annualRatePercent, years)
	result := domain.CalculationResult{
		Contributed: principal,
		Growth:      total.Sub(principal),
		Total:       total,
	}
	if err := checkResult(result); err != nil {
		return domain.CalculationResult{}, err
	}
	return result, nil
}

// Project returns the value at the end of each year from 1 to years.
// The final point is identical to Summarize's total.
func (LumpsumEngine) Project(principal money.Money, annualRatePercent decimal.Decimal, years int) (domain.ProjectionSeries, error) {
	if err := validateInputs(principal, years); err != nil {
		return nil, err
	}
	series := make(domain.ProjectionSeries, 0, years)
	for year := 1; year <= years; year++ {
		series = append(series, domain.ProjectionPoint{
			Year:  year,
			Value: lumpsumValue(principal, annualRatePercent, year),
		})
	}
	if err := checkSeries(series); err != nil {
		return nil, err
	}
	return series, nil
}

func lumpsumValue(principal money.Money, annualRatePercent decimal.Decimal, years int) money.Money {
	factor := one.Add(periodRate(annualRatePercent, 1))
	return principal.Mul(powInt(factor, years))
}

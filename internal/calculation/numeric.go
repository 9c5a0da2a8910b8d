package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// scale is the number of fractional digits kept after every multiplication
// and division. Exponents of several hundred periods would otherwise grow the
// digit count without bound.
const scale int32 = 24

const monthsPerYear = 12

// MaxYears bounds the duration so month counts and series sizes stay small.
const MaxYears = 1200

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// periodRate converts an annual percentage into a fractional rate per period.
func periodRate(annualRatePercent decimal.Decimal, periodsPerYear int64) decimal.Decimal {
	return annualRatePercent.DivRound(hundred.Mul(decimal.NewFromInt(periodsPerYear)), scale)
}

// powInt raises base to a non-negative integer power by repeated squaring.
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(scale)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(scale)
		}
	}
	return result
}

func validateInputs(amount money.Money, years int) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrInvalidInput, amount)
	}
	if years < 1 {
		return fmt.Errorf("%w: duration must be at least one year, got %d", ErrInvalidInput, years)
	}
	if years > MaxYears {
		return fmt.Errorf("%w: duration must be at most %d years, got %d", ErrInvalidInput, MaxYears, years)
	}
	return nil
}

// checkRepresentable fails when m cannot be handed to presentation as a finite float64.
func checkRepresentable(what string, m money.Money) error {
	f := m.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("%w: %s exceeds float64 range", ErrOutOfRange, what)
	}
	return nil
}

func checkResult(r domain.CalculationResult) error {
	if err := checkRepresentable("contributed amount", r.Contributed); err != nil {
		return err
	}
	if err := checkRepresentable("growth", r.Growth); err != nil {
		return err
	}
	return checkRepresentable("total value", r.Total)
}

func checkSeries(s domain.ProjectionSeries) error {
	for _, p := range s {
		if err := checkRepresentable(fmt.Sprintf("value in year %d", p.Year), p.Value); err != nil {
			return err
		}
	}
	return nil
}

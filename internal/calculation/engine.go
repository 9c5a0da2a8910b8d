package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Engine dispatches a calculation to the lumpsum or periodic engine and
// returns the summary and the yearly projection together.
type Engine struct {
	Lumpsum  LumpsumEngine
	Periodic PeriodicEngine
	// MaxValue optionally caps computed amounts; zero disables the cap.
	MaxValue money.Money
	Logger   Logger
}

// NewEngine creates an engine with no value cap and a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// NewEngineWithLimits creates an engine that enforces the limits' value cap.
func NewEngineWithLimits(limits domain.Limits) *Engine {
	e := NewEngine()
	e.MaxValue = limits.MaxValue
	return e
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Compute runs Summarize and Project of the engine selected by mode with identical inputs.
func (e *Engine) Compute(mode domain.Mode, amount money.Money, annualRatePercent decimal.Decimal, years int) (domain.CalculationResult, domain.ProjectionSeries, error) {
	var (
		result domain.CalculationResult
		series domain.ProjectionSeries
		err    error
	)
	switch mode {
	case domain.ModeLumpsum:
		if result, err = e.Lumpsum.Summarize(amount, annualRatePercent, years); err != nil {
			break
		}
		series, err = e.Lumpsum.Project(amount, annualRatePercent, years)
	case domain.ModePeriodic:
		if result, err = e.Periodic.Summarize(amount, annualRatePercent, years); err != nil {
			break
		}
		series, err = e.Periodic.Project(amount, annualRatePercent, years)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		e.logger().Warnf("%s calculation failed: %v", mode, err)
		return domain.CalculationResult{}, nil, err
	}
	if err := e.checkCeiling(result, series); err != nil {
		e.logger().Warnf("%s calculation failed: %v", mode, err)
		return domain.CalculationResult{}, nil, err
	}

	e.logger().Debugf("%s amount=%s rate=%s%% years=%d -> contributed=%s growth=%s total=%s",
		mode, amount, annualRatePercent, years, result.Contributed, result.Growth, result.Total)
	return result, series, nil
}

// ComputeInputs is Compute over an Inputs value, bundled for presentation.
func (e *Engine) ComputeInputs(in domain.Inputs) (domain.Projection, error) {
	result, series, err := e.Compute(in.Mode, in.Amount, in.RatePercent, in.Years)
	if err != nil {
		return domain.Projection{}, err
	}
	return domain.Projection{Inputs: in, Result: result, Series: series}, nil
}

// RunScenarios computes every scenario of a configuration in order.
func (e *Engine) RunScenarios(ctx context.Context, config *domain.Configuration) ([]domain.Projection, error) {
	projections := make([]domain.Projection, 0, len(config.Scenarios))
	for i, sc := range config.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := e.ComputeInputs(sc.Inputs)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, sc.Name, err)
		}
		p.Name = sc.Name
		projections = append(projections, p)
	}
	e.logger().Infof("computed %d scenarios", len(projections))
	return projections, nil
}

func (e *Engine) checkCeiling(result domain.CalculationResult, series domain.ProjectionSeries) error {
	if !e.MaxValue.IsPositive() {
		return nil
	}
	if result.Total.Abs().GreaterThan(e.MaxValue.Decimal) {
		return fmt.Errorf("%w: total value %s exceeds cap %s", ErrOutOfRange, result.Total, e.MaxValue)
	}
	if max := series.Max(); max.GreaterThan(e.MaxValue) {
		return fmt.Errorf("%w: projected value %s exceeds cap %s", ErrOutOfRange, max, e.MaxValue)
	}
	return nil
}

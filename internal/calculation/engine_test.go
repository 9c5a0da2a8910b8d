package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("ERROR", format, args...) }

func (r *recordingLogger) add(level, format string, args ...any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()
	assert.NotNil(t, engine)
	assert.IsType(t, NopLogger{}, engine.Logger)
	assert.True(t, engine.MaxValue.IsZero())

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestComputeDispatchesByMode(t *testing.T) {
	engine := NewEngine()
	amount := money.NewMoneyFromInt(10000)
	rate := decimal.NewFromInt(12)

	tests := []struct {
		mode      domain.Mode
		summarize func(money.Money, decimal.Decimal, int) (domain.CalculationResult, error)
		project   func(money.Money, decimal.Decimal, int) (domain.ProjectionSeries, error)
	}{
		{domain.ModeLumpsum, LumpsumEngine{}.Summarize, LumpsumEngine{}.Project},
		{domain.ModePeriodic, PeriodicEngine{}.Summarize, PeriodicEngine{}.Project},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			result, series, err := engine.Compute(tt.mode, amount, rate, 10)
			require.NoError(t, err)

			wantResult, err := tt.summarize(amount, rate, 10)
			require.NoError(t, err)
			wantSeries, err := tt.project(amount, rate, 10)
			require.NoError(t, err)

			assert.True(t, wantResult.Total.Equal(result.Total))
			assert.True(t, wantResult.Contributed.Equal(result.Contributed))
			require.Len(t, series, len(wantSeries))
			for i := range series {
				assert.Equal(t, wantSeries[i].Year, series[i].Year)
				assert.True(t, wantSeries[i].Value.Equal(series[i].Value))
			}
		})
	}
}

func TestComputeUnknownMode(t *testing.T) {
	_, series, err := NewEngine().Compute(domain.Mode("weekly"), money.NewMoneyFromInt(1), decimal.NewFromInt(1), 1)
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Nil(t, series)
}

func TestComputePropagatesInvalidInput(t *testing.T) {
	logger := &recordingLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	_, _, err := engine.Compute(domain.ModePeriodic, money.NewMoneyFromInt(-1), decimal.NewFromInt(12), 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
	require.Len(t, logger.lines, 1)
	assert.Contains(t, logger.lines[0], "WARN sip calculation failed")
}

func TestComputeEnforcesValueCap(t *testing.T) {
	limits := domain.DefaultLimits()
	limits.MaxValue = money.NewMoneyFromInt(1000000)
	engine := NewEngineWithLimits(limits)

	_, _, err := engine.Compute(domain.ModeLumpsum, money.NewMoneyFromInt(800000), decimal.NewFromInt(12), 10)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = engine.Compute(domain.ModeLumpsum, money.NewMoneyFromInt(800000), decimal.NewFromInt(12), 1)
	assert.NoError(t, err)
}

func TestComputeInputs(t *testing.T) {
	in := domain.DefaultSettings().Inputs()
	p, err := NewEngine().ComputeInputs(in)
	require.NoError(t, err)

	assert.Equal(t, in, p.Inputs)
	assert.Equal(t, "2484678.57", p.Result.Total.String())
	assert.Len(t, p.Series, 10)
}

func TestRunScenarios(t *testing.T) {
	cfg := domain.DefaultConfiguration()
	cfg.Scenarios = []domain.Scenario{
		{Name: "Lumpsum default", Inputs: domain.Inputs{Mode: domain.ModeLumpsum, Amount: money.NewMoneyFromInt(800000), RatePercent: decimal.NewFromInt(12), Years: 10}},
		{Name: "SIP default", Inputs: domain.Inputs{Mode: domain.ModePeriodic, Amount: money.NewMoneyFromInt(10000), RatePercent: decimal.NewFromInt(12), Years: 10}},
	}

	logger := &recordingLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	projections, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, projections, 2)
	assert.Equal(t, "Lumpsum default", projections[0].Name)
	assert.Equal(t, "SIP default", projections[1].Name)
	assert.True(t, projections[1].Result.Contributed.Equal(money.NewMoneyFromInt(1200000)))
	assert.Contains(t, logger.lines[len(logger.lines)-1], "computed 2 scenarios")
}

func TestRunScenariosReportsFailingScenario(t *testing.T) {
	cfg := domain.DefaultConfiguration()
	cfg.Scenarios = []domain.Scenario{
		{Name: "broken", Inputs: domain.Inputs{Mode: domain.ModeLumpsum, Amount: money.NewMoneyFromInt(1000), RatePercent: decimal.NewFromInt(5), Years: 0}},
	}

	_, err := NewEngine().RunScenarios(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "scenario 0 (broken)")
}

func TestRunScenariosHonoursCancellation(t *testing.T) {
	cfg := domain.DefaultConfiguration()
	cfg.Scenarios = []domain.Scenario{{Name: "any", Inputs: domain.DefaultSettings().Inputs()}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().RunScenarios(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

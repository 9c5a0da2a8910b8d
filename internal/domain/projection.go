package domain

import (
	"time"

	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// CalculationResult holds the aggregate figures of one calculation.
// Total always equals Contributed plus Growth.
type CalculationResult struct {
	Contributed money.Money `json:"contributed"`
	Growth      money.Money `json:"growth"`
	Total       money.Money `json:"total"`
}

// ProjectionPoint is the account value at the end of an elapsed year.
type ProjectionPoint struct {
	Year  int         `json:"year"`
	Value money.Money `json:"value"`
}

// ProjectionSeries is ordered chronologically, one point per year starting at 1.
type ProjectionSeries []ProjectionPoint

// Last returns the final point of the series.
func (s ProjectionSeries) Last() (ProjectionPoint, bool) {
	if len(s) == 0 {
		return ProjectionPoint{}, false
	}
	return s[len(s)-1], true
}

// Max returns the largest value in the series, used to scale charts.
func (s ProjectionSeries) Max() money.Money {
	max := money.Zero()
	for _, p := range s {
		if p.Value.GreaterThan(max) {
			max = p.Value
		}
	}
	return max
}

// Inputs are the scalar inputs of a calculation.
type Inputs struct {
	Mode        Mode            `yaml:"mode" toml:"mode" json:"mode"`
	Amount      money.Money     `yaml:"amount" toml:"amount" json:"amount"`
	RatePercent decimal.Decimal `yaml:"rate_percent" toml:"rate_percent" json:"rate_percent"`
	Years       int             `yaml:"years" toml:"years" json:"years"`
}

// Projection bundles the inputs with both calculation outputs for presentation.
type Projection struct {
	Name   string            `json:"name,omitempty"`
	Inputs Inputs            `json:"inputs"`
	Result CalculationResult `json:"result"`
	Series ProjectionSeries  `json:"series"`
}

// Report is what output formatters render: one or more projections plus
// presentation preferences.
type Report struct {
	Projections    []Projection `json:"projections"`
	CurrencySymbol string       `json:"currency_symbol"`
	Grouping       string       `json:"-"`
	DarkMode       bool         `json:"-"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

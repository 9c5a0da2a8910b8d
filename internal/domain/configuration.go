package domain

import (
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Configuration is the on-disk description of a calculator run.
type Configuration struct {
	Settings  Settings       `yaml:"settings" toml:"settings" json:"settings"`
	Limits    Limits         `yaml:"limits" toml:"limits" json:"limits"`
	Output    OutputSettings `yaml:"output" toml:"output" json:"output"`
	Scenarios []Scenario     `yaml:"scenarios" toml:"scenarios" json:"scenarios"`
}

// Scenario is a named set of inputs evaluated in batch runs.
type Scenario struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Inputs `yaml:",inline"`
}

// Settings is the presentation state of the calculator: the selected mode,
// the value of every input control and the theme. The calculation core never
// reads it; collaborators turn it into Inputs.
type Settings struct {
	DarkMode      bool            `yaml:"dark_mode" toml:"dark_mode" json:"dark_mode"`
	Mode          Mode            `yaml:"mode" toml:"mode" json:"mode"`
	LumpsumAmount money.Money     `yaml:"lumpsum_amount" toml:"lumpsum_amount" json:"lumpsum_amount"`
	SIPAmount     money.Money     `yaml:"sip_amount" toml:"sip_amount" json:"sip_amount"`
	RatePercent   decimal.Decimal `yaml:"rate_percent" toml:"rate_percent" json:"rate_percent"`
	Years         int             `yaml:"years" toml:"years" json:"years"`
}

// DefaultSettings returns the values the calculator starts with and resets to.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:      false,
		Mode:          ModeLumpsum,
		LumpsumAmount: money.NewMoneyFromInt(800000),
		SIPAmount:     money.NewMoneyFromInt(10000),
		RatePercent:   decimal.NewFromInt(12),
		Years:         10,
	}
}

// Reset restores every control to its default value.
func (s *Settings) Reset() {
	*s = DefaultSettings()
}

// Inputs builds calculation inputs for the currently selected mode.
func (s Settings) Inputs() Inputs {
	return s.InputsFor(s.Mode)
}

// InputsFor builds calculation inputs for mode m, taking the amount control
// that belongs to that mode.
func (s Settings) InputsFor(m Mode) Inputs {
	amount := s.LumpsumAmount
	if m == ModePeriodic {
		amount = s.SIPAmount
	}
	return Inputs{Mode: m, Amount: amount, RatePercent: s.RatePercent, Years: s.Years}
}

// Range bounds a numeric input control. Step of zero disables the step check.
type Range struct {
	Min  decimal.Decimal `yaml:"min" toml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" toml:"max" json:"max"`
	Step decimal.Decimal `yaml:"step" toml:"step" json:"step"`
}

// Limits are the input ranges enforced before the core is called.
type Limits struct {
	Lumpsum  Range `yaml:"lumpsum" toml:"lumpsum" json:"lumpsum"`
	SIP      Range `yaml:"sip" toml:"sip" json:"sip"`
	Rate     Range `yaml:"rate" toml:"rate" json:"rate"`
	MinYears int   `yaml:"min_years" toml:"min_years" json:"min_years"`
	MaxYears int   `yaml:"max_years" toml:"max_years" json:"max_years"`

	// MaxValue caps any computed amount; zero means only float64 range applies.
	MaxValue money.Money `yaml:"max_value" toml:"max_value" json:"max_value"`
}

// DefaultLimits mirrors the ranges of the calculator's input sliders.
func DefaultLimits() Limits {
	return Limits{
		Lumpsum: Range{
			Min:  decimal.NewFromInt(10000),
			Max:  decimal.NewFromInt(100000000),
			Step: decimal.NewFromInt(10000),
		},
		SIP: Range{
			Min:  decimal.NewFromInt(500),
			Max:  decimal.NewFromInt(200000),
			Step: decimal.NewFromInt(500),
		},
		Rate: Range{
			Min:  decimal.NewFromInt(1),
			Max:  decimal.NewFromInt(100),
			Step: decimal.NewFromFloat(0.1),
		},
		MinYears: 1,
		MaxYears: 30,
	}
}

// AmountRange returns the amount bounds for a mode.
func (l Limits) AmountRange(m Mode) Range {
	if m == ModePeriodic {
		return l.SIP
	}
	return l.Lumpsum
}

// OutputSettings controls report rendering.
type OutputSettings struct {
	Format         string `yaml:"format" toml:"format" json:"format"`
	CurrencySymbol string `yaml:"currency_symbol" toml:"currency_symbol" json:"currency_symbol"`
	// Grouping is "standard" (1,234,567.89) or "indian" (12.34.568).
	Grouping string `yaml:"grouping" toml:"grouping" json:"grouping"`
}

// DefaultOutputSettings renders console output in rupees with standard grouping.
func DefaultOutputSettings() OutputSettings {
	return OutputSettings{Format: "console", CurrencySymbol: "₹", Grouping: "standard"}
}

// DefaultConfiguration is a configuration with defaults and no scenarios.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Settings: DefaultSettings(),
		Limits:   DefaultLimits(),
		Output:   DefaultOutputSettings(),
	}
}

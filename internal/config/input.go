package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrOutOfBounds is returned when an input lies outside the configured limits.
var ErrOutOfBounds = errors.New("input out of bounds")

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or TOML file. Sections missing
// from the file keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := domain.DefaultConfiguration()
	if isTOML(filename) {
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateLimits(&config.Limits); err != nil {
		return fmt.Errorf("limits validation failed: %w", err)
	}

	if !config.Settings.Mode.Valid() {
		return fmt.Errorf("settings: %w: %q", domain.ErrUnknownMode, config.Settings.Mode)
	}
	if err := ValidateInputs(config.Limits, config.Settings.Inputs()); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	if config.Output.Grouping != "" && config.Output.Grouping != "standard" && config.Output.Grouping != "indian" {
		return fmt.Errorf("output grouping must be 'standard' or 'indian'")
	}

	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(config.Limits, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateLimits(limits *domain.Limits) error {
	for name, r := range map[string]domain.Range{"lumpsum": limits.Lumpsum, "sip": limits.SIP, "rate": limits.Rate} {
		if r.Min.GreaterThan(r.Max) {
			return fmt.Errorf("%s: min %s is greater than max %s", name, r.Min, r.Max)
		}
		if r.Step.IsNegative() {
			return fmt.Errorf("%s: step cannot be negative", name)
		}
	}
	if limits.Lumpsum.Min.IsNegative() || limits.SIP.Min.IsNegative() {
		return fmt.Errorf("amount limits cannot be negative")
	}
	if limits.MinYears < 1 {
		return fmt.Errorf("min years must be at least 1")
	}
	if limits.MaxYears < limits.MinYears {
		return fmt.Errorf("max years must be at least min years")
	}
	if limits.MaxValue.IsNegative() {
		return fmt.Errorf("max value cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateScenario(limits domain.Limits, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if !scenario.Mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMode, scenario.Mode)
	}
	return ValidateInputs(limits, scenario.Inputs)
}

// ValidateInputs checks inputs against the limits the way the calculator's
// input controls do: amount and rate within range and on a step, years in range.
func ValidateInputs(limits domain.Limits, in domain.Inputs) error {
	if err := checkRange(in.Mode.AmountLabel(), in.Amount.Decimal, limits.AmountRange(in.Mode)); err != nil {
		return err
	}
	if err := checkRange("Expected Return Rate", in.RatePercent, limits.Rate); err != nil {
		return err
	}
	if in.Years < limits.MinYears || in.Years > limits.MaxYears {
		return fmt.Errorf("%w: Investment Time Period must be between %d and %d years, got %d", ErrOutOfBounds, limits.MinYears, limits.MaxYears, in.Years)
	}
	return nil
}

func checkRange(name string, v decimal.Decimal, r domain.Range) error {
	if v.LessThan(r.Min) || v.GreaterThan(r.Max) {
		return fmt.Errorf("%w: %s must be between %s and %s, got %s", ErrOutOfBounds, name, r.Min, r.Max, v)
	}
	if r.Step.IsPositive() && !v.Sub(r.Min).Mod(r.Step).IsZero() {
		return fmt.Errorf("%w: %s must be a multiple of %s from %s, got %s", ErrOutOfBounds, name, r.Step, r.Min, v)
	}
	return nil
}

// SaveConfiguration writes a configuration as YAML, or TOML for a .toml filename.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	var data []byte
	if isTOML(filename) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		data = buf.Bytes()
	} else {
		b, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		data = b
	}
	return os.WriteFile(filename, data, 0644)
}

func isTOML(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	config := domain.DefaultConfiguration()
	config.Scenarios = []domain.Scenario{
		{
			Name: "Lumpsum 8 lakh for 10 years",
			Inputs: domain.Inputs{
				Mode:        domain.ModeLumpsum,
				Amount:      money.NewMoneyFromInt(800000),
				RatePercent: decimal.NewFromInt(12),
				Years:       10,
			},
		},
		{
			Name: "SIP 10k monthly for 10 years",
			Inputs: domain.Inputs{
				Mode:        domain.ModePeriodic,
				Amount:      money.NewMoneyFromInt(10000),
				RatePercent: decimal.NewFromInt(12),
				Years:       10,
			},
		},
		{
			Name: "SIP 5k monthly for 25 years",
			Inputs: domain.Inputs{
				Mode:        domain.ModePeriodic,
				Amount:      money.NewMoneyFromInt(5000),
				RatePercent: decimal.NewFromFloat(11.5),
				Years:       25,
			},
		},
	}
	return config
}

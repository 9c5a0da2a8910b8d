package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Environment holds process settings that only come from the environment.
type Environment struct {
	Addr            string
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// LoadEnvironment loads .env files (missing files are ignored), applies
// RETURNS_* overrides to config and returns the process settings.
func LoadEnvironment(config *domain.Configuration, files ...string) (*Environment, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	if err := applyOverrides(config); err != nil {
		return nil, err
	}

	return &Environment{
		Addr:            getEnvString("RETURNS_ADDR", ":8080"),
		OTELEndpoint:    getEnvString("RETURNS_OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("RETURNS_OTEL_SERVICE_NAME", "returns-calculator"),
		LogLevel:        getEnvString("RETURNS_LOG_LEVEL", "info"),
	}, nil
}

func applyOverrides(config *domain.Configuration) error {
	s := &config.Settings

	if v := os.Getenv("RETURNS_MODE"); v != "" {
		mode, err := domain.ParseMode(v)
		if err != nil {
			return fmt.Errorf("RETURNS_MODE: %w", err)
		}
		s.Mode = mode
	}
	if v := os.Getenv("RETURNS_AMOUNT"); v != "" {
		m, err := money.NewMoneyFromString(v)
		if err != nil {
			return fmt.Errorf("RETURNS_AMOUNT: %w", err)
		}
		if s.Mode == domain.ModePeriodic {
			s.SIPAmount = m
		} else {
			s.LumpsumAmount = m
		}
	}
	if v := os.Getenv("RETURNS_RATE"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("RETURNS_RATE: %w", err)
		}
		s.RatePercent = d
	}
	if v := os.Getenv("RETURNS_YEARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RETURNS_YEARS: %w", err)
		}
		s.Years = n
	}
	if v := os.Getenv("RETURNS_DARK_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RETURNS_DARK_MODE: %w", err)
		}
		s.DarkMode = b
	}
	if v := os.Getenv("RETURNS_CURRENCY"); v != "" {
		config.Output.CurrencySymbol = v
	}
	if v := os.Getenv("RETURNS_MAX_VALUE"); v != "" {
		m, err := money.NewMoneyFromString(v)
		if err != nil {
			return fmt.Errorf("RETURNS_MAX_VALUE: %w", err)
		}
		config.Limits.MaxValue = m
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

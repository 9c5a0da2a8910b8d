package config

import (
	"os"
	"testing"

	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironment_Defaults(t *testing.T) {
	config := domain.DefaultConfiguration()
	env, err := LoadEnvironment(config, writeTemp(t, "empty.env", ""))
	require.NoError(t, err)

	assert.Equal(t, ":8080", env.Addr)
	assert.Equal(t, "returns-calculator", env.OTELServiceName)
	assert.Equal(t, "info", env.LogLevel)
	assert.Equal(t, domain.DefaultSettings(), config.Settings)
}

func TestLoadEnvironment_Overrides(t *testing.T) {
	t.Setenv("RETURNS_MODE", "sip")
	t.Setenv("RETURNS_AMOUNT", "2500")
	t.Setenv("RETURNS_RATE", "9.5")
	t.Setenv("RETURNS_YEARS", "20")
	t.Setenv("RETURNS_DARK_MODE", "true")
	t.Setenv("RETURNS_CURRENCY", "$")
	t.Setenv("RETURNS_MAX_VALUE", "1e12")
	t.Setenv("RETURNS_ADDR", ":9090")

	config := domain.DefaultConfiguration()
	env, err := LoadEnvironment(config, writeTemp(t, "empty.env", ""))
	require.NoError(t, err)

	assert.Equal(t, ":9090", env.Addr)
	assert.Equal(t, domain.ModePeriodic, config.Settings.Mode)
	assert.True(t, config.Settings.SIPAmount.Equal(money.NewMoneyFromInt(2500)))
	assert.True(t, config.Settings.LumpsumAmount.Equal(money.NewMoneyFromInt(800000)))
	assert.True(t, config.Settings.RatePercent.Equal(decimal.NewFromFloat(9.5)))
	assert.Equal(t, 20, config.Settings.Years)
	assert.True(t, config.Settings.DarkMode)
	assert.Equal(t, "$", config.Output.CurrencySymbol)
	assert.True(t, config.Limits.MaxValue.Equal(money.NewMoneyFromInt(1000000000000)))
}

func TestLoadEnvironment_DotEnvFile(t *testing.T) {
	path := writeTemp(t, "test.env", "RETURNS_OTEL_ENDPOINT=collector:4318\n")
	t.Cleanup(func() { os.Unsetenv("RETURNS_OTEL_ENDPOINT") })

	env, err := LoadEnvironment(domain.DefaultConfiguration(), path)
	require.NoError(t, err)
	assert.Equal(t, "collector:4318", env.OTELEndpoint)
}

func TestLoadEnvironment_MissingFileIgnored(t *testing.T) {
	_, err := LoadEnvironment(domain.DefaultConfiguration(), "does-not-exist.env")
	assert.NoError(t, err)
}

func TestLoadEnvironment_BadValues(t *testing.T) {
	tests := map[string]string{
		"RETURNS_MODE":      "weekly",
		"RETURNS_AMOUNT":    "lots",
		"RETURNS_RATE":      "high",
		"RETURNS_YEARS":     "ten",
		"RETURNS_DARK_MODE": "maybe",
		"RETURNS_MAX_VALUE": "huge",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadEnvironment(domain.DefaultConfiguration(), writeTemp(t, "empty.env", ""))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

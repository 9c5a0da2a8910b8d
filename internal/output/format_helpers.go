package output

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with thousands separators and two decimals, e.g. ₹2,484,678.57.
func FormatCurrency(amount money.Money, symbol string) string {
	rounded := amount.Round().Decimal
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole := rounded.Truncate(0)
	frac := rounded.Sub(whole).StringFixed(2)[1:]
	return sign + symbol + humanize.BigComma(whole.BigInt()) + frac
}

// FormatIndian formats a whole amount with dots as group separators, e.g. ₹2.484.679.
func FormatIndian(amount money.Money, symbol string) string {
	rounded := amount.Decimal.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + symbol + strings.ReplaceAll(humanize.BigComma(rounded.BigInt()), ",", ".")
}

// FormatCompact abbreviates an amount with an SI prefix for chart labels, e.g. 2.5M.
func FormatCompact(amount money.Money) string {
	return strings.ReplaceAll(humanize.SIWithDigits(amount.Float64(), 2, ""), " ", "")
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// moneyFormatter picks the currency style configured for a report.
func moneyFormatter(grouping, symbol string) func(money.Money) string {
	if grouping == "indian" {
		return func(m money.Money) string { return FormatIndian(m, symbol) }
	}
	return func(m money.Money) string { return FormatCurrency(m, symbol) }
}

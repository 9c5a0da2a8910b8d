package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// barWidth is the length in cells of the longest bar in the year-wise chart.
const barWidth = 40

// ConsoleFormatter renders a summary, the invested/returns split and a
// year-wise bar chart for every projection.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

type consoleTheme struct {
	title    lipgloss.Style
	label    lipgloss.Style
	invested lipgloss.Style
	returns  lipgloss.Style
	bar      lipgloss.Style
}

func newConsoleTheme(dark bool) consoleTheme {
	bar := lipgloss.Color("#636EFA")
	if dark {
		bar = lipgloss.Color("#FFA15A")
	}
	return consoleTheme{
		title:    lipgloss.NewStyle().Bold(true).Underline(true),
		label:    lipgloss.NewStyle().Width(24),
		invested: lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")),
		returns:  lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")),
		bar:      lipgloss.NewStyle().Foreground(bar),
	}
}

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	theme := newConsoleTheme(report.DarkMode)
	format := moneyFormatter(report.Grouping, report.CurrencySymbol)

	fmt.Fprintln(&buf, theme.title.Render("INVESTMENT RETURNS CALCULATOR"))
	for i, p := range report.Projections {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s (%s)\n", scenarioName(p, i), p.Inputs.Mode.Label())
		fmt.Fprintln(&buf, strings.Repeat("=", 40))
		fmt.Fprintf(&buf, "%s%s\n", theme.label.Render(p.Inputs.Mode.AmountLabel()+":"), format(p.Inputs.Amount))
		fmt.Fprintf(&buf, "%s%s%%\n", theme.label.Render("Expected Return Rate:"), p.Inputs.RatePercent.String())
		fmt.Fprintf(&buf, "%s%d years\n", theme.label.Render("Time Period:"), p.Inputs.Years)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s%s\n", theme.label.Render("Invested Amount:"), format(p.Result.Contributed))
		fmt.Fprintf(&buf, "%s%s\n", theme.label.Render("Estimated Returns:"), format(p.Result.Growth))
		fmt.Fprintf(&buf, "%s%s\n", theme.label.Render("Total Value:"), format(p.Result.Total))

		share := AnalyzeResult(p.Result)
		fmt.Fprintf(&buf, "%s%s / %s\n",
			theme.label.Render("Invested / Returns:"),
			theme.invested.Render(FormatPercentage(share.ContributedPct)),
			theme.returns.Render(FormatPercentage(share.GrowthPct)))

		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Year-wise Growth")
		max := p.Series.Max()
		for _, pt := range p.Series {
			bar := theme.bar.Render(strings.Repeat("█", barLength(pt.Value, max)))
			fmt.Fprintf(&buf, "%4d │%s %s\n", pt.Year, bar, FormatCompact(pt.Value))
		}
	}
	return buf.Bytes(), nil
}

// barLength scales value against max onto barWidth cells; any positive value gets at least one cell.
func barLength(value, max money.Money) int {
	if !max.IsPositive() || !value.IsPositive() {
		return 0
	}
	n := int(value.Decimal.Mul(decimal.NewFromInt(barWidth)).DivRound(max.Decimal, 0).IntPart())
	if n < 1 {
		return 1
	}
	return n
}

package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/returns-calculator/internal/domain"
)

// CSVProjectionExporter exports the year-wise projection table. A single
// projection has two columns (Year, Value with the currency symbol);
// several projections get a leading Scenario column.
type CSVProjectionExporter struct{}

func (c CSVProjectionExporter) Name() string { return "csv" }

func (c CSVProjectionExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	multi := len(report.Projections) > 1

	header := []string{"Year", valueHeader(report.CurrencySymbol)}
	if multi {
		header = append([]string{"Scenario"}, header...)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, p := range report.Projections {
		for _, pt := range p.Series {
			row := []string{strconv.Itoa(pt.Year), pt.Value.String()}
			if multi {
				row = append([]string{scenarioName(p, i)}, row...)
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// valueHeader names the value column after the report currency, e.g. "Value (₹)".
func valueHeader(symbol string) string {
	if symbol == "" {
		return "Value"
	}
	return "Value (" + symbol + ")"
}

// scenarioName labels unnamed projections by mode and position.
func scenarioName(p domain.Projection, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Inputs.Mode.Label() + " #" + strconv.Itoa(i+1)
}

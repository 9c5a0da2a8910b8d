package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/returns-calculator/internal/domain"
)

// CSVSummarizer writes one row per projection with its inputs and aggregate figures.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv-summary" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Mode", "Amount", "RatePercent", "Years", "Invested", "Returns", "TotalValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, p := range report.Projections {
		row := []string{
			scenarioName(p, i),
			string(p.Inputs.Mode),
			p.Inputs.Amount.String(),
			p.Inputs.RatePercent.String(),
			strconv.Itoa(p.Inputs.Years),
			p.Result.Contributed.String(),
			p.Result.Growth.String(),
			p.Result.Total.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

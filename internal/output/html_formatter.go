package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML page with the summary metrics,
// a donut chart of invested versus returns and a year-wise bar chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

// chart geometry, in SVG user units
const (
	chartHeight = 220
	slotWidth   = 36
	donutCircum = 100 // the donut circle uses r=15.915 so its circumference is 100
	donutStart  = 25  // dash offset that puts the start of a stroke at 12 o'clock
)

type htmlBar struct {
	Year   int
	X      int
	Y      int
	Height int
	Label  string
	Value  string
}

type htmlProjection struct {
	Title         string
	AmountLabel   string
	Amount        string
	Rate          string
	Years         int
	Invested      string
	Returns       string
	Total         string
	InvestedPct   string
	ReturnsPct    string
	InvestedDash  string
	ReturnsDash   string
	ReturnsOffset string
	Bars          []htmlBar
	ChartWidth    int
	ChartHeight   int
}

type htmlPage struct {
	DarkMode    bool
	GeneratedAt string
	Projections []htmlProjection
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	format := moneyFormatter(report.Grouping, report.CurrencySymbol)
	page := htmlPage{
		DarkMode:    report.DarkMode,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04 MST"),
	}

	for i, p := range report.Projections {
		share := AnalyzeResult(p.Result)
		arcs := donutArcs(share.ContributedPct)
		view := htmlProjection{
			Title:         scenarioName(p, i),
			AmountLabel:   p.Inputs.Mode.AmountLabel(),
			Amount:        format(p.Inputs.Amount),
			Rate:          p.Inputs.RatePercent.String(),
			Years:         p.Inputs.Years,
			Invested:      format(p.Result.Contributed),
			Returns:       format(p.Result.Growth),
			Total:         format(p.Result.Total),
			InvestedPct:   share.ContributedPct.StringFixed(1),
			ReturnsPct:    share.GrowthPct.StringFixed(1),
			InvestedDash:  arcs.investedDash,
			ReturnsDash:   arcs.returnsDash,
			ReturnsOffset: arcs.returnsOffset,
			ChartWidth:    len(p.Series) * slotWidth,
			ChartHeight:   chartHeight + 20,
		}

		max := p.Series.Max()
		for j, pt := range p.Series {
			height := 0
			if max.IsPositive() && pt.Value.IsPositive() {
				height = int(pt.Value.Decimal.Mul(decimal.NewFromInt(chartHeight)).DivRound(max.Decimal, 0).IntPart())
			}
			view.Bars = append(view.Bars, htmlBar{
				Year:   pt.Year,
				X:      j*slotWidth + 4,
				Y:      chartHeight - height,
				Height: height,
				Label:  FormatCompact(pt.Value),
				Value:  format(pt.Value),
			})
		}
		page.Projections = append(page.Projections, view)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type donutGeometry struct {
	investedDash  string
	returnsDash   string
	returnsOffset string
}

// donutArcs lays out the invested arc from 12 o'clock clockwise and the
// returns arc directly after it, so together they cover the circle once.
func donutArcs(investedPct decimal.Decimal) donutGeometry {
	circum := decimal.NewFromInt(donutCircum)
	invested := clampShare(investedPct)
	returns := circum.Sub(invested)

	offset := decimal.NewFromInt(donutStart).Sub(invested).Mod(circum)
	if offset.IsNegative() {
		offset = offset.Add(circum)
	}
	return donutGeometry{
		investedDash:  invested.StringFixed(2) + " " + returns.StringFixed(2),
		returnsDash:   returns.StringFixed(2) + " " + invested.StringFixed(2),
		returnsOffset: offset.StringFixed(2),
	}
}

// clampShare keeps donut segments drawable when growth is negative.
func clampShare(pct decimal.Decimal) decimal.Decimal {
	if pct.GreaterThan(decimalHundred) {
		return decimalHundred
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

package main

import (
	"fmt"

	"github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Prints the periodic summary total next to the last simulated year-end value
// for a range of rates. The ratio is one month of growth.
func main() {
	var engine calculation.PeriodicEngine
	amount := money.NewMoneyFromInt(10000)
	years := 10

	fmt.Println("Rate,SummaryTotal,ProjectedLast,Ratio")
	for _, r := range []int64{0, 1, 6, 8, 12, 15, 24, 100} {
		rate := decimal.NewFromInt(r)
		summary, err := engine.Summarize(amount, rate, years)
		if err != nil {
			fmt.Printf("%d,error: %v\n", r, err)
			continue
		}
		series, err := engine.Project(amount, rate, years)
		if err != nil {
			fmt.Printf("%d,error: %v\n", r, err)
			continue
		}
		last, _ := series.Last()
		ratio := summary.Total.Decimal.DivRound(last.Value.Decimal, 10)
		fmt.Printf("%d,%s,%s,%s\n", r, summary.Total, last.Value, ratio)
	}
}

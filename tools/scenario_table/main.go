package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/internal/config"
	"github.com/rpgo/returns-calculator/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: scenario_table <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewEngineWithLimits(cfg.Limits)
	res, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Rows run to the longest projection; shorter ones leave blanks
	maxLen := 0
	for _, s := range res {
		if len(s.Series) > maxLen {
			maxLen = len(s.Series)
		}
	}

	header := "Year"
	for i := range res {
		header += fmt.Sprintf(",S%d_Value,S%d_Contributed", i+1, i+1)
	}
	fmt.Println(header)

	for idx := 0; idx < maxLen; idx++ {
		row := fmt.Sprintf("%d", idx+1)
		for _, s := range res {
			if idx >= len(s.Series) {
				row += ",,"
				continue
			}
			pt := s.Series[idx]
			contributed := s.Inputs.Amount
			if s.Inputs.Mode == domain.ModePeriodic {
				contributed = s.Inputs.Amount.Times(12 * pt.Year)
			}
			row += fmt.Sprintf(",%s,%s", pt.Value.Decimal.StringFixed(0), contributed.Decimal.StringFixed(0))
		}
		fmt.Println(row)
	}

	fmt.Println()
	for i, s := range res {
		fmt.Printf("S%d %s: contributed=%s growth=%s total=%s\n", i+1, s.Name, s.Result.Contributed, s.Result.Growth, s.Result.Total)
	}
}

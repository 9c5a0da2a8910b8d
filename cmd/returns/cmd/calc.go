package cmd

import (
	"fmt"

	"github.com/rpgo/returns-calculator/internal/config"
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newCalcCommand(root *rootOptions) *cobra.Command {
	var (
		mode   string
		amount string
		rate   string
		years  int
		report reportFlags
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate returns for one investment",
		Example: `  returns calc --mode lumpsum --amount 800000 --rate 12 --years 10
  returns calc --mode sip --amount 10000 --rate 12 --years 10 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.load(cmd)
			if err != nil {
				return err
			}

			in := s.config.Settings.Inputs()
			if cmd.Flags().Changed("mode") {
				m, err := domain.ParseMode(mode)
				if err != nil {
					return err
				}
				in = s.config.Settings.InputsFor(m)
			}
			if cmd.Flags().Changed("amount") {
				m, err := money.NewMoneyFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				in.Amount = m
			}
			if cmd.Flags().Changed("rate") {
				d, err := decimal.NewFromString(rate)
				if err != nil {
					return fmt.Errorf("invalid rate %q: %w", rate, err)
				}
				in.RatePercent = d
			}
			if cmd.Flags().Changed("years") {
				in.Years = years
			}

			if !root.noLimits {
				if err := config.ValidateInputs(s.config.Limits, in); err != nil {
					return err
				}
			}

			p, err := s.engine.ComputeInputs(in)
			if err != nil {
				return err
			}
			return report.write(cmd, s, []domain.Projection{p})
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "investment mode: lumpsum or sip (default from config)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "lumpsum amount or monthly SIP amount")
	cmd.Flags().StringVarP(&rate, "rate", "r", "", "expected annual return rate in percent")
	cmd.Flags().IntVarP(&years, "years", "y", 0, "investment time period in years")
	report.register(cmd)
	return cmd
}

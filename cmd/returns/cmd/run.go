package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunCommand(root *rootOptions) *cobra.Command {
	var report reportFlags

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Calculate every scenario of a configuration file",
		Example: `  returns run scenarios.yaml --format csv-summary
  returns run --config scenarios.toml --format html --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				root.cfgFile = args[0]
			}
			if root.cfgFile == "" {
				return errors.New("a configuration file is required")
			}

			s, err := root.load(cmd)
			if err != nil {
				return err
			}
			if len(s.config.Scenarios) == 0 {
				return errors.New("configuration has no scenarios")
			}

			projections, err := s.engine.RunScenarios(cmd.Context(), s.config)
			if err != nil {
				return err
			}
			return report.write(cmd, s, projections)
		},
	}

	report.register(cmd)
	return cmd
}

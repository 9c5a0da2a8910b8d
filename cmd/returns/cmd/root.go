package cmd

import (
	"fmt"
	"io"

	"github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/internal/config"
	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/internal/output"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfgFile  string
	verbose  bool
	noLimits bool
}

// session is the state every command starts from.
type session struct {
	config *domain.Configuration
	env    *config.Environment
	logger calculation.Logger
	engine *calculation.Engine
}

// NewRootCommand builds the returns command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "returns",
		Short: "Investment returns calculator",
		Long: `returns projects the growth of an investment.

Modes:
  lumpsum  - a single deposit, compounded annually
  sip      - a fixed deposit at the start of every month, compounded monthly`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (YAML or TOML)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&opts.noLimits, "no-limits", false, "skip input range checks")

	root.AddCommand(
		newCalcCommand(opts),
		newRunCommand(opts),
		newServeCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// load reads the config file (if any), applies the environment and wires
// the logger and engine.
func (o *rootOptions) load(cmd *cobra.Command) (*session, error) {
	cfg := domain.DefaultConfiguration()
	if o.cfgFile != "" {
		loaded, err := config.NewInputParser().LoadFromFile(o.cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	env, err := config.LoadEnvironment(cfg)
	if err != nil {
		return nil, err
	}

	level := calculation.ParseLevel(env.LogLevel)
	if o.verbose {
		level = calculation.LevelDebug
	}
	logger := calculation.NewStdLogger(cmd.ErrOrStderr(), "returns: ", level)

	engine := calculation.NewEngineWithLimits(cfg.Limits)
	engine.SetLogger(logger)

	return &session{config: cfg, env: env, logger: logger, engine: engine}, nil
}

// reportFlags are the output flags shared by calc and run.
type reportFlags struct {
	format string
	out    string
	save   bool
	dark   bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: console, csv, csv-summary, html, json (default from config)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&f.save, "save", false, "write the report to a timestamped file")
	cmd.Flags().BoolVar(&f.dark, "dark", false, "use the dark theme")
}

func (f *reportFlags) write(cmd *cobra.Command, s *session, projections []domain.Projection) error {
	format := f.format
	if format == "" {
		format = s.config.Output.Format
	}
	report := output.NewReport(projections, s.config.Output, s.config.Settings.DarkMode || f.dark)

	if f.out == "" && !f.save {
		return output.GenerateReport(cmd.OutOrStdout(), report, format)
	}
	written, err := output.WriteReport(report, format, f.out)
	if err != nil {
		return err
	}
	s.logger.Infof("wrote %s report", output.NormalizeFormatName(format))
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
	return nil
}

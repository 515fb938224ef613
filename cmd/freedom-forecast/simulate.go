package main

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/internal/config"
	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/internal/optimizer"
	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/format"
	"github.com/iwvelando/freedom-forecast/pkg/output"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	name      string
	currency  string
	scenario  config.Scenario
	age       int
	profile   config.Profile
	solveYear int
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a single projection from flags without a configuration file",
		Example: `  freedom-forecast simulate --monthly 500 --return 7 --inflation 2 --target 1000000
  freedom-forecast simulate --monthly 500 --target 1000000 --age 30 --sex female --solve-years 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("age") {
				opts.profile.CurrentAge = &opts.age
			}
			return runSimulate(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "simulation", "scenario name")
	flags.StringVar(&opts.currency, "currency", constants.DefaultCurrency, "currency label")
	flags.Float64Var(&opts.scenario.InitialCapital, "initial", 0, "initial capital")
	flags.Float64Var(&opts.scenario.MonthlyContribution, "monthly", 0, "monthly contribution")
	flags.Float64Var(&opts.scenario.AnnualReturnRate, "return", 7, "annual return rate in percent")
	flags.Float64Var(&opts.scenario.AnnualInflationRate, "inflation", 2, "annual inflation rate in percent")
	flags.Float64Var(&opts.scenario.TargetCapital, "target", 0, "target capital in today's money")
	flags.IntVar(&opts.scenario.MaxPeriods, "max-periods", 0, "maximum number of years to simulate")
	flags.IntVar(&opts.age, "age", 0, "current age")
	flags.StringVar(&opts.profile.Sex, "sex", "", "sex for the life expectancy lookup (male, female)")
	flags.IntVar(&opts.profile.LifeExpectancy, "life-expectancy", 0, "life expectancy override")
	flags.IntVar(&opts.solveYear, "solve-years", 0, "solve for the monthly contribution that reaches the target within this many years")

	return cmd
}

func runSimulate(cmd *cobra.Command, root *rootOptions, opts *simulateOptions) error {
	logger, err := initializeLogger(config.LoggingConfig{}, root.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := root.resolveOutputFormat("")
	if err != nil {
		return err
	}

	currency := format.NormalizeCurrency(opts.currency)
	opts.scenario.Name = opts.name
	input, err := opts.scenario.ToInput(opts.profile)
	if err != nil {
		return err
	}

	result, err := forecast.Simulate(logger, opts.name, input, currency)
	if err != nil {
		return err
	}

	if opts.solveYear > 0 {
		runner, err := optimizer.NewRunner(logger, config.SolverConfig{Enabled: true, TargetYears: opts.solveYear})
		if err != nil {
			return fmt.Errorf("failed to initialize solver: %w", err)
		}
		summary, err := runner.SolveContribution(opts.name, input, opts.solveYear, currency)
		if err != nil {
			return err
		}
		result.Solver = &summary
	}

	return output.Write(cmd.OutOrStdout(), outputFormat, []forecast.Forecast{result})
}

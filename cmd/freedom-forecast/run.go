package main

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Forecast every active scenario in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd, opts)
		},
	}
}

func runForecast(cmd *cobra.Command, opts *rootOptions) error {
	conf, logger, err := opts.loadConfig()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := opts.resolveOutputFormat(conf.Output.Format)
	if err != nil {
		return err
	}

	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		logger.Error("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return fmt.Errorf("failed to compute forecast: %w", err)
	}

	return output.Write(cmd.OutOrStdout(), outputFormat, results)
}

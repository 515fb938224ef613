package main

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/internal/config"
	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath   string
	outputFormat string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "freedom-forecast",
		Short:        "Financial independence projection",
		Long:         "Project how many years a savings plan needs to reach an inflation-adjusted target capital.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.outputFormat, "output-format", "o", "", "output format override: pretty, csv, json, markdown")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newSimulateCmd(opts),
		newCompareCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// loadConfig reads the configuration file and builds the logger it describes.
func (o *rootOptions) loadConfig() (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", o.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return conf, logger, nil
}

// resolveOutputFormat applies the CLI override over the configured format.
func (o *rootOptions) resolveOutputFormat(configured string) (string, error) {
	outputFormat := configured
	if o.outputFormat != "" {
		outputFormat = o.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

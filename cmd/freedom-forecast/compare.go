package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/internal/projection"
	"github.com/iwvelando/freedom-forecast/pkg/mathutil"
	"github.com/iwvelando/freedom-forecast/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompareCmd(root *rootOptions) *cobra.Command {
	var rawVariants []string

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Compare contribution and return variants of the first active scenario",
		Example: `  freedom-forecast compare --variant current:500:7 --variant double:1000:7 --variant cautious:500:4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variants, err := parseVariants(rawVariants)
			if err != nil {
				return err
			}
			return runCompare(cmd, root, variants)
		},
	}

	cmd.Flags().StringArrayVarP(&rawVariants, "variant", "v", nil, "variant as name:monthlyContribution:returnPercent (repeatable)")
	_ = cmd.MarkFlagRequired("variant")
	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, variants []projection.Variant) error {
	conf, logger, err := root.loadConfig()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := root.resolveOutputFormat(conf.Output.Format)
	if err != nil {
		return err
	}

	results, err := forecast.Compare(logger, *conf, variants)
	if err != nil {
		logger.Error("failed to compare scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return fmt.Errorf("failed to compare scenarios: %w", err)
	}

	return output.Write(cmd.OutOrStdout(), outputFormat, results)
}

// parseVariants reads name:monthlyContribution:returnPercent triples. The
// name may be empty.
func parseVariants(raw []string) ([]projection.Variant, error) {
	variants := make([]projection.Variant, 0, len(raw))
	for _, value := range raw {
		parts := strings.Split(value, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid variant %q: expected name:monthlyContribution:returnPercent", value)
		}

		contribution, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant %q contribution: %w", value, err)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant %q return rate: %w", value, err)
		}

		variants = append(variants, projection.Variant{
			Name:                strings.TrimSpace(parts[0]),
			MonthlyContribution: contribution,
			AnnualReturnRate:    mathutil.PercentToFraction(rate),
		})
	}
	return variants, nil
}

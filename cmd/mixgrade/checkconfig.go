package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mixgrade/mixgrade/configs"
	"github.com/mixgrade/mixgrade/internal/scoring"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate configuration and show the resolved scoring calibration",
	RunE:  runCheckConfig,
}

func init() {
	rootCmd.AddCommand(checkConfigCmd)
}

func runCheckConfig(cmd *cobra.Command, args []string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration OK\n\n")
	fmt.Fprintf(out, "Scoring method: %s\n", config.Scoring.Method)

	weights := config.Scoring.CategoryWeights()
	caps := config.Scoring.CategoryCaps()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tWEIGHT\tPENALTY CAP")
	for _, category := range scoring.CategoryOrder {
		weight, ok := weights[category]
		if !ok {
			continue
		}
		capLabel := "-"
		if points, hasCap := caps[category]; hasCap {
			capLabel = fmt.Sprintf("%.0f", points)
		}
		fmt.Fprintf(tw, "%s\t%.0f%%\t%s\n", category, weight, capLabel)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTrue peak ceiling: %.1f dBTP\n", config.Suggestions.EngineConfig().TruePeakCeiling)
	fmt.Fprintf(out, "Correlation alerts: critical < %.2f, warning < %.2f\n",
		config.Suggestions.EngineConfig().CorrelationCritical,
		config.Suggestions.EngineConfig().CorrelationWarning)
	fmt.Fprintf(out, "Reference defaults: target %.1f, tolerance %.1f\n",
		config.Reference.ResolverDefaults().Target,
		config.Reference.ResolverDefaults().Tolerance)

	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mixgrade/mixgrade/configs"
	"github.com/mixgrade/mixgrade/internal/report"
)

// renderResult writes a ScoreResult in the configured output format.
func renderResult(w io.Writer, result report.ScoreResult, config *configs.Config) error {
	format := viper.GetString("output_format")
	if format == "" {
		format = config.OutputFormat
	}

	switch format {
	case "json":
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(encoded))
		return err
	case "yaml":
		encoded, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprint(w, string(encoded))
		return err
	case "table", "":
		return renderTable(w, result, config.Output.Precision)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, result report.ScoreResult, precision int) error {
	fmt.Fprintf(w, "Overall: %d/100  (%s)\n", result.OverallScore, result.Classification)
	fmt.Fprintf(w, "Method: %s  Engine: %s\n", result.Method, result.EngineVersion)
	if result.InsufficientData {
		fmt.Fprintln(w, "Insufficient data: no usable metrics in input")
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSCORE\tMETRICS")
	for _, category := range result.Categories {
		fmt.Fprintf(tw, "%s\t%.*f\t%d\n",
			category.Name, precision, category.Score, len(category.Metrics))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMEASURED\tTARGET\tSCORE\tSEVERITY")
	for _, ms := range result.PerMetric {
		fmt.Fprintf(tw, "%s\t%.*f\t%.*f\t%.*f\t%s\n",
			ms.Key,
			precision, ms.Measured,
			precision, ms.Target,
			precision, ms.Score,
			ms.Severity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(result.Alerts) > 0 {
		fmt.Fprintln(w)
		for _, alert := range result.Alerts {
			fmt.Fprintf(w, "ALERT [%s] %s\n", alert.Severity, alert.Message)
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggestions (highest priority first):")
		for i, suggestion := range result.Suggestions {
			fmt.Fprintf(w, "%d. [%s] %s\n   %s\n",
				i+1, suggestion.Severity, suggestion.Message, suggestion.Action)
		}
	}

	return nil
}

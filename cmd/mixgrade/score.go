package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mixgrade/mixgrade"
	"github.com/mixgrade/mixgrade/configs"
	"github.com/mixgrade/mixgrade/internal/reference"
	"github.com/mixgrade/mixgrade/pkg/logging"
)

var (
	scoreGenre      string
	scoreProfileDir string
)

var scoreCmd = &cobra.Command{
	Use:   "score <metrics.json>",
	Short: "Score an extracted metrics file against a genre reference",
	Long: `Score reads a metrics JSON document produced by the feature
extractor and scores it against the reference profile for the given genre.

The metrics document is a flat or lightly nested object; unknown keys are
ignored and missing metrics are tolerated:

  {
    "lufsIntegrated": -9.2,
    "truePeakDbtp": -0.9,
    "dr": 7.4,
    "stereoCorrelation": 0.41,
    "bandEnergies": { "sub": {"rms_db": -10.8}, "bass": {"rms_db": -12.1} }
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreGenre, "genre", "g", reference.NeutralGenre,
		"genre reference profile to score against")
	scoreCmd.Flags().StringVar(&scoreProfileDir, "profile-dir", "",
		"directory with additional genre profile JSON files")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	config, engine, err := buildEngine()
	if err != nil {
		return err
	}

	if scoreProfileDir == "" {
		scoreProfileDir = config.Reference.ProfileDir
	}
	if scoreProfileDir != "" {
		if err := engine.Profiles().LoadDir(scoreProfileDir); err != nil {
			return fmt.Errorf("failed to load profile directory: %w", err)
		}
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read metrics file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse metrics file: %w", err)
	}

	result := engine.Score(raw, scoreGenre)
	return renderResult(cmd.OutOrStdout(), result, config)
}

// buildEngine constructs the scoring engine from the resolved configuration.
func buildEngine() (*configs.Config, *mixgrade.Engine, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := configs.ValidateConfig(config); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(config.LogLevel)
	if viper.GetBool("verbose") {
		logger = logging.NewLogger("debug")
	}

	engine, err := mixgrade.NewEngine(&mixgrade.EngineConfig{
		Method:           config.Scoring.Method,
		Weights:          config.Scoring.CategoryWeights(),
		Caps:             config.Scoring.CategoryCaps(),
		ResolverDefaults: config.Reference.ResolverDefaults(),
		Suggestions:      config.Suggestions.EngineConfig(),
		Logger:           logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return config, engine, nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var genresProfileDir string

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List available genre reference profiles",
	RunE:  runGenres,
}

func init() {
	genresCmd.Flags().StringVar(&genresProfileDir, "profile-dir", "",
		"directory with additional genre profile JSON files")

	rootCmd.AddCommand(genresCmd)
}

func runGenres(cmd *cobra.Command, args []string) error {
	config, engine, err := buildEngine()
	if err != nil {
		return err
	}

	if genresProfileDir == "" {
		genresProfileDir = config.Reference.ProfileDir
	}
	if genresProfileDir != "" {
		if err := engine.Profiles().LoadDir(genresProfileDir); err != nil {
			return fmt.Errorf("failed to load profile directory: %w", err)
		}
	}

	store := engine.Profiles()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GENRE\tNAME\tLUFS\tTRUE PEAK\tDR\tBANDS")
	for _, genre := range store.Genres() {
		profile, ok := store.Get(genre)
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			profile.Genre,
			profile.DisplayName,
			formatTarget(profile.LUFSTarget, profile.TolLUFS),
			formatTarget(profile.TruePeakTarget, profile.TolTruePeak),
			formatTarget(profile.DRTarget, profile.TolDR),
			len(profile.Bands))
	}
	return tw.Flush()
}

func formatTarget(target, tolerance *float64) string {
	if target == nil {
		return "-"
	}
	if tolerance == nil {
		return fmt.Sprintf("%.1f", *target)
	}
	return fmt.Sprintf("%.1f ±%.1f", *target, *tolerance)
}

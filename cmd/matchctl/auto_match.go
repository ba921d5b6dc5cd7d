package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goodscary/firstrubyfriend/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

var autoMatchCmd = &cobra.Command{
	Use:   "auto-match",
	Short: "Propose a pending mentorship for every unmatched applicant",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, app *container.Container) error {
			minimum := app.Config.Matching.MinimumScore
			if cmd.Flags().Changed("minimum-score") {
				minimum, _ = cmd.Flags().GetInt("minimum-score")
			}

			report, err := app.AutoMatch.AutoMatchAll(ctx, minimum)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.Success {
				return fmt.Errorf("%d applicant(s) could not be matched", report.FailureCount)
			}
			return nil
		})
	},
}

func init() {
	autoMatchCmd.Flags().Int("minimum-score", 0, "minimum score for a proposal (default from MATCH_MINIMUM_SCORE)")
	rootCmd.AddCommand(autoMatchCmd)
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/goodscary/firstrubyfriend/internal/infrastructure/container"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var findMatchesCmd = &cobra.Command{
	Use:   "find-matches <applicant-id>",
	Short: "Print ranked mentor candidates for an applicant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applicantID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid applicant id %q: %w", args[0], err)
		}

		return withContainer(cmd, func(ctx context.Context, app *container.Container) error {
			candidates, err := app.Matching.FindMatches(ctx, applicantID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCORE\tMENTOR\tEMAIL\tCOUNTRY\tDISTANCE\tPREFERENCE")
			for _, c := range candidates {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
					c.Score, c.Mentor.ID, c.Mentor.Email,
					c.Breakdown.Country, c.Breakdown.Distance, c.Breakdown.Preference,
				)
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(findMatchesCmd)
}

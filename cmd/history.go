package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		assessmentID, _ := cmd.Flags().GetString("assessment")

		s, err := openStore(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.EventRepo().QueryResults(cmd.Context(), store.QueryOpts{
			Limit:        limit,
			AssessmentID: assessmentID,
		})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-28s  %5s  %-4s  %7s  %6s  %-12s  %s\n",
			"Taken", "Assessment", "Score", "", "Correct", "Time", "Level", "Submitted")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range results {
			verdict := "fail"
			if r.Passed {
				verdict = "pass"
			}
			fmt.Fprintf(out, "%-16s  %-28s  %4d%%  %-4s  %7s  %6s  %-12s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(r.AssessmentName, 28),
				r.Score,
				verdict,
				fmt.Sprintf("%d/%d", r.CorrectAnswers, r.TotalQuestions),
				assessment.FormatClock(int(r.Elapsed/time.Second)),
				catalog.Level(r.Proficiency).DisplayName(),
				r.Trigger,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
	historyCmd.Flags().StringP("assessment", "a", "", "Only show results for this assessment ID")
}

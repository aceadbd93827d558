package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View recruitment statistics",
	Long:  "Display totals for jobs, candidates and assessments and the hiring pipeline breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		stats, err := a.Store.Stats(ctx)
		if err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}

		cmd.Println(titleStyle.Render("Recruitment Statistics"))
		cmd.Printf("%s\n", labelStyle.Render("Overview"))
		cmd.Printf("  Jobs: %d\n", stats.Jobs)
		cmd.Printf("  Candidates: %d\n", stats.Candidates)
		cmd.Printf("  Assessments: %d\n", stats.Assessments)

		if stats.Candidates == 0 {
			return nil
		}

		candidates, err := a.Store.ListCandidates(ctx, database.CandidateFilters{})
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}
		breakdown := pipelineBreakdown(candidates)

		// Stage breakdown
		cmd.Printf("\n%s\n", labelStyle.Render("Pipeline"))
		for _, stage := range models.Stages {
			count := breakdown[stage]
			percentage := float64(count) / float64(len(candidates)) * 100
			cmd.Printf("  %s: %d (%.1f%%)\n", stageLabel(stage), count, percentage)
		}
		return nil
	},
}

// pipelineBreakdown counts candidates per stage
func pipelineBreakdown(candidates []*models.Candidate) map[string]int {
	breakdown := make(map[string]int, len(models.Stages))
	for _, c := range candidates {
		breakdown[c.Stage]++
	}
	return breakdown
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

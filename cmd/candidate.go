package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/internal/matcher"
	"github.com/khrees2412/recruiter/pkg/models"
)

var candidateCmd = &cobra.Command{
	Use:     "candidate",
	Aliases: []string{"candidates"},
	Short:   "Manage candidates",
	Long:    "Add candidates, move them through hiring stages and review their timeline",
}

var addCandidateCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a candidate",
	Example: `  recruiter candidate add --name "Ada Lovelace" --email ada@example.com --job <job-id>
  recruiter candidate add --name "Grace Hopper" --stage screen`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var c models.Candidate
		c.ID, _ = flags.GetString("id")
		c.Name, _ = flags.GetString("name")
		c.Email, _ = flags.GetString("email")
		c.Phone, _ = flags.GetString("phone")
		c.Stage, _ = flags.GetString("stage")
		c.JobID, _ = flags.GetString("job")
		c.Resume, _ = flags.GetString("resume")
		c.CoverLetter, _ = flags.GetString("cover-letter")

		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: --name is required", app.ErrInvalidArgument)
		}
		if c.Stage != "" && !models.IsStage(c.Stage) {
			return fmt.Errorf("%w: %q", app.ErrInvalidStage, c.Stage)
		}

		created, err := a.Store.CreateCandidate(cmd.Context(), c)
		if err != nil {
			return fmt.Errorf("save candidate: %w", err)
		}

		cmd.Printf("✓ Candidate added: %s (ID: %s)\n", created.Name, created.ID)
		return nil
	},
}

var listCandidatesCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		var f database.CandidateFilters
		f.Stage, _ = cmd.Flags().GetString("stage")
		f.JobID, _ = cmd.Flags().GetString("job")
		f.Search, _ = cmd.Flags().GetString("search")
		candidates, err := a.Store.ListCandidates(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}

		if len(candidates) == 0 {
			cmd.Println("No candidates found.")
			return nil
		}

		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		items, meta := models.Paginate(candidates, page, pageSize)

		cmd.Println(titleStyle.Render("Candidates"))
		for _, c := range items {
			cmd.Printf("\n%s %s\n", labelStyle.Render(c.Name), valueStyle.Render("<"+c.Email+">"))
			cmd.Printf("   %s %s\n", labelStyle.Render("Stage:"), stageLabel(c.Stage))
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), valueStyle.Render(c.ID))
		}
		printPageFooter(cmd, meta)
		return nil
	},
}

var showCandidateCmd = &cobra.Command{
	Use:   "show <candidate-id>",
	Short: "Show a candidate with notes and recent activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		c, err := a.Store.GetCandidate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch candidate: %w", err)
		}
		if c == nil {
			return fmt.Errorf("candidate %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Println(titleStyle.Render(c.Name))
		cmd.Printf("%s %s\n", labelStyle.Render("Email:"), c.Email)
		if c.Phone != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Phone:"), c.Phone)
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Stage:"), stageLabel(c.Stage))
		if c.JobID != "" {
			job, err := a.Store.GetJob(ctx, c.JobID)
			if err != nil {
				return fmt.Errorf("fetch job: %w", err)
			}
			if job != nil {
				cmd.Printf("%s %s\n", labelStyle.Render("Job:"), job.Title)
			} else {
				cmd.Printf("%s %s %s\n", labelStyle.Render("Job:"), c.JobID, valueStyle.Render("(removed)"))
			}
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Applied:"), c.CreatedAt.Local().Format("Jan 2, 2006"))

		notes, err := a.Store.CandidateNotes(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("fetch notes: %w", err)
		}
		if len(notes) > 0 {
			cmd.Println(labelStyle.Render("\nNotes:"))
			for _, n := range notes {
				cmd.Printf("  %s %s\n", valueStyle.Render(n.CreatedAt.Local().Format("Jan 2")), n.Content)
			}
		}

		events, err := a.Store.CandidateTimeline(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("fetch timeline: %w", err)
		}
		if len(events) > 5 {
			events = events[:5]
		}
		if len(events) > 0 {
			cmd.Println(labelStyle.Render("\nRecent Activity:"))
			printEvents(cmd, events)
		}
		return nil
	},
}

var stageCandidateCmd = &cobra.Command{
	Use:   "stage <candidate-id> <stage>",
	Short: "Move a candidate to another hiring stage",
	Long:  "Move a candidate to another hiring stage. Stages: " + strings.Join(models.Stages, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		stage := strings.ToLower(args[1])
		if !models.IsStage(stage) {
			return fmt.Errorf("%w: %q (must be one of %s)", app.ErrInvalidStage, args[1], strings.Join(models.Stages, ", "))
		}

		c, err := a.Store.UpdateCandidate(cmd.Context(), args[0], models.CandidatePatch{Stage: &stage})
		if err != nil {
			return fmt.Errorf("update candidate: %w", err)
		}
		if c == nil {
			return fmt.Errorf("candidate %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Printf("✓ %s moved to %s\n", c.Name, stageLabel(c.Stage))
		return nil
	},
}

var updateCandidateCmd = &cobra.Command{
	Use:   "update <candidate-id>",
	Short: "Update contact details of a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		patch := models.CandidatePatch{
			Name:        changedString(flags, "name"),
			Email:       changedString(flags, "email"),
			Phone:       changedString(flags, "phone"),
			JobID:       changedString(flags, "job"),
			Resume:      changedString(flags, "resume"),
			CoverLetter: changedString(flags, "cover-letter"),
		}

		c, err := a.Store.UpdateCandidate(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("update candidate: %w", err)
		}
		if c == nil {
			return fmt.Errorf("candidate %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Printf("✓ Candidate updated: %s\n", c.Name)
		return nil
	},
}

var removeCandidateCmd = &cobra.Command{
	Use:   "remove <candidate-id>",
	Short: "Remove a candidate with their notes, timeline and responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		c, err := a.Store.GetCandidate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch candidate: %w", err)
		}
		if c == nil {
			return fmt.Errorf("candidate %s: %w", args[0], app.ErrNotFound)
		}

		if err := a.Store.DeleteCandidate(ctx, c.ID); err != nil {
			return fmt.Errorf("remove candidate: %w", err)
		}

		cmd.Printf("✓ Removed candidate: %s\n", c.Name)
		return nil
	},
}

var timelineCandidateCmd = &cobra.Command{
	Use:   "timeline <candidate-id>",
	Short: "Show the full activity timeline of a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		events, err := a.Store.CandidateTimeline(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch timeline: %w", err)
		}
		if len(events) == 0 {
			cmd.Println("No activity recorded for this candidate.")
			return nil
		}

		cmd.Println(titleStyle.Render("Timeline"))
		printEvents(cmd, events)
		return nil
	},
}

var matchCandidatesCmd = &cobra.Command{
	Use:   "match <job-id>",
	Short: "Rank a job's candidates by how well their resume covers it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		job, err := a.Store.GetJob(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}
		if job == nil {
			return fmt.Errorf("job %s: %w", args[0], app.ErrNotFound)
		}

		candidates, err := a.Store.ListCandidates(ctx, database.CandidateFilters{JobID: job.ID})
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}
		if len(candidates) == 0 {
			cmd.Println("No candidates have applied for this job.")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		ranked := matcher.RankCandidates(job, candidates)
		if limit > 0 && len(ranked) > limit {
			ranked = ranked[:limit]
		}

		cmd.Println(titleStyle.Render("Best Matches for " + job.Title))
		for i, r := range ranked {
			cmd.Printf("%s %s %s %s\n", labelStyle.Render(fmt.Sprintf("%2d.", i+1)), r.Candidate.Name,
				valueStyle.Render(fmt.Sprintf("%.0f%%", r.Score*100)), valueStyle.Render(stageLabel(r.Candidate.Stage)))
		}
		return nil
	},
}

func printEvents(cmd *cobra.Command, events []*models.TimelineEvent) {
	for _, e := range events {
		cmd.Printf("  %s %s\n", valueStyle.Render(e.CreatedAt.Local().Format("Jan 2 15:04")), labelStyle.Render(e.Title))
		if e.Description != "" {
			cmd.Printf("    %s\n", e.Description)
		}
	}
}

// stageLabel returns the display label of a stage
func stageLabel(stage string) string {
	if label, ok := models.StageLabels[stage]; ok {
		return label
	}
	return titleCase(stage)
}

func addCandidateFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("job", "", "ID of the job applied for")
	cmd.Flags().String("resume", "", "Resume reference")
	cmd.Flags().String("cover-letter", "", "Cover letter text")
}

func init() {
	rootCmd.AddCommand(candidateCmd)
	candidateCmd.AddCommand(addCandidateCmd)
	candidateCmd.AddCommand(listCandidatesCmd)
	candidateCmd.AddCommand(showCandidateCmd)
	candidateCmd.AddCommand(stageCandidateCmd)
	candidateCmd.AddCommand(updateCandidateCmd)
	candidateCmd.AddCommand(removeCandidateCmd)
	candidateCmd.AddCommand(timelineCandidateCmd)
	candidateCmd.AddCommand(matchCandidatesCmd)

	addCandidateFieldFlags(addCandidateCmd)
	addCandidateCmd.Flags().String("id", "", "Explicit candidate ID (an existing candidate with this ID is overwritten)")
	addCandidateCmd.Flags().String("stage", models.StageApplied, "Initial stage")

	addCandidateFieldFlags(updateCandidateCmd)

	listCandidatesCmd.Flags().String("stage", "all", "Filter by stage")
	listCandidatesCmd.Flags().String("job", "all", "Filter by job ID")
	listCandidatesCmd.Flags().String("search", "", "Search name and email")
	addPageFlags(listCandidatesCmd)

	matchCandidatesCmd.Flags().Int("limit", 10, "Number of candidates to show (0 for all)")
}

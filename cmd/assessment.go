package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/internal/matcher"
	"github.com/khrees2412/recruiter/pkg/models"
)

var assessmentCmd = &cobra.Command{
	Use:     "assessment",
	Aliases: []string{"assessments"},
	Short:   "Manage job assessments and submissions",
}

var listAssessmentsCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		var f database.AssessmentFilters
		f.JobID, _ = cmd.Flags().GetString("job")
		f.Status, _ = cmd.Flags().GetString("status")
		assessments, err := a.Store.ListAssessments(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("fetch assessments: %w", err)
		}
		if len(assessments) == 0 {
			cmd.Println("No assessments found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Assessments"))
		for _, as := range assessments {
			cmd.Printf("\n%s\n", labelStyle.Render(as.Title))
			cmd.Printf("   %s %d in %d sections\n", labelStyle.Render("Questions:"), as.QuestionCount(), len(as.Sections))
			if as.Status != "" {
				cmd.Printf("   %s %s\n", labelStyle.Render("Status:"), titleCase(as.Status))
			}
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), valueStyle.Render(as.ID))
		}
		return nil
	},
}

var showAssessmentCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show the sections and questions of an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		as, err := a.Store.GetAssessment(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch assessment: %w", err)
		}
		if as == nil {
			return fmt.Errorf("assessment %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Println(titleStyle.Render(as.Title))
		if as.Description != "" {
			cmd.Println(as.Description)
		}
		if as.Settings.TimeLimit != nil {
			cmd.Printf("%s %d minutes\n", labelStyle.Render("Time Limit:"), *as.Settings.TimeLimit)
		}

		for si, section := range as.Sections {
			cmd.Printf("\n%s\n", labelStyle.Render(section.Title))
			for qi, q := range section.Questions {
				required := ""
				if q.Required {
					required = " *"
				}
				cmd.Printf("  [%s] %s%s %s\n", models.QuestionKey(si, qi), q.Title, required,
					valueStyle.Render("("+titleCase(strings.ReplaceAll(q.Type, "_", " "))+")"))
				for oi, opt := range q.Options {
					cmd.Printf("        %d. %s\n", oi, opt)
				}
			}
		}
		return nil
	},
}

var removeAssessmentCmd = &cobra.Command{
	Use:   "remove <assessment-id>",
	Short: "Remove an assessment with its responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := a.Store.DeleteAssessment(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove assessment: %w", err)
		}

		cmd.Println("✓ Assessment removed")
		return nil
	},
}

var submitAssessmentCmd = &cobra.Command{
	Use:   "submit <assessment-id>",
	Short: "Record a candidate's answers to an assessment",
	Long: `Record a candidate's answers to an assessment. Each --answer is KEY=VALUE
where KEY is the question key shown by 'assessment show'. Choice answers are
comma separated option indices; file answers are a file name.`,
	Example: `  recruiter assessment submit <assessment-id> --candidate <candidate-id> \
    --answer 0-0=5 --answer 0-1=2 --answer 1-0=0,3 --answer 0-3=resume.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		candidateID, _ := cmd.Flags().GetString("candidate")
		pairs, _ := cmd.Flags().GetStringArray("answer")
		spent, _ := cmd.Flags().GetDuration("time-spent")

		as, err := a.Store.GetAssessment(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch assessment: %w", err)
		}
		if as == nil {
			return fmt.Errorf("assessment %s: %w", args[0], app.ErrNotFound)
		}
		c, err := a.Store.GetCandidate(ctx, candidateID)
		if err != nil {
			return fmt.Errorf("fetch candidate: %w", err)
		}
		if c == nil {
			return fmt.Errorf("candidate %s: %w", candidateID, app.ErrNotFound)
		}

		if !as.Settings.AllowMultipleAttempts {
			previous, err := a.Store.AssessmentResponse(ctx, c.ID, as.ID)
			if err != nil {
				return fmt.Errorf("fetch previous response: %w", err)
			}
			if previous != nil {
				return fmt.Errorf("%w: %s already completed this assessment", app.ErrInvalidArgument, c.Name)
			}
		}

		responses, err := parseAnswers(as, pairs)
		if err != nil {
			return err
		}
		if err := as.ValidateResponses(responses); err != nil {
			var verrs models.ValidationErrors
			if errors.As(err, &verrs) {
				for _, v := range verrs {
					cmd.PrintErrf("  %s %s\n", labelStyle.Render(v.QuestionKey), errorStyle.Render(v.Message))
				}
			}
			return fmt.Errorf("%w: the answers did not pass validation", app.ErrInvalidArgument)
		}

		completed := models.Now()
		response := models.AssessmentResponse{
			CandidateID:  c.ID,
			AssessmentID: as.ID,
			Responses:    responses,
			CompletedAt:  &completed,
			Score:        models.Ptr(matcher.ScoreResponses(as, responses)),
		}
		if spent > 0 {
			response.TimeSpent = models.Ptr(spent.Milliseconds())
		}

		saved, err := a.Store.CreateAssessmentResponse(ctx, response)
		if err != nil {
			return fmt.Errorf("save response: %w", err)
		}

		cmd.Printf("✓ %s completed %s with a score of %.0f%% (response ID: %s)\n", c.Name, as.Title, *saved.Score, saved.ID)
		return nil
	},
}

var responsesAssessmentCmd = &cobra.Command{
	Use:   "responses <assessment-id>",
	Short: "List submitted responses to an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		responses, err := a.Store.AssessmentResponses(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch responses: %w", err)
		}
		if len(responses) == 0 {
			cmd.Println("No responses yet.")
			return nil
		}

		cmd.Println(titleStyle.Render("Responses"))
		for _, r := range responses {
			name := r.CandidateID
			if c, err := a.Store.GetCandidate(ctx, r.CandidateID); err == nil && c != nil {
				name = c.Name
			}
			cmd.Printf("\n%s %s\n", labelStyle.Render(name), valueStyle.Render(r.CreatedAt.Local().Format("Jan 2, 2006 15:04")))
			if r.TimeSpent != nil {
				cmd.Printf("   %s %s\n", labelStyle.Render("Time Spent:"), (time.Duration(*r.TimeSpent) * time.Millisecond).Round(time.Second))
			}
			if r.Score != nil {
				cmd.Printf("   %s %.1f\n", labelStyle.Render("Score:"), *r.Score)
			}
			cmd.Printf("   %s %d\n", labelStyle.Render("Answers:"), len(r.Responses))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessmentCmd)
	assessmentCmd.AddCommand(listAssessmentsCmd)
	assessmentCmd.AddCommand(showAssessmentCmd)
	assessmentCmd.AddCommand(removeAssessmentCmd)
	assessmentCmd.AddCommand(submitAssessmentCmd)
	assessmentCmd.AddCommand(responsesAssessmentCmd)

	listAssessmentsCmd.Flags().String("job", "all", "Filter by job ID")
	listAssessmentsCmd.Flags().String("status", "all", "Filter by status")

	submitAssessmentCmd.Flags().String("candidate", "", "ID of the candidate taking the assessment")
	submitAssessmentCmd.Flags().StringArray("answer", nil, "Answer as KEY=VALUE (repeatable)")
	submitAssessmentCmd.Flags().Duration("time-spent", 0, "Time taken, e.g. 25m")
	_ = submitAssessmentCmd.MarkFlagRequired("candidate")
}

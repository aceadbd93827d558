package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/pkg/models"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job postings",
	Long:  "Add, list, view, reorder, archive and remove job postings",
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job posting",
	Example: `  recruiter job add --title "Backend Engineer" --department Engineering --location Remote
  recruiter job add --title "Designer" --tags remote,figma --type contract`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		flags := cmd.Flags()
		title, _ := flags.GetString("title")
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("%w: --title is required", app.ErrInvalidArgument)
		}
		id, _ := flags.GetString("id")
		slug, _ := flags.GetString("slug")
		if slug == "" {
			slug = models.Slugify(title)
		}

		order, _ := flags.GetInt("order")
		if !flags.Changed("order") {
			// new jobs go to the end of the board
			existing, err := a.Store.ListJobs(ctx, database.JobFilters{})
			if err != nil {
				return fmt.Errorf("fetch jobs: %w", err)
			}
			order = len(existing)
		}

		job := models.Job{ID: id, Title: title, Slug: slug, Order: order}
		job.Status, _ = flags.GetString("status")
		job.Tags, _ = flags.GetStringSlice("tags")
		job.Description, _ = flags.GetString("description")
		job.Requirements, _ = flags.GetStringSlice("requirements")
		job.Benefits, _ = flags.GetStringSlice("benefits")
		job.Location, _ = flags.GetString("location")
		job.Salary, _ = flags.GetString("salary")
		job.Type, _ = flags.GetString("type")
		job.Department, _ = flags.GetString("department")

		created, err := a.Store.CreateJob(ctx, job)
		if err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		cmd.Printf("✓ Job added: %s (ID: %s)\n", created.Title, created.ID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs in board order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")
		jobs, err := a.Store.ListJobs(cmd.Context(), database.JobFilters{Status: status, Search: search})
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		if len(jobs) == 0 {
			cmd.Println("No jobs found. Add jobs with 'recruiter job add --title TITLE'")
			return nil
		}

		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		items, meta := models.Paginate(jobs, page, pageSize)

		cmd.Println(titleStyle.Render("Jobs"))
		for _, job := range items {
			cmd.Printf("\n%s %s\n", labelStyle.Render(fmt.Sprintf("#%d", job.Order)), job.Title)
			cmd.Printf("   %s %s\n", labelStyle.Render("Status:"), titleCase(job.Status))
			if job.Department != "" || job.Location != "" {
				cmd.Printf("   %s %s\n", labelStyle.Render("Where:"), strings.Trim(job.Department+" · "+job.Location, " ·"))
			}
			if len(job.Tags) > 0 {
				cmd.Printf("   %s %s\n", labelStyle.Render("Tags:"), strings.Join(job.Tags, ", "))
			}
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), valueStyle.Render(job.ID))
		}
		printPageFooter(cmd, meta)
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show details of a specific job",
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

		cmd.Println(titleStyle.Render(job.Title))
		cmd.Printf("%s %s\n", labelStyle.Render("Slug:"), job.Slug)
		cmd.Printf("%s %s\n", labelStyle.Render("Status:"), titleCase(job.Status))
		cmd.Printf("%s %s\n", labelStyle.Render("Type:"), titleCase(job.Type))
		if job.Department != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Department:"), job.Department)
		}
		if job.Location != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Location:"), job.Location)
		}
		if job.Salary != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Salary:"), job.Salary)
		}
		if len(job.Tags) > 0 {
			cmd.Printf("%s %s\n", labelStyle.Render("Tags:"), strings.Join(job.Tags, ", "))
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Added:"), job.CreatedAt.Local().Format("Jan 2, 2006 15:04"))

		if job.Description != "" {
			cmd.Println(labelStyle.Render("\nDescription:"))
			cmd.Println(job.Description)
		}
		printList(cmd, "Requirements:", job.Requirements)
		printList(cmd, "Benefits:", job.Benefits)

		candidates, err := a.Store.ListCandidates(ctx, database.CandidateFilters{JobID: job.ID})
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}
		cmd.Printf("\n%s %d\n", labelStyle.Render("Candidates:"), len(candidates))

		assessment, err := a.Store.AssessmentByJob(ctx, job.ID)
		if err != nil {
			return fmt.Errorf("fetch assessment: %w", err)
		}
		if assessment != nil {
			cmd.Printf("%s %s (%d questions)\n", labelStyle.Render("Assessment:"), assessment.Title, assessment.QuestionCount())
		}
		return nil
	},
}

var updateJobCmd = &cobra.Command{
	Use:   "update <job-id>",
	Short: "Update fields of a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var patch models.JobPatch
		patch.Title = changedString(flags, "title")
		patch.Slug = changedString(flags, "slug")
		patch.Status = changedString(flags, "status")
		patch.Description = changedString(flags, "description")
		patch.Location = changedString(flags, "location")
		patch.Salary = changedString(flags, "salary")
		patch.Type = changedString(flags, "type")
		patch.Department = changedString(flags, "department")
		patch.Tags = changedSlice(flags, "tags")
		patch.Requirements = changedSlice(flags, "requirements")
		patch.Benefits = changedSlice(flags, "benefits")
		if flags.Changed("title") && !flags.Changed("slug") {
			patch.Slug = models.Ptr(models.Slugify(*patch.Title))
		}

		job, err := a.Store.UpdateJob(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		if job == nil {
			return fmt.Errorf("job %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Printf("✓ Job updated: %s\n", job.Title)
		return nil
	},
}

func setJobStatus(status string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		job, err := a.Store.UpdateJob(cmd.Context(), args[0], models.JobPatch{Status: models.Ptr(status)})
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		if job == nil {
			return fmt.Errorf("job %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Printf("✓ %s is now %s\n", job.Title, status)
		return nil
	}
}

var archiveJobCmd = &cobra.Command{
	Use:   "archive <job-id>",
	Short: "Archive a job",
	Args:  cobra.ExactArgs(1),
	RunE:  setJobStatus(models.JobStatusArchived),
}

var unarchiveJobCmd = &cobra.Command{
	Use:   "unarchive <job-id>",
	Short: "Make an archived job active again",
	Args:  cobra.ExactArgs(1),
	RunE:  setJobStatus(models.JobStatusActive),
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job with its candidates and assessments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		// Check if job exists
		job, err := a.Store.GetJob(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}
		if job == nil {
			return fmt.Errorf("job %s: %w", args[0], app.ErrNotFound)
		}

		if err := a.Store.DeleteJob(ctx, job.ID); err != nil {
			return fmt.Errorf("remove job: %w", err)
		}

		cmd.Printf("✓ Removed job: %s\n", job.Title)
		return nil
	},
}

var reorderJobsCmd = &cobra.Command{
	Use:   "reorder <from-order> <to-order>",
	Short: "Swap the jobs at two board positions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: from-order must be a number", app.ErrInvalidArgument)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: to-order must be a number", app.ErrInvalidArgument)
		}

		jobs, err := a.Store.ReorderJobs(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("reorder jobs: %w", err)
		}

		cmd.Println(titleStyle.Render("Board Order"))
		for _, job := range jobs {
			cmd.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("#%d", job.Order)), job.Title)
		}
		return nil
	},
}

func addJobFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Job title")
	cmd.Flags().String("slug", "", "URL slug (derived from the title when empty)")
	cmd.Flags().String("status", "", "Job status: active, archived")
	cmd.Flags().StringSlice("tags", nil, "Comma separated tags")
	cmd.Flags().String("description", "", "Job description")
	cmd.Flags().StringSlice("requirements", nil, "Comma separated requirements")
	cmd.Flags().StringSlice("benefits", nil, "Comma separated benefits")
	cmd.Flags().String("location", "", "Job location")
	cmd.Flags().String("salary", "", "Salary range")
	cmd.Flags().String("type", "", "Employment type, e.g. full-time")
	cmd.Flags().String("department", "", "Department")
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(addJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(updateJobCmd)
	jobCmd.AddCommand(archiveJobCmd)
	jobCmd.AddCommand(unarchiveJobCmd)
	jobCmd.AddCommand(removeJobCmd)
	jobCmd.AddCommand(reorderJobsCmd)

	// Flags for add command
	addJobFieldFlags(addJobCmd)
	addJobCmd.Flags().String("id", "", "Explicit job ID (an existing job with this ID is overwritten)")
	addJobCmd.Flags().Int("order", 0, "Board position (defaults to the end)")

	addJobFieldFlags(updateJobCmd)

	listJobsCmd.Flags().String("status", "all", "Filter by status: all, active, archived")
	listJobsCmd.Flags().String("search", "", "Search title, description and tags")
	addPageFlags(listJobsCmd)
}

package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/pkg/models"
)

var mentionRegex = regexp.MustCompile(`@([\w.-]+)`)

// extractMentions returns the distinct @handles in content, in order
func extractMentions(content string) []string {
	mentions := []string{}
	seen := map[string]bool{}
	for _, m := range mentionRegex.FindAllStringSubmatch(content, -1) {
		handle := strings.TrimRight(m[1], ".-")
		if handle == "" || seen[handle] {
			continue
		}
		seen[handle] = true
		mentions = append(mentions, handle)
	}
	return mentions
}

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes"},
	Short:   "Manage candidate notes",
}

var addNoteCmd = &cobra.Command{
	Use:     "add <candidate-id>",
	Short:   "Add a note to a candidate",
	Example: `  recruiter note add <candidate-id> --content "Strong systems design, loop in @maria" --tags onsite`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		content, _ := cmd.Flags().GetString("content")
		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("%w: --content is required", app.ErrInvalidArgument)
		}
		tags, _ := cmd.Flags().GetStringSlice("tags")

		c, err := a.Store.GetCandidate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch candidate: %w", err)
		}
		if c == nil {
			return fmt.Errorf("candidate %s: %w", args[0], app.ErrNotFound)
		}

		n, err := a.Store.CreateNote(ctx, models.Note{
			CandidateID: c.ID,
			Content:     content,
			Mentions:    extractMentions(content),
			Tags:        tags,
		})
		if err != nil {
			return fmt.Errorf("save note: %w", err)
		}

		cmd.Printf("✓ Note added to %s (ID: %s)\n", c.Name, n.ID)
		return nil
	},
}

var listNotesCmd = &cobra.Command{
	Use:   "list <candidate-id>",
	Short: "List the notes of a candidate, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		notes, err := a.Store.CandidateNotes(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch notes: %w", err)
		}
		if len(notes) == 0 {
			cmd.Println("No notes for this candidate.")
			return nil
		}

		cmd.Println(titleStyle.Render("Notes"))
		for _, n := range notes {
			cmd.Printf("\n%s %s\n", labelStyle.Render(n.CreatedAt.Local().Format("Jan 2, 2006 15:04")), valueStyle.Render(n.ID))
			cmd.Println("  " + n.Content)
			if len(n.Tags) > 0 {
				cmd.Printf("  %s %s\n", labelStyle.Render("Tags:"), strings.Join(n.Tags, ", "))
			}
		}
		return nil
	},
}

var editNoteCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Edit the content or tags of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		patch := models.NotePatch{
			Content: changedString(flags, "content"),
			Tags:    changedSlice(flags, "tags"),
		}
		if patch.Content != nil {
			patch.Mentions = extractMentions(*patch.Content)
		}

		n, err := a.Store.UpdateNote(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("update note: %w", err)
		}
		if n == nil {
			return fmt.Errorf("note %s: %w", args[0], app.ErrNotFound)
		}

		cmd.Println("✓ Note updated")
		return nil
	},
}

var removeNoteCmd = &cobra.Command{
	Use:   "remove <note-id>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := a.Store.DeleteNote(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove note: %w", err)
		}

		cmd.Println("✓ Note removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(addNoteCmd)
	noteCmd.AddCommand(listNotesCmd)
	noteCmd.AddCommand(editNoteCmd)
	noteCmd.AddCommand(removeNoteCmd)

	for _, c := range []*cobra.Command{addNoteCmd, editNoteCmd} {
		c.Flags().String("content", "", "Note text; @handles are recorded as mentions")
		c.Flags().StringSlice("tags", nil, "Comma separated tags")
	}
}

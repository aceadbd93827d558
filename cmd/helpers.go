package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/khrees2412/recruiter/pkg/models"
)

// changedString returns the flag value only when the user set it
func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

// changedSlice returns the flag value only when the user set it. An explicit
// empty value clears the list.
func changedSlice(flags *pflag.FlagSet, name string) []string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetStringSlice(name)
	if v == nil {
		v = []string{}
	}
	return v
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 20, "Items per page")
}

func printPageFooter(cmd *cobra.Command, meta models.PaginationMeta) {
	cmd.Printf("\n%s\n", valueStyle.Render(formatPage(meta)))
}

func formatPage(meta models.PaginationMeta) string {
	if meta.TotalPages == 0 {
		return "No results"
	}
	s := fmt.Sprintf("Page %d of %d (%d total)", meta.Page, meta.TotalPages, meta.Total)
	if meta.HasMore {
		s += fmt.Sprintf(", use --page %d for more", meta.Page+1)
	}
	return s
}

func printList(cmd *cobra.Command, label string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Println(labelStyle.Render("\n" + label))
	for _, item := range items {
		cmd.Printf("  • %s\n", item)
	}
}

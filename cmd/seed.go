package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with sample data",
	Long: `Write generated jobs, candidates and assessments when the database has no
jobs. Sizes and the random seed come from the "seed" section of the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if !a.Seeder.NeedsSeeding(ctx) {
			cmd.Println("Database already has data. Run 'recruiter clear --yes' first to reseed.")
			return nil
		}

		cmd.Println("Seeding database...")
		seeded, err := a.Seeder.SeedDatabase(ctx)
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		if !seeded {
			cmd.Println("Database already has data, nothing written.")
			return nil
		}

		stats, err := a.Store.Stats(ctx)
		if err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}
		cmd.Printf("✓ Seeded %d jobs, %d candidates and %d assessments\n", stats.Jobs, stats.Candidates, stats.Assessments)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every job, candidate, assessment, note and timeline event",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			cmd.Println("This removes all recruitment data. Settings are kept. Re-run with --yes to confirm.")
			return nil
		}

		if err := a.Store.ClearAllData(cmd.Context()); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}

		cmd.Println("✓ All data cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().Bool("yes", false, "Confirm deleting all data")
}

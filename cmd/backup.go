package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/database"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every row of the database to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		d, err := a.Store.Export(cmd.Context())
		if err != nil {
			return fmt.Errorf("export data: %w", err)
		}
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		cmd.Printf("✓ Exported %d jobs, %d candidates and %d assessments to %s\n",
			len(d.Jobs), len(d.Candidates), len(d.Assessments), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load rows from a JSON export, replacing rows with the same IDs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		d, err := readDataset(args[0])
		if err != nil {
			return err
		}
		if err := a.Store.Import(cmd.Context(), d); err != nil {
			return fmt.Errorf("import data: %w", err)
		}

		cmd.Printf("✓ Imported %d jobs, %d candidates and %d assessments\n",
			len(d.Jobs), len(d.Candidates), len(d.Assessments))
		return nil
	},
}

func readDataset(path string) (database.Dataset, error) {
	var d database.Dataset
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read import file: %w", err)
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse import file: %w", err)
	}
	return d, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

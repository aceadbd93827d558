package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AppConfig
		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		cmd.Printf("%s %s\n", labelStyle.Render("Database:"), cfg.DatabasePath)
		cmd.Printf("%s %s (%s)\n", labelStyle.Render("Log Level:"), cfg.LogLevel, cfg.LogFormat)
		if cfg.AutoSeed {
			cmd.Printf("%s %s\n", labelStyle.Render("Auto Seed:"), "✓ Enabled")
		} else {
			cmd.Printf("%s %s\n", labelStyle.Render("Auto Seed:"), "✗ Disabled")
		}
		cmd.Printf("%s %d jobs, %d candidates, %d assessments (seed %d)\n", labelStyle.Render("Sample Data:"),
			cfg.Seed.Jobs, cfg.Seed.Candidates, cfg.Seed.Assessments, cfg.Seed.RandomSeed)
	},
}

// settableKeys lists the keys accepted by `config set`
var settableKeys = []string{
	"database_path", "log_level", "log_format", "auto_seed",
	"seed.jobs", "seed.candidates", "seed.assessments", "seed.random_seed",
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  recruiter config set --key log_level --value debug
  recruiter config set --key auto_seed --value true
  recruiter config set --key seed.candidates --value 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("%w: both --key and --value are required", app.ErrInvalidArgument)
		}

		// Validate key
		if !slices.Contains(settableKeys, key) {
			return fmt.Errorf("%w: key must be one of: %v", app.ErrInvalidArgument, settableKeys)
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)

		// Reload config
		if err := config.Initialize(); err != nil {
			cmd.PrintErrf("Warning: Could not reload config: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}

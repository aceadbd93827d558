package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SeedConfig sizes the sample dataset written by `recruiter seed`
type SeedConfig struct {
	Jobs        int   `mapstructure:"jobs"`
	Candidates  int   `mapstructure:"candidates"`
	Assessments int   `mapstructure:"assessments"`
	RandomSeed  int64 `mapstructure:"random_seed"`
}

// Config holds the application configuration
type Config struct {
	DatabasePath string     `mapstructure:"database_path"`
	LogLevel     string     `mapstructure:"log_level"`
	LogFormat    string     `mapstructure:"log_format"` // text, json
	AutoSeed     bool       `mapstructure:"auto_seed"`
	Seed         SeedConfig `mapstructure:"seed"`
}

var AppConfig *Config

// Dir returns the directory holding the config file and the default database
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".recruiter"), nil
}

// Initialize loads or creates the configuration file
func Initialize() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	return InitializeAt(configDir)
}

// InitializeAt loads or creates config.yaml inside configDir. A .env file in
// the working directory is loaded first; RECRUITER_* variables override
// the file.
func InitializeAt(configDir string) error {
	// a missing .env is fine
	_ = godotenv.Load()

	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("recruiter")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("database_path", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("auto_seed", false)
	viper.SetDefault("seed.jobs", 25)
	viper.SetDefault("seed.candidates", 1000)
	viper.SetDefault("seed.assessments", 3)
	viper.SetDefault("seed.random_seed", 42)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if AppConfig.DatabasePath == "" {
		AppConfig.DatabasePath = filepath.Join(configDir, "recruiter.db")
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Recruiter Configuration
# Leave database_path empty to keep the database next to this file
database_path: ""

# Logging: level is one of debug, info, warn, error; format is text or json
log_level: info
log_format: text

# Write sample data on startup when the database has no jobs
auto_seed: false

# Sample data sizes used by "recruiter seed"
seed:
  jobs: 25
  candidates: 1000
  assessments: 3
  random_seed: 42
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	dir, _ := Dir()
	return filepath.Join(dir, "config.yaml")
}

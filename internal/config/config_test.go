package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitializeWritesDefaultConfig(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()

	require.NoError(t, InitializeAt(dir))

	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath())

	require.Equal(t, filepath.Join(dir, "recruiter.db"), AppConfig.DatabasePath)
	require.Equal(t, "info", AppConfig.LogLevel)
	require.Equal(t, "text", AppConfig.LogFormat)
	require.False(t, AppConfig.AutoSeed)
	require.Equal(t, SeedConfig{Jobs: 25, Candidates: 1000, Assessments: 3, RandomSeed: 42}, AppConfig.Seed)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	resetViper(t)
	t.Setenv("RECRUITER_LOG_LEVEL", "debug")
	t.Setenv("RECRUITER_SEED_JOBS", "3")

	require.NoError(t, InitializeAt(t.TempDir()))
	require.Equal(t, "debug", AppConfig.LogLevel)
	require.Equal(t, 3, AppConfig.Seed.Jobs)
	require.Equal(t, "debug", Get("log_level"))
}

func TestSetPersists(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()

	require.NoError(t, InitializeAt(dir))
	require.NoError(t, Set("log_format", "json"))

	viper.Reset()
	require.NoError(t, InitializeAt(dir))
	require.Equal(t, "json", AppConfig.LogFormat)
}

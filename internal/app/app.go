package app

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/internal/config"
	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/internal/seed"
)

// App is the dependency container for the CLI application
type App struct {
	Store  *database.Store
	Seeder *seed.Seeder
	Config *config.Config
	Log    *logrus.Logger
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return NewAppWithConfig(ctx, config.AppConfig)
}

// NewAppWithConfig builds the App from an already loaded configuration
func NewAppWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	store, err := database.Open(ctx, cfg.DatabasePath, database.WithLogger(logger.WithField("component", "database")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	seeder := seed.NewSeeder(store, logger.WithField("component", "seed"), seed.Options{
		Jobs:        cfg.Seed.Jobs,
		Candidates:  cfg.Seed.Candidates,
		Assessments: cfg.Seed.Assessments,
		RandomSeed:  cfg.Seed.RandomSeed,
	})

	a := &App{
		Store:  store,
		Seeder: seeder,
		Config: cfg,
		Log:    logger,
	}

	if cfg.AutoSeed && seeder.NeedsSeeding(ctx) {
		if _, err := seeder.SeedDatabase(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return a, nil
}

// NewLogger returns a logrus logger writing to stderr with the given level
// and format
func NewLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidArgument, level)
	}
	logger.SetLevel(lvl)

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "@timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidArgument, format)
	}
	return logger, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

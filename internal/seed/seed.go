// Package seed fills an empty store with sample recruitment data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/pkg/models"
)

// SeededAtKey is the setting recording when the sample data was written
const SeededAtKey = "seeded_at"

// Seeder decides whether the store needs sample data and writes it
type Seeder struct {
	store *database.Store
	log   logrus.FieldLogger
	opts  Options
	now   func() time.Time
}

// NewSeeder returns a Seeder for store
func NewSeeder(store *database.Store, log logrus.FieldLogger, opts Options) *Seeder {
	return &Seeder{store: store, log: log, opts: opts, now: models.Now}
}

// NeedsSeeding reports whether the store has no jobs. A storage failure is
// logged and reported as true.
func (s *Seeder) NeedsSeeding(ctx context.Context) bool {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error checking if database needs seeding")
		return true
	}
	return stats.Jobs == 0
}

// SeedDatabase writes the generated dataset when the store has no jobs. It
// returns false without writing anything if a job already exists.
func (s *Seeder) SeedDatabase(ctx context.Context) (bool, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read stats: %w", err)
	}
	if stats.Jobs > 0 {
		s.log.Info("Database already seeded, skipping")
		return false, nil
	}

	now := s.now()
	s.log.WithField("random_seed", s.opts.RandomSeed).Info("Seeding database with initial data")
	d := Generate(s.opts, now)
	if err := s.store.Import(ctx, d); err != nil {
		return false, fmt.Errorf("failed to seed database: %w", err)
	}
	if err := s.store.SetSetting(ctx, SeededAtKey, now); err != nil {
		return false, fmt.Errorf("failed to record seed time: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"jobs":        len(d.Jobs),
		"candidates":  len(d.Candidates),
		"assessments": len(d.Assessments),
	}).Info("Database seeding complete")
	return true, nil
}

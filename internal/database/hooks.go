package database

import (
	"time"

	"github.com/khrees2412/recruiter/pkg/models"
)

// Hook mutates a row right before it is written
type Hook func(row models.Timestamped, now time.Time)

// hooks holds the creating/updating hooks registered per table
type hooks struct {
	creating map[string][]Hook
	updating map[string][]Hook
}

// defaultHooks stamps timestamps on every table declared Timestamped.
// Caller supplied timestamps are overwritten on create.
func defaultHooks() *hooks {
	h := &hooks{
		creating: map[string][]Hook{},
		updating: map[string][]Hook{},
	}
	for _, t := range Tables {
		if !t.Timestamped {
			continue
		}
		h.onCreating(t.Name, func(row models.Timestamped, now time.Time) {
			row.SetCreatedAt(now)
			row.SetUpdatedAt(now)
		})
		h.onUpdating(t.Name, func(row models.Timestamped, now time.Time) {
			row.SetUpdatedAt(now)
		})
	}
	return h
}

func (h *hooks) onCreating(table string, fn Hook) {
	h.creating[table] = append(h.creating[table], fn)
}

func (h *hooks) onUpdating(table string, fn Hook) {
	h.updating[table] = append(h.updating[table], fn)
}

func (h *hooks) runCreating(table string, row models.Timestamped, now time.Time) {
	for _, fn := range h.creating[table] {
		fn(row, now)
	}
}

func (h *hooks) runUpdating(table string, row models.Timestamped, now time.Time) {
	for _, fn := range h.updating[table] {
		fn(row, now)
	}
}

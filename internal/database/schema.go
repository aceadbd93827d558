package database

import (
	"fmt"
	"strings"
)

// SchemaVersion is the layout version recorded in PRAGMA user_version.
// There are no migrations; a database written with another version is refused.
const SchemaVersion = 1

const (
	tableJobs        = "jobs"
	tableCandidates  = "candidates"
	tableAssessments = "assessments"
	tableTimeline    = "timeline_events"
	tableNotes       = "notes"
	tableResponses   = "assessment_responses"
	tableSettings    = "settings"
)

// Table declares one entity table: its columns and the secondary indices
// the store queries by.
type Table struct {
	Name    string
	Columns string
	Indexes []string
	Unique  []string
	// Timestamped tables get createdAt/updatedAt maintained by hooks.
	Timestamped bool
}

// Tables is the fixed schema, one table per entity type.
var Tables = []Table{
	{
		Name: tableJobs,
		Columns: `
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		slug TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		tags TEXT NOT NULL DEFAULT '[]',
		sort_order INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '[]',
		benefits TEXT NOT NULL DEFAULT '[]',
		location TEXT NOT NULL DEFAULT '',
		salary TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'full-time',
		department TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL`,
		Indexes:     []string{"title", "slug", "status", "sort_order", "created_at", "updated_at"},
		Timestamped: true,
	},
	{
		Name: tableCandidates,
		Columns: `
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		stage TEXT NOT NULL DEFAULT 'applied',
		job_id TEXT,
		resume TEXT NOT NULL DEFAULT '',
		cover_letter TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '[]',
		timeline TEXT NOT NULL DEFAULT '[]',
		assessment_responses TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL`,
		Indexes:     []string{"name", "email", "stage", "job_id", "created_at", "updated_at"},
		Timestamped: true,
	},
	{
		Name: tableAssessments,
		Columns: `
		id TEXT PRIMARY KEY,
		job_id TEXT,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		sections TEXT NOT NULL DEFAULT '[]',
		settings TEXT NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL`,
		Indexes:     []string{"job_id", "title", "status", "created_at", "updated_at"},
		Timestamped: true,
	},
	{
		Name: tableTimeline,
		Columns: `
		id TEXT PRIMARY KEY,
		candidate_id TEXT,
		type TEXT NOT NULL DEFAULT 'stage_change',
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL`,
		Indexes: []string{"candidate_id", "type", "created_at"},
	},
	{
		Name: tableNotes,
		Columns: `
		id TEXT PRIMARY KEY,
		candidate_id TEXT,
		content TEXT NOT NULL DEFAULT '',
		mentions TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL`,
		Indexes:     []string{"candidate_id", "created_at", "updated_at"},
		Timestamped: true,
	},
	{
		Name: tableResponses,
		Columns: `
		id TEXT PRIMARY KEY,
		candidate_id TEXT,
		assessment_id TEXT,
		responses TEXT NOT NULL DEFAULT '{}',
		score REAL,
		completed_at TEXT,
		time_spent INTEGER,
		created_at TEXT NOT NULL`,
		Indexes: []string{"candidate_id", "assessment_id", "created_at"},
	},
	{
		Name: tableSettings,
		Columns: `
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL,
		value TEXT NOT NULL DEFAULT 'null'`,
		Unique: []string{"key"},
	},
}

// entityTables are the tables emptied by ClearAllData. Settings survive.
var entityTables = []string{tableJobs, tableCandidates, tableAssessments, tableTimeline, tableNotes, tableResponses}

// LookupTable returns the declaration of the named table
func LookupTable(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// DDL renders the CREATE statements of the table and its indices
func (t Table) DDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (%s\n);\n", t.Name, t.Columns)
	for _, col := range t.Indexes {
		fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s);\n", t.Name, col, t.Name, col)
	}
	for _, col := range t.Unique {
		fmt.Fprintf(&b, "CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s);\n", t.Name, col, t.Name, col)
	}
	return b.String()
}

// insertSQL builds an INSERT for the given columns. With upsert set, a row
// with the same id is overwritten instead of failing the insert.
func insertSQL(table string, cols []string, upsert bool) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), marks)
	if !upsert {
		return q
	}
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == "id" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s=excluded.%s", c, c))
	}
	return q + " ON CONFLICT(id) DO UPDATE SET " + strings.Join(sets, ", ")
}

// updateSQL builds an UPDATE of every column but id, keyed by id.
// Arguments are the column values in order followed by the id.
func updateSQL(table string, cols []string) string {
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == "id" {
			continue
		}
		sets = append(sets, c+"=?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id=?", table, strings.Join(sets, ", "))
}

func selectSQL(table string, cols []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
}

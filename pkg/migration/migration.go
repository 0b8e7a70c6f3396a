// Package migration runs and tracks schema migrations.
//
// Register migrations from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_customers_table", &CreateCustomersTable{})
//	}
//
// and run them from the CLI:
//
//	storefront migrate             // run all pending in one batch
//	storefront migrate:rollback    // roll back the last batch
//	storefront migrate:status
package migration

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

// ------------------- Registry -------------------

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds a migration. name must start with a sortable timestamp,
// e.g. "20260101000000_create_customers_table".
func Register(name string, m Migration) {
	registry = append(registry, registered{name: name, m: m})
}

// ------------------- Runner -------------------

// Runner executes migrations and writes progress to out.
type Runner struct {
	db         *gorm.DB
	out        io.Writer
	migrations []registered
}

// New snapshots the registry, sorted by name.
func New(db *gorm.DB, out io.Writer) *Runner {
	ms := append([]registered(nil), registry...)
	sort.Slice(ms, func(i, j int) bool { return ms[i].name < ms[j].name })
	return &Runner{db: db, out: out, migrations: ms}
}

// StatusRow describes one migration for migrate:status.
type StatusRow struct {
	Name  string
	Ran   bool
	Batch int
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run executes every pending migration in a single new batch and returns
// how many ran.
func (r *Runner) Run() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}

	done, err := r.ran()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch ran: %w", err)
	}

	var pending []registered
	for _, reg := range r.migrations {
		if _, ok := done[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}

	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	batch++

	for _, reg := range pending {
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", reg.name)

		if err := reg.m.Up(r.db); err != nil {
			return 0, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
			return 0, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}

		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", reg.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverses the most recent batch, newest first, and returns how
// many were rolled back.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return 0, err
	}

	byName := make(map[string]Migration, len(r.migrations))
	for _, reg := range r.migrations {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return 0, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)
		if err := m.Down(r.db); err != nil {
			return 0, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&migrationRecord{}, rec.ID).Error; err != nil {
			return 0, err
		}
		fmt.Fprintf(r.out, "  ✅ Rolled back: %s\n", rec.Name)
	}

	logger.Info("migration: rolled back", "count", len(records), "batch", batch)
	return len(records), nil
}

// Status reports every registered migration and prints a table to out.
func (r *Runner) Status() ([]StatusRow, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	rows := make([]StatusRow, 0, len(r.migrations))
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MIGRATION\tSTATUS\tBATCH")
	for _, reg := range r.migrations {
		row := StatusRow{Name: reg.name}
		if rec, ok := done[reg.name]; ok {
			row.Ran, row.Batch = true, rec.Batch
			fmt.Fprintf(tw, "%s\tRan\t%d\n", reg.name, rec.Batch)
		} else {
			fmt.Fprintf(tw, "%s\tPending\t-\n", reg.name)
		}
		rows = append(rows, row)
	}
	return rows, tw.Flush()
}

func (r *Runner) lastBatch() (int, error) {
	var last struct{ Max int }
	if err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return last.Max, nil
}

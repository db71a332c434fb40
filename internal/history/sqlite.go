// Package history records mode activations in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"cathode/internal/display"
	"cathode/internal/history/migrations"
)

// SQLiteHistory implements display.History on SQLite.
type SQLiteHistory struct {
	db   *sql.DB
	path string
}

// NewSQLiteHistory opens the database at path, or an in-memory database for
// ":memory:", and brings its schema up to date.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	return &SQLiteHistory{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

// CheckMigrations reports whether the schema is at the latest version.
func (h *SQLiteHistory) CheckMigrations() error {
	return migrations.CheckStatus(h.db)
}

func (h *SQLiteHistory) RecordActivation(a *display.Activation) error {
	_, err := h.db.Exec(`
		INSERT INTO activations
			(id, operation_id, operation, mode_name, output, outcome, detail, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.OperationID, a.Operation, a.ModeName, a.Output, a.Outcome, a.Detail,
		a.StartedAt.UTC(), a.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting activation: %w", err)
	}
	return nil
}

func (h *SQLiteHistory) RecentActivations(limit int) ([]*display.Activation, error) {
	rows, err := h.db.Query(`
		SELECT id, operation_id, operation, mode_name, output, outcome, detail, started_at, finished_at
		FROM activations
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activations: %w", err)
	}
	defer rows.Close()

	var out []*display.Activation
	for rows.Next() {
		a := &display.Activation{}
		if err := rows.Scan(&a.ID, &a.OperationID, &a.Operation, &a.ModeName, &a.Output,
			&a.Outcome, &a.Detail, &a.StartedAt, &a.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning activation: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activations: %w", err)
	}
	return out, nil
}

func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

var _ display.History = (*SQLiteHistory)(nil)

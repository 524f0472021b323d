package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aas-risk-engine/internal/domain"
)

// SQLiteArchive implements the Archive interface using SQLite. Scenarios are
// stored as JSON documents keyed by ID; the store never queries inside them.
type SQLiteArchive struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteArchive creates a SQLite scenario archive. It creates the
// database file and schema if they don't exist.
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteArchive{db: db, dbPath: dbPath}, nil
}

func createSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		preset TEXT NOT NULL,
		category TEXT NOT NULL,
		document TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Save stores or replaces the scenario document.
func (a *SQLiteArchive) Save(ctx context.Context, sc *domain.Scenario) error {
	document, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, preset, category, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			preset = excluded.preset,
			category = excluded.category,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		sc.ID, sc.Name, string(sc.Preset), string(sc.Category),
		string(document), sc.CreatedAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// Delete removes a scenario document. Deleting a missing ID is not an error.
func (a *SQLiteArchive) Delete(ctx context.Context, id string) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

// LoadAll reads every stored scenario, oldest first.
func (a *SQLiteArchive) LoadAll(ctx context.Context) ([]*domain.Scenario, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT document FROM scenarios ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		var sc domain.Scenario
		if err := json.Unmarshal([]byte(document), &sc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
		}
		scenarios = append(scenarios, &sc)
	}
	return scenarios, rows.Err()
}

// Close closes the underlying database.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

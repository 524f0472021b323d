package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/aas-risk-engine/internal/domain"
)

// PostgresArchive implements the Archive interface using PostgreSQL. It
// expects the schema to already exist (created via migrations).
type PostgresArchive struct {
	db *sql.DB
}

// NewPostgresArchive creates a PostgreSQL scenario archive over an existing
// connection.
func NewPostgresArchive(db *sql.DB) (*PostgresArchive, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresArchive{db: db}, nil
}

// NewPostgresArchiveFromURL creates a PostgreSQL scenario archive from a
// connection URL.
func NewPostgresArchiveFromURL(databaseURL string) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	archive, err := NewPostgresArchive(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return archive, nil
}

// Save stores or replaces the scenario document.
func (a *PostgresArchive) Save(ctx context.Context, sc *domain.Scenario) error {
	document, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, name, preset, category, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			preset = EXCLUDED.preset,
			category = EXCLUDED.category,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`
	_, err = a.db.ExecContext(ctx, query,
		sc.ID, sc.Name, string(sc.Preset), string(sc.Category),
		string(document), sc.CreatedAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// Delete removes a scenario document. Deleting a missing ID is not an error.
func (a *PostgresArchive) Delete(ctx context.Context, id string) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

// LoadAll reads every stored scenario, oldest first.
func (a *PostgresArchive) LoadAll(ctx context.Context) ([]*domain.Scenario, error) {
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
func (a *PostgresArchive) Close() error {
	return a.db.Close()
}

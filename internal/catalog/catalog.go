// Package catalog maintains a SQLite index of save files so listings
// don't have to rescan and reparse the save directory. The board data
// itself stays in the JSON save files; the catalog holds metadata only.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a save ID has no catalog entry.
var ErrNotFound = errors.New("save not found in catalog")

// Entry is the catalog metadata for one save file.
type Entry struct {
	ID          string
	Name        string
	Description string
	Generation  uint64
	Width       int
	Height      int
	Rule        string
	Path        string
	CreatedUnix int64
}

// Catalog wraps the SQLite database holding save metadata.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the catalog database at path. Applies pragmas
// and the schema; safe to call on an existing catalog.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect catalog: %w", err)
	}

	// SQLite allows one writer; keep a single connection to avoid
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Record upserts an entry keyed by save ID. Re-recording the same save
// updates its metadata in place, so recording is idempotent.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO saves
		(id, name, description, generation, width, height, rule, path, created_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			generation = excluded.generation,
			width = excluded.width,
			height = excluded.height,
			rule = excluded.rule,
			path = excluded.path,
			created_unix = excluded.created_unix
	`,
		e.ID, e.Name, e.Description, e.Generation,
		e.Width, e.Height, e.Rule, e.Path, e.CreatedUnix,
	)
	if err != nil {
		return fmt.Errorf("record save %s: %w", e.ID, err)
	}
	return nil
}

// List returns all entries ordered by creation time, then name, so
// listings are deterministic.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, description, generation, width, height, rule, path, created_unix
		FROM saves
		ORDER BY created_unix ASC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.Generation,
			&e.Width, &e.Height, &e.Rule, &e.Path, &e.CreatedUnix,
		); err != nil {
			return nil, fmt.Errorf("scan save row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return entries, nil
}

// Find returns the entry for a save ID, or ErrNotFound.
func (c *Catalog) Find(ctx context.Context, id string) (Entry, error) {
	var e Entry
	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, description, generation, width, height, rule, path, created_unix
		FROM saves WHERE id = ?
	`, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.Generation,
		&e.Width, &e.Height, &e.Rule, &e.Path, &e.CreatedUnix,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("save %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("find save %s: %w", id, err)
	}
	return e, nil
}

// Delete removes an entry. Deleting an unknown ID is not an error.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete save %s: %w", id, err)
	}
	return nil
}

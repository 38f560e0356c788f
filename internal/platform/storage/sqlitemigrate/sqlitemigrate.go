// Package sqlitemigrate applies forward-only SQL migrations to a SQLite
// database and records each applied file in schema_migrations.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

const (
	migrationTable = "schema_migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// Migration is one .sql file. Name is its path relative to the migration
// filesystem and is the key recorded once the migration is applied.
type Migration struct {
	Name string
	Up   string
}

// Load reads every .sql file directly under root in name order. An empty
// root means the filesystem root.
func Load(fsys fs.FS, root string) ([]Migration, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		name := path.Join(root, entry.Name())
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		out = append(out, Migration{Name: name, Up: ExtractUpMigration(string(content))})
	}
	slices.SortFunc(out, func(a, b Migration) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// ApplyMigrations loads the migrations under root and applies them.
func ApplyMigrations(ctx context.Context, db *sql.DB, fsys fs.FS, root string) error {
	migrations, err := Load(fsys, root)
	if err != nil {
		return err
	}
	_, err = Apply(ctx, db, migrations)
	return err
}

// Apply runs every migration not yet recorded, each in its own transaction
// together with its bookkeeping row, and returns the names it applied.
// Migrations with an empty Up section are skipped and not recorded.
func Apply(ctx context.Context, db *sql.DB, migrations []Migration) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	done, err := Applied(ctx, db)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range migrations {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		if slices.Contains(done, m.Name) || strings.TrimSpace(m.Up) == "" {
			continue
		}
		if err := applyOne(ctx, db, m); err != nil {
			return applied, err
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil && !IsAlreadyExistsError(err) {
		return fmt.Errorf("exec migration %s: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
		m.Name, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("record migration %s: %w", m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Name, err)
	}
	return nil
}

// Applied lists the recorded migration names in order.
func Applied(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM "+migrationTable+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ExtractUpMigration returns the SQL between the Up and Down markers. A file
// without an Up marker is all Up.
func ExtractUpMigration(content string) string {
	_, up, found := strings.Cut(content, upMarker)
	if !found {
		return content
	}
	up, _, _ = strings.Cut(up, downMarker)
	return up
}

// IsAlreadyExistsError reports whether err is DDL that already took effect.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

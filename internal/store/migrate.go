package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies the embedded migrations for the store's driver.
func (s *Store) Migrate() error {
	sub, err := fs.Sub(migrationsFS, path.Join("migrations", s.Driver))
	if err != nil {
		return fmt.Errorf("failed to open migrations for %s: %w", s.Driver, err)
	}
	return s.MigrateFS(sub)
}

// MigrateFS runs all .sql files in fsys in lexical order, skipping ones
// already recorded in schema_migrations.
func (s *Store) MigrateFS(fsys fs.FS) error {
	createTable := `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.DB.Exec(createTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrationFiles []string
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".sql") {
			migrationFiles = append(migrationFiles, f.Name())
		}
	}
	sort.Strings(migrationFiles) // Ensure order 001, 002, ...

	for _, file := range migrationFiles {
		if s.isApplied(file) {
			slog.Debug("Skipping already applied migration", "file", file)
			continue
		}

		slog.Info("Applying migration", "file", file, "driver", s.Driver)
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		tx, err := s.DB.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
		if _, err := tx.Exec(s.rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), file); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) isApplied(version string) bool {
	var exists int
	err := s.DB.QueryRow(s.rebind(`SELECT 1 FROM schema_migrations WHERE version = ?`), version).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		slog.Warn("Could not check migration state", "file", version, "error", err)
	}
	return err == nil
}

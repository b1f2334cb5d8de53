package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the database handle and implements the query contract used by
// the review service, the reminder scheduler and the catalog importer.
// Queries run against q, which is either the pool or an open transaction.
type Store struct {
	db     *sqlx.DB
	q      queryer
	driver string
}

// Connect opens PostgreSQL when databaseURL is set, otherwise a local
// SQLite file, and makes sure the schema exists.
func Connect(databaseURL string) (*Store, error) {
	if databaseURL != "" {
		db, err := sqlx.Connect("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := &Store{db: db, q: db, driver: "postgres"}
		if err := store.initializeSchema(); err != nil {
			return nil, err
		}
		return store, nil
	}

	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", filepath.Join(dataDir, "codereps.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db, q: db, driver: "sqlite3"}
	if err := store.initializeSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// initializeSchema creates the tables if they don't exist. Timestamp
// columns always hold UTC instants.
func (s *Store) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS problems (
			slug TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			official_difficulty TEXT NOT NULL DEFAULT '',
			tags TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create problems table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS user_problems (
			user_id TEXT NOT NULL,
			slug TEXT NOT NULL REFERENCES problems(slug),
			title TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			date_solved TIMESTAMP NOT NULL,
			next_review_date TIMESTAMP NOT NULL,
			tags TEXT,
			PRIMARY KEY (user_id, slug)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create user_problems table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS notification_settings (
			user_id TEXT PRIMARY KEY,
			telegram_chat_id BIGINT NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT true,
			notify_hour INTEGER NOT NULL DEFAULT 9
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create notification_settings table: %w", err)
	}

	return nil
}

package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database selected by dbType ("sqlite" or "postgres") and
// initializes the schema. For sqlite, dsn is a file path whose parent
// directory is created if needed; for postgres it is a connection URL.
func Connect(dbType, dsn string) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	default:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist.
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			institution TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'Teacher',
			is_admin BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	// Per-user schemaless records (progress flags, project answers). Postgres
	// stores jsonb so merge writes can use the || operator; sqlite stores
	// json text and merges with json_patch.
	var documents string
	if db.DriverName() == "postgres" {
		documents = `
			CREATE TABLE IF NOT EXISTS documents (
				collection TEXT NOT NULL,
				id TEXT NOT NULL,
				data JSONB NOT NULL DEFAULT '{}',
				updated_at TIMESTAMP DEFAULT NOW(),
				PRIMARY KEY (collection, id)
			)
		`
	} else {
		documents = `
			CREATE TABLE IF NOT EXISTS documents (
				collection TEXT NOT NULL,
				id TEXT NOT NULL,
				data TEXT NOT NULL DEFAULT '{}',
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (collection, id)
			)
		`
	}
	if _, err := db.Exec(documents); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	return nil
}

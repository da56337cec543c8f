package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/gpstracker/internal/pkg/models"

	_ "modernc.org/sqlite"
)

// SQLiteDriver is the database/sql driver name used for SQLite
const SQLiteDriver = "sqlite"

// NewSQLiteDB opens (or creates) a SQLite database with WAL mode enabled
func NewSQLiteDB(config models.SQLiteConfig) (*sqlx.DB, error) {
	path := config.Path
	if path == "" {
		path = "./gpstracker.db"
	}

	db, err := sqlx.Open(SQLiteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// SQLite uses file-level locking; a single connection avoids SQLITE_BUSY
	// between concurrent writers and keeps in-memory databases shared.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	return db, nil
}

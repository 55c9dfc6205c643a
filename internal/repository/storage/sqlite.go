package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL UNIQUE,
	mode TEXT NOT NULL,
	result TEXT NOT NULL,
	player_x TEXT NOT NULL DEFAULT '',
	player_o TEXT NOT NULL DEFAULT '',
	moves INTEGER NOT NULL DEFAULT 0,
	board TEXT NOT NULL DEFAULT '',
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_player_x ON results(player_x);
CREATE INDEX IF NOT EXISTS idx_results_player_o ON results(player_o);
`

type Storage struct {
	Connection *sql.DB
}

// NewSQLiteStorage - opens (and creates if needed) the database file at path.
func NewSQLiteStorage(path string) (*Storage, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("can't create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

// Init - creates the schema.
func (that *Storage) Init(ctx context.Context) error {
	if _, err := that.Connection.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("can't create tables: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}

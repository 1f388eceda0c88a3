package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// DB wraps the sqlite connection used by the availability engine.
type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("resource is no longer available for this window")
	ErrPastTime = errors.New("requested start time is in the past")
)

// NewDB opens (creating if needed) the sqlite database at path.
func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL keeps readers unblocked during reservation writes.
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	instance := &DB{DB: conn, logger: logger}
	if err := instance.createTables(); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return instance, nil
}

func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT '',
			hours_source TEXT NOT NULL DEFAULT 'manual',
			status TEXT NOT NULL DEFAULT 'active',
			pause_message TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS venue_hours (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue_id INTEGER NOT NULL,
			weekday INTEGER NOT NULL,
			is_closed BOOLEAN NOT NULL DEFAULT 0,
			open_time TEXT NOT NULL DEFAULT '',
			close_time TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			UNIQUE(venue_id, weekday, source),
			FOREIGN KEY(venue_id) REFERENCES venues(id)
		)`,

		`CREATE TABLE IF NOT EXISTS venue_tables (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue_id INTEGER NOT NULL,
			label TEXT NOT NULL,
			booking_mode TEXT NOT NULL,
			seat_count INTEGER NOT NULL DEFAULT 0,
			table_price_per_hour REAL NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(venue_id) REFERENCES venues(id)
		)`,

		`CREATE TABLE IF NOT EXISTS seats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_id INTEGER NOT NULL,
			label TEXT NOT NULL,
			position INTEGER,
			price_per_hour REAL NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(table_id) REFERENCES venue_tables(id)
		)`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			public_id TEXT UNIQUE NOT NULL,
			venue_id INTEGER NOT NULL,
			seat_id INTEGER,
			table_id INTEGER,
			seat_count INTEGER NOT NULL DEFAULT 1,
			start_at DATETIME NOT NULL,
			end_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(venue_id) REFERENCES venues(id)
		)`,

		`CREATE TABLE IF NOT EXISTS seat_blocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue_id INTEGER NOT NULL,
			seat_id INTEGER,
			start_at DATETIME NOT NULL,
			end_at DATETIME NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(venue_id) REFERENCES venues(id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_venue_hours_venue ON venue_hours(venue_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tables_venue ON venue_tables(venue_id, is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_seats_table ON seats(table_id, is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_window ON reservations(venue_id, status, start_at, end_at)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_seat ON reservations(seat_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_table ON reservations(table_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_window ON seat_blocks(venue_id, start_at, end_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("exec %q: %w", query[:40], err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

type PlayRecord struct {
	ID         int64
	Identifier string
	Title      string
	Artist     string
	Quality    string
	URL        string
	PlayedAt   time.Time
}

type MostPlayedRecord struct {
	Identifier string
	Title      string
	PlayCount  int
	LastPlayed time.Time
}

// New creates a new Database instance. dbPath defaults to DB_PATH env var
// or ./bilifm.db.
func New(dbPath string) (*Database, error) {
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = "bilifm.db"
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS play_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			identifier TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			quality TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			played_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_play_history_played_at ON play_history(played_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_play_history_identifier ON play_history(identifier)`,
		`CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// RecordPlay inserts a play record for a negotiated media locator.
func (d *Database) RecordPlay(identifier, title, artist, qualityTier, url string) error {
	_, err := d.db.Exec(
		`INSERT INTO play_history (identifier, title, artist, quality, url, played_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		identifier, title, artist, qualityTier, url, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}
	return nil
}

// GetHistory returns the most recent plays.
func (d *Database) GetHistory(limit int) ([]PlayRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT id, identifier, title, artist, quality, url, played_at
		 FROM play_history
		 ORDER BY played_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []PlayRecord
	for rows.Next() {
		var r PlayRecord
		var playedAt string
		if err := rows.Scan(&r.ID, &r.Identifier, &r.Title, &r.Artist, &r.Quality, &r.URL, &playedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, playedAt); err == nil {
			r.PlayedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetMostPlayed returns the most played identifiers.
func (d *Database) GetMostPlayed(limit int) ([]MostPlayedRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT identifier, title, COUNT(*) as play_count, MAX(played_at) as last_played
		 FROM play_history
		 GROUP BY identifier
		 ORDER BY play_count DESC, last_played DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query most played: %w", err)
	}
	defer rows.Close()

	var records []MostPlayedRecord
	for rows.Next() {
		var r MostPlayedRecord
		var lastPlayed string
		if err := rows.Scan(&r.Identifier, &r.Title, &r.PlayCount, &lastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan most played row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, lastPlayed); err == nil {
			r.LastPlayed = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveCookie persists the backend session cookie between runs.
func (d *Database) SaveCookie(cookie string) error {
	_, err := d.db.Exec(
		`INSERT INTO session (key, value, updated_at) VALUES ('cookie', ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		cookie, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save cookie: %w", err)
	}
	return nil
}

// LoadCookie returns the persisted session cookie, empty when none exists.
func (d *Database) LoadCookie() (string, error) {
	var cookie string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = 'cookie'`).Scan(&cookie)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load cookie: %w", err)
	}
	return cookie, nil
}

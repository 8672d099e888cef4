package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/rcliao/theaterlog/internal/model"
)

const lastLocationKey = "last_location"

// SQLite implements Adapter using a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates a SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reviews (
		id       TEXT PRIMARY KEY,
		title    TEXT NOT NULL,
		director TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		info     TEXT NOT NULL DEFAULT '',
		body     TEXT NOT NULL DEFAULT '',
		date     INTEGER NOT NULL DEFAULT 0,
		tags     TEXT,
		rating   INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_position ON reviews(position);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns all reviews in insertion order.
func (s *SQLite) Load() ([]model.Review, error) {
	rows, err := s.db.Query(
		`SELECT id, title, director, location, info, body, date, tags, rating
		 FROM reviews ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var r model.Review
		var tagsJSON sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.Director, &r.Location,
			&r.Info, &r.Body, &r.Date, &tagsJSON, &r.Rating); err != nil {
			return nil, err
		}
		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &r.Tags)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Save replaces the stored collection with the given one. The write is
// transactional so a failure leaves the previous snapshot intact.
func (s *SQLite) Save(reviews []model.Review) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reviews`); err != nil {
		return err
	}

	for i, r := range reviews {
		var tagsJSON *string
		if len(r.Tags) > 0 {
			b, _ := json.Marshal(r.Tags)
			v := string(b)
			tagsJSON = &v
		}
		_, err := tx.Exec(
			`INSERT INTO reviews (id, title, director, location, info, body, date, tags, rating, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Director, r.Location, r.Info, r.Body, r.Date, tagsJSON, r.Rating, i)
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
	}

	return tx.Commit()
}

// LastLocation returns the persisted "last used location" value, or "" when
// none was saved yet.
func (s *SQLite) LastLocation() (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, lastLocationKey).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// SaveLastLocation replaces the "last used location" value.
func (s *SQLite) SaveLastLocation(loc string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastLocationKey, loc)
	return err
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

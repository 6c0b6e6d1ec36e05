package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cycleplus-tools/cptools/track"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps rides in a SQLite database
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens the SQLite database at path, creating it if necessary
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an open database and runs the migrations.
// The store owns db and closes it on Close.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	migrations := []string{
		// One row per category, the latest save wins
		`CREATE TABLE IF NOT EXISTS rides (
			category TEXT PRIMARY KEY,
			duration_seconds INTEGER NOT NULL,
			distance_km REAL NOT NULL,
			point_count INTEGER NOT NULL,
			saved_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS ride_points (
			category TEXT NOT NULL,
			seq INTEGER NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			elapsed REAL NOT NULL,
			distance REAL NOT NULL,
			PRIMARY KEY (category, seq),
			FOREIGN KEY (category) REFERENCES rides(category) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Load reads the record of the category
func (s *SQLiteStore) Load(ctx context.Context, category string) (rec *Record, err error) {
	span, ctx := startSpan(ctx, DriverSQLite, "load", category)
	defer func() { finishSpan(span, err) }()

	if category == "" {
		return nil, ErrInvalidCategory
	}

	var duration int
	err = s.db.QueryRowContext(ctx, `
		SELECT duration_seconds FROM rides WHERE category = ?
	`, category).Scan(&duration)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading ride %q: %w", category, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT lat, lon, elapsed, distance
		FROM ride_points
		WHERE category = ?
		ORDER BY seq
	`, category)
	if err != nil {
		return nil, fmt.Errorf("loading track of %q: %w", category, err)
	}
	defer rows.Close()

	points := []track.Point{}
	for rows.Next() {
		var p track.Point
		if err := rows.Scan(&p.Latitude, &p.Longitude, &p.Elapsed, &p.Distance); err != nil {
			return nil, fmt.Errorf("scanning track point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Record{DurationSeconds: duration, Track: points}, nil
}

// Save replaces the record of the category in a single transaction
func (s *SQLiteStore) Save(ctx context.Context, category string, rec Record) (saved bool, err error) {
	span, ctx := startSpan(ctx, DriverSQLite, "save", category)
	defer func() { finishSpan(span, err) }()

	if category == "" {
		return false, ErrInvalidCategory
	}
	if len(rec.Track) < MinTrackPoints {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rides (category, duration_seconds, distance_km, point_count, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			duration_seconds = excluded.duration_seconds,
			distance_km = excluded.distance_km,
			point_count = excluded.point_count,
			saved_at = excluded.saved_at
	`, category, rec.DurationSeconds, rec.DistanceKm(), len(rec.Track), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("saving ride %q: %w", category, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM ride_points WHERE category = ?", category); err != nil {
		return false, fmt.Errorf("deleting previous track: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ride_points (category, seq, lat, lon, elapsed, distance)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return false, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, p := range rec.Track {
		if _, err := stmt.ExecContext(ctx, category, i, p.Latitude, p.Longitude, p.Elapsed, p.Distance); err != nil {
			return false, fmt.Errorf("inserting track point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing transaction: %w", err)
	}

	return true, nil
}

// Delete removes the record of the category and its track
func (s *SQLiteStore) Delete(ctx context.Context, category string) (err error) {
	span, ctx := startSpan(ctx, DriverSQLite, "delete", category)
	defer func() { finishSpan(span, err) }()

	if category == "" {
		return ErrInvalidCategory
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM rides WHERE category = ?", category)
	if err != nil {
		return fmt.Errorf("deleting ride %q: %w", category, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// List summarizes every saved ride
func (s *SQLiteStore) List(ctx context.Context) (summaries []Summary, err error) {
	span, ctx := startSpan(ctx, DriverSQLite, "list", "")
	defer func() { finishSpan(span, err) }()

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, duration_seconds, distance_km, point_count, saved_at
		FROM rides
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("listing rides: %w", err)
	}
	defer rows.Close()

	summaries = []Summary{}
	for rows.Next() {
		var sum Summary
		var savedAt string
		if err := rows.Scan(&sum.Category, &sum.DurationSeconds, &sum.DistanceKm, &sum.Points, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning ride: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
			sum.SavedAt = t
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package store persists completed rides, one record per ride category. The
// saved record of a category is the ghost the next ride of that category is
// compared against.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cycleplus-tools/cptools/track"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// ErrRecordNotFound is returned when no ride is stored for a category
var ErrRecordNotFound = errors.New("ride record not found")

// ErrInvalidCategory is returned for an empty category name
var ErrInvalidCategory = errors.New("ride category must not be empty")

// MinTrackPoints is the smallest track worth saving. Shorter rides are dropped.
const MinTrackPoints = 2

// Supported store drivers
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Record is a saved ride
type Record struct {
	DurationSeconds int           `json:"durationSeconds"`
	Track           []track.Point `json:"track"`
}

// DistanceKm returns the total distance of the ride
func (r Record) DistanceKm() float64 {
	if len(r.Track) == 0 {
		return 0
	}
	return r.Track[len(r.Track)-1].Distance
}

// Summary describes a saved ride without its track
type Summary struct {
	Category        string
	DurationSeconds int
	DistanceKm      float64
	Points          int
	SavedAt         time.Time
}

// Store reads and writes ride records keyed by category
type Store interface {
	// Load returns the record of the category, or ErrRecordNotFound.
	Load(ctx context.Context, category string) (*Record, error)
	// Save overwrites the record of the category. Records with fewer than
	// MinTrackPoints points are refused: saved is false and the previous
	// record is left untouched.
	Save(ctx context.Context, category string, rec Record) (saved bool, err error)
	// Delete removes the record of the category, or returns ErrRecordNotFound.
	Delete(ctx context.Context, category string) error
	// List returns a summary of every saved record, sorted by category.
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

// Open opens the store of the given driver inside dir, creating dir if needed
func Open(driver string, dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	switch driver {
	case DriverJSON:
		return NewJSONStore(dir)
	case DriverSQLite:
		return OpenSQLite(filepath.Join(dir, "rides.db"))
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func summarize(category string, rec Record, savedAt time.Time) Summary {
	return Summary{
		Category:        category,
		DurationSeconds: rec.DurationSeconds,
		DistanceKm:      rec.DistanceKm(),
		Points:          len(rec.Track),
		SavedAt:         savedAt,
	}
}

func startSpan(ctx context.Context, driver, op, category string) (opentracing.Span, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "store."+driver+"."+op)
	ext.Component.Set(span, "cycleplus-store")
	if category != "" {
		span.SetTag("ride.category", category)
	}
	return span, ctx
}

func finishSpan(span opentracing.Span, err error) {
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		ext.Error.Set(span, true)
		span.LogKV("event", "error", "message", err.Error())
	}
	span.Finish()
}

// Package ride tracks a live ride from the GPS fixes it receives and compares
// it against the last saved ride of the same category.
package ride

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"cycleplus-tools/cptools/ghost"
	"cycleplus-tools/cptools/store"
	"cycleplus-tools/cptools/track"
)

// State of a ride session
type State int

// Session states. Idle is both the initial and the final state.
const (
	Idle State = iota
	Active
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Store loads the ghost ride of a category and saves finished rides
type Store interface {
	Load(ctx context.Context, category string) (*store.Record, error)
	Save(ctx context.Context, category string, rec store.Record) (bool, error)
}

// Settings tune a ride session
type Settings struct {
	// ThinInterval is the minimum time between two recorded track points.
	ThinInterval time.Duration
	// MinMovementKm ignores fixes closer than this to the last counted
	// position. Zero counts every valid fix.
	MinMovementKm float64
	// PowerOwner tags GPS power requests.
	PowerOwner string
	// TrailLength is the number of track points returned in snapshots.
	TrailLength int

	Now    func() time.Time
	Logger *log.Logger
}

// DefaultSettings returns the settings of the watch app
func DefaultSettings() Settings {
	return Settings{
		ThinInterval:  5 * time.Second,
		MinMovementKm: 0,
		PowerOwner:    DefaultPowerOwner,
		TrailLength:   100,
		Now:           time.Now,
		Logger:        log.New(os.Stderr, "cycleplus: ", log.LstdFlags),
	}
}

// Session is the state of the ride being tracked. All methods are safe for
// concurrent use; the display ticker only reads snapshots.
type Session struct {
	mu sync.Mutex

	store    Store
	power    Power
	settings Settings

	state    State
	category string

	// timing is set by the first valid fix, which latches startEpoch
	timing     bool
	startEpoch time.Time
	pausedAt   time.Time

	distance float64
	lastFix  *Fix
	lastPos  track.Coordinate
	recorder *track.Recorder

	ghost    []track.Point
	delta    float64
	hasDelta bool
}

// New creates an idle session. A nil power is replaced by NopPower and unset
// settings by their defaults.
func New(st Store, power Power, settings Settings) *Session {
	defaults := DefaultSettings()
	if settings.Now == nil {
		settings.Now = defaults.Now
	}
	if settings.Logger == nil {
		settings.Logger = defaults.Logger
	}
	if settings.PowerOwner == "" {
		settings.PowerOwner = defaults.PowerOwner
	}
	if settings.TrailLength <= 0 {
		settings.TrailLength = defaults.TrailLength
	}
	if power == nil {
		power = NopPower
	}

	return &Session{
		store:    st,
		power:    power,
		settings: settings,
		recorder: track.NewRecorder(settings.ThinInterval),
	}
}

// Start arms a new ride of the given category and loads the category's last
// saved ride as the ghost. Timing begins with the first valid fix. A missing
// or unreadable ghost leaves the ride without comparison.
func (s *Session) Start(ctx context.Context, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return
	}

	s.reset()
	s.state = Active
	s.category = category
	s.ghost = s.loadGhost(ctx, category)
	s.setPower(true)
}

// OnFix feeds a GPS fix to the session. Fixes are ignored unless the session
// is active, and fixes without position only refresh the live speed and lock
// status.
func (s *Session) OnFix(fix Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active {
		return
	}

	s.lastFix = &fix
	if !fix.Valid() {
		return
	}

	now := s.settings.Now()
	pos := fix.Coordinate()

	if !s.timing {
		s.timing = true
		s.startEpoch = now
		s.lastPos = pos
		s.recorder.Seed(pos)
		return
	}

	elapsed := now.Sub(s.startEpoch).Seconds()

	// fixes below the minimum movement still move the ghost clock
	if d := track.DistanceKm(s.lastPos, pos); d >= s.settings.MinMovementKm {
		s.distance += d
		s.lastPos = pos
		s.recorder.Add(track.Point{
			Latitude:  pos.Latitude,
			Longitude: pos.Longitude,
			Elapsed:   elapsed,
			Distance:  s.distance,
		})
	}

	// keep the last delta on screen when the ghost has nothing to say
	if delta, ok := ghost.Delta(s.ghost, s.distance, elapsed); ok {
		s.delta = delta
		s.hasDelta = true
	}
}

// Pause freezes the ride clock and releases the GPS receiver
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active {
		return
	}

	s.state = Paused
	s.pausedAt = s.settings.Now()
	s.setPower(false)
}

// Resume restarts the ride clock. The paused time is not counted: the start
// epoch moves forward by the length of the pause.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Paused {
		return
	}

	if s.timing {
		s.startEpoch = s.startEpoch.Add(s.settings.Now().Sub(s.pausedAt))
	}
	s.state = Active
	s.setPower(true)
}

// StopAndSave ends the ride and saves it as the ghost of the category. An
// empty category saves under the category given to Start. Rides shorter than
// store.MinTrackPoints points are dropped and saved is false. The session is
// idle afterwards, even when saving fails. Save errors are returned, not
// logged.
func (s *Session) StopAndSave(ctx context.Context, category string) (saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Idle {
		return false, nil
	}
	if category == "" {
		category = s.category
	}

	rec := store.Record{
		DurationSeconds: int(s.elapsed().Seconds()),
		Track:           s.recorder.Points(),
	}
	s.setPower(false)
	s.reset()

	if len(rec.Track) < store.MinTrackPoints || s.store == nil {
		return false, nil
	}

	saved, err = s.store.Save(ctx, category, rec)
	if err != nil {
		return false, fmt.Errorf("saving ride %q: %w", category, err)
	}

	return saved, nil
}

// Discard ends the ride without saving it
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Idle {
		return
	}

	s.setPower(false)
	s.reset()
}

// Kill releases the GPS receiver whatever the state and drops the ride. It
// is meant for application teardown.
func (s *Session) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setPower(false)
	s.reset()
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Elapsed returns the ride time, excluding pauses
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.elapsed()
}

// DistanceKm returns the distance ridden so far
func (s *Session) DistanceKm() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.distance
}

// Track returns a copy of the recorded track
func (s *Session) Track() []track.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recorder.Points()
}

// Delta returns the last known time difference against the ghost, in
// seconds: positive when behind, negative when ahead. It returns false when
// no comparison was possible yet.
func (s *Session) Delta() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.delta, s.hasDelta
}

func (s *Session) elapsed() time.Duration {
	if !s.timing {
		return 0
	}

	end := s.settings.Now()
	if s.state == Paused {
		end = s.pausedAt
	}
	return end.Sub(s.startEpoch)
}

func (s *Session) loadGhost(ctx context.Context, category string) []track.Point {
	if s.store == nil || category == "" {
		return nil
	}

	rec, err := s.store.Load(ctx, category)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		s.settings.Logger.Printf("failed to load ghost ride %q: %v", category, err)
		return nil
	}
	return rec.Track
}

func (s *Session) setPower(on bool) {
	if err := s.power.SetGPSPower(on, s.settings.PowerOwner); err != nil {
		s.settings.Logger.Printf("failed to switch GPS power on=%t: %v", on, err)
	}
}

func (s *Session) reset() {
	s.state = Idle
	s.category = ""
	s.timing = false
	s.startEpoch = time.Time{}
	s.pausedAt = time.Time{}
	s.distance = 0
	s.lastFix = nil
	s.lastPos = track.Coordinate{Latitude: math.NaN(), Longitude: math.NaN()}
	s.recorder.Reset()
	s.ghost = nil
	s.delta = 0
	s.hasDelta = false
}

package ride

import (
	"context"
	"math"
	"time"

	"cycleplus-tools/cptools/track"
)

// Snapshot is a read-only copy of the session, as drawn by the display
type Snapshot struct {
	State    State
	Category string

	// Timing is false until the first valid fix of the ride.
	Timing bool
	// HasFix reports whether the last fix held a position.
	HasFix   bool
	SpeedKmh float64

	DistanceKm float64
	Elapsed    time.Duration

	// Delta is the time difference against the ghost in seconds, valid when
	// HasDelta is set. Positive means behind.
	Delta    float64
	HasDelta bool

	// GhostPoints is the size of the loaded ghost track.
	GhostPoints int
	// OffRouteKm is the distance from the last position to the ghost track,
	// valid when OnGhost is set.
	OffRouteKm float64
	OnGhost    bool

	// Trail holds the most recent track points, oldest first.
	Trail []track.Point
}

// Snapshot returns the current state of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:       s.state,
		Category:    s.category,
		Timing:      s.timing,
		DistanceKm:  s.distance,
		Elapsed:     s.elapsed(),
		Delta:       s.delta,
		HasDelta:    s.hasDelta,
		GhostPoints: len(s.ghost),
		Trail:       track.Tail(s.recorder.Points(), s.settings.TrailLength),
	}

	if s.lastFix != nil {
		snap.HasFix = s.lastFix.Valid()
		if !math.IsNaN(s.lastFix.Speed) {
			snap.SpeedKmh = s.lastFix.Speed
		}
	}

	if s.timing && len(s.ghost) >= 2 {
		snap.OffRouteKm, snap.OnGhost = track.DistanceToTrack(s.ghost, s.lastPos)
	}

	return snap
}

// Watch calls fn with a fresh snapshot every interval until ctx is done. It
// never changes the session.
func (s *Session) Watch(ctx context.Context, interval time.Duration, fn func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(s.Snapshot())
		}
	}
}

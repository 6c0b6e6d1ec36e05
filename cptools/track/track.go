package track

import (
	"time"

	"github.com/golang/geo/s2"
)

// Recorder accumulates the points of a live ride. Points closer in time than
// the minimum interval to the last kept point are dropped, which bounds the
// memory used by long rides. Thinning only lowers the resolution of the stored
// trail: the cumulative distance carried by each point is computed by the
// caller from every fix.
type Recorder struct {
	minInterval float64
	points      []Point
}

// NewRecorder creates a recorder keeping at most one point per minInterval
func NewRecorder(minInterval time.Duration) *Recorder {
	if minInterval < 0 {
		minInterval = 0
	}
	return &Recorder{minInterval: minInterval.Seconds()}
}

// Seed drops any recorded point and starts the track at the given origin,
// with no elapsed time and no distance.
func (r *Recorder) Seed(origin Coordinate) {
	r.points = []Point{{
		Latitude:  origin.Latitude,
		Longitude: origin.Longitude,
	}}
}

// Add appends the point if enough time passed since the last kept point.
// It returns whether the point was kept.
func (r *Recorder) Add(p Point) bool {
	if len(r.points) == 0 {
		r.points = append(r.points, p)
		return true
	}

	last := r.points[len(r.points)-1]
	if p.Elapsed-last.Elapsed < r.minInterval {
		return false
	}

	r.points = append(r.points, p)
	return true
}

// Reset drops all recorded points
func (r *Recorder) Reset() {
	r.points = nil
}

// Len returns the number of kept points
func (r *Recorder) Len() int {
	return len(r.points)
}

// Last returns the most recently kept point
func (r *Recorder) Last() (Point, bool) {
	if len(r.points) == 0 {
		return Point{}, false
	}
	return r.points[len(r.points)-1], true
}

// Points returns a copy of the kept points
func (r *Recorder) Points() []Point {
	return Tail(r.points, len(r.points))
}

// Tail returns a copy of the last n points of the given track
func Tail(points []Point, n int) []Point {
	if n <= 0 || len(points) == 0 {
		return []Point{}
	}
	if n > len(points) {
		n = len(points)
	}

	out := make([]Point, n)
	copy(out, points[len(points)-n:])
	return out
}

// DistanceToTrack returns the shortest distance in kilometers from the given
// position to the polyline drawn by the points. It returns false when the
// track has no point or the position is missing.
func DistanceToTrack(points []Point, pos LatLng) (float64, bool) {
	if len(points) == 0 || !isFinite(pos.Lat()) || !isFinite(pos.Lng()) {
		return 0, false
	}
	if len(points) == 1 {
		return DistanceKm(points[0], pos), true
	}

	lls := make([]s2.LatLng, len(points))
	for i, p := range points {
		lls[i] = toS2LatLng(p)
	}
	polyline := s2.PolylineFromLatLngs(lls)

	ll := toS2LatLng(pos)
	projected, _ := polyline.Project(s2.PointFromLatLng(ll))
	d := ll.Distance(s2.LatLngFromPoint(projected))

	return d.Radians() * EarthRadiusKm, true
}

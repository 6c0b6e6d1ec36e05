package track

import "math"

// LatLng latlng
type LatLng interface {
	Lat() float64
	Lng() float64
}

// Coordinate is a position in degrees. NaN in either field means "no position".
type Coordinate struct {
	Latitude, Longitude float64
}

// Lat returns the latitude in degrees
func (c Coordinate) Lat() float64 {
	return c.Latitude
}

// Lng returns the longitude in degrees
func (c Coordinate) Lng() float64 {
	return c.Longitude
}

// Valid reports whether both fields hold a usable number
func (c Coordinate) Valid() bool {
	return isFinite(c.Latitude) && isFinite(c.Longitude)
}

// Point is a recorded ride position, tagged with the time elapsed since the
// start of the ride (seconds) and the cumulative distance covered (km).
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Elapsed   float64 `json:"time"`
	Distance  float64 `json:"dist"`
}

// Lat returns the latitude in degrees
func (p Point) Lat() float64 {
	return p.Latitude
}

// Lng returns the longitude in degrees
func (p Point) Lng() float64 {
	return p.Longitude
}

// Coordinate returns the position of the point
func (p Point) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

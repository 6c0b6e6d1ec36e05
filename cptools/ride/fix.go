package ride

import (
	"math"

	"cycleplus-tools/cptools/track"
)

// Fix is one sample of the GPS receiver. Fixes without satellite lock carry
// no usable position.
type Fix struct {
	HasFix    bool
	Latitude  float64
	Longitude float64
	Speed     float64 // km/h
}

// NoFix returns a fix without position, as sent while the receiver searches
// for satellites.
func NoFix() Fix {
	return Fix{Latitude: math.NaN(), Longitude: math.NaN()}
}

// Coordinate returns the position of the fix
func (f Fix) Coordinate() track.Coordinate {
	return track.Coordinate{Latitude: f.Latitude, Longitude: f.Longitude}
}

// Valid reports whether the fix holds a usable position
func (f Fix) Valid() bool {
	return f.HasFix && f.Coordinate().Valid()
}

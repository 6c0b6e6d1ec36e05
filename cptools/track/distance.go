package track

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for all ride distances.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance in kilometers between
// two positions. A missing coordinate contributes no movement and yields 0.
func DistanceKm(a, b LatLng) float64 {
	if !isFinite(a.Lat()) || !isFinite(a.Lng()) || !isFinite(b.Lat()) || !isFinite(b.Lng()) {
		return 0
	}

	// s2 multiplies the cosines left to right, so the operands are put in a
	// fixed order to keep the result exactly symmetric
	if b.Lat() < a.Lat() || (b.Lat() == a.Lat() && b.Lng() < a.Lng()) {
		a, b = b, a
	}

	d := toS2LatLng(a).Distance(toS2LatLng(b))
	return d.Radians() * EarthRadiusKm
}

func toS2LatLng(p LatLng) s2.LatLng {
	return s2.LatLng{
		Lat: s1.Angle(p.Lat()) * s1.Degree,
		Lng: s1.Angle(p.Lng()) * s1.Degree,
	}
}

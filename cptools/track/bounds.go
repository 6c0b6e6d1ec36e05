package track

// Bounds represents track coordinate boundaries
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// Extend extends boundaries from given decimal degrees
func (b Bounds) Extend(inc float64) Bounds {
	b.MinLat -= inc
	b.MinLng -= inc
	b.MaxLat += inc
	b.MaxLng += inc
	return b
}

// BoundsOf returns the boundaries of the given points. The second value is false
// when there are no points to bound.
func BoundsOf(points []Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat: points[0].Latitude,
		MaxLat: points[0].Latitude,
		MinLng: points[0].Longitude,
		MaxLng: points[0].Longitude,
	}
	for _, p := range points[1:] {
		if p.Latitude < b.MinLat {
			b.MinLat = p.Latitude
		}
		if p.Latitude > b.MaxLat {
			b.MaxLat = p.Latitude
		}
		if p.Longitude < b.MinLng {
			b.MinLng = p.Longitude
		}
		if p.Longitude > b.MaxLng {
			b.MaxLng = p.Longitude
		}
	}

	return b, true
}

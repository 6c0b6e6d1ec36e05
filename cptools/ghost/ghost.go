// Package ghost compares a live ride against a previously saved ride of the
// same category: given a distance, it tells when the saved ride got there.
package ghost

import "cycleplus-tools/cptools/track"

// ExpectedTime returns the elapsed seconds at which the ghost track reached
// the given cumulative distance, interpolating linearly between its two
// surrounding points. It returns false when the track has fewer than two
// points or the distance lies outside of it.
//
// The ghost track must be sorted by non-decreasing distance.
func ExpectedTime(ghost []track.Point, distKm float64) (float64, bool) {
	if len(ghost) < 2 {
		return 0, false
	}

	for i := 1; i < len(ghost); i++ {
		prev, next := ghost[i-1], ghost[i]
		if distKm < prev.Distance || distKm > next.Distance {
			continue
		}

		span := next.Distance - prev.Distance
		if span == 0 {
			return prev.Elapsed, true
		}

		ratio := (distKm - prev.Distance) / span
		return prev.Elapsed + (next.Elapsed-prev.Elapsed)*ratio, true
	}

	return 0, false
}

// Delta returns how many seconds the rider is behind the ghost (positive) or
// ahead of it (negative) after elapsed seconds at the given distance.
func Delta(ghost []track.Point, distKm, elapsed float64) (float64, bool) {
	expected, ok := ExpectedTime(ghost, distKm)
	if !ok {
		return 0, false
	}
	return elapsed - expected, true
}

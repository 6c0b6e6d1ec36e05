package gpxutils

import (
	"errors"
	"time"

	"cycleplus-tools/cptools/ride"
	"cycleplus-tools/cptools/store"
	"cycleplus-tools/cptools/track"

	"github.com/tkrajina/gpxgo/gpx"
)

// GpxVersion GPX version
const GpxVersion = "1.1"

const gpxXMLNs = "http://www.topografix.com/GPX/1/1"
const gpxXMLNsXsi = "http://www.w3.org/2001/XMLSchema-instance"

// ErrTooFewPoints is returned when a GPX holds less than two timed points
var ErrTooFewPoints = errors.New("gpx has less than 2 timed track points")

// Sample is a GPS fix along with the time it was received
type Sample struct {
	Time time.Time
	Fix  ride.Fix
}

// ToGPX builds a single track GPX from a saved ride. Point timestamps are
// computed from the given start time.
func ToGPX(category string, rec store.Record, start time.Time) *gpx.GPX {
	points := make([]gpx.GPXPoint, len(rec.Track))
	for i, p := range rec.Track {
		points[i] = gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
			},
			Timestamp: start.Add(time.Duration(p.Elapsed * float64(time.Second))),
		}
	}

	t := gpx.GPXTrack{
		Name:     category,
		Segments: []gpx.GPXTrackSegment{{Points: points}},
	}

	return &gpx.GPX{
		XMLNs:        gpxXMLNs,
		XmlNsXsi:     gpxXMLNsXsi,
		XmlSchemaLoc: gpxXMLNs,

		Version: GpxVersion,
		Creator: "cycleplus-tools",
		Name:    category,
		Time:    &start,
		Tracks:  []gpx.GPXTrack{t},
	}
}

// ToRecord builds a ride record from the timed points of a GPX, keeping at
// most one point per minInterval. The start time of the ride is returned
// along with the record.
func ToRecord(g *gpx.GPX, minInterval time.Duration) (store.Record, time.Time, error) {
	points := timedPoints(g)
	if len(points) < store.MinTrackPoints {
		return store.Record{}, time.Time{}, ErrTooFewPoints
	}

	start := points[0].Timestamp
	r := track.NewRecorder(minInterval)
	r.Seed(coordinate(points[0]))

	distance := 0.0
	elapsed := 0.0
	for i := 1; i < len(points); i++ {
		distance += track.DistanceKm(coordinate(points[i-1]), coordinate(points[i]))
		elapsed = points[i].Timestamp.Sub(start).Seconds()
		r.Add(track.Point{
			Latitude:  points[i].Latitude,
			Longitude: points[i].Longitude,
			Elapsed:   elapsed,
			Distance:  distance,
		})
	}

	rec := store.Record{
		DurationSeconds: int(elapsed),
		Track:           r.Points(),
	}
	if len(rec.Track) < store.MinTrackPoints {
		return store.Record{}, time.Time{}, ErrTooFewPoints
	}

	return rec, start, nil
}

// Samples turns the timed points of a GPX into the fixes a GPS receiver would
// have produced, with the speed derived from the previous point.
func Samples(g *gpx.GPX) []Sample {
	points := timedPoints(g)
	samples := make([]Sample, len(points))

	for i, p := range points {
		fix := ride.Fix{
			HasFix:    true,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		}
		if i > 0 {
			hours := p.Timestamp.Sub(points[i-1].Timestamp).Hours()
			if hours > 0 {
				fix.Speed = track.DistanceKm(coordinate(points[i-1]), coordinate(p)) / hours
			}
		}
		samples[i] = Sample{Time: p.Timestamp, Fix: fix}
	}

	return samples
}

// timedPoints flattens every track segment, skipping points without time
// and points going back in time.
func timedPoints(g *gpx.GPX) []gpx.GPXPoint {
	pts := []gpx.GPXPoint{}
	for _, t := range g.Tracks {
		for _, s := range t.Segments {
			for _, p := range s.Points {
				if p.Timestamp.IsZero() {
					continue
				}
				if len(pts) > 0 && p.Timestamp.Before(pts[len(pts)-1].Timestamp) {
					continue
				}
				pts = append(pts, p)
			}
		}
	}
	return pts
}

func coordinate(p gpx.GPXPoint) track.Coordinate {
	return track.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

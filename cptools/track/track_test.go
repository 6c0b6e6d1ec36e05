package track_test

import (
	"cycleplus-tools/cptools/track"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		a, b track.Coordinate
		want float64
	}{
		"same_point":      {a: track.Coordinate{Latitude: 52, Longitude: -0.1}, b: track.Coordinate{Latitude: 52, Longitude: -0.1}, want: 0},
		"thousandth_lat":  {a: track.Coordinate{Latitude: 52, Longitude: -0.1}, b: track.Coordinate{Latitude: 52.001, Longitude: -0.1}, want: 0.1112},
		"one_degree_lng":  {a: track.Coordinate{Latitude: 0, Longitude: 0}, b: track.Coordinate{Latitude: 0, Longitude: 1}, want: 111.1949},
		"antipodal":       {a: track.Coordinate{Latitude: 0, Longitude: 0}, b: track.Coordinate{Latitude: 0, Longitude: 180}, want: math.Pi * track.EarthRadiusKm},
		"missing_lat":     {a: track.Coordinate{Latitude: math.NaN(), Longitude: 0}, b: track.Coordinate{Latitude: 1, Longitude: 1}, want: 0},
		"missing_lng":     {a: track.Coordinate{Latitude: 1, Longitude: 1}, b: track.Coordinate{Latitude: 1, Longitude: math.NaN()}, want: 0},
		"infinite_coords": {a: track.Coordinate{Latitude: math.Inf(1), Longitude: 0}, b: track.Coordinate{Latitude: 1, Longitude: 1}, want: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.InDelta(tc.want, track.DistanceKm(tc.a, tc.b), 1e-3)
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	require := require.New(t)

	coords := []track.Coordinate{
		{Latitude: 47.58358925699506, Longitude: -121.95062398910524},
		{Latitude: 47.58878498470957, Longitude: -121.94446563720703},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: 10},
		{Latitude: 0, Longitude: -179.9},
	}

	for _, a := range coords {
		for _, b := range coords {
			d1 := track.DistanceKm(a, b)
			d2 := track.DistanceKm(b, a)
			require.GreaterOrEqual(d1, 0.0)
			require.Equal(d1, d2)
		}
		require.Equal(0.0, track.DistanceKm(a, a))
	}

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100000; i++ {
		a := track.Coordinate{Latitude: rnd.Float64()*180 - 90, Longitude: rnd.Float64()*360 - 180}
		b := track.Coordinate{Latitude: rnd.Float64()*180 - 90, Longitude: rnd.Float64()*360 - 180}
		require.Equal(track.DistanceKm(a, b), track.DistanceKm(b, a), "%v %v", a, b)
	}

	// same latitude, the longitude breaks the tie
	a := track.Coordinate{Latitude: -53.426, Longitude: -50.086}
	b := track.Coordinate{Latitude: -53.426, Longitude: 130.497}
	require.Equal(track.DistanceKm(a, b), track.DistanceKm(b, a))
	a = track.Coordinate{Latitude: -53.426, Longitude: -50.086}
	b = track.Coordinate{Latitude: 12.721, Longitude: 130.497}
	require.Equal(track.DistanceKm(a, b), track.DistanceKm(b, a))
}

func TestRecorderThinning(t *testing.T) {
	require := require.New(t)

	r := track.NewRecorder(5 * time.Second)
	r.Seed(track.Coordinate{Latitude: 52, Longitude: -0.1})

	kept := []bool{}
	for _, elapsed := range []float64{1, 4.9, 5, 7, 10.5, 20} {
		kept = append(kept, r.Add(track.Point{Latitude: 52, Longitude: -0.1, Elapsed: elapsed, Distance: elapsed / 100}))
	}

	require.Equal([]bool{false, false, true, false, true, true}, kept)
	require.Equal(4, r.Len())

	pts := r.Points()
	require.Equal(0.0, pts[0].Elapsed)
	require.Equal(0.0, pts[0].Distance)
	for i := 1; i < len(pts); i++ {
		require.GreaterOrEqual(pts[i].Elapsed-pts[i-1].Elapsed, 5.0)
	}

	last, ok := r.Last()
	require.True(ok)
	require.Equal(20.0, last.Elapsed)
}

func TestRecorderSeedResets(t *testing.T) {
	require := require.New(t)

	r := track.NewRecorder(0)
	_, ok := r.Last()
	require.False(ok)

	r.Add(track.Point{Elapsed: 3})
	r.Add(track.Point{Elapsed: 3})
	require.Equal(2, r.Len())

	r.Seed(track.Coordinate{Latitude: 1, Longitude: 2})
	require.Equal([]track.Point{{Latitude: 1, Longitude: 2}}, r.Points())

	r.Reset()
	require.Equal(0, r.Len())
	require.Empty(r.Points())
}

func TestRecorderPointsIsACopy(t *testing.T) {
	require := require.New(t)

	r := track.NewRecorder(time.Second)
	r.Seed(track.Coordinate{Latitude: 1, Longitude: 2})

	pts := r.Points()
	pts[0].Latitude = 42

	first, _ := r.Last()
	require.Equal(1.0, first.Latitude)
}

func TestTail(t *testing.T) {
	require := require.New(t)

	pts := []track.Point{{Elapsed: 0}, {Elapsed: 5}, {Elapsed: 10}}

	tests := map[string]struct {
		n    int
		want []float64
	}{
		"all":      {n: 3, want: []float64{0, 5, 10}},
		"last_two": {n: 2, want: []float64{5, 10}},
		"too_many": {n: 10, want: []float64{0, 5, 10}},
		"none":     {n: 0, want: []float64{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := []float64{}
			for _, p := range track.Tail(pts, tc.n) {
				got = append(got, p.Elapsed)
			}
			require.Equal(tc.want, got)
		})
	}
}

func TestDistanceToTrack(t *testing.T) {
	require := require.New(t)

	pts := []track.Point{
		{Latitude: 52.000, Longitude: -0.100},
		{Latitude: 52.001, Longitude: -0.100},
		{Latitude: 52.002, Longitude: -0.100},
	}

	d, ok := track.DistanceToTrack(pts, track.Coordinate{Latitude: 52.001, Longitude: -0.100})
	require.True(ok)
	require.InDelta(0, d, 1e-6)

	d, ok = track.DistanceToTrack(pts, track.Coordinate{Latitude: 52.001, Longitude: -0.0985})
	require.True(ok)
	require.InDelta(0.1027, d, 1e-3)

	_, ok = track.DistanceToTrack(nil, track.Coordinate{Latitude: 52, Longitude: 0})
	require.False(ok)

	_, ok = track.DistanceToTrack(pts, track.Coordinate{Latitude: math.NaN(), Longitude: 0})
	require.False(ok)

	d, ok = track.DistanceToTrack(pts[:1], track.Coordinate{Latitude: 52.001, Longitude: -0.100})
	require.True(ok)
	require.InDelta(0.1112, d, 1e-3)
}

package ghost_test

import (
	"cycleplus-tools/cptools/ghost"
	"cycleplus-tools/cptools/track"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpectedTime(t *testing.T) {
	require := require.New(t)

	line := []track.Point{{Distance: 0, Elapsed: 0}, {Distance: 10, Elapsed: 100}}
	stops := []track.Point{
		{Distance: 0, Elapsed: 0},
		{Distance: 2, Elapsed: 40},
		{Distance: 2, Elapsed: 100},
		{Distance: 5, Elapsed: 160},
	}

	tests := map[string]struct {
		ghost  []track.Point
		dist   float64
		want   float64
		wantOK bool
	}{
		"midpoint":            {ghost: line, dist: 5, want: 50, wantOK: true},
		"start":               {ghost: line, dist: 0, want: 0, wantOK: true},
		"end":                 {ghost: line, dist: 10, want: 100, wantOK: true},
		"beyond":              {ghost: line, dist: 15, wantOK: false},
		"negative":            {ghost: line, dist: -1, wantOK: false},
		"empty":               {ghost: nil, dist: 0, wantOK: false},
		"single":              {ghost: line[:1], dist: 0, wantOK: false},
		"stop_uses_first_hit": {ghost: stops, dist: 2, want: 40, wantOK: true},
		"after_stop":          {ghost: stops, dist: 3.5, want: 130, wantOK: true},
		"degenerate_segment":  {ghost: []track.Point{{Distance: 0, Elapsed: 0}, {Distance: 0, Elapsed: 30}}, dist: 0, want: 0, wantOK: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ghost.ExpectedTime(tc.ghost, tc.dist)
			require.Equal(tc.wantOK, ok)
			if tc.wantOK {
				require.InDelta(tc.want, got, 1e-9)
			}
		})
	}
}

func TestDelta(t *testing.T) {
	require := require.New(t)

	line := []track.Point{{Distance: 0, Elapsed: 0}, {Distance: 10, Elapsed: 100}}

	d, ok := ghost.Delta(line, 5, 45)
	require.True(ok)
	require.InDelta(-5, d, 1e-9)

	d, ok = ghost.Delta(line, 5, 62)
	require.True(ok)
	require.InDelta(12, d, 1e-9)

	_, ok = ghost.Delta(line, 11, 62)
	require.False(ok)
}

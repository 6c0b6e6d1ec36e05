package track_test

import (
	"cycleplus-tools/cptools/track"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtendBounds(t *testing.T) {
	require := require.New(t)
	bounds := track.Bounds{
		MinLat: 48.1344333,
		MaxLat: 48.2714123,
		MinLng: -121.8064235,
		MaxLng: -121.6771830,
	}

	newBounds := bounds.Extend(0.01)

	require.InDelta(48.1244333, newBounds.MinLat, 1e-9)
	require.InDelta(48.2814123, newBounds.MaxLat, 1e-9)
	require.InDelta(-121.8164235, newBounds.MinLng, 1e-9)
	require.InDelta(-121.6671830, newBounds.MaxLng, 1e-9)
}

func TestBoundsOf(t *testing.T) {
	require := require.New(t)

	_, ok := track.BoundsOf(nil)
	require.False(ok)

	b, ok := track.BoundsOf([]track.Point{
		{Latitude: 52.001, Longitude: -0.100},
		{Latitude: 52.000, Longitude: -0.102},
		{Latitude: 52.003, Longitude: -0.099},
	})
	require.True(ok)
	require.Equal(52.000, b.MinLat)
	require.Equal(52.003, b.MaxLat)
	require.Equal(-0.102, b.MinLng)
	require.Equal(-0.099, b.MaxLng)
}

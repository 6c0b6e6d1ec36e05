package convert_test

import (
	"cycleplus-tools/cptools/convert"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToMiles(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input float64
		want  float64
	}{
		"simple": {input: 1, want: 0.6213712},
		"zero":   {input: 0, want: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.InDelta(tc.want, convert.ToMiles(tc.input), 1e-9)
		})
	}
}

func TestFtoan(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input float64
		want  string
	}{
		"floor":       {input: 2524.13242435, want: "2524"},
		"ceil":        {input: 2524.72342341, want: "2525"},
		"almost_zero": {input: 0.11, want: "0"},
		"zero":        {input: 0.0, want: "0"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(tc.want, convert.Ftoan(tc.input))
		})
	}
}

func TestDuration(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input time.Duration
		want  string
	}{
		"zero":     {input: 0, want: "00:00:00"},
		"seconds":  {input: 59*time.Second + 900*time.Millisecond, want: "00:00:59"},
		"minutes":  {input: 24 * time.Minute, want: "00:24:00"},
		"mix":      {input: time.Hour + 10*time.Minute + 43*time.Second, want: "01:10:43"},
		"long":     {input: 26 * time.Hour, want: "26:00:00"},
		"negative": {input: -5 * time.Minute, want: "00:00:00"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(tc.want, convert.Duration(tc.input))
		})
	}
}

func TestDelta(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input float64
		want  string
	}{
		"behind":       {input: 75, want: "+1:15"},
		"ahead":        {input: -9.6, want: "-0:10"},
		"even":         {input: 0, want: "+0:00"},
		"rounds_to_0":  {input: -0.2, want: "+0:00"},
		"over_an_hour": {input: 3725, want: "+62:05"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(tc.want, convert.Delta(tc.input))
		})
	}
}

func TestDistanceAndSpeed(t *testing.T) {
	require := require.New(t)

	require.Equal("0.22", convert.Distance(0.22239))
	require.Equal("12.00", convert.Distance(12))
	require.Equal("27.4", convert.Speed(27.36))
	require.Equal("0.0", convert.Speed(0))
}

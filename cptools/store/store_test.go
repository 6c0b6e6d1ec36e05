package store_test

import (
	"context"
	"cycleplus-tools/cptools/store"
	"cycleplus-tools/cptools/track"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var backends = map[string]func(t *testing.T) store.Store{
	"json": func(t *testing.T) store.Store {
		s, err := store.NewJSONStore(t.TempDir())
		require.NoError(t, err)
		return s
	},
	"sqlite": func(t *testing.T) store.Store {
		db, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		s, err := store.NewSQLiteStore(db)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	},
}

func commute() store.Record {
	return store.Record{
		DurationSeconds: 20,
		Track: []track.Point{
			{Latitude: 52.000, Longitude: -0.1, Elapsed: 0, Distance: 0},
			{Latitude: 52.001, Longitude: -0.1, Elapsed: 10, Distance: 0.1112},
			{Latitude: 52.002, Longitude: -0.1, Elapsed: 20, Distance: 0.2224},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s := open(t)

			saved, err := s.Save(ctx, "work", commute())
			require.NoError(err)
			require.True(saved)

			rec, err := s.Load(ctx, "work")
			require.NoError(err)
			require.Equal(commute(), *rec)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s := open(t)

			_, err := s.Save(ctx, "work", commute())
			require.NoError(err)

			faster := store.Record{
				DurationSeconds: 8,
				Track: []track.Point{
					{Latitude: 52.000, Longitude: -0.1},
					{Latitude: 52.001, Longitude: -0.1, Elapsed: 8, Distance: 0.1112},
				},
			}
			saved, err := s.Save(ctx, "work", faster)
			require.NoError(err)
			require.True(saved)

			rec, err := s.Load(ctx, "work")
			require.NoError(err)
			require.Equal(faster, *rec)
		})
	}
}

func TestSaveRefusesShortTrack(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s := open(t)

			saved, err := s.Save(ctx, "work", store.Record{
				DurationSeconds: 3,
				Track:           []track.Point{{Latitude: 1, Longitude: 1}},
			})
			require.NoError(err)
			require.False(saved)

			_, err = s.Load(ctx, "work")
			require.ErrorIs(err, store.ErrRecordNotFound)

			_, err = s.Save(ctx, "work", commute())
			require.NoError(err)

			saved, err = s.Save(ctx, "work", store.Record{DurationSeconds: 1})
			require.NoError(err)
			require.False(saved)

			rec, err := s.Load(ctx, "work")
			require.NoError(err)
			require.Equal(commute(), *rec)
		})
	}
}

func TestLoadMissingAndInvalid(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s := open(t)

			_, err := s.Load(ctx, "nope")
			require.ErrorIs(err, store.ErrRecordNotFound)

			_, err = s.Load(ctx, "")
			require.ErrorIs(err, store.ErrInvalidCategory)

			_, err = s.Save(ctx, "", commute())
			require.ErrorIs(err, store.ErrInvalidCategory)
		})
	}
}

func TestDeleteAndList(t *testing.T) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			s := open(t)

			list, err := s.List(ctx)
			require.NoError(err)
			require.Empty(list)

			_, err = s.Save(ctx, "work", commute())
			require.NoError(err)
			_, err = s.Save(ctx, "home / back", commute())
			require.NoError(err)

			list, err = s.List(ctx)
			require.NoError(err)
			require.Len(list, 2)
			require.Equal("home / back", list[0].Category)
			require.Equal("work", list[1].Category)
			require.Equal(20, list[1].DurationSeconds)
			require.Equal(3, list[1].Points)
			require.InDelta(0.2224, list[1].DistanceKm, 1e-9)
			require.False(list[1].SavedAt.IsZero())

			require.NoError(s.Delete(ctx, "work"))
			require.ErrorIs(s.Delete(ctx, "work"), store.ErrRecordNotFound)

			_, err = s.Load(ctx, "work")
			require.ErrorIs(err, store.ErrRecordNotFound)

			list, err = s.List(ctx)
			require.NoError(err)
			require.Len(list, 1)
		})
	}
}

func TestJSONStoreFileIsReadable(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	s, err := store.NewJSONStore(dir)
	require.NoError(err)

	_, err = s.Save(context.Background(), "work", commute())
	require.NoError(err)

	data, err := os.ReadFile(filepath.Join(dir, "ride-work.json"))
	require.NoError(err)
	require.Contains(string(data), `"durationSeconds": 20`)
	require.Contains(string(data), `"lat": 52.001`)
	require.Contains(string(data), `"dist": 0.2224`)
}

func TestJSONStoreListSkipsUnreadableFiles(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	s, err := store.NewJSONStore(dir)
	require.NoError(err)

	_, err = s.Save(ctx, "work", commute())
	require.NoError(err)
	require.NoError(os.WriteFile(filepath.Join(dir, "ride-broken.json"), []byte("{not json"), 0644))

	list, err := s.List(ctx)
	require.NoError(err)
	require.Len(list, 1)
	require.Equal("work", list[0].Category)

	_, err = s.Load(ctx, "broken")
	require.Error(err)
	require.NotErrorIs(err, store.ErrRecordNotFound)
}

func TestOpen(t *testing.T) {
	require := require.New(t)
	dir := filepath.Join(t.TempDir(), "data")

	for _, driver := range []string{store.DriverJSON, store.DriverSQLite} {
		s, err := store.Open(driver, dir)
		require.NoError(err)
		require.NoError(s.Close())
	}

	_, err := os.Stat(filepath.Join(dir, "rides.db"))
	require.NoError(err)

	_, err = store.Open("csv", dir)
	require.Error(err)
}

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sundial/internal/config"
	apperrors "github.com/julianstephens/sundial/internal/errors"
	"github.com/julianstephens/sundial/internal/suntimes"
)

var testSunTimes = suntimes.SunTimes{
	Sunrise: suntimes.Clock(6, 30, 0),
	Sunset:  suntimes.Clock(18, 45, 0),
}

func fixedClock(year int, month time.Month, day, hour int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
	}
}

func newTestCache(t *testing.T, enabled bool) *Cache {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cache")
	return New(config.Cache{Enabled: enabled}, dir).WithClock(fixedClock(2025, 8, 17, 9))
}

func TestCache_EnabledStoreAndLoad(t *testing.T) {
	c := newTestCache(t, true)

	// no cache file exists
	_, ok := c.Load()
	assert.False(t, ok)

	stored, err := c.Store(testSunTimes)
	require.NoError(t, err)
	assert.True(t, stored)

	loaded, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, testSunTimes, loaded)

	assert.Equal(t, filepath.Join(c.Dir(), "cache-2025-08-17.json"), c.Path())
	assert.FileExists(t, c.Path())
}

func TestCache_RoundTripKeepsSeconds(t *testing.T) {
	c := newTestCache(t, true)
	st := suntimes.SunTimes{Sunrise: suntimes.Clock(3, 53, 30), Sunset: suntimes.Clock(18, 30, 25)}

	_, err := c.Store(st)
	require.NoError(t, err)

	loaded, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, st, loaded)
}

func TestCache_DisabledStoreAndLoad(t *testing.T) {
	c := newTestCache(t, false)

	stored, err := c.Store(testSunTimes)
	require.NoError(t, err)
	assert.False(t, stored)

	// Store must not have touched the filesystem
	_, statErr := os.Stat(c.Dir())
	assert.True(t, os.IsNotExist(statErr), "cache dir should not exist, stat error: %v", statErr)

	_, ok := c.Load()
	assert.False(t, ok)
}

func TestCache_DisabledIgnoresExistingEntry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	clock := fixedClock(2025, 8, 17, 9)

	_, err := New(config.Cache{Enabled: true}, dir).WithClock(clock).Store(testSunTimes)
	require.NoError(t, err)

	disabled := New(config.Cache{Enabled: false}, dir).WithClock(clock)
	_, ok := disabled.Load()
	assert.False(t, ok)

	stored, err := disabled.Store(suntimes.SunTimes{})
	require.NoError(t, err)
	assert.False(t, stored)
	assert.FileExists(t, filepath.Join(dir, "cache-2025-08-17.json"))
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `{"sun_times":{"sunrise":"06:30:00"`},
		{"bad time", `{"sun_times":{"sunrise":"half past six","sunset":"18:45:00"}}`},
		{"not json", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(t, true)
			require.NoError(t, os.MkdirAll(c.Dir(), 0755))
			require.NoError(t, os.WriteFile(c.Path(), []byte(tt.content), 0644))

			_, ok := c.Load()
			assert.False(t, ok)
		})
	}
}

func TestCache_UnreadableEntryIsAMiss(t *testing.T) {
	c := newTestCache(t, true)
	// A directory in place of the entry cannot be read as a file
	require.NoError(t, os.MkdirAll(c.Path(), 0755))

	_, ok := c.Load()
	assert.False(t, ok)
}

func TestCache_NewDayMisses(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	yesterday := New(config.Cache{Enabled: true}, dir).WithClock(fixedClock(2025, 8, 16, 23))
	_, err := yesterday.Store(testSunTimes)
	require.NoError(t, err)

	today := New(config.Cache{Enabled: true}, dir).WithClock(fixedClock(2025, 8, 17, 0))
	_, ok := today.Load()
	assert.False(t, ok)
}

func TestCache_StoreWipesOtherEntries(t *testing.T) {
	c := newTestCache(t, true)
	require.NoError(t, os.MkdirAll(c.Dir(), 0755))
	stale := filepath.Join(c.Dir(), "cache-2025-08-16.json")
	require.NoError(t, os.WriteFile(stale, []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir(), "stray.txt"), []byte("x"), 0644))

	_, err := c.Store(testSunTimes)
	require.NoError(t, err)

	files, err := os.ReadDir(c.Dir())
	require.NoError(t, err)
	require.Len(t, files, 1, "only today's entry should remain")
	assert.Equal(t, "cache-2025-08-17.json", files[0].Name())
}

func TestCache_StoreFailureIsCacheError(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))

	c := New(config.Cache{Enabled: true}, filepath.Join(parent, "cache")).WithClock(fixedClock(2025, 8, 17, 9))
	stored, err := c.Store(testSunTimes)
	assert.False(t, stored)
	assert.ErrorIs(t, err, apperrors.ErrCache)
}

func TestCache_Entries(t *testing.T) {
	c := newTestCache(t, true)

	names, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = c.Store(testSunTimes)
	require.NoError(t, err)

	names, err = c.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{"cache-2025-08-17.json"}, names)
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t, true)
	_, err := c.Store(testSunTimes)
	require.NoError(t, err)

	require.NoError(t, c.Clear())
	_, ok := c.Load()
	assert.False(t, ok)
	assert.NoDirExists(t, c.Dir())
}

// Package cache persists the current day's sun times so that at most one
// provider fetch happens per calendar day.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/constants"
	apperrors "github.com/julianstephens/sundial/internal/errors"
	"github.com/julianstephens/sundial/internal/logger"
	"github.com/julianstephens/sundial/internal/suntimes"
)

// Entry is the on-disk body of a cache file.
type Entry struct {
	SunTimes suntimes.SunTimes `json:"sun_times"`
}

// Cache is a single-entry store keyed by the local calendar date. The
// directory it owns is wiped on every Store.
type Cache struct {
	dir     string
	enabled bool
	now     func() time.Time
}

func New(cfg config.Cache, dir string) *Cache {
	return &Cache{
		dir:     dir,
		enabled: cfg.Enabled,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to derive today's key.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func (c *Cache) Enabled() bool {
	return c.enabled
}

func (c *Cache) Dir() string {
	return c.dir
}

// Key returns today's cache key (YYYY-MM-DD, local wall clock).
func (c *Cache) Key() string {
	return c.now().Local().Format(constants.DateFormat)
}

// Path returns the file holding today's entry.
func (c *Cache) Path() string {
	return filepath.Join(c.dir, constants.CacheFilePrefix+c.Key()+constants.CacheFileSuffix)
}

// Load returns today's sun times. It reports false when caching is disabled,
// when there is no entry for today, or when the entry cannot be read or
// decoded; such failures are logged and treated as a miss.
func (c *Cache) Load() (suntimes.SunTimes, bool) {
	if !c.enabled {
		return suntimes.SunTimes{}, false
	}

	path := c.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Ignoring unreadable cache entry", "path", path, "error", err)
		} else {
			logger.Debug("Cache miss", "key", c.Key())
		}
		return suntimes.SunTimes{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("Ignoring corrupt cache entry", "path", path, "error", err)
		return suntimes.SunTimes{}, false
	}

	logger.Debug("Cache hit", "key", c.Key(), "sunrise", entry.SunTimes.Sunrise, "sunset", entry.SunTimes.Sunset)
	return entry.SunTimes, true
}

// Store replaces the cache contents with today's entry. It returns false
// without touching the filesystem when caching is disabled. The entry is
// written to a temporary file and renamed into place, so a reader never
// sees a truncated entry.
func (c *Cache) Store(st suntimes.SunTimes) (bool, error) {
	if !c.enabled {
		return false, nil
	}

	data, err := json.Marshal(Entry{SunTimes: st})
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCache, err)
	}

	if err := os.RemoveAll(c.dir); err != nil {
		return false, apperrors.Wrap(apperrors.ErrCache, fmt.Errorf("failed to clear cache dir: %w", err))
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return false, apperrors.Wrap(apperrors.ErrCache, fmt.Errorf("failed to create cache dir: %w", err))
	}

	if err := writeFileAtomic(c.Path(), data); err != nil {
		return false, apperrors.Wrap(apperrors.ErrCache, err)
	}

	logger.Debug("Cached sun times", "key", c.Key(), "path", c.Path())
	return true, nil
}

// Clear removes the cache directory and everything in it.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return apperrors.Wrap(apperrors.ErrCache, err)
	}
	return nil
}

// Entries lists the cache file names present, oldest key first.
func (c *Cache) Entries() ([]string, error) {
	files, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, err)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		if strings.HasPrefix(name, constants.CacheFilePrefix) && strings.HasSuffix(name, constants.CacheFileSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache entry: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move cache entry into place: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/sundial/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	userHomeDirFunc   = os.UserHomeDir
	getenvFunc        = os.Getenv
)

// Paths holds the per-user directories sundial reads and writes.
type Paths struct {
	ConfigDir string
	DataDir   string
}

// DefaultPaths resolves the per-user config directory (os.UserConfigDir) and
// data directory ($XDG_DATA_HOME or ~/.local/share), both suffixed with the
// application name.
func DefaultPaths() (Paths, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get user config dir: %w", err)
	}

	dataHome := getenvFunc("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := userHomeDirFunc()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to get user home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return Paths{
		ConfigDir: filepath.Join(configDir, constants.AppName),
		DataDir:   filepath.Join(dataHome, constants.AppName),
	}, nil
}

func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, constants.ConfigFileName)
}

// CacheDir is wiped on every cache write, so nothing else may live there.
func (p Paths) CacheDir() string {
	return filepath.Join(p.DataDir, constants.CacheDirName)
}

func (p Paths) LogDir() string {
	return filepath.Join(p.DataDir, constants.LogDirName)
}

package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func stubPaths(t *testing.T, configDir, home, xdgData string) {
	t.Helper()
	oldConfig, oldHome, oldGetenv := userConfigDirFunc, userHomeDirFunc, getenvFunc
	t.Cleanup(func() {
		userConfigDirFunc, userHomeDirFunc, getenvFunc = oldConfig, oldHome, oldGetenv
	})

	userConfigDirFunc = func() (string, error) { return configDir, nil }
	userHomeDirFunc = func() (string, error) { return home, nil }
	getenvFunc = func(key string) string {
		if key == "XDG_DATA_HOME" {
			return xdgData
		}
		return ""
	}
}

func TestDefaultPaths(t *testing.T) {
	stubPaths(t, "/home/ada/.config", "/home/ada", "")

	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if paths.ConfigDir != "/home/ada/.config/sundial" {
		t.Errorf("ConfigDir = %s", paths.ConfigDir)
	}
	if paths.DataDir != "/home/ada/.local/share/sundial" {
		t.Errorf("DataDir = %s", paths.DataDir)
	}
	if paths.ConfigFile() != filepath.Join(paths.ConfigDir, "config.toml") {
		t.Errorf("ConfigFile = %s", paths.ConfigFile())
	}
	if paths.CacheDir() != "/home/ada/.local/share/sundial/cache" {
		t.Errorf("CacheDir = %s", paths.CacheDir())
	}
	if paths.LogDir() != "/home/ada/.local/share/sundial/logs" {
		t.Errorf("LogDir = %s", paths.LogDir())
	}
}

func TestDefaultPaths_XDGDataHome(t *testing.T) {
	stubPaths(t, "/cfg", "/home/ada", "/srv/data")

	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths.DataDir != "/srv/data/sundial" {
		t.Errorf("DataDir = %s, want /srv/data/sundial", paths.DataDir)
	}
}

func TestDefaultPaths_NoConfigDir(t *testing.T) {
	stubPaths(t, "", "", "")
	userConfigDirFunc = func() (string, error) { return "", errors.New("$HOME is not defined") }

	if _, err := DefaultPaths(); err == nil {
		t.Error("expected error when config dir is unavailable")
	}
}

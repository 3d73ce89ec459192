// Package backup keeps timestamped copies of config.toml so that
// "config init --force" and "config restore" can be undone.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/logger"
)

const (
	// MaxBackups is the maximum number of backups to keep
	MaxBackups = 10
	// BackupDirName is the name of the backup directory
	BackupDirName = "backups"
	// BackupFilePrefix is the prefix for backup files
	BackupFilePrefix = "config-"
	// BackupFileSuffix is the suffix for backup files
	BackupFileSuffix = ".toml"

	timestampFormat = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for one config file
type Manager struct {
	configPath string
	backupDir  string
	now        func() time.Time
}

// NewManager creates a manager that stores backups next to configPath
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		backupDir:  filepath.Join(filepath.Dir(configPath), BackupDirName),
		now:        time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the current config file into the backup directory and
// prunes the oldest backups beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("config does not exist: %s", m.configPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.uniquePath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old config backups", "error", err)
	}
	return backupPath, nil
}

func (m *Manager) uniquePath() (string, error) {
	timestamp := m.now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+BackupFileSuffix)

	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, BackupFileSuffix))
	}
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, BackupFileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), BackupFileSuffix)
		// Drop a collision counter: YYYYMMDD-HHMMSS-N
		if len(stamp) > len(timestampFormat) {
			stamp = stamp[:len(timestampFormat)]
		}
		timestamp, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			// Higher collision counter first
			if len(backups[i].Path) != len(backups[j].Path) {
				return len(backups[i].Path) > len(backups[j].Path)
			}
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the config file with backupPath. The backup must
// parse as a valid configuration; the current file, if any, is backed up
// first.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}
	if _, err := config.Parse(data); err != nil {
		return "", fmt.Errorf("backup file is invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.configPath); err == nil {
		previous, err = m.CreateBackup()
		if err != nil {
			return "", fmt.Errorf("failed to backup current config before restore: %w", err)
		}
	}

	tempPath := m.configPath + ".restore.tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tempPath, m.configPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore config: %w", err)
	}
	return previous, nil
}

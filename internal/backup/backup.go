// Package backup keeps rotating snapshots of the local sqlite database.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// ErrNoDatabase is returned when the database to back up has not been created.
var ErrNoDatabase = errors.New("database does not exist")

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func (i Info) Name() string {
	return filepath.Base(i.Path)
}

type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager manages backups in a "backups" directory next to dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the database and prunes backups beyond the retention limit.
func (m *Manager) Create() (Info, error) {
	info, err := m.create()
	if err != nil {
		return Info{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return info, nil
}

func (m *Manager) create() (Info, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return Info{}, fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}

	path, err := m.nextPath()
	if err != nil {
		return Info{}, err
	}
	if err := m.snapshot(path); err != nil {
		return Info{}, fmt.Errorf("failed to backup database: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	ts, _ := parseName(filepath.Base(path))
	logger.Info("Created backup", "path", path)
	return Info{Path: path, Timestamp: ts, Size: stat.Size()}, nil
}

// nextPath names a backup by the minute, falling back to seconds and then a
// counter when several backups are taken close together.
func (m *Manager) nextPath() (string, error) {
	ts := m.now()
	candidate := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := candidate(ts.Format(minuteLayout))
	if !exists(path) {
		return path, nil
	}
	stamp := ts.Format(secondLayout)
	path = candidate(stamp)
	for n := 1; exists(path); n++ {
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = candidate(stamp + "-" + strconv.Itoa(n))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (m *Manager) snapshot(dest string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	if err := checkDatabase(src); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		src.Close()
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// List returns the available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		stat, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      stat.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName extracts the timestamp from names like
// mindtrack-20261015-2000.db, mindtrack-20261015-200012.db or
// mindtrack-20261015-200012-3.db.
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return time.Time{}, false
		}
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// Restore replaces the database with the backup at path. The current
// database is backed up first; that backup is returned so callers can
// report it. It is not counted against the retention limit until the next
// Create.
func (m *Manager) Restore(path string) (*Info, error) {
	if !exists(path) {
		return nil, fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := Verify(path); err != nil {
		return nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous *Info
	if exists(m.dbPath) {
		info, err := m.create()
		if err != nil {
			return nil, fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		previous = &info
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return nil, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Restored database from backup", "backup", path)
	return previous, nil
}

// Verify checks that path is a readable mindtrack database.
func Verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkDatabase(db); err != nil {
		return err
	}
	var version int
	if err := db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("not a mindtrack database: %w", err)
	}
	return nil
}

func checkDatabase(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

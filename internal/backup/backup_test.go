package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/constants"
	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "mindtrack.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	if err := store.SaveProfile(models.Profile{ID: "user-1"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	saveCheckIn(t, store, "2026-10-14", 6)
	store.Close()

	cleanup := func() {
		os.RemoveAll(tempDir)
	}
	return dbPath, cleanup
}

func saveCheckIn(t *testing.T, store *sqlite.Store, day string, mood int) {
	t.Helper()
	_, err := store.UpsertRecoveryEntry(models.RecoveryEntry{
		UserID:         "user-1",
		EntryDate:      calendar.MustParse(day),
		RecoveryStatus: models.StatusSame,
		MoodScore:      models.IntPtr(mood),
	})
	if err != nil {
		t.Fatalf("failed to save check-in: %v", err)
	}
}

func countEntries(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM recovery_entries").Scan(&n); err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	return n
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 10, 15, 20, 0, 0, 0, time.Local), time.Minute)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if info.Name() != "mindtrack-20261015-2000.db" {
		t.Errorf("unexpected backup name %s", info.Name())
	}
	if filepath.Dir(info.Path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside backup dir: %s", info.Path)
	}
	if info.Size == 0 {
		t.Error("backup is empty")
	}
	if err := Verify(info.Path); err != nil {
		t.Errorf("backup does not verify: %v", err)
	}
	if got := countEntries(t, info.Path); got != 1 {
		t.Errorf("expected 1 entry in backup, got %d", got)
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2026, 10, 15, 20, 0, 12, 0, time.Local) }

	var names []string
	for i := 0; i < 3; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		names = append(names, info.Name())
	}

	want := []string{
		"mindtrack-20261015-2000.db",
		"mindtrack-20261015-200012.db",
		"mindtrack-20261015-200012-1.db",
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("backup %d = %s, want %s", i, names[i], want[i])
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 10, 1, 20, 0, 0, 0, time.Local), 24*time.Hour)

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups, got %d", constants.MaxBackups, len(backups))
	}
	// The three oldest days were pruned.
	oldest := backups[len(backups)-1]
	if oldest.Timestamp.Day() != 4 {
		t.Errorf("expected oldest kept backup from day 4, got %v", oldest.Timestamp)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestListBackupsIgnoresOtherFiles(t *testing.T) {
	dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	mgr := NewManager(dbPath)
	if backups, err := mgr.List(); err != nil || len(backups) != 0 {
		t.Fatalf("expected no backups before the directory exists, got %v, %v", backups, err)
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "mindtrack-latest.db", "mindtrack-20261015-2000-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
		want   time.Time
	}{
		{"mindtrack-20261015-2000.db", true, time.Date(2026, 10, 15, 20, 0, 0, 0, time.Local)},
		{"mindtrack-20261015-200012.db", true, time.Date(2026, 10, 15, 20, 0, 12, 0, time.Local)},
		{"mindtrack-20261015-200012-7.db", true, time.Date(2026, 10, 15, 20, 0, 12, 0, time.Local)},
		{"daylit-20261015-2000.db", false, time.Time{}},
		{"mindtrack-20261015.db", false, time.Time{}},
		{"mindtrack-20261015-2000.sql", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 10, 15, 20, 0, 0, 0, time.Local), time.Minute)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	saveCheckIn(t, store, "2026-10-15", 8)
	store.Close()
	if got := countEntries(t, dbPath); got != 2 {
		t.Fatalf("expected 2 entries before restore, got %d", got)
	}

	previous, err := mgr.Restore(snapshot.Path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if previous == nil {
		t.Fatal("expected the current database to be backed up before restore")
	}
	if got := countEntries(t, previous.Path); got != 2 {
		t.Errorf("pre-restore backup has %d entries, want 2", got)
	}
	if got := countEntries(t, dbPath); got != 1 {
		t.Errorf("restored database has %d entries, want 1", got)
	}
	if exists(dbPath + ".restore.tmp") {
		t.Error("temporary restore file left behind")
	}
}

func TestBackupWithNoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("expected ErrNoDatabase, got %v", err)
	}
}

func TestRestoreRejectsInvalidBackups(t *testing.T) {
	dbPath, cleanup := setupTestDB(t)
	defer cleanup()

	mgr := NewManager(dbPath)
	dir := t.TempDir()

	corrupted := filepath.Join(dir, "corrupted.db")
	if err := os.WriteFile(corrupted, []byte("this is not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(corrupted); err == nil {
		t.Error("expected error restoring a corrupted backup")
	}

	// A valid sqlite file that is not a mindtrack database.
	foreign := filepath.Join(dir, "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	err = Verify(foreign)
	if err == nil || !strings.Contains(err.Error(), "not a mindtrack database") {
		t.Errorf("expected foreign database to be rejected, got %v", err)
	}

	if _, err := mgr.Restore(filepath.Join(dir, "missing.db")); err == nil {
		t.Error("expected error restoring a missing backup")
	}
	if got := countEntries(t, dbPath); got != 1 {
		t.Errorf("database changed by failed restores: %d entries", got)
	}
}

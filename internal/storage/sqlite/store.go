package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mindtrack/internal/logger"
	"github.com/julianstephens/mindtrack/internal/migration"
	"github.com/julianstephens/mindtrack/internal/storage"
	"github.com/julianstephens/mindtrack/internal/storage/sqlstore"
	"github.com/julianstephens/mindtrack/migrations"
)

var (
	_ storage.Provider = (*Store)(nil)
	_ storage.Migrator = (*Store)(nil)
)

type Store struct {
	*sqlstore.Store
	path string
}

func NewStore(path string) *Store {
	return &Store{
		Store: sqlstore.New(migration.DialectSQLite),
		path:  path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.EnsureDefaultSettings()
}

func (s *Store) Load() error {
	if s.DB() != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'mindtrack init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.validateSchemaVersion()
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite permits one writer at a time
	db.SetMaxOpenConns(1)
	s.Attach(db)
	return nil
}

// Close releases the connection. A later Load reopens it.
func (s *Store) Close() error {
	db := s.DB()
	if db == nil {
		return nil
	}
	s.Attach(nil)
	return db.Close()
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.DB(), subFS, migration.DialectSQLite), nil
}

// Migrate applies pending embedded migrations and returns how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

func (s *Store) SchemaVersion() (int, int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

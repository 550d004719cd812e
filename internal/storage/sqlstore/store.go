// Package sqlstore holds the SQL shared by the sqlite and postgres
// providers. Queries are written with ? placeholders and rebound for the
// active dialect before execution.
package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/mindtrack/internal/migration"
)

// timestampLayout has fixed-width fractional seconds so stored values sort
// lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

type Store struct {
	db      *sql.DB
	dialect migration.Dialect
}

func New(dialect migration.Dialect) *Store {
	return &Store{dialect: dialect}
}

// Attach sets the connection the store's queries run against.
func (s *Store) Attach(db *sql.DB) {
	s.db = db
}

// DB returns the attached connection, or nil before Attach.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Dialect() migration.Dialect {
	return s.dialect
}

func (s *Store) exec(query string, args ...any) (sql.Result, error) {
	return s.db.Exec(s.dialect.Rebind(query), args...)
}

func (s *Store) query(query string, args ...any) (*sql.Rows, error) {
	return s.db.Query(s.dialect.Rebind(query), args...)
}

func (s *Store) queryRow(query string, args ...any) *sql.Row {
	return s.db.QueryRow(s.dialect.Rebind(query), args...)
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) txExec(tx *sql.Tx, query string, args ...any) (sql.Result, error) {
	return tx.Exec(s.dialect.Rebind(query), args...)
}

func (s *Store) txQueryRow(tx *sql.Tx, query string, args ...any) *sql.Row {
	return tx.QueryRow(s.dialect.Rebind(query), args...)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(column string, v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := parseTime(column, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// expectAffected converts a zero-row result into notFound.
func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

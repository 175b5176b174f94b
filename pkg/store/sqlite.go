package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"tableflip.dev/moodlog/pkg/entry"
)

//go:embed migrations/*.sql
var migrations embed.FS

const tableName = "mood_entries"

var columns = []string{"id", "mood", "note", "timestamp"}

// SQLite is the default Table, a single mood_entries table in one database
// file. All access goes through one connection.
type SQLite struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	logger := slog.Default().With("component", "store", "driver", "sqlite")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating database directory: %w", ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrStorageUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, pragma, err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	logger.Debug("sqlite table initialized", "path", path)
	return &SQLite{db: db, path: path, logger: logger}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Path is the database file.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	query, args, err := sq.Select(columns...).
		From(tableName).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, query, args...)
}

func (s *SQLite) ListBetween(ctx context.Context, start, end string) ([]*entry.Entry, error) {
	query, args, err := sq.Select(columns...).
		From(tableName).
		Where(sq.And{
			sq.GtOrEq{"timestamp": start},
			sq.LtOrEq{"timestamp": end},
		}).
		OrderBy("timestamp ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, query, args...)
}

func (s *SQLite) Get(ctx context.Context, id int64) (*entry.Entry, bool, error) {
	query, args, err := sq.Select(columns...).
		From(tableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, false, err
	}
	found, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, false, err
	}
	if len(found) == 0 {
		return nil, false, nil
	}
	return found[0], true, nil
}

func (s *SQLite) query(ctx context.Context, query string, args ...any) ([]*entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	all := make([]*entry.Entry, 0)
	for rows.Next() {
		e := &entry.Entry{}
		if err := rows.Scan(&e.ID, &e.Mood, &e.Note, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		all = append(all, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return all, nil
}

func (s *SQLite) Insert(ctx context.Context, e *entry.Entry) error {
	query, args, err := sq.Insert(tableName).
		Columns(columns...).
		Values(e.ID, e.Mood, e.Note, e.Timestamp).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("insert entry %d: %w", e.ID, ErrConstraintViolation)
		}
		return fmt.Errorf("inserting entry: %w", err)
	}
	s.logger.Debug("inserted entry", "id", e.ID)
	return nil
}

func (s *SQLite) Update(ctx context.Context, e *entry.Entry) (bool, error) {
	query, args, err := sq.Update(tableName).
		Set("mood", e.Mood).
		Set("note", e.Note).
		Set("timestamp", e.Timestamp).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return false, err
	}
	return s.exec(ctx, "updating entry", query, args...)
}

func (s *SQLite) Delete(ctx context.Context, e *entry.Entry) (bool, error) {
	query, args, err := sq.Delete(tableName).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return false, err
	}
	return s.exec(ctx, "deleting entry", query, args...)
}

func (s *SQLite) exec(ctx context.Context, what, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return n > 0, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// isConstraintViolation checks if the error is a SQLite UNIQUE or PRIMARY KEY
// constraint violation.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

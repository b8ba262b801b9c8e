package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/myhome/console/internal/platform/storage/sqlitemigrate"
	"github.com/myhome/console/internal/session"
	"github.com/myhome/console/internal/session/storage/sqlite/migrations"
)

// Timestamps are stored as fixed-width UTC text so string comparison orders
// them chronologically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Store is a SQLite-backed session.Backend.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the unexpired record for id.
func (s *Store) Get(ctx context.Context, id string) (session.Record, error) {
	if s == nil || s.sqlDB == nil {
		return session.Record{}, fmt.Errorf("storage is not configured")
	}
	var (
		record    session.Record
		createdAt string
		expiresAt string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, token, created_at, expires_at FROM console_sessions WHERE id = ? AND expires_at > ?`,
		id, formatTime(s.now()),
	).Scan(&record.ID, &record.Token, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Record{}, session.ErrNotFound
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("get session: %w", err)
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return session.Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	if record.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return session.Record{}, fmt.Errorf("parse expires_at: %w", err)
	}
	return record, nil
}

// Put inserts or replaces record.
func (s *Store) Put(ctx context.Context, record session.Record) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := record.Validate(); err != nil {
		return err
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO console_sessions (id, token, created_at, expires_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET token = excluded.token, created_at = excluded.created_at, expires_at = excluded.expires_at`,
		record.ID, record.Token, formatTime(createdAt), formatTime(record.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete removes the record for id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM console_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired purges records that expired at or before now.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM console_sessions WHERE expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired sessions: %w", err)
	}
	return int(removed), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(timeFormat, value)
}

var (
	_ session.Backend = (*Store)(nil)
	_ session.Sweeper = (*Store)(nil)
)

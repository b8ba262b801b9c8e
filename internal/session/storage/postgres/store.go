// Package postgres keeps console sessions in a PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myhome/console/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS console_sessions (
  id TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS console_sessions_expires_at_idx ON console_sessions (expires_at);
`

// querier is the subset of *pgxpool.Pool the store uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL-backed session.Backend.
type Store struct {
	db    querier
	close func()
	now   func() time.Time
}

// Open connects to dsn and ensures the sessions table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := newStore(pool, pool.Close)
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func newStore(db querier, closeFn func()) *Store {
	return &Store{db: db, close: closeFn, now: time.Now}
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Get returns the unexpired record for id.
func (s *Store) Get(ctx context.Context, id string) (session.Record, error) {
	record := session.Record{ID: id}
	row := s.db.QueryRow(ctx, `
    SELECT token, created_at, expires_at
    FROM console_sessions
    WHERE id = $1 AND expires_at > $2
  `, id, s.now().UTC())
	err := row.Scan(&record.Token, &record.CreatedAt, &record.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return session.Record{}, session.ErrNotFound
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("get session: %w", err)
	}
	return record, nil
}

// Put inserts or replaces record.
func (s *Store) Put(ctx context.Context, record session.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err := s.db.Exec(ctx, `
    INSERT INTO console_sessions (id, token, created_at, expires_at)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (id) DO UPDATE SET
      token = EXCLUDED.token,
      created_at = EXCLUDED.created_at,
      expires_at = EXCLUDED.expires_at
  `, record.ID, record.Token, createdAt.UTC(), record.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete removes the record for id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM console_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes records that expired at or before now.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM console_sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	s.close()
	return nil
}

var (
	_ session.Backend = (*Store)(nil)
	_ session.Sweeper = (*Store)(nil)
)

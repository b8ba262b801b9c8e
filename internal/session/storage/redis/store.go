// Package redis keeps console sessions in Redis so several console
// processes can share them. Keys expire on their own.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/myhome/console/internal/session"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "console:session:"

// Store is a Redis-backed session.Backend.
type Store struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

// Options configure a Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, opts.Prefix), nil
}

// New wraps an existing client. An empty prefix uses DefaultPrefix.
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, now: time.Now}
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Get returns the record for id.
func (s *Store) Get(ctx context.Context, id string) (session.Record, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return session.Record{}, session.ErrNotFound
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("get session: %w", err)
	}
	var record session.Record
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return session.Record{}, fmt.Errorf("decode session: %w", err)
	}
	if record.Expired(s.now()) {
		return session.Record{}, session.ErrNotFound
	}
	return record, nil
}

// Put stores record with a TTL matching its expiry.
func (s *Store) Put(ctx context.Context, record session.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	ttl := record.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session expiry must be in the future")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(record.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete removes the record for id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ session.Backend = (*Store)(nil)

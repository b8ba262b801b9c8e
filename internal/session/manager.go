package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/myhome/console/internal/platform/timeouts"
)

// Manager opens per-request Store handles over one Backend.
type Manager struct {
	backend Backend
	ttl     time.Duration
	timeout time.Duration
	log     logr.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets how long a stored token lives. Non-positive values keep the
// default.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for storage failures.
func WithLogger(logger logr.Logger) Option {
	return func(m *Manager) {
		m.log = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides how new session ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// NewManager returns a Manager over backend.
func NewManager(backend Backend, opts ...Option) (*Manager, error) {
	if backend == nil {
		return nil, errors.New("session backend is required")
	}
	m := &Manager{
		backend: backend,
		ttl:     DefaultTTL,
		timeout: timeouts.SessionStore,
		log:     logr.Discard(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Open returns a handle for the browser session id. An empty id yields an
// unauthenticated handle that mints an id on SetToken.
func (m *Manager) Open(id string) *Store {
	return &Store{manager: m, id: strings.TrimSpace(id)}
}

// Close closes the backend.
func (m *Manager) Close() error {
	if m == nil || m.backend == nil {
		return nil
	}
	return m.backend.Close()
}

// RunSweeper purges expired records every interval until ctx is done. It
// returns at once when the backend expires records on its own.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	sweeper, ok := m.backend.(Sweeper)
	if !ok || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, interval/2)
			removed, err := sweeper.DeleteExpired(sweepCtx, m.now())
			cancel()
			if err != nil && !errors.Is(err, context.Canceled) {
				m.log.Error(err, "sweep expired sessions")
				continue
			}
			if removed > 0 {
				m.log.V(1).Info("swept expired sessions", "removed", removed)
			}
		}
	}
}

func (m *Manager) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, m.timeout)
}

// Store is the per-request view of one browser session. It reads the backend
// at most once per request. A Store is safe for concurrent use.
type Store struct {
	manager *Manager

	mu     sync.Mutex
	id     string
	loaded bool
	token  string
}

// ID returns the current session id, or "" before the first SetToken.
func (s *Store) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Token returns the stored backend token. Storage failures are logged and
// read as absent.
func (s *Store) Token(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.token = s.load(ctx)
		s.loaded = true
	}
	return s.token, s.token != ""
}

func (s *Store) load(ctx context.Context) string {
	if s.id == "" {
		return ""
	}
	opCtx, cancel := s.manager.opContext(ctx)
	defer cancel()
	record, err := s.manager.backend.Get(opCtx, s.id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.manager.log.Error(err, "read session", "session_id", s.id)
		}
		return ""
	}
	return record.Token
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// SetToken stores token under a freshly minted session id, replacing any
// previous record for this browser.
func (s *Store) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.id
	now := s.manager.now().UTC()
	record := Record{
		ID:        s.manager.newID(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.manager.ttl),
	}
	opCtx, cancel := s.manager.opContext(ctx)
	defer cancel()
	if err := s.manager.backend.Put(opCtx, record); err != nil {
		return err
	}
	if previous != "" && previous != record.ID {
		if err := s.manager.backend.Delete(opCtx, previous); err != nil {
			s.manager.log.Error(err, "delete replaced session", "session_id", previous)
		}
	}
	s.id = record.ID
	s.token = token
	s.loaded = true
	return nil
}

// RemoveToken forgets the token. It never fails: backend errors are logged
// and the handle reads as unauthenticated afterwards either way.
func (s *Store) RemoveToken(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		opCtx, cancel := s.manager.opContext(context.WithoutCancel(ctx))
		if err := s.manager.backend.Delete(opCtx, s.id); err != nil {
			s.manager.log.Error(err, "delete session", "session_id", s.id)
		}
		cancel()
	}
	s.token = ""
	s.loaded = true
}

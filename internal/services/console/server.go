// Package console hosts the server-rendered condominium admin console.
package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/platform/metrics"
	"github.com/myhome/console/internal/platform/timeouts"
	consoleapp "github.com/myhome/console/internal/services/console/app"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/modules"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/platform/observability"
	"github.com/myhome/console/internal/services/console/platform/requestmeta"
	"github.com/myhome/console/internal/services/console/platform/sessioncookie"
	"github.com/myhome/console/internal/services/console/routepath"
	consolestatic "github.com/myhome/console/internal/services/console/static"
	"github.com/myhome/console/internal/session"
)

// Config defines startup inputs for the console service.
type Config struct {
	HTTPAddr          string
	Backend           *backend.Client
	Sessions          *session.Manager
	Codec             *sessioncookie.Codec
	SessionTTL        time.Duration
	AdminGatePassword string
	SchemePolicy      requestmeta.SchemePolicy
	Logger            logr.Logger
	Metrics           *metrics.Metrics
}

// Server hosts the console HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}
	principal := newPrincipalResolver(cfg)
	deps := module.Dependencies{
		Backend:        cfg.Backend,
		ResolveViewer:  principal.resolveViewer,
		ResolveSession: principal.resolveSession,
		CommitSession:  principal.commitSession,
		ClearSession:   principal.clearSession,
		AdminGate:      adminGate{password: cfg.AdminGatePassword, codec: cfg.Codec},
		SchemePolicy:   cfg.SchemePolicy,
		Logger:         cfg.Logger,
	}
	h, err := consoleapp.BuildRootHandler(consoleapp.Config{
		Dependencies:     deps,
		PublicModules:    modules.DefaultPublicModules(),
		ProtectedModules: modules.DefaultProtectedModules(),
	}, principal.authRequired())
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(consolestatic.FS))))
	rootMux.Handle("GET "+routepath.Metrics, cfg.Metrics.Handler())
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(cfg.Logger),
		httpx.RequestID(),
		withRequestPrincipalState(),
		observability.RequestLogger(cfg.Logger, cfg.Metrics),
	), nil
}

func withRequestPrincipalState() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				next.ServeHTTP(w, r)
				return
			}
			state := &requestPrincipalState{}
			ctx := context.WithValue(r.Context(), requestPrincipalStateKey{}, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestPrincipalStateFromRequest(r *http.Request) *requestPrincipalState {
	if r == nil {
		return nil
	}
	return requestPrincipalStateFromContext(r.Context())
}

func requestPrincipalStateFromContext(ctx context.Context) *requestPrincipalState {
	if ctx == nil {
		return nil
	}
	state, _ := ctx.Value(requestPrincipalStateKey{}).(*requestPrincipalState)
	return state
}

// NewServer validates config and constructs a console server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if cfg.Codec == nil {
		return nil, errors.New("session cookie codec is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose console handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("console server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown console http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve console http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}

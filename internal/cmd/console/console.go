// Package console wires the admin console command: configuration, session
// storage, the backend client and the HTTP server.
package console

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	platformcmd "github.com/myhome/console/internal/platform/cmd"
	"github.com/myhome/console/internal/platform/config"
	"github.com/myhome/console/internal/platform/logging"
	"github.com/myhome/console/internal/platform/metrics"
	consoleotel "github.com/myhome/console/internal/platform/otel"
	"github.com/myhome/console/internal/platform/timeouts"
	consoleservice "github.com/myhome/console/internal/services/console"
	"github.com/myhome/console/internal/services/console/platform/requestmeta"
	"github.com/myhome/console/internal/services/console/platform/sessioncookie"
	"github.com/myhome/console/internal/session"
	pgstore "github.com/myhome/console/internal/session/storage/postgres"
	redisstore "github.com/myhome/console/internal/session/storage/redis"
	sqlitestore "github.com/myhome/console/internal/session/storage/sqlite"
)

// Session backend names accepted by CONSOLE_SESSION_BACKEND.
const (
	SessionMemory   = "memory"
	SessionSQLite   = "sqlite"
	SessionRedis    = "redis"
	SessionPostgres = "postgres"
)

const cookieSecretBytes = 32

// Config holds the console command configuration.
type Config struct {
	HTTPAddr            string        `env:"CONSOLE_HTTP_ADDR" envDefault:":8090"`
	BackendURL          string        `env:"CONSOLE_BACKEND_URL" envDefault:"http://127.0.0.1:8000"`
	BackendTimeout      time.Duration `env:"CONSOLE_BACKEND_TIMEOUT" envDefault:"15s"`
	SessionBackend      string        `env:"CONSOLE_SESSION_BACKEND" envDefault:"memory"`
	SessionDBPath       string        `env:"CONSOLE_SESSION_DB_PATH" envDefault:"data/console-sessions.db"`
	RedisAddr           string        `env:"CONSOLE_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword       string        `env:"CONSOLE_REDIS_PASSWORD"`
	PostgresDSN         string        `env:"CONSOLE_POSTGRES_DSN"`
	SessionTTL          time.Duration `env:"CONSOLE_SESSION_TTL" envDefault:"12h"`
	CookieSecret        string        `env:"CONSOLE_COOKIE_SECRET"`
	AdminGatePassword   string        `env:"CONSOLE_ADMIN_GATE_PASSWORD" envDefault:"adminn"`
	LogLevel            string        `env:"CONSOLE_LOG_LEVEL" envDefault:"info"`
	TrustForwardedProto bool          `env:"CONSOLE_TRUST_FORWARDED_PROTO"`
}

// ParseConfig loads cfg from environ, or from the process environment when
// environ is nil, and then applies command-line flags from args.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	if fs == nil {
		return Config{}, fmt.Errorf("flag set is required")
	}
	var cfg Config
	var err error
	if environ == nil {
		err = platformcmd.ParseConfig(&cfg)
	} else {
		err = config.ParseEnvFrom(&cfg, environ)
	}
	if err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "condominium backend base URL")
	fs.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "session storage: memory, sqlite, redis or postgres")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.SessionBackend = strings.ToLower(strings.TrimSpace(cfg.SessionBackend))
	return cfg, nil
}

// Run starts the console server and blocks until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	ctx = logr.NewContext(ctx, logger)
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceConsole, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger logr.Logger) error {
	m := metrics.New()

	store, err := openSessionBackend(ctx, cfg)
	if err != nil {
		return err
	}
	manager, err := session.NewManager(store,
		session.WithTTL(cfg.SessionTTL),
		session.WithLogger(logger.WithName("session")),
	)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("init session manager: %w", err)
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Error(err, "close session backend")
		}
	}()
	go manager.RunSweeper(ctx, timeouts.SessionSweep)

	secret, err := cookieSecret(cfg.CookieSecret, logger)
	if err != nil {
		return err
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	codec, err := sessioncookie.NewCodec(secret, policy)
	if err != nil {
		return fmt.Errorf("init cookie codec: %w", err)
	}

	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logger,
		Metrics: m,
		Tracer:  consoleotel.Tracer(),
	})
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	server, err := consoleservice.NewServer(ctx, consoleservice.Config{
		HTTPAddr:          cfg.HTTPAddr,
		Backend:           client,
		Sessions:          manager,
		Codec:             codec,
		SessionTTL:        cfg.SessionTTL,
		AdminGatePassword: cfg.AdminGatePassword,
		SchemePolicy:      policy,
		Logger:            logger.WithName("http"),
		Metrics:           m,
	})
	if err != nil {
		return fmt.Errorf("init console server: %w", err)
	}
	defer server.Close()

	logger.Info("console listening",
		"addr", server.Addr(),
		"backend", cfg.BackendURL,
		"session_backend", cfg.SessionBackend,
	)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve console: %w", err)
	}
	return nil
}

func openSessionBackend(ctx context.Context, cfg Config) (session.Backend, error) {
	switch cfg.SessionBackend {
	case "", SessionMemory:
		return session.NewMemoryBackend(), nil
	case SessionSQLite:
		path := filepath.Clean(cfg.SessionDBPath)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create session dir: %w", err)
			}
		}
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite sessions: %w", err)
		}
		return store, nil
	case SessionRedis:
		store, err := redisstore.Open(ctx, redisstore.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err != nil {
			return nil, fmt.Errorf("open redis sessions: %w", err)
		}
		return store, nil
	case SessionPostgres:
		store, err := pgstore.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres sessions: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// cookieSecret returns the configured secret, or a random one that lives
// only as long as the process.
func cookieSecret(configured string, logger logr.Logger) ([]byte, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return []byte(configured), nil
	}
	secret := make([]byte, cookieSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate cookie secret: %w", err)
	}
	logger.Info("CONSOLE_COOKIE_SECRET is empty; sessions will not survive a restart")
	return secret, nil
}

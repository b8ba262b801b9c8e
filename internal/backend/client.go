// Package backend is the typed client for the condominium REST backend. Every
// method performs at most one HTTP call and returns a *Error on failure.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/myhome/console/internal/platform/metrics"
	consoleotel "github.com/myhome/console/internal/platform/otel"
	"github.com/myhome/console/internal/platform/timeouts"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Session is the per-browser token holder a Client reads and writes.
type Session interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	RemoveToken(ctx context.Context)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout caps each call. Zero disables the cap.
	Timeout time.Duration
	Logger  logr.Logger
	Metrics *metrics.Metrics
	Tracer  trace.Tracer
}

// DefaultConfig returns a Config for baseURL with the default timeout.
func DefaultConfig(baseURL string) Config {
	return Config{BaseURL: baseURL, Timeout: timeouts.BackendRequest}
}

// Client calls the backend on behalf of browser sessions.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	log     logr.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url must be http or https: %q", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("backend base url must include a host: %q", raw)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("backend timeout must not be negative")
	}
	base.Path = strings.TrimRight(base.Path, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = consoleotel.Tracer()
	}
	return &Client{
		baseURL: base,
		http:    httpClient,
		timeout: cfg.Timeout,
		log:     logger.WithName("backend"),
		metrics: cfg.Metrics,
		tracer:  tracer,
	}, nil
}

// call describes one request.
type call struct {
	op     string
	method string
	path   string
	// auth sends the session token and fails fast when it is absent.
	auth bool
	body any
	out  any
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	return u.String()
}

// do performs cl. It never returns a non-*Error error.
func (c *Client) do(ctx context.Context, sess Session, cl call) error {
	ctx, span := c.tracer.Start(ctx, "backend."+cl.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", cl.method),
		attribute.String("url.path", cl.path),
	)
	start := time.Now()

	err := c.send(ctx, sess, cl)
	outcome := outcomeFor(err)
	c.metrics.ObserveBackend(cl.op, outcome, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if outcome != metrics.OutcomeSkipped {
			c.log.V(1).Info("backend call failed", "operation", cl.op, "error", err.Error())
		}
	}
	return err
}

func (c *Client) send(ctx context.Context, sess Session, cl call) error {
	var token string
	if cl.auth {
		var ok bool
		if sess != nil {
			token, ok = sess.Token(ctx)
		}
		if !ok || strings.TrimSpace(token) == "" {
			return &Error{Kind: KindUnauthenticated, Message: "not authenticated"}
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return &Error{Kind: KindDecode, Message: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl.path), body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.auth {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := KindServer
		if resp.StatusCode == http.StatusUnauthorized && cl.auth {
			kind = KindSessionExpired
		}
		return &Error{Kind: kind, Status: resp.StatusCode, Message: extractMessage(data, resp.StatusCode)}
	}
	if cl.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, cl.out); err != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	be, ok := err.(*Error)
	if !ok {
		return metrics.OutcomeServerError
	}
	switch be.Kind {
	case KindUnauthenticated:
		return metrics.OutcomeSkipped
	case KindNetwork:
		return metrics.OutcomeNetwork
	case KindDecode:
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeForStatus(be.Status)
	}
}

func idPath(collection string, id int) string {
	return fmt.Sprintf("%s%d/", collection, id)
}

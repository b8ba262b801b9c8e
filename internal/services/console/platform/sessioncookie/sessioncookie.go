// Package sessioncookie signs and reads the console's browser cookies. The
// session cookie carries only a session id; the backend token stays on the
// server.
package sessioncookie

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myhome/console/internal/services/console/platform/requestmeta"
)

const (
	// Name is the session cookie name.
	Name = "console_session"
	// GateName is the administrator-registration gate cookie name.
	GateName = "console_admin_gate"
	// GateTTL bounds how long a passed gate lasts.
	GateTTL = 10 * time.Minute

	minSecretBytes = 16
	gateSubject    = "admin-gate"
)

// ErrWeakSecret reports a signing secret that is too short.
var ErrWeakSecret = errors.New("cookie secret must be at least 16 bytes")

type claims struct {
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs cookies with HS256.
type Codec struct {
	secret []byte
	policy requestmeta.SchemePolicy
	now    func() time.Time
}

// NewCodec returns a Codec using secret.
func NewCodec(secret []byte, policy requestmeta.SchemePolicy) (*Codec, error) {
	if len(secret) < minSecretBytes {
		return nil, ErrWeakSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key, policy: policy, now: time.Now}, nil
}

// Read returns the raw session cookie value when present.
func Read(r *http.Request) (string, bool) {
	return readCookie(r, Name)
}

func readCookie(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

func (c *Codec) sign(audience, subject, sessionID string, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(c.secret)
}

func (c *Codec) verify(value, audience string) (claims, bool) {
	var out claims
	parsed, err := jwt.ParseWithClaims(value, &out, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return claims{}, false
	}
	return out, true
}

// Encode signs a session cookie value naming sessionID.
func (c *Codec) Encode(sessionID string, ttl time.Duration) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", errors.New("session id is required")
	}
	return c.sign(Name, "", sessionID, ttl)
}

// Decode returns the session id of a valid cookie value. Tampered or expired
// values decode as absent.
func (c *Codec) Decode(value string) (string, bool) {
	got, ok := c.verify(value, Name)
	if !ok || strings.TrimSpace(got.SessionID) == "" {
		return "", false
	}
	return got.SessionID, true
}

// ReadSession returns the verified session id from r.
func (c *Codec) ReadSession(r *http.Request) (string, bool) {
	value, ok := Read(r)
	if !ok {
		return "", false
	}
	return c.Decode(value)
}

// WriteSession sets the session cookie for sessionID.
func (c *Codec) WriteSession(w http.ResponseWriter, r *http.Request, sessionID string, ttl time.Duration) error {
	value, err := c.Encode(sessionID, ttl)
	if err != nil {
		return err
	}
	c.set(w, r, Name, value, int(ttl/time.Second))
	return nil
}

// ClearSession expires the session cookie.
func (c *Codec) ClearSession(w http.ResponseWriter, r *http.Request) {
	c.set(w, r, Name, "", -1)
}

// WriteGate records that the administrator-registration gate was passed.
func (c *Codec) WriteGate(w http.ResponseWriter, r *http.Request) error {
	value, err := c.sign(GateName, gateSubject, "", GateTTL)
	if err != nil {
		return err
	}
	c.set(w, r, GateName, value, int(GateTTL/time.Second))
	return nil
}

// HasGate reports whether r carries a valid gate cookie.
func (c *Codec) HasGate(r *http.Request) bool {
	value, ok := readCookie(r, GateName)
	if !ok {
		return false
	}
	got, ok := c.verify(value, GateName)
	return ok && got.Subject == gateSubject
}

// ClearGate expires the gate cookie.
func (c *Codec) ClearGate(w http.ResponseWriter, r *http.Request) {
	c.set(w, r, GateName, "", -1)
}

func (c *Codec) set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, c.policy),
		SameSite: http.SameSiteLaxMode,
	})
}

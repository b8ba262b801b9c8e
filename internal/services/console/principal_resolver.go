package console

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/authctx"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/platform/sessioncookie"
	"github.com/myhome/console/internal/session"
)

type requestPrincipalState struct {
	sessionOnce sync.Once
	session     *session.Store
	viewerOnce  sync.Once
	viewer      module.Viewer
	viewerOK    bool
}

type requestPrincipalStateKey struct{}

// profileLoader is the slice of the backend client the resolver needs.
type profileLoader interface {
	Profile(ctx context.Context, sess backend.Session) (backend.UserProfile, error)
}

type principalResolver struct {
	sessions *session.Manager
	codec    *sessioncookie.Codec
	profiles profileLoader
	ttl      time.Duration
	log      logr.Logger
}

func newPrincipalResolver(cfg Config) principalResolver {
	r := principalResolver{
		sessions: cfg.Sessions,
		codec:    cfg.Codec,
		ttl:      cfg.SessionTTL,
		log:      cfg.Logger,
	}
	if r.ttl <= 0 {
		r.ttl = session.DefaultTTL
	}
	if cfg.Backend != nil {
		r.profiles = cfg.Backend
	}
	return r
}

func (r principalResolver) resolveSessionUncached(req *http.Request) *session.Store {
	if r.sessions == nil {
		return nil
	}
	var id string
	if r.codec != nil {
		id, _ = r.codec.ReadSession(req)
	}
	return r.sessions.Open(id)
}

func (r principalResolver) resolveStore(req *http.Request) *session.Store {
	if state := requestPrincipalStateFromRequest(req); state != nil {
		state.sessionOnce.Do(func() {
			state.session = r.resolveSessionUncached(req)
		})
		return state.session
	}
	return r.resolveSessionUncached(req)
}

func (r principalResolver) resolveSession(req *http.Request) module.Session {
	store := r.resolveStore(req)
	if store == nil {
		return nil
	}
	return store
}

// loadViewerUncached fetches the profile behind the request session. Any
// failure other than a cancelled request drops the stored token.
func (r principalResolver) loadViewerUncached(req *http.Request) (module.Viewer, bool) {
	store := r.resolveStore(req)
	ctx := httpx.RequestContext(req)
	if store == nil || r.profiles == nil || !store.IsAuthenticated(ctx) {
		return module.Viewer{}, false
	}
	profile, err := r.profiles.Profile(ctx, store)
	if err != nil {
		if ctx.Err() != nil {
			return module.Viewer{}, false
		}
		r.log.V(1).Info("profile lookup failed, signing out", "error", err.Error())
		store.RemoveToken(ctx)
		return module.Viewer{}, false
	}
	return viewerFor(profile), true
}

func (r principalResolver) loadViewer(req *http.Request) (module.Viewer, bool) {
	if state := requestPrincipalStateFromRequest(req); state != nil {
		state.viewerOnce.Do(func() {
			state.viewer, state.viewerOK = r.loadViewerUncached(req)
		})
		return state.viewer, state.viewerOK
	}
	return r.loadViewerUncached(req)
}

func (r principalResolver) resolveViewer(req *http.Request) module.Viewer {
	viewer, _ := r.loadViewer(req)
	return viewer
}

func (r principalResolver) authRequired() authctx.IsAuthenticated {
	if r.codec == nil {
		return func(*http.Request) bool { return false }
	}
	return authctx.ValidatedSessionAuth(r.codec.ReadSession, func(req *http.Request, _ string) bool {
		_, ok := r.loadViewer(req)
		return ok
	})
}

func (r principalResolver) commitSession(w http.ResponseWriter, req *http.Request) error {
	store := r.resolveStore(req)
	if store == nil || store.ID() == "" {
		return errors.New("no session to commit")
	}
	if r.codec == nil {
		return errors.New("session cookie codec is not configured")
	}
	return r.codec.WriteSession(w, req, store.ID(), r.ttl)
}

func (r principalResolver) clearSession(w http.ResponseWriter, req *http.Request) {
	if r.codec != nil {
		r.codec.ClearSession(w, req)
	}
}

func viewerFor(profile backend.UserProfile) module.Viewer {
	return module.Viewer{
		Profile:     profile,
		DisplayName: profile.User.FullName(),
		Initials:    initials(profile.User),
		RoleLabel:   profile.RoleLabel(),
		ImageURL:    strings.TrimSpace(profile.Perfil.ImagenPerfilURL),
	}
}

func initials(u backend.User) string {
	var out []rune
	for _, part := range []string{u.FirstName, u.LastName} {
		if first, ok := firstLetter(part); ok {
			out = append(out, first)
		}
	}
	if len(out) == 0 {
		if first, ok := firstLetter(u.Username); ok {
			out = append(out, first)
		}
	}
	return string(out)
}

func firstLetter(s string) (rune, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	first, _ := utf8.DecodeRuneInString(s)
	return unicode.ToUpper(first), true
}

// adminGate keeps the administrator-registration gate in a signed cookie.
type adminGate struct {
	password string
	codec    *sessioncookie.Codec
}

func (g adminGate) Check(password string) bool {
	if g.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
}

func (g adminGate) Passed(r *http.Request) bool {
	return g.codec != nil && g.codec.HasGate(r)
}

func (g adminGate) Pass(w http.ResponseWriter, r *http.Request) error {
	if g.codec == nil {
		return errors.New("session cookie codec is not configured")
	}
	return g.codec.WriteGate(w, r)
}

func (g adminGate) Reset(w http.ResponseWriter, r *http.Request) {
	if g.codec != nil {
		g.codec.ClearGate(w, r)
	}
}

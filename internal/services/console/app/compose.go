// Package app composes console modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/platform/requestmeta"
	"github.com/myhome/console/internal/services/console/platform/sessioncookie"
	"github.com/myhome/console/internal/services/console/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies     module.Dependencies
	AuthRequired     func(*http.Request) bool
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// Composer wires root mux mounts and route-group auth behavior.
type Composer struct{}

// group is one set of modules sharing an access rule.
type group struct {
	name      string
	protected bool
	wrap      func(http.Handler) http.Handler
}

// Compose builds a root HTTP handler from module groups.
func (Composer) Compose(input ComposeInput) (http.Handler, error) {
	if input.AuthRequired == nil {
		input.AuthRequired = func(*http.Request) bool { return false }
	}
	root := http.NewServeMux()
	owners := make(map[string]string)

	public := group{name: "public"}
	protected := group{
		name:      "protected",
		protected: true,
		wrap:      wrapProtectedModule(input.AuthRequired, input.Dependencies.ClearSession, input.Dependencies.SchemePolicy),
	}
	if err := public.mount(root, input.PublicModules, input.Dependencies, owners); err != nil {
		return nil, err
	}
	if err := protected.mount(root, input.ProtectedModules, input.Dependencies, owners); err != nil {
		return nil, err
	}
	return root, nil
}

func (g group) mount(root *http.ServeMux, features []module.Module, deps module.Dependencies, owners map[string]string) error {
	for _, feature := range features {
		if feature == nil {
			return fmt.Errorf("%s module is nil", g.name)
		}
		mnt, err := feature.Mount(deps)
		if err != nil {
			return fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		prefix := normalizePrefix(mnt.Prefix)
		switch {
		case prefix == "":
			return fmt.Errorf("mount module %q: prefix is required", feature.ID())
		case mnt.Handler == nil:
			return fmt.Errorf("mount module %q: handler is required", feature.ID())
		case g.protected && !strings.HasPrefix(prefix, routepath.AppPrefix):
			return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AppPrefix, prefix)
		case !g.protected && strings.HasPrefix(prefix, routepath.AppPrefix):
			return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), prefix)
		}
		if owner, taken := owners[prefix]; taken {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, owner)
		}
		owners[prefix] = feature.ID()

		handler := mnt.Handler
		if g.wrap != nil {
			handler = g.wrap(handler)
		}
		root.Handle(prefix, handler)
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// requireAuth redirects unauthenticated requests to the login page. A
// session cookie that no longer resolves to a viewer is expired as well.
func requireAuth(authenticated func(*http.Request) bool, clear module.ClearSession) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				if clear != nil && hasSessionCookie(r) {
					clear(w, r)
				}
				httpx.WriteRedirect(w, r, routepath.Login)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wrapProtectedModule(authenticated func(*http.Request) bool, clear module.ClearSession, policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	authWrap := requireAuth(authenticated, clear)
	csrfWrap := RequireSameOrigin(policy)
	return func(next http.Handler) http.Handler {
		// Origin is checked before the profile lookup.
		return csrfWrap(authWrap(next))
	}
}

// RequireSameOrigin rejects cookie-carrying mutations without an Origin or
// Referer from this host.
func RequireSameOrigin(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProofWithPolicy(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}

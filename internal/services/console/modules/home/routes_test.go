package home

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
)

type fakeSession struct{ token string }

func (s *fakeSession) ID() string { return "sid" }
func (s *fakeSession) Token(context.Context) (string, bool) {
	return s.token, s.token != ""
}
func (s *fakeSession) SetToken(_ context.Context, token string) error {
	s.token = token
	return nil
}
func (s *fakeSession) RemoveToken(context.Context)          { s.token = "" }
func (s *fakeSession) IsAuthenticated(context.Context) bool { return s.token != "" }

type fakeGateway struct {
	err   error
	ids   []int
	calls []backend.PerfilUpdate
}

func (g *fakeGateway) UpdatePerfil(_ context.Context, _ backend.Session, id int, in backend.PerfilUpdate) (backend.Perfil, error) {
	g.ids = append(g.ids, id)
	g.calls = append(g.calls, in)
	return backend.Perfil{}, g.err
}

func newTestHandler(t *testing.T, g *fakeGateway, sess *fakeSession) http.Handler {
	t.Helper()
	viewer := module.Viewer{
		Profile: backend.UserProfile{
			User:   backend.User{ID: 4, Username: "ana", Email: "ana@condominio.test"},
			Perfil: backend.Perfil{ID: 9, Telefono: "70000000", Direccion: "Calle 1 <b>"},
		},
		DisplayName: "Ana Pérez",
		Initials:    "AP",
	}
	deps := module.Dependencies{
		ResolveViewer:  func(*http.Request) module.Viewer { return viewer },
		ResolveSession: func(*http.Request) module.Session { return sess },
		Logger:         logr.Discard(),
	}
	mount, err := NewWithGateway(g).Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/app/" {
		t.Fatalf("Prefix = %q, want /app/", mount.Prefix)
	}
	return mount.Handler
}

func postPerfil(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/app/perfil", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHomeRendersProfileAndPrefilledForm(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, &fakeGateway{}, &fakeSession{token: "abc"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Ana Pérez", "ana@condominio.test", `value="70000000"`, "Calle 1 &lt;b&gt;", `action="/app/perfil"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Calle 1 <b>") {
		t.Fatalf("address was not escaped")
	}
}

func TestUpdatePerfil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       url.Values
		err        error
		wantStatus int
		wantCalls  int
		wantBody   string
	}{
		{
			name:       "success",
			form:       url.Values{"telefono": {" 71111111 "}, "direccion": {"Calle 2"}},
			wantStatus: http.StatusFound,
			wantCalls:  1,
		},
		{
			name:       "missing address",
			form:       url.Values{"telefono": {"71111111"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field-invalid",
		},
		{
			name:       "backend rejection",
			form:       url.Values{"telefono": {"71111111"}, "direccion": {"Calle 2"}},
			err:        &backend.Error{Kind: backend.KindServer, Status: 400, Message: "telefono: formato inválido"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCalls:  1,
			wantBody:   "telefono: formato inválido",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := &fakeGateway{err: tc.err}
			h := newTestHandler(t, g, &fakeSession{token: "abc"})
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, postPerfil(tc.form))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if len(g.calls) != tc.wantCalls {
				t.Fatalf("calls = %d, want %d", len(g.calls), tc.wantCalls)
			}
			if tc.wantCalls > 0 && (g.ids[0] != 9 || g.calls[0].Telefono != "71111111") {
				t.Fatalf("call = %d %+v", g.ids[0], g.calls[0])
			}
			if tc.wantStatus == http.StatusFound && rr.Header().Get("Location") != "/app/" {
				t.Fatalf("Location = %q, want /app/", rr.Header().Get("Location"))
			}
			if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Fatalf("body missing %q", tc.wantBody)
			}
		})
	}
}

func TestUpdatePerfilSessionExpiredSignsOut(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{token: "abc"}
	g := &fakeGateway{err: &backend.Error{Kind: backend.KindSessionExpired, Status: 401, Message: "expired"}}
	h := newTestHandler(t, g, sess)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postPerfil(url.Values{"telefono": {"7"}, "direccion": {"x"}}))
	if rr.Header().Get("Location") != "/login" {
		t.Fatalf("Location = %q, want /login", rr.Header().Get("Location"))
	}
	if sess.token != "" {
		t.Fatalf("token = %q, want removed", sess.token)
	}
}

func TestUnknownAppPathIsNotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, &fakeGateway{}, &fakeSession{token: "abc"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/nada", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

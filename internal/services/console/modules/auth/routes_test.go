package auth

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
	"github.com/myhome/console/internal/services/console/platform/flash"
)

type fakeSession struct {
	id      string
	token   string
	setErr  error
	removed int
}

func (s *fakeSession) ID() string { return s.id }
func (s *fakeSession) Token(context.Context) (string, bool) {
	return s.token, s.token != ""
}
func (s *fakeSession) SetToken(_ context.Context, token string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.token = token
	s.id = "minted"
	return nil
}
func (s *fakeSession) RemoveToken(context.Context) {
	s.token = ""
	s.removed++
}
func (s *fakeSession) IsAuthenticated(context.Context) bool { return s.token != "" }

type fakeGateway struct {
	loginResp   backend.LoginResponse
	loginErr    error
	logoutErr   error
	registerErr error
	logins      []backend.Credentials
	logouts     int
	secretarias []backend.SecretariaRegistration
	admins      []backend.AdministradorRegistration
}

func (g *fakeGateway) Login(ctx context.Context, sess backend.Session, creds backend.Credentials) (backend.LoginResponse, error) {
	g.logins = append(g.logins, creds)
	if g.loginErr != nil {
		return backend.LoginResponse{}, g.loginErr
	}
	if g.loginResp.Token != "" {
		if err := sess.SetToken(ctx, g.loginResp.Token); err != nil {
			return backend.LoginResponse{}, &backend.Error{Kind: backend.KindSessionStorage, Message: "session storage unavailable"}
		}
	}
	return g.loginResp, nil
}

func (g *fakeGateway) Logout(ctx context.Context, sess backend.Session) error {
	g.logouts++
	sess.RemoveToken(ctx)
	return g.logoutErr
}

func (g *fakeGateway) RegisterSecretaria(_ context.Context, in backend.SecretariaRegistration) (backend.RegistrationResponse, error) {
	g.secretarias = append(g.secretarias, in)
	return backend.RegistrationResponse{}, g.registerErr
}

func (g *fakeGateway) RegisterAdministrador(_ context.Context, in backend.AdministradorRegistration) (backend.RegistrationResponse, error) {
	g.admins = append(g.admins, in)
	return backend.RegistrationResponse{}, g.registerErr
}

type fakeGate struct {
	password string
	passed   bool
	passes   int
	resets   int
}

func (g *fakeGate) Check(password string) bool { return password == g.password }
func (g *fakeGate) Passed(*http.Request) bool  { return g.passed }
func (g *fakeGate) Pass(http.ResponseWriter, *http.Request) error {
	g.passes++
	return nil
}
func (g *fakeGate) Reset(http.ResponseWriter, *http.Request) { g.resets++ }

type harness struct {
	gateway *fakeGateway
	session *fakeSession
	gate    *fakeGate
	commits []string
	clears  int
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gateway: &fakeGateway{},
		session: &fakeSession{id: "anon"},
		gate:    &fakeGate{password: "adminn"},
	}
	deps := module.Dependencies{
		ResolveSession: func(*http.Request) module.Session { return h.session },
		CommitSession: func(http.ResponseWriter, *http.Request) error {
			h.commits = append(h.commits, h.session.ID())
			return nil
		},
		ClearSession: func(http.ResponseWriter, *http.Request) { h.clears++ },
		AdminGate:    h.gate,
		Logger:       logr.Discard(),
	}
	mount, err := NewWithGateway(h.gateway).Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/" {
		t.Fatalf("Prefix = %q, want /", mount.Prefix)
	}
	h.handler = mount.Handler
	return h
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func secretariaForm() url.Values {
	return url.Values{
		"username":          {"sec1"},
		"email":             {"sec1@condominio.test"},
		"password":          {"secret1"},
		"confirm_password":  {"secret1"},
		"first_name":        {"Sara"},
		"last_name":         {"Gómez"},
		"telefono":          {"70000000"},
		"direccion":         {"Calle 1"},
		"sexo":              {"F"},
		"turno":             {"MAÑANA"},
		"velocidad_teclado": {"85"},
	}
}

func TestRootRedirects(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if rr := h.do(httptest.NewRequest(http.MethodGet, "/", nil)); rr.Header().Get("Location") != "/login" {
		t.Fatalf("anonymous Location = %q, want /login", rr.Header().Get("Location"))
	}
	h.session.token = "abc"
	if rr := h.do(httptest.NewRequest(http.MethodGet, "/", nil)); rr.Header().Get("Location") != "/app/" {
		t.Fatalf("signed-in Location = %q, want /app/", rr.Header().Get("Location"))
	}
}

func TestLoginPageRenders(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.do(httptest.NewRequest(http.MethodGet, "/login", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{`name="username"`, `name="password"`, `href="/register"`, `href="/register/admin"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.do(postForm("/login", url.Values{"username": {"ana"}}))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if len(h.gateway.logins) != 0 {
		t.Fatalf("logins = %d, want 0", len(h.gateway.logins))
	}
	if !strings.Contains(rr.Body.String(), "field-invalid") {
		t.Fatalf("body missing inline error")
	}
}

func TestLoginStoresTokenAndCommitsCookie(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.gateway.loginResp = backend.LoginResponse{Token: "abc", Data: backend.LoginData{Perfil: &backend.Perfil{TipoUsuario: "ADMINISTRADORA"}}}
	rr := h.do(postForm("/login", url.Values{"username": {" ana "}, "password": {"secret1"}}))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/app/" {
		t.Fatalf("response = %d %q, want redirect to /app/", rr.Code, rr.Header().Get("Location"))
	}
	if h.session.token != "abc" {
		t.Fatalf("token = %q, want abc", h.session.token)
	}
	if len(h.commits) != 1 || h.commits[0] != "minted" {
		t.Fatalf("commits = %v, want the minted session id", h.commits)
	}
	if got := h.gateway.logins[0].Username; got != "ana" {
		t.Fatalf("username = %q, want trimmed ana", got)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resp     backend.LoginResponse
		err      error
		setErr   error
		wantBody string
	}{
		{name: "backend message", err: &backend.Error{Kind: backend.KindServer, Status: 400, Message: "Credenciales inválidas"}, wantBody: "Credenciales inválidas"},
		{name: "no token", resp: backend.LoginResponse{Message: "Usuario inactivo"}, wantBody: "Usuario inactivo"},
		{name: "storage failure", resp: backend.LoginResponse{Token: "abc"}, setErr: context.DeadlineExceeded, wantBody: "alert-error"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			h.gateway.loginResp = tc.resp
			h.gateway.loginErr = tc.err
			h.session.setErr = tc.setErr
			rr := h.do(postForm("/login", url.Values{"username": {"ana"}, "password": {"secret1"}}))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
			}
			if !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Fatalf("body missing %q", tc.wantBody)
			}
			if len(h.commits) != 0 {
				t.Fatalf("commits = %v, want none", h.commits)
			}
		})
	}
}

func TestRegisterSecretaria(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.do(postForm("/register", secretariaForm()))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
		t.Fatalf("response = %d %q, want redirect to /login", rr.Code, rr.Header().Get("Location"))
	}
	if len(h.gateway.secretarias) != 1 {
		t.Fatalf("registrations = %d, want 1", len(h.gateway.secretarias))
	}
	got := h.gateway.secretarias[0]
	if got.VelocidadTeclado != 85 || got.Turno != "MAÑANA" || got.Password != "secret1" {
		t.Fatalf("registration = %+v", got)
	}
	hasFlash := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == flash.CookieName && c.Value != "" {
			hasFlash = true
		}
	}
	if !hasFlash {
		t.Fatalf("missing flash cookie")
	}
}

func TestRegisterSecretariaValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "password mismatch", field: "confirm_password", value: "other12"},
		{name: "short password", field: "password", value: "abc"},
		{name: "bad email", field: "email", value: "sin-arroba"},
		{name: "typing speed", field: "velocidad_teclado", value: "201"},
		{name: "shift", field: "turno", value: "SIESTA"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			form := secretariaForm()
			form.Set(tc.field, tc.value)
			rr := h.do(postForm("/register", form))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
			}
			if len(h.gateway.secretarias) != 0 {
				t.Fatalf("backend called despite invalid %s", tc.field)
			}
		})
	}
}

func TestAdminRegistrationGate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rr := h.do(httptest.NewRequest(http.MethodGet, "/register/admin", nil))
	if !strings.Contains(rr.Body.String(), `name="gate_password"`) {
		t.Fatalf("body missing gate form")
	}

	rr = h.do(postForm("/register/admin", url.Values{"gate_password": {"wrong"}}))
	if rr.Code != http.StatusUnprocessableEntity || h.gate.passes != 0 {
		t.Fatalf("wrong password: status = %d passes = %d", rr.Code, h.gate.passes)
	}

	rr = h.do(postForm("/register/admin", url.Values{"gate_password": {"adminn"}}))
	if rr.Code != http.StatusFound || h.gate.passes != 1 {
		t.Fatalf("right password: status = %d passes = %d", rr.Code, h.gate.passes)
	}

	form := secretariaForm()
	rr = h.do(postForm("/register/admin", form))
	if rr.Code != http.StatusFound || len(h.gateway.admins) != 0 {
		t.Fatalf("form before gate: status = %d admins = %d", rr.Code, len(h.gateway.admins))
	}

	h.gate.passed = true
	rr = h.do(httptest.NewRequest(http.MethodGet, "/register/admin", nil))
	if strings.Contains(rr.Body.String(), `name="gate_password"`) || !strings.Contains(rr.Body.String(), `name="telefono"`) {
		t.Fatalf("passed gate should render the registration form")
	}
	rr = h.do(postForm("/register/admin", form))
	if rr.Code != http.StatusFound || len(h.gateway.admins) != 1 || h.gate.resets != 1 {
		t.Fatalf("register: status = %d admins = %d resets = %d", rr.Code, len(h.gateway.admins), h.gate.resets)
	}
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.session.token = "abc"
	h.gateway.logoutErr = &backend.Error{Kind: backend.KindNetwork, Message: "connection refused"}
	rr := h.do(httptest.NewRequest(http.MethodPost, "/logout", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
		t.Fatalf("response = %d %q, want redirect to /login", rr.Code, rr.Header().Get("Location"))
	}
	if h.gateway.logouts != 1 || h.session.token != "" || h.clears != 1 {
		t.Fatalf("logouts = %d token = %q clears = %d", h.gateway.logouts, h.session.token, h.clears)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if rr := h.do(httptest.NewRequest(http.MethodGet, "/up", nil)); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
	if rr := h.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil)); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

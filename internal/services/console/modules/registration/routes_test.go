package registration

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

type fakeGateway struct {
	created     []backend.CompleteUser
	assigned    []backend.PropietarioUnidad
	createErr   error
	choicesErr  error
	choiceLoads int
}

func (g *fakeGateway) CreateUserComplete(_ context.Context, _ backend.Session, in backend.CompleteUser) (backend.RegistrationResponse, error) {
	g.created = append(g.created, in)
	return backend.RegistrationResponse{}, g.createErr
}

func (g *fakeGateway) ListPropietarios(context.Context, backend.Session) ([]backend.Propietario, error) {
	g.choiceLoads++
	if g.choicesErr != nil {
		return nil, g.choicesErr
	}
	return []backend.Propietario{{ID: 5, CodigoPropietario: "P-005", Nombre: "Luis Díaz"}}, nil
}

func (g *fakeGateway) ListUnidadesHabitacionales(context.Context, backend.Session) ([]backend.UnidadHabitacional, error) {
	return []backend.UnidadHabitacional{{ID: 8, Codigo: "B-12"}}, nil
}

func (g *fakeGateway) CreatePropietarioUnidad(_ context.Context, _ backend.Session, in backend.PropietarioUnidad) (backend.PropietarioUnidad, error) {
	g.assigned = append(g.assigned, in)
	return in, nil
}

func newTestHandler(t *testing.T, g *fakeGateway, staff bool) http.Handler {
	t.Helper()
	viewer := module.Viewer{Profile: backend.UserProfile{User: backend.User{ID: 1, IsStaff: staff}}}
	deps := module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer { return viewer },
		Logger:        logr.Discard(),
	}
	mnt, err := NewWithGateway(g).Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mnt.Prefix != "/app/registrar-usuario/" {
		t.Fatalf("Prefix = %q", mnt.Prefix)
	}
	return mnt.Handler
}

func post(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func userFormValues(tipo string) url.Values {
	return url.Values{
		"username":              {"guardia1"},
		"email":                 {"g1@condominio.test"},
		"password":              {"secret1"},
		"confirm_password":      {"secret1"},
		"first_name":            {"Juan"},
		"last_name":             {"Rojas"},
		"telefono":              {"70000000"},
		"direccion":             {"Calle 1"},
		"sexo":                  {"M"},
		"tipo_usuario":          {tipo},
		"turno":                 {"NOCHE"},
		"fecha_contratacion":    {"2026-01-02"},
		"informacion_adicional": {"Turno fijo"},
		"codigo_propietario":    {"P-100"},
	}
}

func TestNonStaffIsForbidden(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{}
	h := newTestHandler(t, g, false)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/registrar-usuario/", nil))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("GET status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if rr := post(h, "/app/registrar-usuario/", userFormValues("GUARDIA")); rr.Code != http.StatusForbidden {
		t.Fatalf("POST status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if len(g.created) != 0 || g.choiceLoads != 0 {
		t.Fatalf("backend called for a forbidden viewer")
	}
}

func TestFormsListAssignmentChoices(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestHandler(t, &fakeGateway{}, true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/registrar-usuario/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{`id="registrar-form"`, `id="asignar-form"`, "P-005 - Luis Díaz", `value="8"`, "B-12"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestChoiceLoadFailureKeepsUserForm(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{choicesErr: &backend.Error{Kind: backend.KindServer, Status: 500, Message: "fallo"}}
	rr := httptest.NewRecorder()
	newTestHandler(t, g, true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/registrar-usuario/", nil))
	body := rr.Body.String()
	if !strings.Contains(body, `id="registrar-form"`) || strings.Contains(body, `id="asignar-form"`) || !strings.Contains(body, "btn-retry") {
		t.Fatalf("unexpected page for failed choices load")
	}
}

func TestCreateUserSendsSelectedRoleFieldsOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tipo  string
		check func(backend.CompleteUser) bool
	}{
		{tipo: "GUARDIA", check: func(in backend.CompleteUser) bool {
			return in.Turno == "NOCHE" && in.FechaContratacion == "2026-01-02" && in.CodigoPropietario == ""
		}},
		{tipo: "PROPIETARIO", check: func(in backend.CompleteUser) bool {
			return in.CodigoPropietario == "P-100" && in.Turno == "" && in.InformacionAdicional == ""
		}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.tipo, func(t *testing.T) {
			t.Parallel()
			g := &fakeGateway{}
			rr := post(newTestHandler(t, g, true), "/app/registrar-usuario/", userFormValues(tc.tipo))
			if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/app/registrar-usuario/" {
				t.Fatalf("response = %d %q", rr.Code, rr.Header().Get("Location"))
			}
			if len(g.created) != 1 || !tc.check(g.created[0]) {
				t.Fatalf("created = %+v", g.created)
			}
			var notice string
			for _, c := range rr.Result().Cookies() {
				if c.Name == flash.CookieName {
					notice = c.Value
				}
			}
			if notice == "" {
				t.Fatalf("missing flash cookie")
			}
		})
	}
}

func TestCreateUserRequiresRoleFields(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{}
	form := userFormValues("PROPIETARIO")
	form.Del("codigo_propietario")
	rr := post(newTestHandler(t, g, true), "/app/registrar-usuario/", form)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if len(g.created) != 0 {
		t.Fatalf("backend called despite missing owner code")
	}
	if !strings.Contains(rr.Body.String(), `value="guardia1"`) {
		t.Fatalf("submitted values not kept")
	}
}

func TestAssign(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{}
	h := newTestHandler(t, g, true)
	if rr := post(h, "/app/registrar-usuario/unidad", url.Values{"propietario": {"5"}}); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing unit status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	rr := post(h, "/app/registrar-usuario/unidad", url.Values{"propietario": {"5"}, "unidad_habitacional": {"8"}, "fecha_inicio": {"2026-02-01"}})
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	want := backend.PropietarioUnidad{Propietario: 5, UnidadHabitacional: 8, FechaInicio: "2026-02-01"}
	if len(g.assigned) != 1 || g.assigned[0] != want {
		t.Fatalf("assigned = %+v, want %+v", g.assigned, want)
	}
}

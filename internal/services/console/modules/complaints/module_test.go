package complaints

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
)

type fakeSession struct{}

func (fakeSession) ID() string                             { return "sid" }
func (fakeSession) Token(context.Context) (string, bool)   { return "abc", true }
func (fakeSession) SetToken(context.Context, string) error { return nil }
func (fakeSession) RemoveToken(context.Context)            {}
func (fakeSession) IsAuthenticated(context.Context) bool   { return true }

type fakeGateway struct {
	mu        sync.Mutex
	quejas    []backend.Queja
	createErr error
	loads     int
	created   []backend.QuejaInput
	updated   map[int]string
	deleted   []int
}

func (g *fakeGateway) ListQuejas(context.Context, backend.Session) ([]backend.Queja, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loads++
	return append([]backend.Queja(nil), g.quejas...), nil
}

func (g *fakeGateway) CreateQueja(_ context.Context, _ backend.Session, in backend.QuejaInput) (backend.Queja, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, in)
	return backend.Queja{}, g.createErr
}

func (g *fakeGateway) UpdateQueja(_ context.Context, _ backend.Session, id int, in backend.QuejaUpdate) (backend.Queja, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.updated == nil {
		g.updated = map[int]string{}
	}
	g.updated[id] = in.Estado
	return backend.Queja{}, nil
}

func (g *fakeGateway) DeleteQueja(_ context.Context, _ backend.Session, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, id)
	return nil
}

func sampleQuejas() []backend.Queja {
	return []backend.Queja{
		{ID: 1, Descripcion: "Ruido en el piso 3", Estado: backend.EstadoPendiente, FechaCreacion: "2026-03-02T10:00:00Z"},
		{ID: 2, Descripcion: "Fuga de agua", Estado: backend.EstadoResuelto},
		{ID: 3, Descripcion: "Portón roto"},
	}
}

func newTestHandler(t *testing.T, g *fakeGateway) http.Handler {
	t.Helper()
	deps := module.Dependencies{
		ResolveViewer:  func(*http.Request) module.Viewer { return module.Viewer{} },
		ResolveSession: func(*http.Request) module.Session { return fakeSession{} },
		Logger:         logr.Discard(),
	}
	mnt, err := NewWithGateway(g).Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mnt.Prefix != "/app/quejas/" {
		t.Fatalf("Prefix = %q, want /app/quejas/", mnt.Prefix)
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

func TestListShowsCreateFormAndRows(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{quejas: sampleQuejas()}
	rr := httptest.NewRecorder()
	newTestHandler(t, g).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/quejas/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{`id="queja-form"`, "Ruido en el piso 3", "02/03/2026", "badge-estado-PENDIENTE", "badge-estado-RESUELTO"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestQuejaStatsTreatBlankAsPending(t *testing.T) {
	t.Parallel()

	stats := quejaStats(nil, sampleQuejas())
	want := []string{"3", "2", "0", "1", "0"}
	if len(stats) != len(want) {
		t.Fatalf("len(stats) = %d, want %d", len(stats), len(want))
	}
	for i, w := range want {
		if stats[i].Value != w {
			t.Fatalf("stats[%d] = %+v, want %s", i, stats[i], w)
		}
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		descripcion string
		err         error
		wantStatus  int
		wantCreated int
		wantBody    string
	}{
		{name: "created", descripcion: "  Luz del pasillo  ", wantStatus: http.StatusFound, wantCreated: 1},
		{name: "blank", descripcion: "   ", wantStatus: http.StatusUnprocessableEntity, wantBody: "field-invalid"},
		{
			name:        "backend error",
			descripcion: "Luz",
			err:         &backend.Error{Kind: backend.KindServer, Status: 400, Message: "propietarios: requerido"},
			wantStatus:  http.StatusUnprocessableEntity,
			wantCreated: 1,
			wantBody:    "propietarios: requerido",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := &fakeGateway{quejas: sampleQuejas(), createErr: tc.err}
			rr := post(newTestHandler(t, g), "/app/quejas/", url.Values{"descripcion": {tc.descripcion}})
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if len(g.created) != tc.wantCreated {
				t.Fatalf("created = %d, want %d", len(g.created), tc.wantCreated)
			}
			if tc.wantCreated > 0 && tc.err == nil && g.created[0].Descripcion != "Luz del pasillo" {
				t.Fatalf("descripcion = %q, want trimmed", g.created[0].Descripcion)
			}
			if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Fatalf("body missing %q", tc.wantBody)
			}
		})
	}
}

func TestUpdateEstado(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{quejas: sampleQuejas()}
	h := newTestHandler(t, g)
	if rr := post(h, "/app/quejas/3/edit", url.Values{"estado": {"ARCHIVADO"}}); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid estado status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if rr := post(h, "/app/quejas/3/edit", url.Values{"estado": {backend.EstadoEnProceso}}); rr.Code != http.StatusFound {
		t.Fatalf("valid estado status = %d, want %d", rr.Code, http.StatusFound)
	}
	if g.updated[3] != backend.EstadoEnProceso {
		t.Fatalf("updated = %v", g.updated)
	}
}

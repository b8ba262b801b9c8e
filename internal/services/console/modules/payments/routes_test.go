package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
)

type fakeGateway struct {
	pagos []backend.PagoDespensa
	err   error
	calls int
}

func (g *fakeGateway) ListPagosDespensa(context.Context, backend.Session) ([]backend.PagoDespensa, error) {
	g.calls++
	return g.pagos, g.err
}

func serve(t *testing.T, g *fakeGateway, target string) *httptest.ResponseRecorder {
	t.Helper()
	deps := module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer { return module.Viewer{} },
		Logger:        logr.Discard(),
	}
	mnt, err := NewWithGateway(g).Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mnt.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func samplePagos() []backend.PagoDespensa {
	return []backend.PagoDespensa{
		{ID: 1, FechadePago: "2026-01-10", Monto: 1500, Descripcion: "Expensas enero"},
		{ID: 2, FechadePago: "2026-02-10", Monto: 3000, Descripcion: "Expensas febrero"},
		{ID: 3, FechadePago: "pendiente", Monto: 120},
	}
}

func TestDashboardSummarizes(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeGateway{pagos: samplePagos()}, "/app/pagos/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"$ 4.620,00",
		"$ 385,00",
		`class="chart"`,
		"height: 60.0%",
		"height: 100.0%",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Expensas enero") {
		t.Fatalf("dashboard should not list individual payments")
	}
}

func TestHistoryView(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeGateway{pagos: samplePagos()}, "/app/pagos/?view=historial")
	body := rr.Body.String()
	for _, want := range []string{"Expensas febrero", "10/02/2026", "$ 3.000,00", "pendiente", `aria-current="page"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestLoadFailureShowsNoSampleData(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{err: &backend.Error{Kind: backend.KindNetwork, Message: "dial tcp: connection refused"}}
	rr := serve(t, g, "/app/pagos/")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "btn-retry") {
		t.Fatalf("body missing retry link")
	}
	if strings.Contains(body, `class="chart"`) || strings.Contains(body, "stat-value") {
		t.Fatalf("failed load rendered figures")
	}
}

func TestUnknownPaymentsPath(t *testing.T) {
	t.Parallel()

	g := &fakeGateway{}
	if rr := serve(t, g, "/app/pagos/123"); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if g.calls != 0 {
		t.Fatalf("calls = %d, want 0", g.calls)
	}
}

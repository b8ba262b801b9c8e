package pagerender

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/myhome/console/internal/backend"
	module "github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/flash"
	"github.com/myhome/console/internal/services/console/platform/requestmeta"
	"github.com/myhome/console/internal/services/console/templates"
)

func testDeps() module.Dependencies {
	return module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{DisplayName: "Ana Pérez", Profile: backend.UserProfile{User: backend.User{Username: "ana"}}}
		},
	}
}

func TestWriteModulePageFullPage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	rr := httptest.NewRecorder()
	err := WriteModulePage(rr, req, testDeps(), ModulePage{Title: "Inicio", Active: templates.NavHome, Fragment: templates.Text("hola")})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<!DOCTYPE html>", "Ana Pérez", "hola", `class="navbar"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("Content-Type = %q", got)
	}
}

func TestWriteModulePageHTMXFragment(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	if err := WriteModulePage(rr, req, testDeps(), ModulePage{StatusCode: http.StatusUnprocessableEntity, Fragment: templates.Text("hola")}); err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") || strings.Contains(body, "navbar") {
		t.Fatalf("HTMX body = %q, want fragment only", body)
	}
	if !strings.Contains(body, "hola") {
		t.Fatalf("HTMX body = %q, want fragment", body)
	}
}

func TestWritePublicPageConsumesFlash(t *testing.T) {
	t.Parallel()

	seed := httptest.NewRecorder()
	flash.Write(seed, httptest.NewRequest(http.MethodPost, "/register", nil), flash.Success("flash.registered"), requestmeta.SchemePolicy{})
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	if err := WritePublicPage(rr, req, module.Dependencies{}, ModulePage{Title: "Ingresar"}); err != nil {
		t.Fatalf("WritePublicPage() error = %v", err)
	}
	if !strings.Contains(rr.Body.String(), "alert-success") {
		t.Fatalf("body missing flash banner: %q", rr.Body.String())
	}
	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("flash cookie was not cleared")
	}
}

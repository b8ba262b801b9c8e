package backend

import (
	"errors"
	"net/http"
	"testing"
)

func TestExtractMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{name: "error wins", body: `{"message":"m","error":"e","detail":"d"}`, status: 400, want: "e"},
		{name: "message before detail", body: `{"detail":"d","message":"m"}`, status: 400, want: "m"},
		{name: "detail", body: `{"detail":"No encontrado."}`, status: 404, want: "No encontrado."},
		{name: "first field error in document order", body: `{"username":["ya existe"],"email":["inválido"]}`, status: 400, want: "username: ya existe"},
		{name: "field error string", body: `{"email":"inválido"}`, status: 400, want: "email: inválido"},
		{name: "non field errors", body: `{"non_field_errors":["Credenciales inválidas"]}`, status: 400, want: "Credenciales inválidas"},
		{name: "empty strings skipped", body: `{"error":"","detail":"d"}`, status: 400, want: "d"},
		{name: "empty body", body: ``, status: 500, want: "request failed (Internal Server Error)"},
		{name: "html body", body: `<html>oops</html>`, status: 502, want: "request failed (Bad Gateway)"},
		{name: "array body", body: `["x"]`, status: 400, want: "request failed (Bad Request)"},
		{name: "no readable field", body: `{"count":3}`, status: 409, want: "request failed (Conflict)"},
		{name: "unknown status", body: ``, status: 599, want: "request failed (status 599)"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := extractMessage([]byte(tc.body), tc.status); got != tc.want {
				t.Fatalf("extractMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMessageAndKind(t *testing.T) {
	t.Parallel()

	if got := Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
	plain := errors.New("plain")
	if got := Message(plain); got != "plain" {
		t.Fatalf("Message(plain) = %q", got)
	}
	if got := KindOf(plain); got != "" {
		t.Fatalf("KindOf(plain) = %q, want empty", got)
	}
	wrapped := errors.Join(errors.New("ctx"), &Error{Kind: KindServer, Status: http.StatusConflict, Message: "dup"})
	if got := KindOf(wrapped); got != KindServer {
		t.Fatalf("KindOf(wrapped) = %q, want server", got)
	}
	if got := Message(wrapped); got != "dup" {
		t.Fatalf("Message(wrapped) = %q, want dup", got)
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := (&Error{Kind: KindNetwork}).LocalizationKey(); got != "backend.network" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := (&Error{Kind: KindServer}).LocalizationKey(); got != "" {
		t.Fatalf("LocalizationKey() = %q, want empty", got)
	}
}

// Package authctx provides console authentication seams.
package authctx

import (
	"net/http"
)

// IsAuthenticated reports whether the current request may access protected routes.
type IsAuthenticated func(*http.Request) bool

// SessionReader returns the session id carried by the request, if any.
type SessionReader func(*http.Request) (string, bool)

// ValidatedSessionAuth authenticates requests only through a session id that
// validate accepts. Requests without a session id are rejected without
// calling validate.
func ValidatedSessionAuth(read SessionReader, validate func(*http.Request, string) bool) IsAuthenticated {
	return func(r *http.Request) bool {
		if r == nil || read == nil || validate == nil {
			return false
		}
		sessionID, ok := read(r)
		if !ok {
			return false
		}
		return validate(r, sessionID)
	}
}

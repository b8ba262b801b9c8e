// Package module defines the feature contract used by console composition.
package module

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/platform/requestmeta"
)

// Session is the per-browser session handle modules read and write.
type Session interface {
	backend.Session
	ID() string
	IsAuthenticated(ctx context.Context) bool
}

// Viewer is the signed-in user shown in the app chrome.
type Viewer struct {
	Profile     backend.UserProfile
	DisplayName string
	Initials    string
	RoleLabel   string
	ImageURL    string
}

// IsSuperuser reports whether destructive actions should be offered.
func (v Viewer) IsSuperuser() bool {
	return v.Profile.User.IsSuperuser
}

// CanRegisterUsers reports whether the registration view should be offered.
func (v Viewer) CanRegisterUsers() bool {
	return v.Profile.IsPrivileged()
}

// ResolveViewer returns the viewer resolved for the request.
type ResolveViewer func(*http.Request) Viewer

// ResolveSession returns the browser session bound to the request.
type ResolveSession func(*http.Request) Session

// CommitSession writes the session cookie for the request's current session.
type CommitSession func(http.ResponseWriter, *http.Request) error

// ClearSession expires the session cookie.
type ClearSession func(http.ResponseWriter, *http.Request)

// AdminGate checks and records the administrator-registration gate.
type AdminGate interface {
	Check(password string) bool
	Passed(*http.Request) bool
	Pass(http.ResponseWriter, *http.Request) error
	Reset(http.ResponseWriter, *http.Request)
}

// Dependencies carries the shared collaborators modules mount with.
type Dependencies struct {
	Backend        *backend.Client
	ResolveViewer  ResolveViewer
	ResolveSession ResolveSession
	CommitSession  CommitSession
	ClearSession   ClearSession
	AdminGate      AdminGate
	SchemePolicy   requestmeta.SchemePolicy
	Logger         logr.Logger
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by console composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

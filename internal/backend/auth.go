package backend

import (
	"context"
	"net/http"
	"strings"
)

const (
	pathLogin                 = "/api/auth/login/"
	pathLogout                = "/api/auth/logout/"
	pathProfile               = "/api/auth/profile/"
	pathRegisterSecretaria    = "/api/auth/register-secretaria/"
	pathRegisterAdministrador = "/api/auth/register-administrador/"
	pathCreateUserComplete    = "/api/auth/create-user-complete/"
)

// Login exchanges credentials for a token and stores it in sess when the
// response carries one.
func (c *Client) Login(ctx context.Context, sess Session, creds Credentials) (LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, sess, call{op: "login", method: http.MethodPost, path: pathLogin, body: creds, out: &out}); err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(out.Token) == "" || sess == nil {
		return out, nil
	}
	if err := sess.SetToken(ctx, out.Token); err != nil {
		c.log.Error(err, "store session token")
		return LoginResponse{}, &Error{Kind: KindSessionStorage, Message: "session storage unavailable"}
	}
	return out, nil
}

// Logout tells the backend to drop the token. The local token is removed
// whatever the outcome.
func (c *Client) Logout(ctx context.Context, sess Session) error {
	if sess != nil {
		defer sess.RemoveToken(ctx)
	}
	return c.do(ctx, sess, call{op: "logout", method: http.MethodPost, path: pathLogout, auth: true})
}

// Profile loads the signed-in user's account and profile.
func (c *Client) Profile(ctx context.Context, sess Session) (UserProfile, error) {
	var out UserProfile
	err := c.do(ctx, sess, call{op: "profile", method: http.MethodGet, path: pathProfile, auth: true, out: &out})
	return out, err
}

// RegisterSecretaria creates a secretary account without authentication.
func (c *Client) RegisterSecretaria(ctx context.Context, in SecretariaRegistration) (RegistrationResponse, error) {
	var out RegistrationResponse
	err := c.do(ctx, nil, call{op: "register_secretaria", method: http.MethodPost, path: pathRegisterSecretaria, body: in, out: &out})
	return out, err
}

// RegisterAdministrador creates an administrator account without
// authentication.
func (c *Client) RegisterAdministrador(ctx context.Context, in AdministradorRegistration) (RegistrationResponse, error) {
	var out RegistrationResponse
	err := c.do(ctx, nil, call{op: "register_administrador", method: http.MethodPost, path: pathRegisterAdministrador, body: in, out: &out})
	return out, err
}

// CreateUserComplete creates a guard or owner together with its profile.
func (c *Client) CreateUserComplete(ctx context.Context, sess Session, in CompleteUser) (RegistrationResponse, error) {
	var out RegistrationResponse
	err := c.do(ctx, sess, call{op: "create_user_complete", method: http.MethodPost, path: pathCreateUserComplete, auth: true, body: in, out: &out})
	return out, err
}

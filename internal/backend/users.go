package backend

import (
	"context"
	"net/http"
)

const (
	pathUsers    = "/api/users/"
	pathPerfiles = "/api/perfiles/"
)

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context, sess Session) ([]User, error) {
	var out []User
	err := c.do(ctx, sess, call{op: "list_users", method: http.MethodGet, path: pathUsers, auth: true, out: &out})
	return out, err
}

// GetUser returns one account.
func (c *Client) GetUser(ctx context.Context, sess Session, id int) (User, error) {
	var out User
	err := c.do(ctx, sess, call{op: "get_user", method: http.MethodGet, path: idPath(pathUsers, id), auth: true, out: &out})
	return out, err
}

// UpdateUser replaces an account's editable fields.
func (c *Client) UpdateUser(ctx context.Context, sess Session, id int, in UserUpdate) (User, error) {
	var out User
	err := c.do(ctx, sess, call{op: "update_user", method: http.MethodPut, path: idPath(pathUsers, id), auth: true, body: in, out: &out})
	return out, err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, sess Session, id int) error {
	return c.do(ctx, sess, call{op: "delete_user", method: http.MethodDelete, path: idPath(pathUsers, id), auth: true})
}

// GetPerfil returns one profile.
func (c *Client) GetPerfil(ctx context.Context, sess Session, id int) (Perfil, error) {
	var out Perfil
	err := c.do(ctx, sess, call{op: "get_perfil", method: http.MethodGet, path: idPath(pathPerfiles, id), auth: true, out: &out})
	return out, err
}

// UpdatePerfil replaces a profile's contact fields.
func (c *Client) UpdatePerfil(ctx context.Context, sess Session, id int, in PerfilUpdate) (Perfil, error) {
	var out Perfil
	err := c.do(ctx, sess, call{op: "update_perfil", method: http.MethodPut, path: idPath(pathPerfiles, id), auth: true, body: in, out: &out})
	return out, err
}

// DeletePerfil removes a profile.
func (c *Client) DeletePerfil(ctx context.Context, sess Session, id int) error {
	return c.do(ctx, sess, call{op: "delete_perfil", method: http.MethodDelete, path: idPath(pathPerfiles, id), auth: true})
}

// IsOwner selects non-staff accounts.
func IsOwner(u User) bool { return !u.IsStaff }

// IsStaffMember selects staff accounts.
func IsStaffMember(u User) bool { return u.IsStaff }

// FilterUsers keeps the users matching keep, in order.
func FilterUsers(users []User, keep func(User) bool) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

package api

import (
	"context"
	"net/http"

	"example.com/notely-web/internal/account"
)

func (c *Client) Login(ctx context.Context, cr account.Credentials) (account.Session, error) {
	var u account.User
	cookies, err := c.do(ctx, "api.Login", http.MethodPost, "/auth/login", cr, &u)
	if err != nil {
		return account.Session{}, err
	}
	return account.Session{User: u, Cookies: cookies}, nil
}

func (c *Client) Register(ctx context.Context, r account.Registration) (account.Session, error) {
	var u account.User
	cookies, err := c.do(ctx, "api.Register", http.MethodPost, "/auth/register", r, &u)
	if err != nil {
		return account.Session{}, err
	}
	return account.Session{User: u, Cookies: cookies}, nil
}

func (c *Client) Logout(ctx context.Context) ([]*http.Cookie, error) {
	return c.do(ctx, "api.Logout", http.MethodPost, "/auth/logout", struct{}{}, nil)
}

func (c *Client) Me(ctx context.Context) (account.User, error) {
	var u account.User
	_, err := c.do(ctx, "api.Me", http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

func (c *Client) ChangePassword(ctx context.Context, p account.PasswordChange) error {
	_, err := c.do(ctx, "api.ChangePassword", http.MethodPatch, "/auth/password", p, nil)
	return err
}

func (c *Client) UpdateProfile(ctx context.Context, p account.Profile) (account.User, error) {
	var u account.User
	_, err := c.do(ctx, "api.UpdateProfile", http.MethodPatch, "/users/profile", p, &u)
	return u, err
}

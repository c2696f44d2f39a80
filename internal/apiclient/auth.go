package apiclient

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/season-weeks-service/internal/domain/users"
)

// Register creates an account and returns the session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (users.AuthResponse, error) {
	var out users.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &out)
	return out, err
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (users.AuthResponse, error) {
	var out users.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &out)
	return out, err
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (users.User, error) {
	var out users.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

// UpdateProfile changes profile fields of the authenticated user.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (users.User, error) {
	var out users.User
	err := c.do(ctx, http.MethodPut, "/auth/profile", req, &out)
	return out, err
}

package api

import (
	"context"
	"net/http"

	"bilty/internal/core"
	"bilty/internal/log"
)

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterRequest struct {
		Email    string       `json:"email"`
		Password string       `json:"password"`
		UniqueID string       `json:"uniqueid,omitempty"`
		Profile  core.Profile `json:"profile"`
		Bank     *core.Bank   `json:"bank,omitempty"`
	}

	// AuthData is the login/register payload: the user fields flattened
	// next to the issued token.
	AuthData struct {
		core.User
		Token string `json:"token"`
	}

	// ResetTokenInfo describes a password-reset token being verified.
	ResetTokenInfo struct {
		Email     string    `json:"email"`
		UserName  string    `json:"userName"`
		ExpiresAt core.Date `json:"expiresAt"`
	}
)

// Login authenticates and, on success, persists the token and the user
// snapshot before returning.
func (c *Client) Login(ctx context.Context, req LoginRequest) Response[AuthData] {
	resp := do[AuthData](ctx, c, http.MethodPost, "/api/auth/login", req)
	c.persistAuth(ctx, resp)
	return resp
}

// Register creates an account; persistence side effects match Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Response[AuthData] {
	resp := do[AuthData](ctx, c, http.MethodPost, "/api/auth/register", req)
	c.persistAuth(ctx, resp)
	return resp
}

func (c *Client) persistAuth(ctx context.Context, resp Response[AuthData]) {
	if !resp.Success || resp.Data == nil {
		return
	}
	if err := c.tokens.SetToken(resp.Data.Token); err != nil {
		c.logger.WarnContext(ctx, "persist token failed", log.FieldError, err)
	}
	if err := c.users.SetUser(resp.Data.User, c.now()); err != nil {
		c.logger.WarnContext(ctx, "persist user snapshot failed", log.FieldError, err)
	}
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) Response[core.User] {
	return do[core.User](ctx, c, http.MethodGet, "/api/auth/me", nil)
}

// Logout clears the stored token and cached user snapshot. Purely local:
// the backend holds no server-side session.
func (c *Client) Logout() error {
	if err := c.tokens.ClearToken(); err != nil {
		return err
	}
	return c.users.ClearUser()
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) Response[struct{}] {
	return do[struct{}](ctx, c, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email})
}

func (c *Client) VerifyResetToken(ctx context.Context, token string) Response[ResetTokenInfo] {
	return do[ResetTokenInfo](ctx, c, http.MethodGet, "/api/auth/verify-reset-token/"+token, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) Response[struct{}] {
	return do[struct{}](ctx, c, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"token":    token,
		"password": newPassword,
	})
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) Response[struct{}] {
	return do[struct{}](ctx, c, http.MethodPut, "/api/auth/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
}

package backend

import (
	"context"
	"net/http"

	"github.com/jengamart/storefront/internal/domain"
)

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Login authenticates against the backend and returns the issued
// session.
func (c *Client) Login(ctx context.Context, input *LoginInput) (*domain.AuthSession, error) {
	var session domain.AuthSession
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates a new account and returns the issued session.
func (c *Client) Register(ctx context.Context, input *RegisterInput) (*domain.AuthSession, error) {
	var session domain.AuthSession
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the backend session for the given token.
func (c *Client) Logout(ctx context.Context, token string) error {
	req := struct {
		Token string `json:"token"`
	}{Token: token}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", req, nil)
}

// CurrentUser fetches the profile for an authenticated user.
func (c *Client) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestPasswordReset asks the backend to send a reset email. The
// backend deliberately reports success even for unknown addresses.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/password-reset", req, nil)
}

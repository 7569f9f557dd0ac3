package api

import (
	"context"
	"net/http"
)

// LoginRequest is the POST /usuarios/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the user object inside a successful login response.
type LoginUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// LoginResponse is the successful POST /usuarios/login response. Token is
// optional; backends without JWT support omit it.
type LoginResponse struct {
	User  LoginUser `json:"user"`
	Token string    `json:"token,omitempty"`
}

// RegisterRequest is the POST /usuarios body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/usuarios/login", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/usuarios", req, nil, nil)
}

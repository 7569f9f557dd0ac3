// Package auth runs the sign-in and sign-up flows against the backend and
// commits the resulting identity to the session manager.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tutienda/storefront/internal/api"
	"github.com/tutienda/storefront/internal/session"
	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
)

var validate = validator.New()

// Backend is the slice of the API client the auth flows need.
type Backend interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) error
}

// Sessions is the slice of the session manager the auth flows need.
type Sessions interface {
	Login(ctx context.Context, userID int, opts session.LoginOptions) error
	Logout(ctx context.Context)
	Current() session.Session
}

// Credentials is the sign-in form.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Registration is the sign-up form. The confirmation copy never leaves the
// client.
type Registration struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required"`
}

// Service exposes the sign-in and sign-up entry points.
type Service interface {
	Login(ctx context.Context, creds Credentials) (session.Session, error)
	Register(ctx context.Context, reg Registration) error
	Logout(ctx context.Context)
}

type service struct {
	backend  Backend
	sessions Sessions
	logg     *logger.Logger
}

// NewService wires the auth service. All dependencies are required.
func NewService(backend Backend, sessions Sessions, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, errors.New("backend client is required")
	}
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{backend: backend, sessions: sessions, logg: logg}, nil
}

// Login authenticates against the backend and commits the session. The
// backend's role string is honored when it parses; otherwise the session
// manager falls back to the token claim or the customer default.
func (s *service) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validate.Struct(creds); err != nil {
		return session.Session{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "email and password are required")
	}

	resp, err := s.backend.Login(ctx, api.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return session.Session{}, err
	}

	opts := session.LoginOptions{UserName: resp.User.Name, Token: resp.Token}
	if role, parseErr := enums.ParseRole(resp.User.Role); parseErr == nil {
		opts.Role = role
	}
	if err := s.sessions.Login(ctx, resp.User.ID, opts); err != nil {
		return session.Session{}, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, resp.User.ID), "signed in")
	return s.sessions.Current(), nil
}

// Register validates the sign-up form, including the password confirmation,
// and creates the account. It does not sign the user in.
func (s *service) Register(ctx context.Context, reg Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := validate.Struct(reg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "registration form incomplete")
	}
	if reg.Password != reg.ConfirmPassword {
		return pkgerrors.Validation(pkgerrors.ReasonPasswordMismatch, "passwords do not match")
	}
	return s.backend.Register(ctx, api.RegisterRequest{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
	})
}

// Logout drops the session and its persisted snapshot.
func (s *service) Logout(ctx context.Context) {
	s.sessions.Logout(ctx)
}

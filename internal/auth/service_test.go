package auth

import (
	"context"
	"testing"

	"github.com/tutienda/storefront/internal/api"
	"github.com/tutienda/storefront/internal/session"
	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
)

type stubBackend struct {
	loginResp   *api.LoginResponse
	loginErr    error
	registered  []api.RegisterRequest
	registerErr error
}

func (s *stubBackend) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResp, nil
}

func (s *stubBackend) Register(ctx context.Context, req api.RegisterRequest) error {
	s.registered = append(s.registered, req)
	return s.registerErr
}

type stubSessions struct {
	current   session.Session
	loggedOut bool
}

func (s *stubSessions) Login(ctx context.Context, userID int, opts session.LoginOptions) error {
	role := opts.Role
	if role == "" {
		role = enums.RoleCliente
	}
	s.current = session.Session{UserID: userID, UserName: opts.UserName, Role: role, Token: opts.Token}
	return nil
}

func (s *stubSessions) Logout(ctx context.Context) {
	s.loggedOut = true
	s.current = session.Session{}
}

func (s *stubSessions) Current() session.Session { return s.current }

func newTestService(t *testing.T, backend *stubBackend, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(backend, sessions, logger.New(logger.Options{ServiceName: "auth-test"}))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestLoginCommitsSession(t *testing.T) {
	backend := &stubBackend{loginResp: &api.LoginResponse{
		User:  api.LoginUser{ID: 7, Name: "Ana", Email: "ana@example.com", Role: "ADMIN"},
		Token: "jwt-token",
	}}
	sessions := &stubSessions{}
	svc := newTestService(t, backend, sessions)

	sess, err := svc.Login(context.Background(), Credentials{Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.UserID != 7 || sess.Role != enums.RoleAdmin || sess.Token != "jwt-token" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if sessions.current.UserID != 7 {
		t.Fatalf("session manager not committed")
	}
}

func TestLoginUnknownRoleFallsBack(t *testing.T) {
	backend := &stubBackend{loginResp: &api.LoginResponse{
		User: api.LoginUser{ID: 7, Name: "Ana", Role: "superuser"},
	}}
	sessions := &stubSessions{}
	svc := newTestService(t, backend, sessions)

	sess, err := svc.Login(context.Background(), Credentials{Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.Role != enums.RoleCliente {
		t.Fatalf("expected customer fallback role, got %s", sess.Role)
	}
}

func TestLoginValidatesInputBeforeNetwork(t *testing.T) {
	backend := &stubBackend{loginErr: pkgerrors.New(pkgerrors.CodeBackend, "should not be called")}
	svc := newTestService(t, backend, &stubSessions{})

	_, err := svc.Login(context.Background(), Credentials{Email: "not-an-email", Password: "secret"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.Login(context.Background(), Credentials{Email: "ana@example.com"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing password, got %v", err)
	}
}

func TestLoginBackendRejection(t *testing.T) {
	backend := &stubBackend{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "bad credentials")}
	sessions := &stubSessions{}
	svc := newTestService(t, backend, sessions)

	_, err := svc.Login(context.Background(), Credentials{Email: "ana@example.com", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if sessions.current.IsAuthenticated() {
		t.Fatalf("session must stay anonymous after rejected login")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	backend := &stubBackend{}
	svc := newTestService(t, backend, &stubSessions{})

	err := svc.Register(context.Background(), Registration{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	if pkgerrors.Reason(err) != pkgerrors.ReasonPasswordMismatch {
		t.Fatalf("expected password_mismatch reason, got %v", err)
	}
	if len(backend.registered) != 0 {
		t.Fatalf("mismatched passwords must not reach the backend")
	}
}

func TestRegisterStripsConfirmation(t *testing.T) {
	backend := &stubBackend{}
	svc := newTestService(t, backend, &stubSessions{})

	err := svc.Register(context.Background(), Registration{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(backend.registered) != 1 {
		t.Fatalf("expected one register call")
	}
	if backend.registered[0].Password != "secret1" {
		t.Fatalf("unexpected payload %+v", backend.registered[0])
	}
}

func TestLogoutDelegates(t *testing.T) {
	sessions := &stubSessions{current: session.Session{UserID: 7}}
	svc := newTestService(t, &stubBackend{}, sessions)

	svc.Logout(context.Background())
	if !sessions.loggedOut {
		t.Fatalf("expected logout delegation")
	}
}

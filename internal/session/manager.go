// Package session holds the authenticated identity for the running client.
// Like the cart it is constructed once at startup and passed explicitly to
// whatever needs it; there is no ambient global.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
	"github.com/tutienda/storefront/pkg/storage"
)

// Session is the persisted identity snapshot. A zero UserID means anonymous.
type Session struct {
	UserID   int        `json:"nro_usuario"`
	UserName string     `json:"nombre"`
	Role     enums.Role `json:"rol"`
	Token    string     `json:"token,omitempty"`
}

// IsAuthenticated reports whether the session belongs to a signed-in user.
func (s Session) IsAuthenticated() bool {
	return s.UserID > 0
}

// CartClearer is the slice of the cart manager the session needs: on logout
// the cart is emptied so state never leaks across accounts on a shared
// machine.
type CartClearer interface {
	Clear(ctx context.Context)
}

// Manager owns the session lifecycle: Anonymous -> Authenticated on Login,
// back to Anonymous on Logout. No intermediate states; the credential check
// itself happens against the backend before Login is called.
type Manager struct {
	mu      sync.Mutex
	current Session
	store   storage.Store
	cart    CartClearer
	logg    *logger.Logger
}

// NewManager hydrates the session from the snapshot store.
func NewManager(ctx context.Context, store storage.Store, cart CartClearer, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart clearer required")
	}
	current := storage.Load[Session](ctx, store, storage.KeySession, logg)
	return &Manager{current: current, store: store, cart: cart, logg: logg}, nil
}

// LoginOptions carries the optional fields of a login commit.
type LoginOptions struct {
	UserName string
	Role     enums.Role
	Token    string
}

// Login commits the authenticated identity. The role defaults to the
// customer tier; when the backend returned a JWT whose claims carry a role,
// that claim wins over the default (but not over an explicit option).
func (m *Manager) Login(ctx context.Context, userID int, opts LoginOptions) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id must be positive")
	}

	role := opts.Role
	if role == "" {
		if claimed, ok := roleFromToken(opts.Token); ok {
			role = claimed
		} else {
			role = enums.RoleCliente
		}
	}
	if !role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Session{
		UserID:   userID,
		UserName: strings.TrimSpace(opts.UserName),
		Role:     role,
		Token:    opts.Token,
	}
	storage.Save(ctx, m.store, storage.KeySession, m.current, m.logg)
	return nil
}

// Logout clears the session from memory and persistence and empties the
// cart. Calling it while anonymous is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = Session{}
	storage.Drop(ctx, m.store, storage.KeySession, m.logg)
	m.mu.Unlock()

	m.cart.Clear(ctx)
}

// Current returns a copy of the session snapshot.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().IsAuthenticated()
}

// Role returns the current role, empty for anonymous sessions.
func (m *Manager) Role() enums.Role {
	return m.Current().Role
}

// UserID returns the signed-in user id, 0 for anonymous sessions.
func (m *Manager) UserID() int {
	return m.Current().UserID
}

// Token returns the bearer token for API calls, "" when absent. Matches the
// api.TokenSource contract.
func (m *Manager) Token() string {
	return m.Current().Token
}

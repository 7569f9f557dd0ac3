// Package cart owns the in-memory shopping cart: line aggregation by
// article, quantity bounds, and the derived total. Every mutation is applied
// in memory first and then mirrored to the snapshot store, so a persistence
// failure can lose durability but never correctness.
package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
	"github.com/tutienda/storefront/pkg/storage"
)

// Line is one product's presence in the cart. Name and UnitPrice are
// denormalized copies captured at add time and never refreshed from the
// backend.
type Line struct {
	ArticleID int             `json:"id_articulo"`
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"precio"`
	Quantity  int             `json:"cantidad"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Manager is the single owner of cart state for the process. It is
// constructed once at startup and handed to every component that needs it.
type Manager struct {
	mu    sync.Mutex
	lines []Line
	store storage.Store
	logg  *logger.Logger
}

// NewManager hydrates the cart from the snapshot store. A missing or corrupt
// snapshot yields an empty cart.
func NewManager(ctx context.Context, store storage.Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	lines := storage.Load[[]Line](ctx, store, storage.KeyCart, logg)
	return &Manager{lines: lines, store: store, logg: logg}, nil
}

// AddItem merges the increment into an existing line for the article or
// appends a new one, preserving insertion order. The increment must be
// positive and the price non-negative.
func (m *Manager) AddItem(ctx context.Context, articleID int, name string, unitPrice decimal.Decimal, quantity int) error {
	if quantity < 1 {
		return pkgerrors.Validation(pkgerrors.ReasonInvalidQuantity, "quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price must be non-negative")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.lines {
		if m.lines[i].ArticleID == articleID {
			m.lines[i].Quantity += quantity
			m.persist(ctx)
			return nil
		}
	}
	m.lines = append(m.lines, Line{
		ArticleID: articleID,
		Name:      strings.TrimSpace(name),
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	m.persist(ctx)
	return nil
}

// UpdateQuantity replaces the line's quantity. Quantities below 1 are
// rejected here rather than trusted to callers; removing a line goes through
// RemoveItem. Updating an absent article is a no-op.
func (m *Manager) UpdateQuantity(ctx context.Context, articleID, quantity int) error {
	if quantity < 1 {
		return pkgerrors.Validation(pkgerrors.ReasonInvalidQuantity, "quantity must be at least 1")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.lines {
		if m.lines[i].ArticleID == articleID {
			m.lines[i].Quantity = quantity
			m.persist(ctx)
			return nil
		}
	}
	return nil
}

// RemoveItem drops the line for the article; absent articles are a no-op.
func (m *Manager) RemoveItem(ctx context.Context, articleID int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.lines {
		if m.lines[i].ArticleID == articleID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			m.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and persists the empty state. Called after a
// successful checkout and on logout.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines = nil
	m.persist(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Len reports the number of distinct lines.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// Quantity reports the quantity held for the article, 0 when absent.
func (m *Manager) Quantity(articleID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range m.lines {
		if line.ArticleID == articleID {
			return line.Quantity
		}
	}
	return 0
}

// Total is the live sum of line subtotals. It is recomputed on every call
// and never stored, so it cannot drift from the lines.
func (m *Manager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, line := range m.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// persist mirrors the current lines to the snapshot store. Callers hold the
// lock; failures are swallowed inside storage.Save.
func (m *Manager) persist(ctx context.Context) {
	storage.Save(ctx, m.store, storage.KeyCart, m.lines, m.logg)
}

package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tutienda/storefront/internal/api"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
)

type stubBackend struct {
	articles map[int]api.Article
	listErr  error
}

func (s *stubBackend) ListArticles(ctx context.Context) ([]api.Article, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]api.Article, 0, len(s.articles))
	for _, article := range s.articles {
		out = append(out, article)
	}
	return out, nil
}

func (s *stubBackend) GetArticle(ctx context.Context, id int) (*api.Article, error) {
	article, ok := s.articles[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
	}
	return &article, nil
}

func (s *stubBackend) ListCategories(ctx context.Context) ([]api.Category, error) {
	return nil, nil
}

type stubCart struct {
	quantities map[int]int
	added      []addedCall
}

type addedCall struct {
	articleID int
	name      string
	price     decimal.Decimal
	quantity  int
}

func (s *stubCart) AddItem(ctx context.Context, articleID int, name string, unitPrice decimal.Decimal, quantity int) error {
	s.added = append(s.added, addedCall{articleID, name, unitPrice, quantity})
	s.quantities[articleID] += quantity
	return nil
}

func (s *stubCart) Quantity(articleID int) int {
	return s.quantities[articleID]
}

func newTestService(t *testing.T, backend *stubBackend, cart *stubCart) Service {
	t.Helper()
	svc, err := NewService(backend, cart, logger.New(logger.Options{ServiceName: "catalog-test"}))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestAddToCartCapturesNameAndPrice(t *testing.T) {
	backend := &stubBackend{articles: map[int]api.Article{
		1: {ID: 1, Name: "Yerba", Price: decimal.NewFromInt(100), Stock: 10},
	}}
	cart := &stubCart{quantities: map[int]int{}}
	svc := newTestService(t, backend, cart)

	added, err := svc.AddToCart(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if len(cart.added) != 1 {
		t.Fatalf("expected one cart call, got %d", len(cart.added))
	}
	call := cart.added[0]
	if call.name != "Yerba" || !call.price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected denormalized name/price, got %+v", call)
	}
}

func TestAddToCartCapsAtStock(t *testing.T) {
	backend := &stubBackend{articles: map[int]api.Article{
		1: {ID: 1, Name: "Yerba", Price: decimal.NewFromInt(100), Stock: 5},
	}}
	cart := &stubCart{quantities: map[int]int{1: 3}}
	svc := newTestService(t, backend, cart)

	added, err := svc.AddToCart(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected cap at remaining stock 2, got %d", added)
	}
}

func TestAddToCartStockExhausted(t *testing.T) {
	backend := &stubBackend{articles: map[int]api.Article{
		1: {ID: 1, Name: "Yerba", Price: decimal.NewFromInt(100), Stock: 3},
	}}
	cart := &stubCart{quantities: map[int]int{1: 3}}
	svc := newTestService(t, backend, cart)

	added, err := svc.AddToCart(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if added != 0 {
		t.Fatalf("expected nothing added, got %d", added)
	}
	if len(cart.added) != 0 {
		t.Fatalf("cart should not have been touched")
	}
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	backend := &stubBackend{articles: map[int]api.Article{}}
	cart := &stubCart{quantities: map[int]int{}}
	svc := newTestService(t, backend, cart)

	_, err := svc.AddToCart(context.Background(), 1, 0)
	if pkgerrors.Reason(err) != pkgerrors.ReasonInvalidQuantity {
		t.Fatalf("expected invalid_quantity reason, got %v", err)
	}
}

func TestAddToCartUnknownArticle(t *testing.T) {
	backend := &stubBackend{articles: map[int]api.Article{}}
	cart := &stubCart{quantities: map[int]int{}}
	svc := newTestService(t, backend, cart)

	_, err := svc.AddToCart(context.Background(), 99, 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

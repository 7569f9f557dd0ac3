// Package catalog layers product browsing and stock-aware cart additions on
// top of the backend API.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tutienda/storefront/internal/api"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
)

// Backend is the slice of the API client the catalog needs.
type Backend interface {
	ListArticles(ctx context.Context) ([]api.Article, error)
	GetArticle(ctx context.Context, id int) (*api.Article, error)
	ListCategories(ctx context.Context) ([]api.Category, error)
}

// Cart is the slice of the cart manager the catalog needs.
type Cart interface {
	AddItem(ctx context.Context, articleID int, name string, unitPrice decimal.Decimal, quantity int) error
	Quantity(articleID int) int
}

// Service exposes catalog browsing and the add-to-cart entry point.
type Service interface {
	List(ctx context.Context) ([]api.Article, error)
	Get(ctx context.Context, id int) (*api.Article, error)
	Categories(ctx context.Context) ([]api.Category, error)
	AddToCart(ctx context.Context, articleID, quantity int) (int, error)
}

type service struct {
	backend Backend
	cart    Cart
	logg    *logger.Logger
}

// NewService wires the catalog service. All dependencies are required.
func NewService(backend Backend, cart Cart, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, errors.New("backend client is required")
	}
	if cart == nil {
		return nil, errors.New("cart manager is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{backend: backend, cart: cart, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]api.Article, error) {
	return s.backend.ListArticles(ctx)
}

func (s *service) Get(ctx context.Context, id int) (*api.Article, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "article id must be positive")
	}
	return s.backend.GetArticle(ctx, id)
}

func (s *service) Categories(ctx context.Context) ([]api.Category, error) {
	return s.backend.ListCategories(ctx)
}

// AddToCart fetches the article, caps the requested quantity against the
// stock not already reserved by the cart, and adds the capped amount with
// the name and price captured at add time. Returns the quantity actually
// added, which is zero when the cart already holds the whole stock.
func (s *service) AddToCart(ctx context.Context, articleID, quantity int) (int, error) {
	if quantity < 1 {
		return 0, pkgerrors.Validation(pkgerrors.ReasonInvalidQuantity, "quantity must be at least 1")
	}
	article, err := s.backend.GetArticle(ctx, articleID)
	if err != nil {
		return 0, err
	}

	available := article.Stock - s.cart.Quantity(articleID)
	if available <= 0 {
		s.logg.Warn(s.logg.WithArticleID(ctx, articleID), "stock exhausted, nothing added")
		return 0, nil
	}
	if quantity > available {
		quantity = available
	}

	if err := s.cart.AddItem(ctx, article.ID, article.Name, article.Price, quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Category mirrors the backend's categoria rows.
type Category struct {
	ID          int    `json:"id_categoria"`
	Name        string `json:"nom_categoria"`
	Description string `json:"desc_categoria"`
}

// Article mirrors the backend's articulo rows.
type Article struct {
	ID          int             `json:"id_articulo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Categories  []Category      `json:"categorias,omitempty"`
}

// ListArticles fetches the whole catalog.
func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var out []Article
	if err := c.do(ctx, http.MethodGet, "/articulos", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// GetArticle fetches a single product by id.
func (c *Client) GetArticle(ctx context.Context, id int) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/articulos/%d", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories fetches the category table used by the admin inventory view.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categorias", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateArticleRequest is the admin payload for a new product.
type CreateArticleRequest struct {
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoryIDs []int           `json:"categorias,omitempty"`
}

// UpdateArticleRequest carries the full replacement state for a product.
type UpdateArticleRequest struct {
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoryIDs []int           `json:"categorias,omitempty"`
}

func (c *Client) CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPost, "/articulos", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id int, req UpdateArticleRequest) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/articulos/%d", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/articulos/%d", id), nil, nil, nil)
}

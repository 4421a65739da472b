package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// ListCategories fetches all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := getList[domain.Category](ctx, c, "/category", "categories")
	if err != nil {
		return nil, fmt.Errorf("client.ListCategories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches a single category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := getObject[domain.Category](ctx, c, "/category/"+url.PathEscape(id), "category")
	if err != nil {
		return nil, fmt.Errorf("client.GetCategory: %w", err)
	}
	return category, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, cat domain.Category) (*domain.Category, error) {
	raw, err := c.doRequest(ctx, http.MethodPost, "/category", cat)
	if err != nil {
		return nil, fmt.Errorf("client.CreateCategory: %w", err)
	}
	created, ok := decodeObject[domain.Category](raw, "category")
	if !ok {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to parse server response", Body: string(raw), Endpoint: "/category"}
	}
	return created, nil
}

// UpdateCategory patches category fields.
func (c *Client) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	if err := c.do(ctx, http.MethodPatch, "/category/"+url.PathEscape(id), fields, nil); err != nil {
		return fmt.Errorf("client.UpdateCategory: %w", err)
	}
	return nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/category/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteCategory: %w", err)
	}
	return nil
}

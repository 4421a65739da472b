package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// Catalog retry policy. This bounded retry applies to the full catalog
// fetch only; it is an explicit decision not to generalize it to other
// resources.
const (
	catalogAttempts   = 3
	defaultRetryDelay = 2 * time.Second
)

// RetryNotify receives a progress callback before each catalog retry sleep.
type RetryNotify func(attempt, max int)

// ExhaustedError reports that the catalog retry budget ran out. The last
// server error is wrapped and reachable through errors.As.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("catalog load failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// ListProducts fetches the full catalog. Server-side (5xx) failures are
// retried with a fixed delay up to three attempts total; every other
// error class fails immediately. After exhaustion the caller gets an
// ExhaustedError and decides when to re-trigger manually.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		products, err := getList[domain.Product](ctx, c, "/product", "products")
		if err == nil {
			return products, nil
		}
		lastErr = err
		if !IsKind(err, KindServer) {
			return nil, fmt.Errorf("client.ListProducts: %w", err)
		}
		if attempt == c.retryAttempts {
			break
		}
		if c.onRetry != nil {
			c.onRetry(attempt, c.retryAttempts)
		}
		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("client.ListProducts: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("client.ListProducts: %w", &ExhaustedError{Attempts: c.retryAttempts, Last: lastErr})
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := getObject[domain.Product](ctx, c, "/product/"+url.PathEscape(id), "product")
	if err != nil {
		return nil, fmt.Errorf("client.GetProduct: %w", err)
	}
	return product, nil
}

// ProductsByCategory fetches the products in one category. No retry here;
// the bounded retry is a catalog-load policy only.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products, err := getList[domain.Product](ctx, c, "/product/category/"+url.PathEscape(categoryID), "products")
	if err != nil {
		return nil, fmt.Errorf("client.ProductsByCategory: %w", err)
	}
	return products, nil
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	raw, err := c.doRequest(ctx, http.MethodPost, "/product", p)
	if err != nil {
		return nil, fmt.Errorf("client.CreateProduct: %w", err)
	}
	created, ok := decodeObject[domain.Product](raw, "product")
	if !ok {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to parse server response", Body: string(raw), Endpoint: "/product"}
	}
	return created, nil
}

// UpdateProduct patches product fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]any) error {
	if err := c.do(ctx, http.MethodPatch, "/product/"+url.PathEscape(id), fields, nil); err != nil {
		return fmt.Errorf("client.UpdateProduct: %w", err)
	}
	return nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/product/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteProduct: %w", err)
	}
	return nil
}

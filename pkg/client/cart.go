package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// Cart fetches the current server-side cart. The endpoint answers either
// {"items": [...]} or a bare item list; both normalize to a Cart.
func (c *Client) Cart(ctx context.Context) (*domain.Cart, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, "/cart", nil)
	if err != nil {
		return nil, fmt.Errorf("client.Cart: %w", err)
	}

	var cart domain.Cart
	if json.Unmarshal(raw, &cart) == nil && cart.Items != nil {
		return &cart, nil
	}
	items, ok := decodeList[domain.CartItem](raw, "cart")
	if !ok {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to parse server response", Body: string(raw), Endpoint: "/cart"}
	}
	return &domain.Cart{Items: items}, nil
}

// AddToCart adds a product line. Invalid input fails fast, before any
// network traffic: the API rejects zero-price adds with an opaque 500, so
// the precondition lives here.
func (c *Client) AddToCart(ctx context.Context, productID string, price float64, quantity int) (*domain.CartItem, error) {
	if productID == "" {
		return nil, &ValidationError{Reason: "product id is required"}
	}
	if price <= 0 {
		return nil, &ValidationError{Reason: "product price must be greater than 0"}
	}
	if quantity < 1 {
		quantity = 1
	}

	body := map[string]any{
		"productId":    productID,
		"productPrice": price,
		"quantity":     quantity,
	}
	raw, err := c.doRequest(ctx, http.MethodPost, "/cart/add", body)
	if err != nil {
		return nil, fmt.Errorf("client.AddToCart: %w", err)
	}
	item, ok := decodeObject[domain.CartItem](raw, "item")
	if !ok {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to parse server response", Body: string(raw), Endpoint: "/cart/add"}
	}
	return item, nil
}

// RemoveCartItem deletes one cart line by its cart item id.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID string) error {
	if cartItemID == "" {
		return &ValidationError{Reason: "cart item id is required"}
	}
	body := map[string]string{"cartItemId": cartItemID}
	if err := c.do(ctx, http.MethodDelete, "/cart/remove", body, nil); err != nil {
		return fmt.Errorf("client.RemoveCartItem: %w", err)
	}
	return nil
}

// UpdateCartItem sets the quantity of one cart line.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID string, quantity int) error {
	if cartItemID == "" {
		return &ValidationError{Reason: "cart item id is required"}
	}
	if quantity < 1 {
		return &ValidationError{Reason: "quantity must be at least 1"}
	}
	body := map[string]any{"cartItemId": cartItemID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPatch, "/cart/update", body, nil); err != nil {
		return fmt.Errorf("client.UpdateCartItem: %w", err)
	}
	return nil
}

// ClearCart empties the server-side cart.
func (c *Client) ClearCart(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil); err != nil {
		return fmt.Errorf("client.ClearCart: %w", err)
	}
	return nil
}

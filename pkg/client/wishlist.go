package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// Wishlist fetches the authenticated user's saved products.
func (c *Client) Wishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	items, err := getList[domain.WishlistItem](ctx, c, "/wishlist", "wishlist")
	if err != nil {
		return nil, fmt.Errorf("client.Wishlist: %w", err)
	}
	return items, nil
}

// ToggleWishlist adds the product when absent and removes it when present.
func (c *Client) ToggleWishlist(ctx context.Context, productID string) error {
	if productID == "" {
		return &ValidationError{Reason: "product id is required"}
	}
	body := map[string]string{"productId": productID}
	if err := c.do(ctx, http.MethodPost, "/wishlist/toggle", body, nil); err != nil {
		return fmt.Errorf("client.ToggleWishlist: %w", err)
	}
	return nil
}

// AddToWishlist saves a product explicitly.
func (c *Client) AddToWishlist(ctx context.Context, productID string) error {
	if productID == "" {
		return &ValidationError{Reason: "product id is required"}
	}
	if err := c.do(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(productID), nil, nil); err != nil {
		return fmt.Errorf("client.AddToWishlist: %w", err)
	}
	return nil
}

// RemoveFromWishlist drops a product from the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) error {
	if productID == "" {
		return &ValidationError{Reason: "product id is required"}
	}
	if err := c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil, nil); err != nil {
		return fmt.Errorf("client.RemoveFromWishlist: %w", err)
	}
	return nil
}

// ClearWishlist drops every saved product.
func (c *Client) ClearWishlist(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/wishlist", nil, nil); err != nil {
		return fmt.Errorf("client.ClearWishlist: %w", err)
	}
	return nil
}

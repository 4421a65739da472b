package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vitrinedev/vitrine/pkg/domain"
)

// CreateOrder places an order from the current cart. The server consumes
// the cart; there is nothing to send beyond the authenticated request.
func (c *Client) CreateOrder(ctx context.Context) (*domain.Order, error) {
	raw, err := c.doRequest(ctx, http.MethodPost, "/order/create", nil)
	if err != nil {
		return nil, fmt.Errorf("client.CreateOrder: %w", err)
	}
	order, ok := decodeObject[domain.Order](raw, "order")
	if !ok {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to parse server response", Body: string(raw), Endpoint: "/order/create"}
	}
	return order, nil
}

// MyOrders fetches the authenticated user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := getList[domain.Order](ctx, c, "/order/me", "orders")
	if err != nil {
		return nil, fmt.Errorf("client.MyOrders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := getObject[domain.Order](ctx, c, "/order/"+url.PathEscape(id), "order")
	if err != nil {
		return nil, fmt.Errorf("client.GetOrder: %w", err)
	}
	return order, nil
}

// CancelOrder requests cancellation of an order. Whether an order is
// cancellable is the server's decision; domain.Order.CanCancel only
// predicts it for display purposes.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPatch, "/order/"+url.PathEscape(id)+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("client.CancelOrder: %w", err)
	}
	return nil
}

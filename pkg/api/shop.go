package api

import (
	"context"
	"fmt"

	"github.com/minjipark/encore/pkg/domain"
)

// ListItems fetches a page of shop items.
func (c *Client) ListItems(ctx context.Context, page Page) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.get(ctx, "/api/items?"+page.query().Encode(), &items); err != nil {
		return nil, fmt.Errorf("api.ListItems: %w", err)
	}
	return items, nil
}

// GetItem fetches a single item with its options.
func (c *Client) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	if err := c.get(ctx, "/api/items/"+itoa(id), &item); err != nil {
		return nil, fmt.Errorf("api.GetItem: %w", err)
	}
	return &item, nil
}

// ListCart returns the member's current cart lines.
func (c *Client) ListCart(ctx context.Context) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := c.get(ctx, "/api/cart", &lines); err != nil {
		return nil, fmt.Errorf("api.ListCart: %w", err)
	}
	return lines, nil
}

// AddCartRequest selects an item/option/quantity for the cart.
type AddCartRequest struct {
	ItemID   int64 `json:"itemId"`
	OptionID int64 `json:"optionId,omitempty"`
	Quantity int   `json:"quantity"`
}

// AddCartLine adds a line to the cart and returns the server's copy of it.
// Views render the response, never the pre-submission draft.
func (c *Client) AddCartLine(ctx context.Context, req AddCartRequest) (*domain.CartLine, error) {
	var line domain.CartLine
	if err := c.post(ctx, "/api/cart", req, &line); err != nil {
		return nil, fmt.Errorf("api.AddCartLine: %w", err)
	}
	return &line, nil
}

// RemoveCartLine deletes a cart line by ID.
func (c *Client) RemoveCartLine(ctx context.Context, lineID int64) error {
	if err := c.delete(ctx, "/api/cart/"+itoa(lineID)); err != nil {
		return fmt.Errorf("api.RemoveCartLine: %w", err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"

	"github.com/minjipark/encore/pkg/domain"
)

// AdminListMembers fetches a page of members. Requires the admin role; a 403
// surfaces as a permission-denied message at the call site.
func (c *Client) AdminListMembers(ctx context.Context, page Page) ([]domain.Member, error) {
	var members []domain.Member
	if err := c.get(ctx, "/api/admin/members?"+page.query().Encode(), &members); err != nil {
		return nil, fmt.Errorf("api.AdminListMembers: %w", err)
	}
	return members, nil
}

// AdminListOrders fetches a page of all orders.
func (c *Client) AdminListOrders(ctx context.Context, page Page) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/admin/orders?"+page.query().Encode(), &orders); err != nil {
		return nil, fmt.Errorf("api.AdminListOrders: %w", err)
	}
	return orders, nil
}

// AdminListItems fetches a page of shop items including hidden ones.
func (c *Client) AdminListItems(ctx context.Context, page Page) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.get(ctx, "/api/admin/items?"+page.query().Encode(), &items); err != nil {
		return nil, fmt.Errorf("api.AdminListItems: %w", err)
	}
	return items, nil
}

// AdminListBanners returns every banner, visible or not.
func (c *Client) AdminListBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := c.get(ctx, "/api/admin/banners", &banners); err != nil {
		return nil, fmt.Errorf("api.AdminListBanners: %w", err)
	}
	return banners, nil
}

// AdminSaveBannerOrder persists a reordered banner rotation in one call.
// Intermediate reordering never round-trips; only an explicit save does.
func (c *Client) AdminSaveBannerOrder(ctx context.Context, slots []domain.BannerSlot) error {
	if err := c.put(ctx, "/api/admin/banners/order", map[string]any{"slots": slots}, nil); err != nil {
		return fmt.Errorf("api.AdminSaveBannerOrder: %w", err)
	}
	return nil
}

// AdminCreateContentRequest is the payload for publishing catalog content.
// A non-nil thumbnail switches the request to multipart form data.
type AdminCreateContentRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	Category    string `json:"category"`
	VideoID     string `json:"videoId,omitempty"`
	DurationSec int    `json:"durationSec,omitempty"`
}

// AdminCreateContent publishes a content entry and returns the server's copy.
func (c *Client) AdminCreateContent(ctx context.Context, req AdminCreateContentRequest, thumbnail *Attachment) (*domain.Content, error) {
	var created domain.Content
	if thumbnail != nil {
		fields := map[string]string{
			"title":       req.Title,
			"body":        req.Body,
			"category":    req.Category,
			"videoId":     req.VideoID,
			"durationSec": itoa(int64(req.DurationSec)),
		}
		if err := c.postMultipart(ctx, "/api/admin/contents", fields, thumbnail, &created); err != nil {
			return nil, fmt.Errorf("api.AdminCreateContent: %w", err)
		}
		return &created, nil
	}
	if err := c.post(ctx, "/api/admin/contents", req, &created); err != nil {
		return nil, fmt.Errorf("api.AdminCreateContent: %w", err)
	}
	return &created, nil
}

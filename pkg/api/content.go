package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/minjipark/encore/pkg/domain"
)

// ListContents fetches a page of catalog content. Pagination and sort are
// passed through unmodified; the backend owns ordering.
func (c *Client) ListContents(ctx context.Context, category string, page Page) ([]domain.Content, error) {
	params := page.query()
	if category != "" {
		params.Set("category", category)
	}
	var contents []domain.Content
	if err := c.get(ctx, "/api/contents?"+params.Encode(), &contents); err != nil {
		return nil, fmt.Errorf("api.ListContents: %w", err)
	}
	return contents, nil
}

// GetContent fetches a single content entry by ID.
func (c *Client) GetContent(ctx context.Context, id int64) (*domain.Content, error) {
	var content domain.Content
	if err := c.get(ctx, "/api/contents/"+itoa(id), &content); err != nil {
		return nil, fmt.Errorf("api.GetContent: %w", err)
	}
	return &content, nil
}

// ListBanners returns the currently visible home banners in display order.
func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner
	if err := c.get(ctx, "/api/banners", &banners); err != nil {
		return nil, fmt.Errorf("api.ListBanners: %w", err)
	}
	return banners, nil
}

// VideoMeta is the backend's metadata mirror for an embedded video. Ready is
// false while the backend is still resolving the upstream platform.
type VideoMeta struct {
	VideoID     string `json:"videoId"`
	DurationSec int    `json:"durationSec"`
	Ready       bool   `json:"ready"`
}

// GetVideoMeta fetches duration metadata for a video ID.
func (c *Client) GetVideoMeta(ctx context.Context, videoID string) (*VideoMeta, error) {
	var meta VideoMeta
	if err := c.get(ctx, "/api/videos/"+url.PathEscape(videoID)+"/meta", &meta); err != nil {
		return nil, fmt.Errorf("api.GetVideoMeta: %w", err)
	}
	return &meta, nil
}

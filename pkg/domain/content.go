package domain

import "time"

// Content is a catalog entry: an article or a video post.
type Content struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body,omitempty"`
	Category      string    `json:"category,omitempty"`
	VideoID       string    `json:"videoId,omitempty"`
	DurationSec   int       `json:"durationSec,omitempty"`
	ThumbnailPath string    `json:"thumbnailPath,omitempty"`
	ViewCount     int       `json:"viewCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Banner is a home-screen banner as served to visitors.
type Banner struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ImagePath string `json:"imagePath,omitempty"`
	LinkURL   string `json:"linkUrl,omitempty"`
	Order     int    `json:"order"`
	Visible   bool   `json:"visible"`
}

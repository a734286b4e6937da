// Package media resolves embedded-video durations through the backend's
// metadata mirror, which may lag the upstream platform by a few seconds.
package media

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/minjipark/encore/pkg/api"
)

// Detection bounds. The poll gives up explicitly after maxAttempts; there is
// no backoff and no open-ended loop.
const (
	maxAttempts  = 10
	pollInterval = 500 * time.Millisecond
)

// ErrDurationUnavailable is the explicit give-up state after maxAttempts.
var ErrDurationUnavailable = errors.New("video duration not available")

// MetaClient is the slice of the API client duration detection needs.
type MetaClient interface {
	GetVideoMeta(ctx context.Context, videoID string) (*api.VideoMeta, error)
}

// Detector polls video metadata a bounded number of times.
type Detector struct {
	client   MetaClient
	logger   *slog.Logger
	interval time.Duration // overridable in tests
}

// NewDetector creates a detector with the default interval.
func NewDetector(client MetaClient, logger *slog.Logger) *Detector {
	return &Detector{client: client, logger: logger, interval: pollInterval}
}

// DetectDuration polls the metadata endpoint at a fixed interval until the
// backend reports a ready duration, the attempt bound is hit, or ctx ends.
func (d *Detector) DetectDuration(ctx context.Context, videoID string) (int, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		meta, err := d.client.GetVideoMeta(ctx, videoID)
		if err != nil {
			return 0, err
		}
		if meta.Ready && meta.DurationSec > 0 {
			return meta.DurationSec, nil
		}
		d.logger.Debug("video duration not ready",
			slog.String("videoId", videoID),
			slog.Int("attempt", attempt))

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(d.interval):
		}
	}
	return 0, ErrDurationUnavailable
}

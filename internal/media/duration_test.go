package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/encore/internal/logging"
	"github.com/minjipark/encore/pkg/api"
)

// fakeMetaClient serves scripted responses in order, repeating the last one.
type fakeMetaClient struct {
	calls     int
	responses []*api.VideoMeta
	err       error
}

func (f *fakeMetaClient) GetVideoMeta(_ context.Context, _ string) (*api.VideoMeta, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	i := f.calls - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func newTestDetector(client MetaClient) *Detector {
	d := NewDetector(client, logging.Discard())
	d.interval = time.Millisecond
	return d
}

func TestDetectDurationImmediatelyReady(t *testing.T) {
	client := &fakeMetaClient{responses: []*api.VideoMeta{
		{VideoID: "v1", DurationSec: 213, Ready: true},
	}}
	d := newTestDetector(client)

	sec, err := d.DetectDuration(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 213, sec)
	assert.Equal(t, 1, client.calls)
}

func TestDetectDurationReadyOnLaterAttempt(t *testing.T) {
	client := &fakeMetaClient{responses: []*api.VideoMeta{
		{VideoID: "v1"},
		{VideoID: "v1"},
		{VideoID: "v1", DurationSec: 98, Ready: true},
	}}
	d := newTestDetector(client)

	sec, err := d.DetectDuration(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 98, sec)
	assert.Equal(t, 3, client.calls)
}

func TestDetectDurationGivesUpAfterBound(t *testing.T) {
	client := &fakeMetaClient{responses: []*api.VideoMeta{
		{VideoID: "v1"}, // never ready
	}}
	d := newTestDetector(client)

	_, err := d.DetectDuration(context.Background(), "v1")
	assert.ErrorIs(t, err, ErrDurationUnavailable)
	assert.Equal(t, maxAttempts, client.calls, "detector must stop at the attempt bound")
}

func TestDetectDurationStopsOnClientError(t *testing.T) {
	client := &fakeMetaClient{err: errors.New("boom")}
	d := newTestDetector(client)

	_, err := d.DetectDuration(context.Background(), "v1")
	assert.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestDetectDurationHonorsContextCancel(t *testing.T) {
	client := &fakeMetaClient{responses: []*api.VideoMeta{{VideoID: "v1"}}}
	d := NewDetector(client, logging.Discard())
	d.interval = time.Hour // cancellation must win the wait

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := d.DetectDuration(ctx, "v1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectDurationIgnoresUnreadyNonZero(t *testing.T) {
	// A duration reported before the backend marks it ready is not trusted.
	client := &fakeMetaClient{responses: []*api.VideoMeta{
		{VideoID: "v1", DurationSec: 42, Ready: false},
		{VideoID: "v1", DurationSec: 213, Ready: true},
	}}
	d := newTestDetector(client)

	sec, err := d.DetectDuration(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 213, sec)
}

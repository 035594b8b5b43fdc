package tools

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sora-video-mcp/pkg/sora"
)

// scriptedFetcher replays a fixed sequence of statuses, repeating the
// last one once the script is exhausted.
type scriptedFetcher struct {
	script []*sora.Video
	err    error
	calls  int
}

func (f *scriptedFetcher) GetVideo(ctx context.Context, videoID string) (*sora.Video, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	return f.script[idx], nil
}

// recordedWait collects requested intervals without sleeping.
func recordedWait(waits *[]time.Duration) WaitFunc {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}

func TestWaitReturnsImmediatelyWhenCompleted(t *testing.T) {
	var waits []time.Duration
	fetcher := &scriptedFetcher{script: []*sora.Video{
		{ID: "video_1", Status: sora.StatusCompleted},
	}}

	poller := NewPoller(fetcher, recordedWait(&waits), nil)
	result, err := poller.Wait(context.Background(), "video_1", 10*time.Second, 600*time.Second)

	require.NoError(t, err)
	assert.Equal(t, sora.StatusCompleted, result.Status)
	assert.Equal(t, 1, fetcher.calls)
	assert.Empty(t, waits, "an already-completed job must not trigger a wait")
}

func TestWaitPollsUntilCompleted(t *testing.T) {
	var waits []time.Duration
	fetcher := &scriptedFetcher{script: []*sora.Video{
		{ID: "video_1", Status: sora.StatusQueued},
		{ID: "video_1", Status: sora.StatusInProgress, Progress: 50},
		{ID: "video_1", Status: sora.StatusCompleted},
	}}

	poller := NewPoller(fetcher, recordedWait(&waits), nil)
	result, err := poller.Wait(context.Background(), "video_1", 10*time.Second, 600*time.Second)

	require.NoError(t, err)
	assert.Equal(t, sora.StatusCompleted, result.Status)
	assert.Equal(t, 3, fetcher.calls)
	assert.Equal(t, []time.Duration{10 * time.Second, 10 * time.Second}, waits)
	assert.Contains(t, result.Message, "completed")
}

func TestWaitTimesOutAfterAtMostOneInterval(t *testing.T) {
	fetcher := &scriptedFetcher{script: []*sora.Video{
		{ID: "video_1", Status: sora.StatusInProgress},
	}}

	// Timeout smaller than the interval: one poll, one full-length wait,
	// then the loop exits with a timeout.
	poller := NewPoller(fetcher, SleepWait, nil)
	_, err := poller.Wait(context.Background(), "video_1", 30*time.Millisecond, 10*time.Millisecond)

	require.Error(t, err)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "video_1", timeoutErr.VideoID)
	assert.Equal(t, 1, fetcher.calls)
	assert.Contains(t, err.Error(), "video_1")
}

func TestWaitReportsFailureDetail(t *testing.T) {
	var waits []time.Duration
	fetcher := &scriptedFetcher{script: []*sora.Video{
		{ID: "video_1", Status: sora.StatusFailed, Error: &sora.VideoError{Code: "moderation", Message: "content policy violation"}},
	}}

	poller := NewPoller(fetcher, recordedWait(&waits), nil)
	result, err := poller.Wait(context.Background(), "video_1", 10*time.Second, 600*time.Second)

	require.NoError(t, err)
	assert.Equal(t, sora.StatusFailed, result.Status)
	assert.Contains(t, result.Message, "content policy violation")
	assert.Empty(t, waits)
}

func TestWaitUsesPlaceholderWithoutFailureDetail(t *testing.T) {
	fetcher := &scriptedFetcher{script: []*sora.Video{
		{ID: "video_1", Status: sora.StatusFailed},
	}}

	poller := NewPoller(fetcher, recordedWait(&[]time.Duration{}), nil)
	result, err := poller.Wait(context.Background(), "video_1", 10*time.Second, 600*time.Second)

	require.NoError(t, err)
	assert.Contains(t, result.Message, "no error detail provided")
}

func TestWaitPropagatesTransportErrors(t *testing.T) {
	transportErr := errors.New("connection reset")
	fetcher := &scriptedFetcher{err: transportErr}

	poller := NewPoller(fetcher, recordedWait(&[]time.Duration{}), nil)
	_, err := poller.Wait(context.Background(), "video_1", 10*time.Second, 600*time.Second)

	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, 1, fetcher.calls)
}

func TestWaitStopsOnCancelledContext(t *testing.T) {
	fetcher := &scriptedFetcher{script: []*sora.Video{
		{ID: "video_1", Status: sora.StatusQueued},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poller := NewPoller(fetcher, SleepWait, nil)
	_, err := poller.Wait(ctx, "video_1", time.Hour, 2*time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
}

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sora-video-mcp/pkg/sora"
)

// StatusFetcher is the slice of the API client the poller needs.
type StatusFetcher interface {
	GetVideo(ctx context.Context, videoID string) (*sora.Video, error)
}

// WaitFunc suspends between polls.
type WaitFunc func(ctx context.Context, d time.Duration) error

// SleepWait waits for the full duration or until the context is done.
func SleepWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PollResult is the outcome of a finished wait: the job's final state,
// how long the wait took and a human-readable summary.
type PollResult struct {
	Status         string      `json:"status"`
	ElapsedSeconds int         `json:"elapsed_seconds"`
	Message        string      `json:"message"`
	Video          *sora.Video `json:"video"`
}

// Poller repeatedly queries a job's status until it reaches a terminal
// state or the timeout budget is spent. Transport failures during
// polling propagate immediately; they are never retried or swallowed.
type Poller struct {
	fetch  StatusFetcher
	wait   WaitFunc
	logger *slog.Logger
}

// NewPoller builds a poller. A nil wait falls back to SleepWait.
func NewPoller(fetch StatusFetcher, wait WaitFunc, logger *slog.Logger) *Poller {
	if wait == nil {
		wait = SleepWait
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{fetch: fetch, wait: wait, logger: logger}
}

// Wait runs the polling loop. A poll interval larger than the remaining
// budget is still honored in full; the loose timeout contract allows the
// final wait to overshoot the deadline slightly.
func (p *Poller) Wait(ctx context.Context, videoID string, interval, timeout time.Duration) (*PollResult, error) {
	start := time.Now()

	for time.Since(start) < timeout {
		video, err := p.fetch.GetVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}

		elapsed := time.Since(start)
		switch video.Status {
		case sora.StatusCompleted:
			return &PollResult{
				Status:         video.Status,
				ElapsedSeconds: int(elapsed.Seconds()),
				Message:        fmt.Sprintf("video %s completed after %d seconds", videoID, int(elapsed.Seconds())),
				Video:          video,
			}, nil
		case sora.StatusFailed:
			detail := "no error detail provided"
			if video.Error != nil && video.Error.Message != "" {
				detail = video.Error.Message
			}
			return &PollResult{
				Status:         video.Status,
				ElapsedSeconds: int(elapsed.Seconds()),
				Message:        fmt.Sprintf("video %s failed after %d seconds: %s", videoID, int(elapsed.Seconds()), detail),
				Video:          video,
			}, nil
		}

		p.logger.Debug("video not ready, polling again",
			slog.String("video_id", videoID),
			slog.String("status", video.Status),
			slog.Int("progress", video.Progress))

		if err := p.wait(ctx, interval); err != nil {
			return nil, err
		}
	}

	return nil, &TimeoutError{VideoID: videoID, Elapsed: time.Since(start)}
}

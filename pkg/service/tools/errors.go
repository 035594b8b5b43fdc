package tools

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrMissingImageInput is raised when create_video_with_image receives
// neither an image URL nor an inline payload.
var ErrMissingImageInput = errors.New("either image_url or image_base64 must be provided")

// ErrConflictingImageInput is raised when both image inputs are given.
var ErrConflictingImageInput = errors.New("image_url and image_base64 are mutually exclusive; provide exactly one")

// ErrInvalidImageFormat is raised when an inline payload does not match
// the data:<mime>;base64,<payload> shape.
var ErrInvalidImageFormat = errors.New("image_base64 must be a data URI of the form data:<mime>;base64,<payload>")

// UnknownToolError reports a tool-call request whose name matches no
// registered handler.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ImageFetchError reports a failed fetch of a remote reference image.
type ImageFetchError struct {
	URL   string
	Cause error
}

func (e *ImageFetchError) Error() string {
	return fmt.Sprintf("failed to fetch image from %s: %v", e.URL, e.Cause)
}

func (e *ImageFetchError) Unwrap() error { return e.Cause }

// NotReadyError reports a download attempt against a job that has not
// completed yet.
type NotReadyError struct {
	VideoID string
	Status  string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("video %s is not ready for download (status: %s)", e.VideoID, e.Status)
}

// TimeoutError reports a polling loop that exhausted its budget without
// the job reaching a terminal state.
type TimeoutError struct {
	VideoID string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for video %s after %.0f seconds", e.VideoID, e.Elapsed.Seconds())
}

// Package sora is the HTTP client for the OpenAI video generation API.
package sora

// Video generation models accepted by the API.
const (
	ModelSora2    = "sora-2"
	ModelSora2Pro = "sora-2-pro"
)

// Job lifecycle states. Completed and Failed are terminal; the remote
// service never transitions a job away from a terminal state.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Content variants served by the download endpoint.
const (
	VariantVideo       = "video"
	VariantThumbnail   = "thumbnail"
	VariantSpritesheet = "spritesheet"
)

// Video is one asynchronous generation job as reported by the remote
// service. The service is the sole source of truth; callers re-fetch
// instead of caching.
type Video struct {
	ID                 string      `json:"id"`
	Object             string      `json:"object,omitempty"`
	CreatedAt          int64       `json:"created_at,omitempty"`
	CompletedAt        int64       `json:"completed_at,omitempty"`
	ExpiresAt          int64       `json:"expires_at,omitempty"`
	Status             string      `json:"status"`
	Model              string      `json:"model,omitempty"`
	Progress           int         `json:"progress,omitempty"`
	Seconds            string      `json:"seconds,omitempty"`
	Size               string      `json:"size,omitempty"`
	RemixedFromVideoID string      `json:"remixed_from_video_id,omitempty"`
	Error              *VideoError `json:"error,omitempty"`
}

// VideoError is the failure detail attached to a job with status failed.
type VideoError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Terminal reports whether the job has reached a final state.
func (v *Video) Terminal() bool {
	return v.Status == StatusCompleted || v.Status == StatusFailed
}

// VideoList is the paginated listing response.
type VideoList struct {
	Object string  `json:"object,omitempty"`
	Data   []Video `json:"data"`
}

// DeleteResult acknowledges a remote-side deletion.
type DeleteResult struct {
	ID      string `json:"id"`
	Object  string `json:"object,omitempty"`
	Deleted bool   `json:"deleted"`
}

// InputReference is an image attached to a creation request as the
// first-frame reference.
type InputReference struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateVideoRequest holds the fields of the multipart creation form.
type CreateVideoRequest struct {
	Prompt         string
	Model          string
	Size           string
	Seconds        string
	InputReference *InputReference
}

// ListVideosParams are the optional listing filters. Zero values are
// omitted from the request entirely rather than sent empty.
type ListVideosParams struct {
	Limit int
	Order string
	After string
}

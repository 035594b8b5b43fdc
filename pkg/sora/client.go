package sora

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

// DefaultBaseURL is the production endpoint of the video API.
const DefaultBaseURL = "https://api.openai.com/v1"

const defaultTimeout = 60 * time.Second

// Options configures the API client.
type Options struct {
	// APIKey is the bearer credential. It may be empty at construction
	// time; calls made without one fail with ErrMissingAPIKey before any
	// network I/O.
	APIKey string

	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Timeout    time.Duration
}

// Client is the single choke point for outbound calls to the video
// service. Every request carries the bearer credential and a generated
// request ID. The client performs no retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a client with pooled transport defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = cleanhttp.DefaultPooledClient()
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BearerHeader returns the Authorization header value used on every
// request, for callers that hand out download instructions.
func (c *Client) BearerHeader() string {
	return "Bearer " + c.apiKey
}

// ContentURL builds the absolute download URL for a job's content variant.
func (c *Client) ContentURL(videoID, variant string) string {
	return c.baseURL + "/videos/" + url.PathEscape(videoID) + "/content?variant=" + url.QueryEscape(variant)
}

// do issues one HTTP request against a relative endpoint path and returns
// the raw response body. Non-success statuses surface as *APIError with
// the body text unparsed.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, header http.Header) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s request", method, path)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Authorization", c.BearerHeader())

	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("sora api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s %s response", method, path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("sora api error",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestID))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// CreateVideo submits a new generation job as a multipart form with the
// fields prompt, model, size and seconds, plus an optional
// input_reference image part.
func (c *Client) CreateVideo(ctx context.Context, req CreateVideoRequest) (*Video, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"prompt", req.Prompt},
		{"model", req.Model},
		{"size", req.Size},
		{"seconds", req.Seconds},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, errors.Wrapf(err, "writing form field %s", field.name)
		}
	}

	if ref := req.InputReference; ref != nil {
		partHeader := make(textproto.MIMEHeader)
		partHeader.Set("Content-Disposition",
			`form-data; name="input_reference"; filename="`+ref.Filename+`"`)
		partHeader.Set("Content-Type", ref.ContentType)
		part, err := writer.CreatePart(partHeader)
		if err != nil {
			return nil, errors.Wrap(err, "creating input_reference part")
		}
		if _, err := part.Write(ref.Data); err != nil {
			return nil, errors.Wrap(err, "writing input_reference data")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing multipart form")
	}

	header := http.Header{}
	header.Set("Content-Type", writer.FormDataContentType())

	respBody, err := c.do(ctx, http.MethodPost, "/videos", &buf, header)
	if err != nil {
		return nil, err
	}
	return decodeVideo(respBody)
}

// GetVideo fetches the current state of a job.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/videos/"+url.PathEscape(videoID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeVideo(respBody)
}

// ListVideos lists jobs. Only the parameters actually provided appear in
// the query string.
func (c *Client) ListVideos(ctx context.Context, params ListVideosParams) (*VideoList, error) {
	path := "/videos"
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Order != "" {
		query.Set("order", params.Order)
	}
	if params.After != "" {
		query.Set("after", params.After)
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	respBody, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var list VideoList
	if err := json.Unmarshal(respBody, &list); err != nil {
		return nil, errors.Wrap(err, "decoding video list response")
	}
	return &list, nil
}

// DeleteVideo removes a job on the remote side.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) (*DeleteResult, error) {
	respBody, err := c.do(ctx, http.MethodDelete, "/videos/"+url.PathEscape(videoID), nil, nil)
	if err != nil {
		return nil, err
	}

	var result DeleteResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.Wrap(err, "decoding delete response")
	}
	if result.ID == "" {
		result.ID = videoID
	}
	result.Deleted = true
	return &result, nil
}

// RemixVideo creates a new job derived from an existing one plus a
// modification prompt.
func (c *Client) RemixVideo(ctx context.Context, videoID, prompt string) (*Video, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, errors.Wrap(err, "encoding remix request")
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	respBody, err := c.do(ctx, http.MethodPost, "/videos/"+url.PathEscape(videoID)+"/remix", bytes.NewReader(payload), header)
	if err != nil {
		return nil, err
	}
	return decodeVideo(respBody)
}

func decodeVideo(data []byte) (*Video, error) {
	var video Video
	if err := json.Unmarshal(data, &video); err != nil {
		return nil, errors.Wrap(err, "decoding video response")
	}
	return &video, nil
}

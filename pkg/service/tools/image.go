package tools

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"sora-video-mcp/pkg/sora"
)

// dataURIPattern matches data:<mime>;base64,<payload> inline images.
var dataURIPattern = regexp.MustCompile(`^data:([a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*/[a-zA-Z0-9!#$&^_.+-]+);base64,(.+)$`)

var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// extensionForMIME derives a file extension from a media type, falling
// back to jpg when the type is unknown or absent.
func extensionForMIME(mimeType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(strings.TrimSpace(mimeType))]; ok {
		return ext
	}
	return "jpg"
}

// resolveImageInput turns either a fetchable URL or an inline data URI
// into the input_reference attachment. Exactly one input must be given.
func resolveImageInput(ctx context.Context, httpClient *http.Client, imageURL, imageBase64 string) (*sora.InputReference, error) {
	switch {
	case imageURL == "" && imageBase64 == "":
		return nil, ErrMissingImageInput
	case imageURL != "" && imageBase64 != "":
		return nil, ErrConflictingImageInput
	case imageURL != "":
		return fetchImage(ctx, httpClient, imageURL)
	default:
		return decodeDataURI(imageBase64)
	}
}

func fetchImage(ctx context.Context, httpClient *http.Client, imageURL string) (*sora.InputReference, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, &ImageFetchError{URL: imageURL, Cause: err}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &ImageFetchError{URL: imageURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ImageFetchError{URL: imageURL, Cause: errors.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ImageFetchError{URL: imageURL, Cause: err}
	}

	mimeType := resp.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return &sora.InputReference{
		Filename:    "input_reference." + extensionForMIME(mimeType),
		ContentType: mimeType,
		Data:        data,
	}, nil
}

func decodeDataURI(dataURI string) (*sora.InputReference, error) {
	match := dataURIPattern.FindStringSubmatch(dataURI)
	if match == nil {
		return nil, ErrInvalidImageFormat
	}

	mimeType := match[1]
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidImageFormat, "invalid base64 payload")
	}

	return &sora.InputReference{
		Filename:    "input_reference." + extensionForMIME(mimeType),
		ContentType: mimeType,
		Data:        data,
	}, nil
}

package tools

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/png", "png"},
		{"image/jpeg", "jpg"},
		{"image/jpg", "jpg"},
		{"image/webp", "webp"},
		{"image/gif", "gif"},
		{"IMAGE/PNG", "png"},
		{"application/octet-stream", "jpg"},
		{"", "jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionForMIME(tt.mime), "mime %q", tt.mime)
	}
}

func TestDecodeDataURI(t *testing.T) {
	ref, err := decodeDataURI("data:image/webp;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "input_reference.webp", ref.Filename)
	assert.Equal(t, "image/webp", ref.ContentType)
	assert.Equal(t, []byte("hello"), ref.Data)
}

func TestDecodeDataURIRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"aGVsbG8=",
		"data:image/png,rawdata",
		"data:;base64,aGVsbG8=",
		"data:image/png;base64,",
		"data:image/png;base64,###",
	} {
		_, err := decodeDataURI(input)
		assert.ErrorIs(t, err, ErrInvalidImageFormat, "input %q", input)
	}
}

func TestResolveImageInputExclusivity(t *testing.T) {
	_, err := resolveImageInput(context.Background(), http.DefaultClient, "", "")
	assert.ErrorIs(t, err, ErrMissingImageInput)

	_, err = resolveImageInput(context.Background(), http.DefaultClient,
		"https://example.com/a.png", "data:image/png;base64,aGk=")
	assert.ErrorIs(t, err, ErrConflictingImageInput)
}

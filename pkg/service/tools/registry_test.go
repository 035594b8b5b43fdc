package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolConfigsAreComplete(t *testing.T) {
	wantNames := []string{
		"create_video",
		"create_video_with_image",
		"get_video_status",
		"download_video",
		"list_videos",
		"delete_video",
		"remix_video",
		"wait_for_video",
	}

	seen := map[string]bool{}
	for _, config := range ToolConfigs() {
		assert.False(t, seen[config.Name], "duplicate tool name %s", config.Name)
		assert.NotEmpty(t, config.Description, "tool %s needs a description", config.Name)
		seen[config.Name] = true
	}

	for _, name := range wantNames {
		assert.True(t, seen[name], "missing tool %s", name)
	}
	assert.Len(t, seen, len(wantNames))
}

func TestGetToolConfig(t *testing.T) {
	config, err := GetToolConfig("create_video")
	require.NoError(t, err)
	assert.Equal(t, "create_video", config.Name)

	_, err = GetToolConfig("nope")
	assert.Error(t, err)
}

func TestBuildToolSchemaCreateVideo(t *testing.T) {
	config, err := GetToolConfig("create_video")
	require.NoError(t, err)

	schema := BuildToolSchema(config)

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"prompt"}, schema.Required)

	model, ok := schema.Properties["model"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", model["type"])
	assert.Equal(t, []string{"sora-2", "sora-2-pro"}, model["enum"])
	assert.Equal(t, "sora-2", model["default"])

	size, ok := schema.Properties["size"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, size["enum"], 5)
	assert.Equal(t, "1280x720", size["default"])

	seconds, ok := schema.Properties["seconds"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"5", "10", "15", "20"}, seconds["enum"])
}

func TestBuildToolSchemaBounds(t *testing.T) {
	config, err := GetToolConfig("list_videos")
	require.NoError(t, err)

	schema := BuildToolSchema(config)
	assert.Empty(t, schema.Required)

	limit, ok := schema.Properties["limit"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "integer", limit["type"])
	assert.Equal(t, 1, limit["minimum"])
	assert.Equal(t, 100, limit["maximum"])
}

func TestBuildToolSchemaWaitDefaults(t *testing.T) {
	config, err := GetToolConfig("wait_for_video")
	require.NoError(t, err)

	schema := BuildToolSchema(config)
	assert.Equal(t, []string{"video_id"}, schema.Required)

	interval, ok := schema.Properties["poll_interval_seconds"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 10, interval["default"])

	timeout, ok := schema.Properties["timeout_seconds"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 600, timeout["default"])
}

// Package tools implements the MCP tools exposed over the video
// generation API: their contracts, the dispatcher that routes and
// validates calls, and the handlers themselves.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
)

// ToolParam declares one named parameter of a tool contract.
type ToolParam struct {
	Name        string
	Type        string // "string" or "integer"
	Description string
	Required    bool
	Enum        []string
	Default     interface{}
	Minimum     *int
	Maximum     *int
}

// ToolConfig is the static contract of one tool: its unique name, a
// human-readable description and the declared parameter schema.
type ToolConfig struct {
	Name        string
	Description string
	Params      []ToolParam
}

func intPtr(v int) *int { return &v }

var modelParam = ToolParam{
	Name:        "model",
	Type:        "string",
	Description: "Video generation model",
	Enum:        []string{"sora-2", "sora-2-pro"},
	Default:     "sora-2",
}

var sizeParam = ToolParam{
	Name:        "size",
	Type:        "string",
	Description: "Output resolution (width x height)",
	Enum:        []string{"1280x720", "720x1280", "1792x1024", "1024x1792", "1920x1080"},
	Default:     "1280x720",
}

var secondsParam = ToolParam{
	Name:        "seconds",
	Type:        "string",
	Description: "Clip duration in seconds",
	Enum:        []string{"5", "10", "15", "20"},
	Default:     "5",
}

var videoIDParam = ToolParam{
	Name:        "video_id",
	Type:        "string",
	Description: "Identifier of the video job",
	Required:    true,
}

// All tool contracts in a single table.
var toolConfigs = []ToolConfig{
	{
		Name:        "create_video",
		Description: "Create a new video generation job from a text prompt",
		Params: []ToolParam{
			{Name: "prompt", Type: "string", Description: "Text prompt describing the video", Required: true},
			modelParam,
			sizeParam,
			secondsParam,
		},
	},
	{
		Name:        "create_video_with_image",
		Description: "Create a video generation job using an image as the first-frame reference",
		Params: []ToolParam{
			{Name: "prompt", Type: "string", Description: "Text prompt describing the video", Required: true},
			{Name: "image_url", Type: "string", Description: "URL of the reference image (mutually exclusive with image_base64)"},
			{Name: "image_base64", Type: "string", Description: "Reference image as a data:<mime>;base64,<payload> URI (mutually exclusive with image_url)"},
			modelParam,
			sizeParam,
			secondsParam,
		},
	},
	{
		Name:        "get_video_status",
		Description: "Fetch the current status of a video generation job",
		Params:      []ToolParam{videoIDParam},
	},
	{
		Name:        "download_video",
		Description: "Get the download URL and authorization header for a completed video",
		Params: []ToolParam{
			videoIDParam,
			{
				Name:        "variant",
				Type:        "string",
				Description: "Content variant to download",
				Enum:        []string{"video", "thumbnail", "spritesheet"},
				Default:     "video",
			},
		},
	},
	{
		Name:        "list_videos",
		Description: "List video generation jobs",
		Params: []ToolParam{
			{Name: "limit", Type: "integer", Description: "Maximum number of jobs to return", Minimum: intPtr(1), Maximum: intPtr(100)},
			{Name: "order", Type: "string", Description: "Sort order by creation time", Enum: []string{"asc", "desc"}},
			{Name: "after", Type: "string", Description: "Cursor: list jobs after this job ID"},
		},
	},
	{
		Name:        "delete_video",
		Description: "Delete a video generation job",
		Params:      []ToolParam{videoIDParam},
	},
	{
		Name:        "remix_video",
		Description: "Create a new video derived from an existing one plus a modification prompt",
		Params: []ToolParam{
			videoIDParam,
			{Name: "prompt", Type: "string", Description: "Prompt describing the modification", Required: true},
		},
	},
	{
		Name:        "wait_for_video",
		Description: "Poll a video generation job until it completes, fails or the timeout elapses",
		Params: []ToolParam{
			videoIDParam,
			{Name: "poll_interval_seconds", Type: "integer", Description: "Seconds between status polls", Default: 10, Minimum: intPtr(1)},
			{Name: "timeout_seconds", Type: "integer", Description: "Maximum seconds to wait overall", Default: 600, Minimum: intPtr(1)},
		},
	},
}

// ToolConfigs returns the full contract table.
func ToolConfigs() []ToolConfig {
	return toolConfigs
}

// GetToolConfig looks up a contract by name.
func GetToolConfig(name string) (ToolConfig, error) {
	for _, config := range toolConfigs {
		if config.Name == name {
			return config, nil
		}
	}
	return ToolConfig{}, errors.Errorf("no tool config named %s", name)
}

// BuildToolSchema renders a contract into the MCP input schema,
// including enum, default and bound annotations.
func BuildToolSchema(config ToolConfig) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	var required []string

	for _, param := range config.Params {
		schema := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if len(param.Enum) > 0 {
			schema["enum"] = param.Enum
		}
		if param.Default != nil {
			schema["default"] = param.Default
		}
		if param.Minimum != nil {
			schema["minimum"] = *param.Minimum
		}
		if param.Maximum != nil {
			schema["maximum"] = *param.Maximum
		}
		properties[param.Name] = schema
		if param.Required {
			required = append(required, param.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// createTextResult serializes a payload as two-space indented JSON text.
// A single serialization discipline applies to every handler result.
func createTextResult(payload interface{}) mcp.CallToolResult {
	return mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: marshalIndent(payload)},
		},
	}
}

// createErrorResult converts an error into a non-throwing result marked
// as an error outcome.
func createErrorResult(err error) mcp.CallToolResult {
	return mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: err.Error()},
		},
	}
}

func marshalIndent(payload interface{}) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("error marshaling result: %v", err)
	}
	return string(data)
}

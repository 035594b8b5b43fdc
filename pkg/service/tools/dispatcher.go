package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
)

// HandlerFunc executes one tool against a validated argument set and
// returns the result payload or an error. Handlers never suppress client
// errors; normalization happens in the dispatcher.
type HandlerFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Dispatcher routes tool-call requests by name, validates arguments
// against the declared contract, applies defaults and converts handler
// errors into structured error results. It is the single point where
// tool-level failures are caught; the process never crashes on one.
type Dispatcher struct {
	configs  map[string]ToolConfig
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		configs:  make(map[string]ToolConfig),
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register binds a contract to its handler.
func (d *Dispatcher) Register(config ToolConfig, handler HandlerFunc) {
	d.configs[config.Name] = config
	d.handlers[config.Name] = handler
}

// Dispatch resolves a tool name, validates the raw arguments and invokes
// the handler. All failures come back as error-marked results, never as
// transport errors.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) mcp.CallToolResult {
	config, ok := d.configs[name]
	if !ok {
		return createErrorResult(&UnknownToolError{Name: name})
	}

	normalized, err := normalizeArgs(config, args)
	if err != nil {
		return createErrorResult(err)
	}

	payload, err := d.handlers[name](ctx, normalized)
	if err != nil {
		d.logger.Warn("tool call failed",
			slog.String("tool", name),
			slog.String("error", err.Error()))
		return createErrorResult(err)
	}

	return createTextResult(payload)
}

// normalizeArgs centralizes the required/enum/default rules declared in
// the tool contracts, so handlers receive a complete argument set.
func normalizeArgs(config ToolConfig, args map[string]interface{}) (map[string]interface{}, error) {
	normalized := make(map[string]interface{}, len(config.Params))
	if args == nil {
		args = map[string]interface{}{}
	}

	for _, param := range config.Params {
		value, present := args[param.Name]
		if !present || value == nil {
			if param.Required {
				return nil, errors.Errorf("missing required parameter: %s", param.Name)
			}
			if param.Default != nil {
				normalized[param.Name] = param.Default
			}
			continue
		}

		switch param.Type {
		case "string":
			str, ok := value.(string)
			if !ok {
				return nil, errors.Errorf("parameter %s must be a string", param.Name)
			}
			if str == "" {
				if param.Required {
					return nil, errors.Errorf("parameter %s cannot be empty", param.Name)
				}
				if param.Default != nil {
					normalized[param.Name] = param.Default
				}
				continue
			}
			if len(param.Enum) > 0 && !containsString(param.Enum, str) {
				return nil, errors.Errorf("parameter %s must be one of %v", param.Name, param.Enum)
			}
			normalized[param.Name] = str

		case "integer":
			n, ok := toInt(value)
			if !ok {
				return nil, errors.Errorf("parameter %s must be an integer", param.Name)
			}
			if param.Minimum != nil && n < *param.Minimum {
				return nil, errors.Errorf("parameter %s must be at least %d", param.Name, *param.Minimum)
			}
			if param.Maximum != nil && n > *param.Maximum {
				return nil, errors.Errorf("parameter %s must be at most %d", param.Name, *param.Maximum)
			}
			normalized[param.Name] = n

		default:
			normalized[param.Name] = value
		}
	}

	return normalized, nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// toInt accepts the numeric shapes a JSON decoder may produce.
func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// stringArg reads a normalized string argument; absent yields "".
func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg reads a normalized integer argument; absent yields 0. Defaults
// declared as untyped ints survive normalization unchanged.
func intArg(args map[string]interface{}, key string) int {
	if n, ok := toInt(args[key]); ok {
		return n
	}
	return 0
}

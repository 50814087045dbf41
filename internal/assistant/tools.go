package assistant

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/localplate/localplate/internal/domain"
)

// ToolHandler executes one tool call. The returned value is serialized
// to JSON and fed back to the model as the tool result.
type ToolHandler func(ctx context.Context, args json.RawMessage) (any, error)

// Tool pairs a definition with its handler.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     ToolHandler
}

// Registry routes tool calls by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Re-registering a name replaces the handler but
// keeps its original position in Definitions.
func (r *Registry) Register(tool Tool) {
	if _, ok := r.tools[tool.Name]; !ok {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
}

// Definitions lists the registered tools in registration order, ready to
// pass to the model.
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		defs = append(defs, ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		})
	}
	return defs
}

// Dispatch runs the named tool. Unknown names return ENOTFOUND.
func (r *Registry) Dispatch(ctx context.Context, call ToolCall) (any, error) {
	tool, ok := r.tools[call.Name]
	if !ok {
		return nil, domain.Errorf(domain.ENOTFOUND, "assistant.dispatch", "unknown tool: %s", call.Name)
	}
	return tool.Handler(ctx, call.Arguments)
}

// Args is a decoded tool-argument object. Accessors coerce between
// strings, numbers, and booleans because models do not reliably respect
// the declared parameter types.
type Args map[string]any

func decodeArgs(raw json.RawMessage) (Args, error) {
	if len(raw) == 0 {
		return Args{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, "assistant.args", "tool arguments are not valid JSON")
	}
	return Args(m), nil
}

// String returns the value coerced to a string, or "" when absent.
func (a Args) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int returns the value coerced to an int, or fallback when absent or
// not numeric.
func (a Args) Int(key string, fallback int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// Bool returns the value coerced to a bool, or false when absent.
func (a Args) Bool(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case float64:
		return v != 0
	default:
		return false
	}
}

// StringSlice returns the value as a slice of strings. A bare string
// becomes a single-element slice; array elements are coerced.
func (a Args) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				out = append(out, strings.TrimSpace(s))
			case float64:
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			case bool:
				out = append(out, strconv.FormatBool(s))
			}
		}
		return out
	case string:
		if v = strings.TrimSpace(v); v != "" {
			return []string{v}
		}
	}
	return nil
}

// Raw returns the value re-marshaled as JSON, or nil when absent. Used
// for passing structured arguments through without interpreting them.
func (a Args) Raw(key string) json.RawMessage {
	v, ok := a[key]
	if !ok || v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// Package assistant provides the LLM-backed shopping assistant: a chat
// provider abstraction, a registry of marketplace tools the model may
// call, and the bounded tool-execution loop that drives a conversation
// to a final answer.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
)

// Message roles. These are provider-neutral; the OpenAI implementation
// maps them onto langchaingo message types.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

var (
	// ErrNotConfigured indicates the provider has no API key.
	ErrNotConfigured = errors.New("assistant: provider is not configured")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("assistant: model returned an empty response")
)

// Provider generates chat completions and embeddings.
type Provider interface {
	Chat(ctx context.Context, params ChatParams) (*ChatResult, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Message is one turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// ToolCalls is set on assistant messages that requested tools.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID and ToolName link a tool message to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`
}

// ToolCall is a model request to invoke a named tool.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolDefinition describes a callable tool to the model. Parameters is a
// JSON-schema object in the OpenAI function-calling format.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ChatParams is one request to the model.
type ChatParams struct {
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float64
	MaxTokens   int
}

// ChatResult is the model's reply: final text, tool calls, or both.
type ChatResult struct {
	Content   string
	ToolCalls []ToolCall
}

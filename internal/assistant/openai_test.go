package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/localplate/localplate/internal"
)

func TestToLLMMessages_MapsRoles(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "find me dinner"},
		{Role: RoleAssistant, Content: "checking", ToolCalls: []ToolCall{
			{ID: "call-1", Name: "search_offerings", Arguments: json.RawMessage(`{"query":"dinner"}`)},
		}},
		{Role: RoleTool, ToolCallID: "call-1", ToolName: "search_offerings", Content: `{"offerings":[]}`},
	}

	converted := toLLMMessages(messages)

	require.Len(t, converted, 4)
	assert.Equal(t, llms.ChatMessageTypeSystem, converted[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, converted[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, converted[2].Role)
	assert.Equal(t, llms.ChatMessageTypeTool, converted[3].Role)

	require.Len(t, converted[2].Parts, 2, "text part plus the tool call")
	call, ok := converted[2].Parts[1].(llms.ToolCall)
	require.True(t, ok)
	assert.Equal(t, "call-1", call.ID)
	require.NotNil(t, call.FunctionCall)
	assert.Equal(t, "search_offerings", call.FunctionCall.Name)
	assert.JSONEq(t, `{"query":"dinner"}`, call.FunctionCall.Arguments)

	require.Len(t, converted[3].Parts, 1)
	response, ok := converted[3].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call-1", response.ToolCallID)
	assert.Equal(t, "search_offerings", response.Name)
}

func TestToLLMMessages_AssistantWithoutTextHasNoTextPart(t *testing.T) {
	converted := toLLMMessages([]Message{
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c", Name: "x"}}},
	})

	require.Len(t, converted, 1)
	require.Len(t, converted[0].Parts, 1)
	_, ok := converted[0].Parts[0].(llms.ToolCall)
	assert.True(t, ok)
}

func TestToLLMTools_BuildsFunctionDefinitions(t *testing.T) {
	params := map[string]any{
		"type":       "object",
		"properties": map[string]any{"query": map[string]any{"type": "string"}},
	}

	tools := toLLMTools([]ToolDefinition{
		{Name: "search_offerings", Description: "semantic search", Parameters: params},
	})

	require.Len(t, tools, 1)
	assert.Equal(t, "function", tools[0].Type)
	require.NotNil(t, tools[0].Function)
	assert.Equal(t, "search_offerings", tools[0].Function.Name)
	assert.Equal(t, "semantic search", tools[0].Function.Description)
	assert.Equal(t, params, tools[0].Function.Parameters)
}

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(internal.OpenAIConfig{}, nil)

	assert.ErrorIs(t, err, ErrNotConfigured)
}

package assistant_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/assistant"
	"github.com/localplate/localplate/internal/domain"
)

func TestChatOnce_PlainAnswerWithoutTools(t *testing.T) {
	provider := assistant.NewMockProvider()
	provider.ChatFunc = func(ctx context.Context, params assistant.ChatParams) (*assistant.ChatResult, error) {
		return &assistant.ChatResult{Content: "We deliver to Capitol Hill."}, nil
	}

	service := assistant.NewService(provider, assistant.NewRegistry(), nil)

	answer, err := service.ChatOnce(context.Background(), assistant.ChatOnceParams{
		System:   "You are a helpful marketplace assistant.",
		Messages: []assistant.Message{{Role: assistant.RoleUser, Content: "Do you deliver to Capitol Hill?"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "We deliver to Capitol Hill.", answer)

	calls := provider.ChatCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Messages, 2)
	assert.Equal(t, assistant.RoleSystem, calls[0].Messages[0].Role)
	assert.Equal(t, assistant.RoleUser, calls[0].Messages[1].Role)
}

func TestChatOnce_ExecutesToolCallsAndContinues(t *testing.T) {
	registry := assistant.NewRegistry()
	registry.Register(assistant.Tool{
		Name: "lookup_hours",
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			return map[string]string{"hours": "9-5"}, nil
		},
	})

	provider := assistant.NewMockProvider()
	provider.ChatFunc = func(ctx context.Context, params assistant.ChatParams) (*assistant.ChatResult, error) {
		if len(provider.ChatCalls()) == 1 {
			return &assistant.ChatResult{ToolCalls: []assistant.ToolCall{
				{ID: "call-7", Name: "lookup_hours", Arguments: json.RawMessage(`{}`)},
			}}, nil
		}
		return &assistant.ChatResult{Content: "Open 9 to 5."}, nil
	}

	service := assistant.NewService(provider, registry, nil)

	answer, err := service.ChatOnce(context.Background(), assistant.ChatOnceParams{
		Messages: []assistant.Message{{Role: assistant.RoleUser, Content: "When are you open?"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Open 9 to 5.", answer)

	calls := provider.ChatCalls()
	require.Len(t, calls, 2)

	second := calls[1].Messages
	require.Len(t, second, 3, "user, assistant tool request, tool result")
	assert.Equal(t, assistant.RoleAssistant, second[1].Role)
	require.Len(t, second[1].ToolCalls, 1)
	assert.Equal(t, assistant.RoleTool, second[2].Role)
	assert.Equal(t, "call-7", second[2].ToolCallID)
	assert.Equal(t, "lookup_hours", second[2].ToolName)
	assert.JSONEq(t, `{"hours":"9-5"}`, second[2].Content)
}

func TestChatOnce_ToolFailureBecomesErrorPayload(t *testing.T) {
	registry := assistant.NewRegistry()
	registry.Register(assistant.Tool{
		Name: "broken",
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			return nil, domain.Invalid("test.broken", "the widget is missing")
		},
	})

	provider := assistant.NewMockProvider()
	provider.ChatFunc = func(ctx context.Context, params assistant.ChatParams) (*assistant.ChatResult, error) {
		if len(provider.ChatCalls()) == 1 {
			return &assistant.ChatResult{ToolCalls: []assistant.ToolCall{
				{ID: "call-1", Name: "broken", Arguments: json.RawMessage(`{}`)},
			}}, nil
		}
		return &assistant.ChatResult{Content: "Sorry, that did not work."}, nil
	}

	service := assistant.NewService(provider, registry, nil)

	answer, err := service.ChatOnce(context.Background(), assistant.ChatOnceParams{
		Messages: []assistant.Message{{Role: assistant.RoleUser, Content: "break please"}},
	})

	require.NoError(t, err, "a failed tool should not abort the conversation")
	assert.Equal(t, "Sorry, that did not work.", answer)

	second := provider.ChatCalls()[1].Messages
	toolMsg := second[len(second)-1]
	assert.Equal(t, assistant.RoleTool, toolMsg.Role)
	assert.Contains(t, toolMsg.Content, "the widget is missing")
}

func TestChatOnce_UnknownToolFromModel(t *testing.T) {
	provider := assistant.NewMockProvider()
	provider.ChatFunc = func(ctx context.Context, params assistant.ChatParams) (*assistant.ChatResult, error) {
		if len(provider.ChatCalls()) == 1 {
			return &assistant.ChatResult{ToolCalls: []assistant.ToolCall{
				{ID: "call-1", Name: "imaginary_tool"},
			}}, nil
		}
		return &assistant.ChatResult{Content: "done"}, nil
	}

	service := assistant.NewService(provider, assistant.NewRegistry(), nil)

	answer, err := service.ChatOnce(context.Background(), assistant.ChatOnceParams{
		Messages: []assistant.Message{{Role: assistant.RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "done", answer)

	second := provider.ChatCalls()[1].Messages
	assert.Contains(t, second[len(second)-1].Content, "error")
}

func TestChatOnce_BoundsToolRounds(t *testing.T) {
	registry := assistant.NewRegistry()
	registry.Register(assistant.Tool{
		Name: "again",
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			return "again", nil
		},
	})

	provider := assistant.NewMockProvider()
	provider.ChatFunc = func(ctx context.Context, params assistant.ChatParams) (*assistant.ChatResult, error) {
		return &assistant.ChatResult{ToolCalls: []assistant.ToolCall{
			{ID: "loop", Name: "again", Arguments: json.RawMessage(`{}`)},
		}}, nil
	}

	service := assistant.NewService(provider, registry, nil)

	_, err := service.ChatOnce(context.Background(), assistant.ChatOnceParams{
		Messages:  []assistant.Message{{Role: assistant.RoleUser, Content: "loop forever"}},
		MaxRounds: 2,
	})

	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
	assert.Len(t, provider.ChatCalls(), 3, "two tool rounds plus the capped attempt")
}

func TestChatOnce_PassesToolDefinitionsToProvider(t *testing.T) {
	registry := assistant.NewRegistry()
	registry.Register(assistant.Tool{
		Name:        "check_area_coverage",
		Description: "coverage",
		Handler:     func(ctx context.Context, args json.RawMessage) (any, error) { return nil, nil },
	})

	provider := assistant.NewMockProvider()
	service := assistant.NewService(provider, registry, nil)

	_, err := service.ChatOnce(context.Background(), assistant.ChatOnceParams{
		Messages: []assistant.Message{{Role: assistant.RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	calls := provider.ChatCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Tools, 1)
	assert.Equal(t, "check_area_coverage", calls[0].Tools[0].Name)
}

func TestMockProvider_DefaultEmbeddings(t *testing.T) {
	provider := assistant.NewMockProvider()

	vectors, err := provider.Embed(context.Background(), []string{"abc", "de"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{3, 1, 0}, vectors[0])
	assert.Equal(t, []float32{2, 1, 0}, vectors[1])
	require.Len(t, provider.EmbedCalls(), 1)
}

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/localplate/localplate/internal"
)

// OpenAIProvider talks to OpenAI (or any OpenAI-compatible endpoint)
// through langchaingo.
type OpenAIProvider struct {
	client *openai.LLM
	logger *slog.Logger
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider builds a provider from config. Returns
// ErrNotConfigured when no API key is set so callers can decide whether
// assistant features are available.
func NewOpenAIProvider(cfg internal.OpenAIConfig, logger *slog.Logger) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []openai.Option{openai.WithToken(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.EmbeddingModel != "" {
		opts = append(opts, openai.WithEmbeddingModel(cfg.EmbeddingModel))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("assistant: create openai client: %w", err)
	}

	return &OpenAIProvider{client: client, logger: logger}, nil
}

// Chat sends the conversation and tool definitions to the model.
func (p *OpenAIProvider) Chat(ctx context.Context, params ChatParams) (*ChatResult, error) {
	messages := toLLMMessages(params.Messages)

	opts := []llms.CallOption{}
	if params.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(params.Temperature))
	}
	if params.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(params.MaxTokens))
	}
	if len(params.Tools) > 0 {
		opts = append(opts, llms.WithTools(toLLMTools(params.Tools)))
	}

	resp, err := p.client.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("assistant: generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	result := &ChatResult{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: json.RawMessage(tc.FunctionCall.Arguments),
		})
	}
	return result, nil
}

// Embed returns one embedding vector per input text.
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := p.client.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("assistant: create embedding: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("assistant: expected %d embeddings, got %d", len(texts), len(vectors))
	}
	return vectors, nil
}

// toLLMMessages converts provider-neutral messages into langchaingo
// message content. Assistant tool calls and tool results become the
// dedicated content parts the OpenAI API requires.
func toLLMMessages(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case RoleAssistant:
			content := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" {
				content.Parts = append(content.Parts, llms.TextContent{Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				content.Parts = append(content.Parts, llms.ToolCall{
					ID:   call.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      call.Name,
						Arguments: string(call.Arguments),
					},
				})
			}
			out = append(out, content)
		case RoleTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: msg.ToolCallID,
					Name:       msg.ToolName,
					Content:    msg.Content,
				}},
			})
		default:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		}
	}
	return out
}

func toLLMTools(defs []ToolDefinition) []llms.Tool {
	tools := make([]llms.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return tools
}

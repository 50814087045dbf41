package assistant

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/localplate/localplate/internal/domain"
)

const (
	defaultMaxToolRounds = 5
	defaultTemperature   = 0.2
	defaultMaxTokens     = 1024
)

// Service runs conversations against a provider, executing tool calls
// through the registry until the model produces a final answer.
type Service struct {
	provider Provider
	registry *Registry
	logger   *slog.Logger
}

// NewService builds the chat service.
func NewService(provider Provider, registry *Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, registry: registry, logger: logger}
}

// ChatOnceParams is one user-visible conversation turn.
type ChatOnceParams struct {
	System   string
	Messages []Message

	// MaxRounds caps tool round-trips; 0 means the default.
	MaxRounds   int
	Temperature float64
	MaxTokens   int
}

// ChatOnce sends the conversation, runs any tool calls the model makes,
// and repeats until the model answers in plain text. The round cap keeps
// a confused model from looping forever.
func (s *Service) ChatOnce(ctx context.Context, params ChatOnceParams) (string, error) {
	maxRounds := params.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}
	temperature := params.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	messages := make([]Message, 0, len(params.Messages)+1)
	if params.System != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: params.System})
	}
	messages = append(messages, params.Messages...)

	defs := s.registry.Definitions()

	for round := 0; ; round++ {
		result, err := s.provider.Chat(ctx, ChatParams{
			Messages:    messages,
			Tools:       defs,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			return "", domain.WrapError(err, domain.EINTERNAL, "assistant.chat", "assistant request failed")
		}
		if len(result.ToolCalls) == 0 {
			return result.Content, nil
		}
		if round >= maxRounds {
			return "", domain.Errorf(domain.EINTERNAL, "assistant.chat", "tool loop exceeded %d rounds", maxRounds)
		}

		messages = append(messages, Message{
			Role:      RoleAssistant,
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})
		for _, call := range result.ToolCalls {
			messages = append(messages, Message{
				Role:       RoleTool,
				Content:    s.runTool(ctx, call),
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}
}

// runTool dispatches one call and serializes the outcome for the model.
// Tool failures become error payloads rather than aborting the
// conversation; the model can recover or explain.
func (s *Service) runTool(ctx context.Context, call ToolCall) string {
	s.logger.Debug("assistant tool call", "tool", call.Name)

	result, err := s.registry.Dispatch(ctx, call)
	if err != nil {
		s.logger.Warn("assistant tool failed", "tool", call.Name, "error", err)
		payload, _ := json.Marshal(map[string]string{"error": domain.ErrorMessage(err)})
		return string(payload)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("assistant tool result not serializable", "tool", call.Name, "error", err)
		return `{"error":"tool result could not be serialized"}`
	}
	return string(payload)
}

package completion

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/llms"
)

// Model is the chat-completion call surface the engine depends on.
type Model interface {
	// Complete sends a [system, user] message pair and returns the generated
	// text plus the total token count reported by the provider.
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (answer string, tokens int, err error)
}

// OpenAIModel calls any OpenAI-compatible chat-completion API. A custom
// base URL supports providers like DeepSeek that speak the same protocol.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

var _ Model = (*OpenAIModel)(nil)

// OpenAIOptions configuration for the OpenAI-compatible client.
type OpenAIOptions struct {
	APIKey  string
	BaseURL string // empty uses the OpenAI default
	Model   string
}

// NewOpenAIModel creates an OpenAI-compatible model client.
func NewOpenAIModel(opts OpenAIOptions) (*OpenAIModel, error) {
	if opts.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if opts.Model == "" {
		return nil, errors.New("model name is required")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &OpenAIModel{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
	}, nil
}

// Complete performs the chat-completion call.
func (m *OpenAIModel) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, int, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", 0, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, resp.Usage.TotalTokens, nil
}

// LangChainModel adapts a langchaingo llms.Model to the Model interface, so
// any provider langchaingo supports can back the engine.
type LangChainModel struct {
	model llms.Model
}

var _ Model = (*LangChainModel)(nil)

// NewLangChainModel creates a new adapter for langchaingo models.
func NewLangChainModel(model llms.Model) *LangChainModel {
	return &LangChainModel{model: model}
}

// Complete performs the chat-completion call through langchaingo.
func (m *LangChainModel) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, int, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := m.model.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens))
	if err != nil {
		return "", 0, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, errors.New("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	tokens := 0
	if t, ok := choice.GenerationInfo["TotalTokens"].(int); ok {
		tokens = t
	}

	return choice.Content, tokens, nil
}

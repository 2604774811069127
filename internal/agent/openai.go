package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIProvider implements Provider on the OpenAI chat-completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// ProviderFromEnv builds a provider from process environment. A missing
// OPENAI_API_KEY is a startup error; callers must abort before any pass runs.
func ProviderFromEnv() (*OpenAIProvider, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL_NAME"))
	return NewOpenAIProvider(apiKey, model)
}

// NewOpenAIProvider constructs a provider with explicit settings.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Complete issues a single chat completion and returns the raw reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if strings.TrimSpace(model) == "" {
		model = p.model
	}
	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(req.Temperature),
		Messages:    buildMessages(req),
	}
	if req.ForceJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
	return messages
}

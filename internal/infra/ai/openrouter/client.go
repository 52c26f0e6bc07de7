package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/ai/prompt"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "deepseek/deepseek-chat"
	maxTokens      = 4096
)

// Client talks to OpenRouter (or any OpenAI-compatible endpoint) through
// the go-openai SDK with a custom base URL. Implements the Analyzer,
// Chatter and Translator ports.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Analyze(ctx context.Context, reportText string) (*ai.ModelResult, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetAnalyzerSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetAnalyzerUserPrompt(reportText)},
		},
	}
	raw, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return prompt.ParseAnalysis(raw)
}

func (c *Client) Chat(ctx context.Context, reportText string, history []ai.ChatMessage, question string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem, Content: prompt.GetChatSystemPrompt(reportText),
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: question})

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  msgs,
	})
}

func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return c.complete(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetTranslationSystemPrompt(targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", ai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ai.ErrBadModelOutput)
	}
	return resp.Choices[0].Message.Content, nil
}

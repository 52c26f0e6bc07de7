package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/ai/prompt"
)

const defaultModel = "gemini-2.0-flash"

// Client talks to the Gemini API. Implements the Analyzer, Chatter and
// Translator ports.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: cli, model: model}, nil
}

// Analyze sends the report text with the greenwashing schema prompt and
// parses the JSON reply.
func (c *Client) Analyze(ctx context.Context, reportText string) (*ai.ModelResult, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.GetAnalyzerSystemPrompt(), genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt.GetAnalyzerUserPrompt(reportText)), cfg)
	if err != nil {
		return nil, wrapErr(err)
	}
	return prompt.ParseAnalysis(resp.Text())
}

// Chat answers a question grounded in the report text.
func (c *Client) Chat(ctx context.Context, reportText string, history []ai.ChatMessage, question string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.RoleUser
		if m.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}
	contents = append(contents, genai.NewContentFromText(question, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.GetChatSystemPrompt(reportText), genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", wrapErr(err)
	}
	return resp.Text(), nil
}

// Translate translates text into targetLang.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.GetTranslationSystemPrompt(targetLang), genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text), cfg)
	if err != nil {
		return "", wrapErr(err)
	}
	return resp.Text(), nil
}

func wrapErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return ai.ErrQuotaExceeded
	}
	return fmt.Errorf("gemini request failed: %w", err)
}

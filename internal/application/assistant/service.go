package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
)

// Service exposes the conversational model features: report-scoped chat
// and translation. Thin pass-through over the AI ports. The ports may be
// nil when no model provider is configured (offline analyzer deployments);
// both calls then fail with ai.ErrNotConfigured instead of the server
// refusing to boot.
type Service struct {
	Chatter    ai.Chatter
	Translator ai.Translator
}

func NewService(chatter ai.Chatter, translator ai.Translator) *Service {
	return &Service{Chatter: chatter, Translator: translator}
}

func (s *Service) Chat(ctx context.Context, reportText string, history []ai.ChatMessage, question string) (string, error) {
	if s.Chatter == nil {
		return "", ai.ErrNotConfigured
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}
	return s.Chatter.Chat(ctx, reportText, history, question)
}

func (s *Service) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if s.Translator == nil {
		return "", ai.ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is required")
	}
	if strings.TrimSpace(targetLang) == "" {
		return "", fmt.Errorf("target_lang is required")
	}
	return s.Translator.Translate(ctx, text, targetLang)
}

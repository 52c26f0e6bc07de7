package ai

import (
	"context"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

// ModelResult is the parsed output of an external ESG-analysis model.
// The model also suggests a confidence score and classification, but the
// scoring pipeline recomputes both from the flagged statements alone; the
// suggested values are carried only for logging.
type ModelResult struct {
	FlaggedStatements []analysis.FlaggedStatement `json:"flagged_statements"`
	ConfidenceScore   int                         `json:"confidence_score"`
	Classification    string                      `json:"classification"`
}

// ChatMessage is one turn of a report-scoped conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// Analyzer port: runs greenwashing analysis over extracted report text.
type Analyzer interface {
	Analyze(ctx context.Context, reportText string) (*ModelResult, error)
}

// Chatter port: answers questions grounded in one report's text.
type Chatter interface {
	Chat(ctx context.Context, reportText string, history []ChatMessage, question string) (string, error)
}

// Translator port
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

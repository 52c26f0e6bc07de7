package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	"github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

// ParseAnalysis normalizes a raw model reply into a ModelResult. Models
// sometimes wrap JSON in markdown fences despite instructions; those are
// stripped. Individually malformed statements are kept with their raw risk
// level so the score calculator can apply its lenient-ignore policy; only
// a reply that is not JSON at all fails.
func ParseAnalysis(raw string) (*ai.ModelResult, error) {
	cleaned := stripCodeFence(raw)

	var payload struct {
		FlaggedStatements []struct {
			Statement   string `json:"statement"`
			ESGCategory string `json:"esg_category"`
			Reason      string `json:"reason"`
			RiskLevel   string `json:"risk_level"`
		} `json:"flagged_statements"`
		ConfidenceScore int    `json:"confidence_score"`
		Classification  string `json:"classification"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrBadModelOutput, err)
	}

	out := &ai.ModelResult{
		FlaggedStatements: make([]analysis.FlaggedStatement, 0, len(payload.FlaggedStatements)),
		ConfidenceScore:   payload.ConfidenceScore,
		Classification:    payload.Classification,
	}
	for _, fs := range payload.FlaggedStatements {
		out.FlaggedStatements = append(out.FlaggedStatements, analysis.FlaggedStatement{
			Statement:   strings.TrimSpace(fs.Statement),
			ESGCategory: normalizeCategory(fs.ESGCategory),
			Reason:      strings.TrimSpace(fs.Reason),
			RiskLevel:   normalizeRiskLevel(fs.RiskLevel),
		})
	}
	return out, nil
}

// normalizeRiskLevel maps known labels case-insensitively. Unknown values
// are passed through lowercased; the calculator ignores them for counting.
func normalizeRiskLevel(s string) analysis.RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return analysis.RiskMajor
	case "minor":
		return analysis.RiskMinor
	default:
		return analysis.RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	}
}

func normalizeCategory(s string) analysis.ESGCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "environmental", "environment":
		return analysis.CategoryEnvironmental
	case "social":
		return analysis.CategorySocial
	case "governance":
		return analysis.CategoryGovernance
	default:
		return analysis.CategoryOther
	}
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// drop the language tag line (```json)
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

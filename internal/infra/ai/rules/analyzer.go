// Package rules implements a heuristic, offline greenwashing analyzer.
// It is a fallback for deployments without a model API key: a table of
// regex detectors over common unsubstantiated-claim phrasings. Far less
// capable than the hosted models, but deterministic and free.
package rules

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	"github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

type Analyzer struct{}

func NewAnalyzer() Analyzer { return Analyzer{} }

type detector struct {
	re       *regexp.Regexp
	category analysis.ESGCategory
	risk     analysis.RiskLevel
	reason   string
}

var detectors = []detector{
	// Absolute environmental claims with no plausible evidence inline
	{regexp.MustCompile(`(?i)\b100%\s+(green|sustainable|renewable|recyclable)\b`), analysis.CategoryEnvironmental, analysis.RiskMajor,
		"Absolute percentage claim with no supporting data in the same passage."},
	{regexp.MustCompile(`(?i)\b(carbon[- ]neutral|net[- ]zero)\b`), analysis.CategoryEnvironmental, analysis.RiskMajor,
		"Carbon neutrality claim; requires offsets or emissions data to verify."},
	{regexp.MustCompile(`(?i)\bzero\s+(emissions|waste|impact)\b`), analysis.CategoryEnvironmental, analysis.RiskMajor,
		"Zero-impact claims are rarely verifiable as stated."},
	// Vague feel-good phrasing
	{regexp.MustCompile(`(?i)\beco[- ]friendly\b`), analysis.CategoryEnvironmental, analysis.RiskMinor,
		"Undefined marketing term without measurable criteria."},
	{regexp.MustCompile(`(?i)\benvironmentally\s+(friendly|conscious|responsible)\b`), analysis.CategoryEnvironmental, analysis.RiskMinor,
		"Vague environmental commitment without metrics."},
	{regexp.MustCompile(`(?i)\bcommitted\s+to\s+(the\s+planet|sustainability|our\s+communities)\b`), analysis.CategoryEnvironmental, analysis.RiskMinor,
		"Commitment statement without targets or timelines."},
	{regexp.MustCompile(`(?i)\bwe\s+care\s+(deeply\s+)?about\b`), analysis.CategorySocial, analysis.RiskMinor,
		"Sentiment claim with no measurable social outcome."},
	{regexp.MustCompile(`(?i)\bindustry[- ]leading\s+(diversity|inclusion|safety)\b`), analysis.CategorySocial, analysis.RiskMinor,
		"Comparative social claim without a named benchmark."},
	{regexp.MustCompile(`(?i)\bhighest\s+standards?\s+of\s+(governance|ethics|integrity)\b`), analysis.CategoryGovernance, analysis.RiskMinor,
		"Superlative governance claim without reference to a standard."},
}

// Analyze scans the text line by line and flags the first match of each
// detector per line. Never returns an error.
func (Analyzer) Analyze(ctx context.Context, reportText string) (*ai.ModelResult, error) {
	var flagged []analysis.FlaggedStatement
	seen := map[string]bool{}

	for _, line := range strings.Split(reportText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, d := range detectors {
			if !d.re.MatchString(line) {
				continue
			}
			quote := truncate(line, 240)
			key := d.re.String() + "|" + quote
			if seen[key] {
				continue
			}
			seen[key] = true
			flagged = append(flagged, analysis.FlaggedStatement{
				Statement:   quote,
				ESGCategory: d.category,
				Reason:      d.reason,
				RiskLevel:   d.risk,
			})
		}
	}

	return &ai.ModelResult{FlaggedStatements: flagged}, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

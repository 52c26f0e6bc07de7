package rules

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

func TestAnalyzeFlagsKnownPhrases(t *testing.T) {
	text := "Our packaging is 100% recyclable.\nWe are proudly carbon-neutral since 2020.\nOur products are eco-friendly.\nRevenue grew 4% year over year."

	res, err := NewAnalyzer().Analyze(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, res.FlaggedStatements, 3)

	assert.Equal(t, analysis.RiskMajor, res.FlaggedStatements[0].RiskLevel)
	assert.Equal(t, 45, analysis.ComputeScore(res.FlaggedStatements))
}

func TestAnalyzeCleanTextFlagsNothing(t *testing.T) {
	res, err := NewAnalyzer().Analyze(context.Background(), "Scope 1 emissions fell 12% against the 2019 baseline, audited by DNV.")
	require.NoError(t, err)
	assert.Empty(t, res.FlaggedStatements)
	assert.Equal(t, 0, analysis.ComputeScore(res.FlaggedStatements))
}

func TestAnalyzeDeduplicatesRepeatedLines(t *testing.T) {
	text := "We are eco-friendly.\nWe are eco-friendly."
	res, err := NewAnalyzer().Analyze(context.Background(), text)
	require.NoError(t, err)
	assert.Len(t, res.FlaggedStatements, 1)
}

func TestAnalyzeTruncatesLongLinesAtRuneBoundary(t *testing.T) {
	// "é" is two bytes, so a naive byte cut lands mid-rune
	text := "We are eco-friendly " + strings.Repeat("é", 300)
	res, err := NewAnalyzer().Analyze(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, res.FlaggedStatements, 1)

	quote := res.FlaggedStatements[0].Statement
	assert.True(t, utf8.ValidString(quote))
	assert.True(t, strings.HasSuffix(quote, "..."))
	assert.LessOrEqual(t, len(quote), 240+len("..."))
}

package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

func record(id string, score int) *domain.Record {
	return &domain.Record{
		ReportID:        id,
		ConfidenceScore: score,
		Classification:  domain.Classify(score),
		AnalyzedAt:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAnalysisRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewAnalysisRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("r1", 45)))
	require.NoError(t, repo.Save(ctx, record("r2", 85)))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 45, got.ConfidenceScore)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// records survive a process restart (fresh repo over the same dir)
	reopened, err := NewAnalysisRepository(dir)
	require.NoError(t, err)
	all, err = reopened.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAnalysisGetAbsent(t *testing.T) {
	repo, err := NewAnalysisRepository(t.TempDir())
	require.NoError(t, err)

	got, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalysisDelete(t *testing.T) {
	repo, err := NewAnalysisRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("r1", 45)))
	require.NoError(t, repo.Delete(ctx, "r1"))
	// absence is not an error
	require.NoError(t, repo.Delete(ctx, "r1"))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalysisDeleteAll(t *testing.T) {
	repo, err := NewAnalysisRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("r1", 45)))
	require.NoError(t, repo.Save(ctx, record("r2", 85)))
	require.NoError(t, repo.DeleteAll(ctx))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewAnalysisRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, analysisFile), []byte("{not json"), 0o644))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// the next write self-heals the file
	require.NoError(t, repo.Save(ctx, record("r1", 45)))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

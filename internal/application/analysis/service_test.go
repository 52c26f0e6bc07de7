package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	domai "github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

// memRepo is an in-memory Repository with switchable failure modes.
type memRepo struct {
	records map[string]*domain.Record
	readErr error
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{records: map[string]*domain.Record{}}
}

func (r *memRepo) Save(ctx context.Context, rec *domain.Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *rec
	r.records[rec.ReportID] = &cp
	return nil
}

func (r *memRepo) Get(ctx context.Context, reportID string) (*domain.Record, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	rec, ok := r.records[reportID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memRepo) All(ctx context.Context) (map[string]*domain.Record, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	out := map[string]*domain.Record{}
	for id, rec := range r.records {
		cp := *rec
		out[id] = &cp
	}
	return out, nil
}

func (r *memRepo) Delete(ctx context.Context, reportID string) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	delete(r.records, reportID)
	return nil
}

func (r *memRepo) DeleteAll(ctx context.Context) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = map[string]*domain.Record{}
	return nil
}

type stubAnalyzer struct {
	result *domai.ModelResult
	err    error
}

func (a stubAnalyzer) Analyze(ctx context.Context, text string) (*domai.ModelResult, error) {
	return a.result, a.err
}

func newService(repo domain.Repository) *Service {
	return &Service{Repo: repo, Clock: application.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}}
}

func TestUpsertComputesScoreAndLabel(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	rec, err := svc.Upsert(context.Background(), "r1", []domain.FlaggedStatement{
		{RiskLevel: domain.RiskMajor},
		{RiskLevel: domain.RiskMajor},
		{RiskLevel: domain.RiskMinor},
	})
	require.NoError(t, err)
	assert.Equal(t, 45, rec.ConfidenceScore)
	assert.Equal(t, domain.ClassificationMinor, rec.Classification)

	stored := repo.records["r1"]
	require.NotNil(t, stored)
	assert.Equal(t, 45, stored.ConfidenceScore)
}

func TestUpsertReplacesPriorRecord(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "r1", []domain.FlaggedStatement{{RiskLevel: domain.RiskMinor}})
	require.NoError(t, err)
	rec, err := svc.Upsert(ctx, "r1", []domain.FlaggedStatement{
		{RiskLevel: domain.RiskMajor}, {RiskLevel: domain.RiskMajor},
		{RiskLevel: domain.RiskMajor}, {RiskLevel: domain.RiskMajor},
	})
	require.NoError(t, err)
	assert.Equal(t, 70, rec.ConfidenceScore)
	assert.Equal(t, domain.ClassificationMajor, rec.Classification)

	got, err := svc.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 70, got.ConfidenceScore)
}

func TestUpsertSurfacesWriteFailure(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("disk full")
	svc := newService(repo)

	_, err := svc.Upsert(context.Background(), "r1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreWrite)
}

func TestGetReconcilesLegacyLabel(t *testing.T) {
	repo := newMemRepo()
	// simulate a legacy/corrupt write whose label disagrees with the score
	repo.records["r1"] = &domain.Record{
		ReportID:        "r1",
		ConfidenceScore: 60,
		Classification:  domain.ClassificationMinor,
	}
	svc := newService(repo)

	rec, err := svc.Get(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.ClassificationMajor, rec.Classification)
}

func TestGetAllReconcilesEveryRecord(t *testing.T) {
	repo := newMemRepo()
	repo.records["a"] = &domain.Record{ReportID: "a", ConfidenceScore: 80, Classification: domain.ClassificationMinor}
	repo.records["b"] = &domain.Record{ReportID: "b", ConfidenceScore: 20, Classification: domain.ClassificationMajor}
	svc := newService(repo)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationMajor, all["a"].Classification)
	assert.Equal(t, domain.ClassificationMinor, all["b"].Classification)
}

func TestReadsDegradeWhenStoreUnreadable(t *testing.T) {
	repo := newMemRepo()
	repo.readErr = errors.New("corrupt store")
	svc := newService(repo)
	ctx := context.Background()

	rec, err := svc.Get(ctx, "r1")
	assert.NoError(t, err)
	assert.Nil(t, rec)

	all, err := svc.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestRemoveAbsentIsNotAnError(t *testing.T) {
	svc := newService(newMemRepo())
	assert.NoError(t, svc.Remove(context.Background(), "missing"))
}

func TestResetAllEmptiesStore(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "r1", []domain.FlaggedStatement{{RiskLevel: domain.RiskMajor}})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "r2", nil)
	require.NoError(t, err)

	require.NoError(t, svc.ResetAll(ctx))
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAnalyzeReportIgnoresModelScore(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	// model claims score 99 / Major, but ships a single minor statement
	svc.Analyzer = stubAnalyzer{result: &domai.ModelResult{
		FlaggedStatements: []domain.FlaggedStatement{{Statement: "eco-friendly", RiskLevel: domain.RiskMinor}},
		ConfidenceScore:   99,
		Classification:    "Major",
	}}

	rec, err := svc.AnalyzeReport(context.Background(), "r1", "report text")
	require.NoError(t, err)
	assert.Equal(t, 15, rec.ConfidenceScore)
	assert.Equal(t, domain.ClassificationMinor, rec.Classification)
}

func TestAnalyzeReportPropagatesModelError(t *testing.T) {
	svc := newService(newMemRepo())
	svc.Analyzer = stubAnalyzer{err: domai.ErrQuotaExceeded}

	_, err := svc.AnalyzeReport(context.Background(), "r1", "text")
	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)
}

package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	appanalysis "github.com/bryanwahyu/greenwash-radar/internal/application/analysis"
	appsections "github.com/bryanwahyu/greenwash-radar/internal/application/sections"
	domanalysis "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/reports"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/storage"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/store/jsonfile"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	reportRepo, err := jsonfile.NewReportRepository(dir)
	require.NoError(t, err)
	analysisRepo, err := jsonfile.NewAnalysisRepository(dir)
	require.NoError(t, err)
	sectionRepo, err := jsonfile.NewSectionRepository(dir)
	require.NoError(t, err)
	docs, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	clock := application.FixedClock{T: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	return &Service{
		Repo:      reportRepo,
		Documents: docs,
		Analysis:  &appanalysis.Service{Repo: analysisRepo, Clock: clock},
		Sections:  &appsections.Service{Repo: sectionRepo, Clock: clock},
		Clock:     clock,
	}
}

func upload(t *testing.T, svc *Service, name string) *domain.Report {
	t.Helper()
	body := []byte("%PDF-1.4 test bytes")
	rep, err := svc.Upload(context.Background(), UploadCommand{
		FileName:    name,
		ContentType: "application/pdf",
		SizeBytes:   int64(len(body)),
		Body:        bytes.NewReader(body),
	})
	require.NoError(t, err)
	return rep
}

func TestUploadStoresDocumentAndMetadata(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rep := upload(t, svc, "sustainability-2024.pdf")
	assert.Equal(t, "sustainability-2024", rep.Title)
	assert.NotEmpty(t, rep.StorageKey)

	rc, got, err := svc.Open(ctx, rep.ID)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, rep.ID, got.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Upload(context.Background(), UploadCommand{
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Body:        bytes.NewReader([]byte("hi")),
	})
	assert.Error(t, err)
}

func TestGetMissingReport(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rep := upload(t, svc, "report.pdf")

	// analyzed and filed into a section before deletion
	_, err := svc.Analysis.Upsert(ctx, string(rep.ID), []domanalysis.FlaggedStatement{{RiskLevel: domanalysis.RiskMajor}})
	require.NoError(t, err)
	sec, err := svc.Sections.Create(ctx, "Energy")
	require.NoError(t, err)
	_, err = svc.Sections.AssignReport(ctx, sec.ID, string(rep.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rep.ID))

	_, err = svc.Get(ctx, rep.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// no stale analysis record survives the report
	rec, err := svc.Analysis.Get(ctx, string(rep.ID))
	require.NoError(t, err)
	assert.Nil(t, rec)

	// no stale section membership either
	all, err := svc.Sections.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].ReportIDs)

	// stored document gone
	_, _, err = svc.Open(ctx, rep.ID)
	assert.Error(t, err)
}

func TestDeleteMissingReport(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}

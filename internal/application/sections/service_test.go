package sections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/sections"
	"github.com/bryanwahyu/greenwash-radar/internal/infra/store/jsonfile"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := jsonfile.NewSectionRepository(t.TempDir())
	require.NoError(t, err)
	return &Service{Repo: repo, Clock: application.FixedClock{T: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAssignReportMovesBetweenSections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "Energy")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Retail")
	require.NoError(t, err)

	_, err = svc.AssignReport(ctx, first.ID, "rep-1")
	require.NoError(t, err)

	// moving to the second section must remove it from the first
	sec, err := svc.AssignReport(ctx, second.ID, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rep-1"}, sec.ReportIDs)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	for _, s := range all {
		if s.ID == first.ID {
			assert.Empty(t, s.ReportIDs)
		}
	}
}

func TestAssignReportDeduplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sec, err := svc.Create(ctx, "Energy")
	require.NoError(t, err)

	_, err = svc.AssignReport(ctx, sec.ID, "rep-1")
	require.NoError(t, err)
	got, err := svc.AssignReport(ctx, sec.ID, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rep-1"}, got.ReportIDs)
}

func TestAssignReportUnknownSection(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AssignReport(context.Background(), "nope", "rep-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveReportEverywhereIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sec, err := svc.Create(ctx, "Energy")
	require.NoError(t, err)
	_, err = svc.AssignReport(ctx, sec.ID, "rep-1")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveReportEverywhere(ctx, "rep-1"))
	// second call is a no-op, not an error
	require.NoError(t, svc.RemoveReportEverywhere(ctx, "rep-1"))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].ReportIDs)
}

func TestRenameAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sec, err := svc.Create(ctx, "Energy")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, sec.ID, "Utilities")
	require.NoError(t, err)
	assert.Equal(t, "Utilities", renamed.Name)

	require.NoError(t, svc.Delete(ctx, sec.ID))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

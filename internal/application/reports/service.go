package reports

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	appanalysis "github.com/bryanwahyu/greenwash-radar/internal/application/analysis"
	appsections "github.com/bryanwahyu/greenwash-radar/internal/application/sections"
	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/reports"
)

// Service implements use-cases untuk Report
type Service struct {
	Repo      domain.Repository
	Documents domain.DocumentStore
	Extractor domain.TextExtractor
	Analysis  *appanalysis.Service
	Sections  *appsections.Service
	Clock     application.Clock
}

// Command untuk upload report
type UploadCommand struct {
	FileName    string
	Title       string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Upload stores the PDF bytes then the metadata row. If the metadata write
// fails the stored document is removed again so no orphan files pile up.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (*domain.Report, error) {
	name := path.Base(strings.TrimSpace(cmd.FileName))
	if name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("file name is required")
	}
	if cmd.ContentType != "" && cmd.ContentType != "application/pdf" {
		return nil, fmt.Errorf("unsupported content type: %s (only application/pdf)", cmd.ContentType)
	}

	id := uuid.New().String()
	key := fmt.Sprintf("reports/%s/%s", id, name)

	if err := s.Documents.Save(ctx, key, cmd.Body, cmd.SizeBytes, "application/pdf"); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = strings.TrimSuffix(name, path.Ext(name))
	}

	rep := &domain.Report{
		ID:          domain.ReportID(id),
		FileName:    name,
		Title:       title,
		SizeBytes:   cmd.SizeBytes,
		ContentType: "application/pdf",
		StorageKey:  key,
		UploadedAt:  s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, rep); err != nil {
		if derr := s.Documents.Delete(ctx, key); derr != nil {
			log.Printf("orphan document cleanup failed key=%s: %v", key, derr)
		}
		return nil, err
	}
	return rep, nil
}

// List returns all report metadata.
func (s *Service) List(ctx context.Context) ([]*domain.Report, error) {
	return s.Repo.List(ctx)
}

// Get returns one report by id.
func (s *Service) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	rep, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	return rep, nil
}

// Open returns the stored PDF stream plus its metadata.
func (s *Service) Open(ctx context.Context, id domain.ReportID) (io.ReadCloser, *domain.Report, error) {
	rep, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Documents.Open(ctx, rep.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return rc, rep, nil
}

// Text extracts the plain text of the stored PDF.
func (s *Service) Text(ctx context.Context, id domain.ReportID) (string, error) {
	rc, _, err := s.Open(ctx, id)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.Extractor.Extract(ctx, rc)
}

// Delete removes the report and cascades: stored document, analysis record
// and section memberships all go with it, so no stale analysis data
// outlives its report.
func (s *Service) Delete(ctx context.Context, id domain.ReportID) error {
	rep, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rep == nil {
		return domain.ErrNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Documents.Delete(ctx, rep.StorageKey); err != nil {
		log.Printf("document delete failed key=%s: %v", rep.StorageKey, err)
	}
	if err := s.Analysis.Remove(ctx, string(id)); err != nil {
		return err
	}
	return s.Sections.RemoveReportEverywhere(ctx, string(id))
}

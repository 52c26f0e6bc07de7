package sections

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/sections"
)

// Service implements use-cases untuk Section
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

// Create makes a new, empty section.
func (s *Service) Create(ctx context.Context, name string) (*domain.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("section name is required")
	}
	sec := &domain.Section{
		ID:        uuid.New().String(),
		Name:      name,
		ReportIDs: []string{},
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// List returns all sections.
func (s *Service) List(ctx context.Context) ([]*domain.Section, error) {
	return s.Repo.List(ctx)
}

// Rename changes a section's display name.
func (s *Service) Rename(ctx context.Context, id, name string) (*domain.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("section name is required")
	}
	sec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, domain.ErrNotFound
	}
	sec.Name = name
	if err := s.Repo.Save(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// Delete removes a section. Members are released, not deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// AssignReport moves a report into the target section: membership in every
// other section is removed first, so a report is never in two sections.
func (s *Service) AssignReport(ctx context.Context, sectionID, reportID string) (*domain.Section, error) {
	target, err := s.Repo.Get(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.RemoveReportEverywhere(ctx, reportID); err != nil {
		return nil, err
	}

	// re-read: RemoveReportEverywhere may have rewritten the target
	target, err = s.Repo.Get(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	target.AddReport(reportID)
	if err := s.Repo.Save(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// RemoveReportEverywhere strips the report from every section it appears
// in. Idempotent: a report in no section is a no-op, not an error.
func (s *Service) RemoveReportEverywhere(ctx context.Context, reportID string) error {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	for _, sec := range all {
		if sec.RemoveReport(reportID) {
			if err := s.Repo.Save(ctx, sec); err != nil {
				return err
			}
		}
	}
	return nil
}

package jsonfile

import (
	"context"
	"sort"

	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/reports"
)

const reportsFile = "reports.json"

// ReportRepository stores report metadata as one JSON map keyed by ID.
type ReportRepository struct {
	f *blobFile
}

func NewReportRepository(dir string) (*ReportRepository, error) {
	f, err := newBlobFile(dir, reportsFile)
	if err != nil {
		return nil, err
	}
	return &ReportRepository{f: f}, nil
}

func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[domain.ReportID]*domain.Report{}
	if err := r.f.load(&all); err != nil {
		return err
	}
	all[rep.ID] = rep
	return r.f.store(all)
}

func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[domain.ReportID]*domain.Report{}
	if err := r.f.load(&all); err != nil {
		return nil, err
	}
	return all[id], nil
}

// List returns reports newest first.
func (r *ReportRepository) List(ctx context.Context) ([]*domain.Report, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[domain.ReportID]*domain.Report{}
	if err := r.f.load(&all); err != nil {
		return nil, err
	}
	out := make([]*domain.Report, 0, len(all))
	for _, rep := range all {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *ReportRepository) Delete(ctx context.Context, id domain.ReportID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[domain.ReportID]*domain.Report{}
	if err := r.f.load(&all); err != nil {
		return err
	}
	if _, ok := all[id]; !ok {
		return nil
	}
	delete(all, id)
	return r.f.store(all)
}

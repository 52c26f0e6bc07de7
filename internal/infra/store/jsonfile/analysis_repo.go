package jsonfile

import (
	"context"

	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

const analysisFile = "analysis.json"

// AnalysisRepository stores analysis records as one JSON map keyed by
// report ID, mirroring the flat-file cache of the original dashboard.
type AnalysisRepository struct {
	f *blobFile
}

func NewAnalysisRepository(dir string) (*AnalysisRepository, error) {
	f, err := newBlobFile(dir, analysisFile)
	if err != nil {
		return nil, err
	}
	return &AnalysisRepository{f: f}, nil
}

func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Record{}
	// a corrupt file is overwritten wholesale; its contents were already lost
	if err := r.f.loadLenient(&all); err != nil {
		return err
	}
	all[rec.ReportID] = rec
	return r.f.store(all)
}

func (r *AnalysisRepository) Get(ctx context.Context, reportID string) (*domain.Record, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Record{}
	if err := r.f.loadLenient(&all); err != nil {
		return nil, err
	}
	return all[reportID], nil
}

func (r *AnalysisRepository) All(ctx context.Context) (map[string]*domain.Record, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Record{}
	if err := r.f.loadLenient(&all); err != nil {
		return nil, err
	}
	return all, nil
}

func (r *AnalysisRepository) Delete(ctx context.Context, reportID string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Record{}
	if err := r.f.loadLenient(&all); err != nil {
		return err
	}
	if _, ok := all[reportID]; !ok {
		return nil
	}
	delete(all, reportID)
	return r.f.store(all)
}

func (r *AnalysisRepository) DeleteAll(ctx context.Context) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return r.f.store(map[string]*domain.Record{})
}

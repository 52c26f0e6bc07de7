package jsonfile

import (
	"context"
	"sort"

	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/sections"
)

const sectionsFile = "sections.json"

// SectionRepository stores sections as one JSON map keyed by section ID.
type SectionRepository struct {
	f *blobFile
}

func NewSectionRepository(dir string) (*SectionRepository, error) {
	f, err := newBlobFile(dir, sectionsFile)
	if err != nil {
		return nil, err
	}
	return &SectionRepository{f: f}, nil
}

func (r *SectionRepository) Save(ctx context.Context, sec *domain.Section) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Section{}
	if err := r.f.load(&all); err != nil {
		return err
	}
	all[sec.ID] = sec
	return r.f.store(all)
}

func (r *SectionRepository) Get(ctx context.Context, id string) (*domain.Section, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Section{}
	if err := r.f.load(&all); err != nil {
		return nil, err
	}
	return all[id], nil
}

// List returns sections oldest first, stable for the dashboard.
func (r *SectionRepository) List(ctx context.Context) ([]*domain.Section, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Section{}
	if err := r.f.load(&all); err != nil {
		return nil, err
	}
	out := make([]*domain.Section, 0, len(all))
	for _, sec := range all {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	all := map[string]*domain.Section{}
	if err := r.f.load(&all); err != nil {
		return err
	}
	if _, ok := all[id]; !ok {
		return nil
	}
	delete(all, id)
	return r.f.store(all)
}

package analysis

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bryanwahyu/greenwash-radar/internal/application"
	domai "github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

// Service is the classification reconciler. It is the only code path that
// writes analysis records, and every read recomputes the classification
// from the stored confidence score: a persisted label that disagrees with
// its score never escapes this package.
//
// Service is safe for concurrent use: at most one writer runs per report
// ID, and ResetAll holds the whole store exclusively.
type Service struct {
	Repo     domain.Repository
	Analyzer domai.Analyzer
	Clock    application.Clock

	storeMu sync.RWMutex
	keyMu   sync.Mutex
	keys    map[string]*sync.Mutex
}

// reportLock returns the per-report writer mutex, creating it on first use.
func (s *Service) reportLock(reportID string) *sync.Mutex {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()
	if s.keys == nil {
		s.keys = make(map[string]*sync.Mutex)
	}
	m, ok := s.keys[reportID]
	if !ok {
		m = &sync.Mutex{}
		s.keys[reportID] = m
	}
	return m
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

// AnalyzeReport runs the external model over extracted report text and
// persists the recomputed result. The model-suggested confidence score and
// classification are discarded; only the per-statement risk levels feed
// the calculator.
func (s *Service) AnalyzeReport(ctx context.Context, reportID, text string) (*domain.Record, error) {
	res, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	if res.Classification != "" {
		log.Printf("analysis report=%s: model suggested score=%d label=%s (ignored, recomputing)",
			reportID, res.ConfidenceScore, res.Classification)
	}
	return s.Upsert(ctx, reportID, res.FlaggedStatements)
}

// Upsert recomputes score + classification from the statements and writes
// the record, replacing any prior one. The write is durable before return;
// a failed write is surfaced wrapped in ErrStoreWrite, never dropped.
func (s *Service) Upsert(ctx context.Context, reportID string, statements []domain.FlaggedStatement) (*domain.Record, error) {
	s.storeMu.RLock()
	defer s.storeMu.RUnlock()
	lock := s.reportLock(reportID)
	lock.Lock()
	defer lock.Unlock()

	score := domain.ComputeScore(statements)
	rec := &domain.Record{
		ReportID:          reportID,
		ConfidenceScore:   score,
		Classification:    domain.Classify(score),
		FlaggedStatements: statements,
		AnalyzedAt:        s.now(),
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return rec, nil
}

// Get returns the record for one report, or nil when absent. An unreadable
// store degrades to "not analyzed" so the dashboard keeps working without
// analysis metadata.
func (s *Service) Get(ctx context.Context, reportID string) (*domain.Record, error) {
	rec, err := s.Repo.Get(ctx, reportID)
	if err != nil {
		log.Printf("analysis store read error report=%s: %v", reportID, err)
		return nil, nil
	}
	if rec == nil {
		return nil, nil
	}
	out := rec.Reconciled()
	return &out, nil
}

// GetAll returns every record keyed by report ID, each reconciled. Read
// failures degrade to an empty map.
func (s *Service) GetAll(ctx context.Context) (map[string]*domain.Record, error) {
	all, err := s.Repo.All(ctx)
	if err != nil {
		log.Printf("analysis store read error: %v", err)
		return map[string]*domain.Record{}, nil
	}
	out := make(map[string]*domain.Record, len(all))
	for id, rec := range all {
		r := rec.Reconciled()
		out[id] = &r
	}
	return out, nil
}

// Remove deletes the record for one report. Absence is not an error.
func (s *Service) Remove(ctx context.Context, reportID string) error {
	s.storeMu.RLock()
	defer s.storeMu.RUnlock()
	lock := s.reportLock(reportID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.Repo.Delete(ctx, reportID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

// ResetAll deletes every record. Destructive and intentional: all reports
// revert to "unanalyzed" until reanalysis. Holds the store exclusively.
func (s *Service) ResetAll(ctx context.Context) error {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	if err := s.Repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

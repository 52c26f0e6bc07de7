package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	domain "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
)

// AnalysisRepository is the Postgres-backed analysis store, mirror of the
// MySQL driver with Postgres placeholders and upsert syntax.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save upserts one analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO greenwash_analysis
  (report_id, confidence_score, classification, statements_json, analyzed_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (report_id) DO UPDATE SET
  confidence_score=EXCLUDED.confidence_score,
  classification=EXCLUDED.classification,
  statements_json=EXCLUDED.statements_json,
  analyzed_at=EXCLUDED.analyzed_at;
`
	stmts, err := json.Marshal(rec.FlaggedStatements)
	if err != nil {
		return err
	}
	analyzedAt := rec.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q,
		rec.ReportID, rec.ConfidenceScore, string(rec.Classification), string(stmts), analyzedAt)
	return err
}

func (r *AnalysisRepository) Get(ctx context.Context, reportID string) (*domain.Record, error) {
	const q = `
SELECT report_id, confidence_score, classification, statements_json, analyzed_at
FROM greenwash_analysis
WHERE report_id=$1;
`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *AnalysisRepository) All(ctx context.Context) (map[string]*domain.Record, error) {
	const q = `
SELECT report_id, confidence_score, classification, statements_json, analyzed_at
FROM greenwash_analysis;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]*domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out[rec.ReportID] = rec
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) Delete(ctx context.Context, reportID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM greenwash_analysis WHERE report_id=$1;`, reportID)
	return err
}

func (r *AnalysisRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM greenwash_analysis;`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var classification string
	var stmts []byte
	if err := row.Scan(&rec.ReportID, &rec.ConfidenceScore, &classification, &stmts, &rec.AnalyzedAt); err != nil {
		return nil, err
	}
	rec.Classification = domain.Classification(classification)
	if len(stmts) > 0 {
		if err := json.Unmarshal(stmts, &rec.FlaggedStatements); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

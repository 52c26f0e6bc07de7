package analysis

import "context"

// Repository port (interface untuk persistence).
// Implementations are dumb stores: the invariant between score and
// classification is enforced by the application layer on every read.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, reportID string) (*Record, error)
	All(ctx context.Context) (map[string]*Record, error)
	Delete(ctx context.Context, reportID string) error
	DeleteAll(ctx context.Context) error
}

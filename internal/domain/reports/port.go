package reports

import (
	"context"
	"io"
)

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id ReportID) (*Report, error)
	List(ctx context.Context) ([]*Report, error)
	Delete(ctx context.Context, id ReportID) error
}

// DocumentStore port (interface untuk penyimpanan file PDF)
type DocumentStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// TextExtractor port: pulls plain text out of a stored PDF
type TextExtractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

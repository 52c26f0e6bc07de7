package sections

import (
	"context"
	"errors"
)

// ErrNotFound indicates the section does not exist.
var ErrNotFound = errors.New("section not found")

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, s *Section) error
	Get(ctx context.Context, id string) (*Section, error)
	List(ctx context.Context) ([]*Section, error)
	Delete(ctx context.Context, id string) error
}

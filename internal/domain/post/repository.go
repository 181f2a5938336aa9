package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for blog posts.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	FindAll(ctx context.Context) ([]*Post, error)
	Save(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

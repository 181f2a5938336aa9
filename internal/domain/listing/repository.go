package listing

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for listings.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	Save(ctx context.Context, l *Listing) error
	Update(ctx context.Context, l *Listing) error
	// SetAdopted partially updates only the adoption flag.
	SetAdopted(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, page, limit int) ([]*Listing, int64, error)
	CountByAdoption(ctx context.Context) (map[string]int64, error)
}

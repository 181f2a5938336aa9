package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
	postDomain "github.com/PawMart-Adoption/service-listing/internal/domain/post"
)

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AuthorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title      string          `gorm:"type:varchar(200);not null"`
	Content    string          `gorm:"type:text;not null"`
	CoverImage json.RawMessage `gorm:"type:jsonb"`
	CreatedAt  time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time       `gorm:"type:timestamptz;not null"`
}

func (PostModel) TableName() string { return "posts" }

// GormPostRepository implements post.Repository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*postDomain.Post, error) {
	var model PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("post", id.String())
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return toPostDomain(&model)
}

func (r *GormPostRepository) FindAll(ctx context.Context) ([]*postDomain.Post, error) {
	var models []PostModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]*postDomain.Post, len(models))
	for i, m := range models {
		p, err := toPostDomain(&m)
		if err != nil {
			return nil, err
		}
		posts[i] = p
	}
	return posts, nil
}

func (r *GormPostRepository) Save(ctx context.Context, p *postDomain.Post) error {
	model, err := toPostModel(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("failed to create post: %v", err))
	}
	return nil
}

func (r *GormPostRepository) Update(ctx context.Context, p *postDomain.Post) error {
	model, err := toPostModel(p)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&PostModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "author_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewPersistenceError("post update affected no rows")
	}
	return nil
}

func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PostModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("post", id.String())
	}
	return nil
}

// --- Conversions ---

func toPostModel(p *postDomain.Post) (*PostModel, error) {
	var cover json.RawMessage
	if p.Cover() != nil {
		raw, err := json.Marshal(p.Cover())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cover image: %w", err)
		}
		cover = raw
	}
	return &PostModel{
		ID:         p.ID(),
		AuthorID:   p.AuthorID(),
		Title:      p.Title(),
		Content:    p.Content(),
		CoverImage: cover,
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}, nil
}

func toPostDomain(m *PostModel) (*postDomain.Post, error) {
	var cover *postDomain.CoverImage
	if len(m.CoverImage) > 0 {
		cover = &postDomain.CoverImage{}
		if err := json.Unmarshal(m.CoverImage, cover); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cover image: %w", err)
		}
	}
	return postDomain.Reconstruct(m.ID, m.AuthorID, m.Title, m.Content, cover, m.CreatedAt, m.UpdatedAt), nil
}

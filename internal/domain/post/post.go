package post

import (
	"time"

	"github.com/google/uuid"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
)

// CoverImage is the hosted cover picture of a post.
type CoverImage struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id"`
}

// Post is the aggregate root for a blog post.
type Post struct {
	id         uuid.UUID
	authorID   uuid.UUID
	title      string
	content    string
	coverImage *CoverImage
	createdAt  time.Time
	updatedAt  time.Time
}

// NewPost creates a new blog post by the given author.
func NewPost(authorID uuid.UUID, title, content string, coverImage *CoverImage) (*Post, error) {
	if authorID == uuid.Nil {
		return nil, domain.NewValidationError("author ID is required")
	}
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if content == "" {
		return nil, domain.NewValidationError("content is required")
	}

	now := time.Now().UTC()
	return &Post{
		id:         uuid.New(),
		authorID:   authorID,
		title:      title,
		content:    content,
		coverImage: coverImage,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a Post from persistence.
func Reconstruct(id, authorID uuid.UUID, title, content string, coverImage *CoverImage, createdAt, updatedAt time.Time) *Post {
	return &Post{
		id:         id,
		authorID:   authorID,
		title:      title,
		content:    content,
		coverImage: coverImage,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Getters.
func (p *Post) ID() uuid.UUID           { return p.id }
func (p *Post) AuthorID() uuid.UUID     { return p.authorID }
func (p *Post) Title() string           { return p.title }
func (p *Post) Content() string         { return p.content }
func (p *Post) Cover() *CoverImage      { return p.coverImage }
func (p *Post) CreatedAt() time.Time    { return p.createdAt }
func (p *Post) UpdatedAt() time.Time    { return p.updatedAt }

// IsAuthoredBy checks whether the post belongs to the given user.
func (p *Post) IsAuthoredBy(userID uuid.UUID) bool {
	return p.authorID == userID
}

// Update overwrites title and content.
func (p *Post) Update(title, content string) {
	p.title = title
	p.content = content
	p.updatedAt = time.Now().UTC()
}

// ReplaceCover swaps the cover image.
func (p *Post) ReplaceCover(img *CoverImage) {
	if img == nil {
		return
	}
	p.coverImage = img
	p.updatedAt = time.Now().UTC()
}

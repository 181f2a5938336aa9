package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
	postDomain "github.com/PawMart-Adoption/service-listing/internal/domain/post"
	"github.com/PawMart-Adoption/service-listing/internal/media"
)

// PostFields carries the form fields for creating or updating a blog post.
type PostFields struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// PostDTO is the API representation of a blog post.
type PostDTO struct {
	ID         uuid.UUID              `json:"id"`
	AuthorID   uuid.UUID              `json:"author_id"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	CoverImage *postDomain.CoverImage `json:"cover_image,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// PostService implements blog post use cases.
type PostService struct {
	repo    postDomain.Repository
	storage media.Storage
	logger  *zap.Logger
}

// NewPostService creates a new PostService.
func NewPostService(repo postDomain.Repository, storage media.Storage, logger *zap.Logger) *PostService {
	return &PostService{repo: repo, storage: storage, logger: logger}
}

// CreatePost creates a blog post for the given author. A cover image file is
// optional; a failed cover upload is skipped, not fatal.
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, fields PostFields, coverPath string) (*PostDTO, error) {
	title := strings.TrimSpace(fields.Title)
	content := strings.TrimSpace(fields.Content)
	if title == "" || content == "" {
		var missing []string
		if title == "" {
			missing = append(missing, "title")
		}
		if content == "" {
			missing = append(missing, "content")
		}
		return nil, domain.NewValidationError("required fields are missing or blank", missing...)
	}

	cover := s.uploadCover(ctx, coverPath)

	p, err := postDomain.NewPost(authorID, title, content, cover)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("failed to create post", zap.Error(err))
		return nil, err
	}

	s.logger.Info("post created",
		zap.String("post_id", p.ID().String()),
		zap.String("author_id", authorID.String()),
	)
	dto := toPostDTO(p)
	return &dto, nil
}

// GetAllPosts returns all posts, newest first.
func (s *PostService) GetAllPosts(ctx context.Context) ([]PostDTO, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = toPostDTO(p)
	}
	return dtos, nil
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*PostDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPostDTO(p)
	return &dto, nil
}

// UpdatePost overwrites a post's title and content; author only. A new cover
// file, when attached and uploaded successfully, replaces the old one.
func (s *PostService) UpdatePost(ctx context.Context, userID, id uuid.UUID, fields PostFields, coverPath string) (*PostDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAuthoredBy(userID) {
		return nil, domain.NewForbiddenError("only the author can update this post")
	}

	title := strings.TrimSpace(fields.Title)
	content := strings.TrimSpace(fields.Content)
	if title == "" || content == "" {
		return nil, domain.NewValidationError("title and content are required", "title", "content")
	}

	p.Update(title, content)
	if cover := s.uploadCover(ctx, coverPath); cover != nil {
		p.ReplaceCover(cover)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update post", zap.Error(err))
		return nil, err
	}

	s.logger.Info("post updated", zap.String("post_id", id.String()))
	dto := toPostDTO(p)
	return &dto, nil
}

// DeletePost removes a post; author only. The cover image is released from
// media storage before the record is deleted.
func (s *PostService) DeletePost(ctx context.Context, userID, id uuid.UUID) (*PostDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAuthoredBy(userID) {
		return nil, domain.NewForbiddenError("only the author can delete this post")
	}

	if cover := p.Cover(); cover != nil {
		if err := s.storage.Delete(ctx, cover.StorageID); err != nil {
			s.logger.Warn("failed to release cover image",
				zap.String("post_id", id.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("post deleted", zap.String("post_id", id.String()))
	dto := toPostDTO(p)
	return &dto, nil
}

func (s *PostService) uploadCover(ctx context.Context, coverPath string) *postDomain.CoverImage {
	if coverPath == "" {
		return nil
	}
	asset, err := s.storage.Upload(ctx, coverPath)
	if err != nil {
		s.logger.Warn("cover upload failed, skipping",
			zap.String("path", coverPath),
			zap.Error(err),
		)
		return nil
	}
	return &postDomain.CoverImage{URL: asset.URL, StorageID: asset.StorageID}
}

func toPostDTO(p *postDomain.Post) PostDTO {
	return PostDTO{
		ID:         p.ID(),
		AuthorID:   p.AuthorID(),
		Title:      p.Title(),
		Content:    p.Content(),
		CoverImage: p.Cover(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

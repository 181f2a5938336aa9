package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
	postDomain "github.com/PawMart-Adoption/service-listing/internal/domain/post"
)

// fakePostRepo is an in-memory post.Repository.
type fakePostRepo struct {
	posts       []*postDomain.Post
	deleteCalls int
}

func (r *fakePostRepo) find(id uuid.UUID) (*postDomain.Post, int) {
	for i, p := range r.posts {
		if p.ID() == id {
			return p, i
		}
	}
	return nil, -1
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*postDomain.Post, error) {
	p, _ := r.find(id)
	if p == nil {
		return nil, domain.NewNotFoundError("post", id.String())
	}
	return p, nil
}

func (r *fakePostRepo) FindAll(_ context.Context) ([]*postDomain.Post, error) {
	return r.posts, nil
}

func (r *fakePostRepo) Save(_ context.Context, p *postDomain.Post) error {
	r.posts = append(r.posts, p)
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *postDomain.Post) error {
	if _, i := r.find(p.ID()); i >= 0 {
		r.posts[i] = p
		return nil
	}
	return domain.NewPersistenceError("post update affected no rows")
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleteCalls++
	if _, i := r.find(id); i >= 0 {
		r.posts = append(r.posts[:i], r.posts[i+1:]...)
		return nil
	}
	return domain.NewNotFoundError("post", id.String())
}

func newPostTestService() (*PostService, *fakePostRepo, *fakeStorage) {
	repo := &fakePostRepo{}
	storage := &fakeStorage{failPaths: map[string]bool{}}
	svc := NewPostService(repo, storage, zap.NewNop())
	return svc, repo, storage
}

func TestCreatePost_MissingFieldsRejected(t *testing.T) {
	svc, repo, _ := newPostTestService()

	_, err := svc.CreatePost(context.Background(), uuid.New(), PostFields{Title: " ", Content: ""}, "")

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.ElementsMatch(t, []string{"title", "content"}, de.Fields)
	assert.Empty(t, repo.posts)
}

func TestCreatePost_CoverIsOptional(t *testing.T) {
	svc, repo, storage := newPostTestService()

	dto, err := svc.CreatePost(context.Background(), uuid.New(),
		PostFields{Title: "Adopting a senior cat", Content: "What to expect."}, "")

	require.NoError(t, err)
	assert.Nil(t, dto.CoverImage)
	assert.Empty(t, storage.uploadCalls)
	assert.Len(t, repo.posts, 1)
}

func TestCreatePost_FailedCoverUploadIsSkipped(t *testing.T) {
	svc, repo, storage := newPostTestService()
	storage.failPaths["cover.jpg"] = true

	dto, err := svc.CreatePost(context.Background(), uuid.New(),
		PostFields{Title: "Title", Content: "Content"}, "cover.jpg")

	require.NoError(t, err, "a failed cover upload must not fail the post")
	assert.Nil(t, dto.CoverImage)
	assert.Len(t, repo.posts, 1)
}

func TestCreatePost_AttachesCover(t *testing.T) {
	svc, _, _ := newPostTestService()

	dto, err := svc.CreatePost(context.Background(), uuid.New(),
		PostFields{Title: "Title", Content: "Content"}, "cover.jpg")

	require.NoError(t, err)
	require.NotNil(t, dto.CoverImage)
	assert.Equal(t, "sid-cover.jpg", dto.CoverImage.StorageID)
}

func TestUpdatePost_NonAuthorForbidden(t *testing.T) {
	svc, repo, _ := newPostTestService()
	p, err := postDomain.NewPost(uuid.New(), "Title", "Content", nil)
	require.NoError(t, err)
	repo.posts = append(repo.posts, p)

	_, err = svc.UpdatePost(context.Background(), uuid.New(), p.ID(),
		PostFields{Title: "New", Content: "New"}, "")

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Equal(t, "Title", p.Title())
}

func TestUpdatePost_AuthorOverwritesAndKeepsCoverOnNoUpload(t *testing.T) {
	svc, repo, _ := newPostTestService()
	authorID := uuid.New()
	cover := &postDomain.CoverImage{URL: "u", StorageID: "sid-old"}
	p, err := postDomain.NewPost(authorID, "Title", "Content", cover)
	require.NoError(t, err)
	repo.posts = append(repo.posts, p)

	dto, err := svc.UpdatePost(context.Background(), authorID, p.ID(),
		PostFields{Title: "New title", Content: "New content"}, "")

	require.NoError(t, err)
	assert.Equal(t, "New title", dto.Title)
	require.NotNil(t, dto.CoverImage)
	assert.Equal(t, "sid-old", dto.CoverImage.StorageID)
}

func TestDeletePost_ReleasesCoverBeforeRecord(t *testing.T) {
	svc, repo, storage := newPostTestService()
	authorID := uuid.New()
	p, err := postDomain.NewPost(authorID, "Title", "Content",
		&postDomain.CoverImage{URL: "u", StorageID: "sid-cover"})
	require.NoError(t, err)
	repo.posts = append(repo.posts, p)

	_, err = svc.DeletePost(context.Background(), authorID, p.ID())

	require.NoError(t, err)
	assert.Equal(t, []string{"sid-cover"}, storage.deleted)
	assert.Empty(t, repo.posts)
}

func TestDeletePost_NonAuthorForbidden(t *testing.T) {
	svc, repo, storage := newPostTestService()
	p, err := postDomain.NewPost(uuid.New(), "Title", "Content", nil)
	require.NoError(t, err)
	repo.posts = append(repo.posts, p)

	_, err = svc.DeletePost(context.Background(), uuid.New(), p.ID())

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Empty(t, storage.deleted)
	assert.Zero(t, repo.deleteCalls)
}

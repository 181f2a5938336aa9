package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PawMart-Adoption/service-listing/internal/application"
	"github.com/PawMart-Adoption/service-listing/internal/auth"
	"github.com/PawMart-Adoption/service-listing/internal/middleware"
	"github.com/PawMart-Adoption/service-listing/internal/response"
)

// PostHandler handles HTTP requests for blog post operations.
type PostHandler struct {
	service   *application.PostService
	uploadDir string
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *application.PostService, uploadDir string) *PostHandler {
	return &PostHandler{service: service, uploadDir: uploadDir}
}

// RegisterRoutes registers all blog post routes.
func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	posts := r.Group("/api/v1/posts")
	{
		posts.GET("", h.GetAllPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("", authMW, h.CreatePost)
		posts.PUT("/:id", authMW, h.UpdatePost)
		posts.DELETE("/:id", authMW, h.DeletePost)
	}
}

// CreatePost handles POST /api/v1/posts (multipart form, optional cover file).
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	fields := application.PostFields{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	coverPath, cleanup, err := h.saveCover(c)
	if err != nil {
		response.BadRequest(c, "failed to read cover file")
		return
	}
	defer cleanup()

	result, err := h.service.CreatePost(c.Request.Context(), userID, fields, coverPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetAllPosts handles GET /api/v1/posts.
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	result, err := h.service.GetAllPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetPost handles GET /api/v1/posts/:id.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	result, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdatePost handles PUT /api/v1/posts/:id.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	fields := application.PostFields{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	coverPath, cleanup, err := h.saveCover(c)
	if err != nil {
		response.BadRequest(c, "failed to read cover file")
		return
	}
	defer cleanup()

	result, err := h.service.UpdatePost(c.Request.Context(), userID, id, fields, coverPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeletePost handles DELETE /api/v1/posts/:id.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	result, err := h.service.DeletePost(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// saveCover persists the optional cover file and returns its local path, or
// an empty path when no cover was attached.
func (h *PostHandler) saveCover(c *gin.Context) (string, func(), error) {
	f, err := c.FormFile("cover")
	if err != nil {
		return "", func() {}, nil // no cover attached
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", func() {}, err
	}

	dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(f.Filename))
	if err := c.SaveUploadedFile(f, dst); err != nil {
		return "", func() {}, err
	}
	return dst, func() { _ = os.Remove(dst) }, nil
}

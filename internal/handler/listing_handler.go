package handler

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PawMart-Adoption/service-listing/internal/application"
	"github.com/PawMart-Adoption/service-listing/internal/auth"
	"github.com/PawMart-Adoption/service-listing/internal/middleware"
	"github.com/PawMart-Adoption/service-listing/internal/response"
)

// imagesFormKey is the multipart field carrying listing image files.
const imagesFormKey = "images"

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	service   *application.ListingService
	uploadDir string
}

// NewListingHandler creates a new ListingHandler. uploadDir receives the
// multipart files before they are pushed to the media host.
func NewListingHandler(service *application.ListingService, uploadDir string) *ListingHandler {
	return &ListingHandler{service: service, uploadDir: uploadDir}
}

// RegisterRoutes registers all listing routes. Reads are public; mutations
// require an authenticated user.
func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	pets := r.Group("/api/v1/pets")
	{
		pets.GET("", h.GetAllListings)
		pets.GET("/:id", h.GetListing)
		pets.POST("", authMW, h.CreateListing)
		pets.PUT("/:id", authMW, h.UpdateListing)
		pets.DELETE("/:id", authMW, h.DeleteListing)
		pets.POST("/:id/adopt", authMW, h.AdoptListing)
	}
}

// CreateListing handles POST /api/v1/pets (multipart form).
func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	fields := bindListingFields(c)
	files := formFiles(c, imagesFormKey)

	paths, cleanup, err := h.saveUploads(c, files)
	if err != nil {
		response.BadRequest(c, "failed to read uploaded files")
		return
	}
	defer cleanup()

	result, err := h.service.CreateListing(c.Request.Context(), userID, fields, paths)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetAllListings handles GET /api/v1/pets.
func (h *ListingHandler) GetAllListings(c *gin.Context) {
	result, err := h.service.GetAllListings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetListing handles GET /api/v1/pets/:id.
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid listing ID")
		return
	}

	result, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateListing handles PUT /api/v1/pets/:id (multipart form).
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid listing ID")
		return
	}

	fields := bindListingFields(c)
	files := formFiles(c, imagesFormKey)

	paths, cleanup, err := h.saveUploads(c, files)
	if err != nil {
		response.BadRequest(c, "failed to read uploaded files")
		return
	}
	defer cleanup()

	result, err := h.service.UpdateListing(c.Request.Context(), userID, id, fields, paths)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteListing handles DELETE /api/v1/pets/:id.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid listing ID")
		return
	}

	result, err := h.service.DeleteListing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AdoptListing handles POST /api/v1/pets/:id/adopt.
func (h *ListingHandler) AdoptListing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid listing ID")
		return
	}

	result, err := h.service.AdoptListing(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// --- Helpers ---

func bindListingFields(c *gin.Context) application.ListingFields {
	return application.ListingFields{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		IsFree:      c.PostForm("is_free") == "true",
		PetType:     c.PostForm("pet_type"),
		Breed:       c.PostForm("breed"),
		Diseases:    c.PostFormArray("diseases"),
	}
}

func formFiles(c *gin.Context, key string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[key]
}

// saveUploads persists multipart files to the upload directory and returns
// their local paths plus a cleanup func that removes them.
func (h *ListingHandler) saveUploads(c *gin.Context, files []*multipart.FileHeader) ([]string, func(), error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return nil, func() {}, err
	}

	paths := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}

	for _, f := range files {
		dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(f.Filename))
		if err := c.SaveUploadedFile(f, dst); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		paths = append(paths, dst)
	}
	return paths, cleanup, nil
}

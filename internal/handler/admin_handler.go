package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PawMart-Adoption/service-listing/internal/application"
	"github.com/PawMart-Adoption/service-listing/internal/auth"
	"github.com/PawMart-Adoption/service-listing/internal/middleware"
	"github.com/PawMart-Adoption/service-listing/internal/response"
)

// AdminListingHandler handles admin HTTP requests for listing management.
type AdminListingHandler struct {
	service *application.ListingService
}

// NewAdminListingHandler creates a new AdminListingHandler.
func NewAdminListingHandler(service *application.ListingService) *AdminListingHandler {
	return &AdminListingHandler{service: service}
}

// RegisterRoutes registers admin listing routes.
func (h *AdminListingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/listings", h.ListListings)
		admin.GET("/stats/listings", h.ListingStats)
	}
}

// ListListings handles GET /api/v1/admin/listings.
func (h *AdminListingHandler) ListListings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	listings, total, err := h.service.ListAllListings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, listings, total, page, limit)
}

// ListingStats handles GET /api/v1/admin/stats/listings.
func (h *AdminListingHandler) ListingStats(c *gin.Context) {
	stats, err := h.service.GetListingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

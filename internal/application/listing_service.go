package application

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
	listingDomain "github.com/PawMart-Adoption/service-listing/internal/domain/listing"
	"github.com/PawMart-Adoption/service-listing/internal/events"
	"github.com/PawMart-Adoption/service-listing/internal/kafka"
	"github.com/PawMart-Adoption/service-listing/internal/media"
)

// ListingFields carries the multipart form fields for create and update.
type ListingFields struct {
	Name        string   `form:"name"`
	Description string   `form:"description"`
	Price       string   `form:"price"`
	IsFree      bool     `form:"is_free"`
	PetType     string   `form:"pet_type"`
	Breed       string   `form:"breed"`
	Diseases    []string `form:"diseases"`
}

// Required fields per operation. A blank entry anywhere in the list fails the
// whole request with one ValidationError naming every offender.
var (
	createRequiredFields = []string{"name", "breed", "description", "price", "pet_type"}
	updateRequiredFields = []string{"name", "description", "price", "pet_type"}
)

// ListingDTO is the API representation of a listing.
type ListingDTO struct {
	ID          uuid.UUID             `json:"id"`
	OwnerID     uuid.UUID             `json:"owner_id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	PriceCents  int64                 `json:"price_cents"`
	IsFree      bool                  `json:"is_free"`
	PetType     string                `json:"pet_type"`
	Breed       string                `json:"breed"`
	Images      []listingDomain.Image `json:"images"`
	Diseases    []string              `json:"diseases,omitempty"`
	IsAdopted   bool                  `json:"is_adopted"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ListingStatsDTO holds adoption statistics for the admin dashboard.
type ListingStatsDTO struct {
	TotalListings int64            `json:"total_listings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// EventPublisher publishes CloudEvents; satisfied by kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// ListingService implements the listing lifecycle use cases.
type ListingService struct {
	repo     listingDomain.Repository
	storage  media.Storage
	producer EventPublisher
	logger   *zap.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(
	repo listingDomain.Repository,
	storage media.Storage,
	producer EventPublisher,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		repo:     repo,
		storage:  storage,
		producer: producer,
		logger:   logger,
	}
}

// CreateListing validates the form fields, uploads the attached files and
// persists a new listing owned by ownerID. At least one file must be attached
// and at least one upload must succeed; individual upload failures are
// skipped, never fatal.
func (s *ListingService) CreateListing(ctx context.Context, ownerID uuid.UUID, fields ListingFields, filePaths []string) (*ListingDTO, error) {
	if err := validateRequired(fields, createRequiredFields); err != nil {
		return nil, err
	}
	if len(filePaths) < 1 {
		return nil, domain.NewValidationError("at least one image is required")
	}

	priceCents, err := parsePrice(fields.Price, fields.IsFree)
	if err != nil {
		return nil, err
	}

	images := s.uploadAll(ctx, filePaths)
	if len(images) < 1 {
		return nil, domain.NewValidationError("all image uploads failed")
	}

	l, err := listingDomain.NewListing(
		ownerID,
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.Description),
		priceCents,
		fields.IsFree,
		strings.TrimSpace(fields.PetType),
		strings.TrimSpace(fields.Breed),
		images,
		fields.Diseases,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		s.logger.Error("failed to create listing", zap.Error(err))
		return nil, err
	}

	s.logger.Info("listing created",
		zap.String("listing_id", l.ID().String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int("images", len(images)),
		zap.Int("files_submitted", len(filePaths)),
	)

	s.publishEvent(ctx, events.TopicListingEvents, events.ListingCreated, events.ListingCreatedEvent{
		ListingID:  l.ID(),
		OwnerID:    ownerID,
		Name:       l.Name(),
		PetType:    l.PetType(),
		PriceCents: l.PriceCents(),
		IsFree:     l.IsFree(),
		OccurredAt: time.Now().UTC(),
	})

	dto := toListingDTO(l)
	return &dto, nil
}

// GetAllListings returns every listing in store-native order. No pagination
// or filtering; an empty store yields an empty slice.
func (s *ListingService) GetAllListings(ctx context.Context) ([]ListingDTO, error) {
	listings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ListingDTO, len(listings))
	for i, l := range listings {
		dtos[i] = toListingDTO(l)
	}
	return dtos, nil
}

// GetListing returns a single listing by id.
func (s *ListingService) GetListing(ctx context.Context, id uuid.UUID) (*ListingDTO, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toListingDTO(l)
	return &dto, nil
}

// DeleteListing removes a listing. Every stored image is released through the
// media host before the record itself is deleted; there is no rollback if the
// record delete then fails.
func (s *ListingService) DeleteListing(ctx context.Context, id uuid.UUID) (*ListingDTO, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, img := range l.Images() {
		if err := s.storage.Delete(ctx, img.StorageID); err != nil {
			s.logger.Warn("failed to release image",
				zap.String("listing_id", id.String()),
				zap.String("storage_id", img.StorageID),
				zap.Error(err),
			)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("listing deleted",
		zap.String("listing_id", id.String()),
		zap.Int("images_released", len(l.Images())),
	)

	s.publishEvent(ctx, events.TopicListingEvents, events.ListingDeleted, events.ListingDeletedEvent{
		ListingID:  l.ID(),
		OwnerID:    l.OwnerID(),
		ImageCount: len(l.Images()),
		OccurredAt: time.Now().UTC(),
	})

	dto := toListingDTO(l)
	return &dto, nil
}

// UpdateListing overwrites the mutable fields of a listing. Only the owner
// may update. New files, when attached, replace the image list; when none are
// attached or every upload fails, the existing images are retained.
func (s *ListingService) UpdateListing(ctx context.Context, userID, id uuid.UUID, fields ListingFields, filePaths []string) (*ListingDTO, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError("only the owner can update this listing")
	}

	if err := validateRequired(fields, updateRequiredFields); err != nil {
		return nil, err
	}
	priceCents, err := parsePrice(fields.Price, fields.IsFree)
	if err != nil {
		return nil, err
	}

	l.UpdateDetails(
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.Description),
		priceCents,
		fields.IsFree,
		strings.TrimSpace(fields.PetType),
		strings.TrimSpace(fields.Breed),
		fields.Diseases,
	)

	if len(filePaths) > 0 {
		if images := s.uploadAll(ctx, filePaths); len(images) > 0 {
			l.ReplaceImages(images)
		}
	}

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("failed to update listing", zap.Error(err))
		return nil, err
	}

	s.logger.Info("listing updated", zap.String("listing_id", id.String()))
	dto := toListingDTO(l)
	return &dto, nil
}

// AdoptListing marks a listing adopted on behalf of adopterID. Owners cannot
// adopt their own listing. Re-adopting an already adopted listing is allowed;
// the flag is monotonic either way.
func (s *ListingService) AdoptListing(ctx context.Context, id, adopterID uuid.UUID) (*ListingDTO, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.IsOwnedBy(adopterID) {
		return nil, domain.NewForbiddenError("you cannot adopt your own listing")
	}

	if err := s.repo.SetAdopted(ctx, id); err != nil {
		s.logger.Error("failed to set adoption flag", zap.Error(err))
		return nil, err
	}
	l.MarkAdopted()

	s.logger.Info("listing adopted",
		zap.String("listing_id", id.String()),
		zap.String("adopter_id", adopterID.String()),
	)

	s.publishEvent(ctx, events.TopicListingEvents, events.ListingAdopted, events.ListingAdoptedEvent{
		ListingID:  l.ID(),
		OwnerID:    l.OwnerID(),
		AdopterID:  adopterID,
		OccurredAt: time.Now().UTC(),
	})

	dto := toListingDTO(l)
	return &dto, nil
}

// --- Admin methods ---

// ListAllListings returns a paginated index of listings (admin).
func (s *ListingService) ListAllListings(ctx context.Context, page, limit int) ([]ListingDTO, int64, error) {
	listings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	dtos := make([]ListingDTO, len(listings))
	for i, l := range listings {
		dtos[i] = toListingDTO(l)
	}
	return dtos, total, nil
}

// GetListingStats returns adoption statistics (admin).
func (s *ListingService) GetListingStats(ctx context.Context) (*ListingStatsDTO, error) {
	counts, err := s.repo.CountByAdoption(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &ListingStatsDTO{TotalListings: total, ByStatus: counts}, nil
}

// --- Helpers ---

// validateRequired checks the named fields against the form values and
// returns one ValidationError listing every blank field. Whitespace-only
// values count as blank.
func validateRequired(fields ListingFields, required []string) error {
	values := map[string]string{
		"name":        fields.Name,
		"breed":       fields.Breed,
		"description": fields.Description,
		"price":       fields.Price,
		"pet_type":    fields.PetType,
	}

	var missing []string
	for _, name := range required {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("required fields are missing or blank", missing...)
	}
	return nil
}

// parsePrice converts the price form field to cents. Free listings may carry
// a zero price; paid listings must parse to a non-negative amount.
func parsePrice(price string, isFree bool) (int64, error) {
	trimmed := strings.TrimSpace(price)
	if trimmed == "" {
		if isFree {
			return 0, nil
		}
		return 0, domain.NewValidationError("price is required", "price")
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, domain.NewValidationError("price must be a number", "price")
	}
	if f < 0 {
		return 0, domain.NewValidationError("price cannot be negative", "price")
	}
	return int64(math.Round(f * 100)), nil
}

// uploadAll pushes each file to the media host sequentially. Failed uploads
// are skipped with a warning; callers decide what an empty result means.
func (s *ListingService) uploadAll(ctx context.Context, filePaths []string) []listingDomain.Image {
	images := make([]listingDomain.Image, 0, len(filePaths))
	for _, path := range filePaths {
		asset, err := s.storage.Upload(ctx, path)
		if err != nil {
			s.logger.Warn("image upload failed, skipping",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		images = append(images, listingDomain.Image{URL: asset.URL, StorageID: asset.StorageID})
	}
	return images
}

func (s *ListingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}
	ce, err := kafka.NewCloudEvent("service-listing", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, ce); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toListingDTO(l *listingDomain.Listing) ListingDTO {
	return ListingDTO{
		ID:          l.ID(),
		OwnerID:     l.OwnerID(),
		Name:        l.Name(),
		Description: l.Description(),
		PriceCents:  l.PriceCents(),
		IsFree:      l.IsFree(),
		PetType:     l.PetType(),
		Breed:       l.Breed(),
		Images:      l.Images(),
		Diseases:    l.Diseases(),
		IsAdopted:   l.IsAdopted(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

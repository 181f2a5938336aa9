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
	listingDomain "github.com/PawMart-Adoption/service-listing/internal/domain/listing"
)

// ListingModel is the GORM model for the listings table.
type ListingModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text;not null"`
	PriceCents  int64           `gorm:"not null;default:0"`
	IsFree      bool            `gorm:"not null;default:false"`
	PetType     string          `gorm:"type:varchar(50);not null;index"`
	Breed       string          `gorm:"type:varchar(100)"`
	Images      json.RawMessage `gorm:"type:jsonb;not null"`
	Diseases    json.RawMessage `gorm:"type:jsonb"`
	IsAdopted   bool            `gorm:"not null;default:false;index"`
	Version     int64           `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time       `gorm:"type:timestamptz;not null"`
}

func (ListingModel) TableName() string { return "listings" }

// GormListingRepository implements listing.Repository using GORM.
type GormListingRepository struct {
	db *gorm.DB
}

func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listingDomain.Listing, error) {
	var model ListingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("listing", id.String())
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return toListingDomain(&model)
}

func (r *GormListingRepository) FindAll(ctx context.Context) ([]*listingDomain.Listing, error) {
	var models []ListingModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return toListingDomainSlice(models)
}

func (r *GormListingRepository) Save(ctx context.Context, l *listingDomain.Listing) error {
	model, err := toListingModel(l)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("failed to create listing: %v", err))
	}
	return nil
}

func (r *GormListingRepository) Update(ctx context.Context, l *listingDomain.Listing) error {
	model, err := toListingModel(l)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewPersistenceError("listing update affected no rows")
	}
	return nil
}

func (r *GormListingRepository) SetAdopted(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_adopted": true,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set adoption flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewPersistenceError("adoption update affected no rows")
	}
	return nil
}

func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ListingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("listing", id.String())
	}
	return nil
}

func (r *GormListingRepository) ListAll(ctx context.Context, page, limit int) ([]*listingDomain.Listing, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ListingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var models []ListingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}

	listings, err := toListingDomainSlice(models)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *GormListingRepository) CountByAdoption(ctx context.Context) (map[string]int64, error) {
	type row struct {
		IsAdopted bool
		Count     int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Select("is_adopted, count(*) as count").
		Group("is_adopted").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count by adoption: %w", err)
	}

	counts := map[string]int64{"available": 0, "adopted": 0}
	for _, r := range rows {
		if r.IsAdopted {
			counts["adopted"] = r.Count
		} else {
			counts["available"] = r.Count
		}
	}
	return counts, nil
}

// --- Conversions ---

func toListingModel(l *listingDomain.Listing) (*ListingModel, error) {
	images, err := json.Marshal(l.Images())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	diseases, err := json.Marshal(l.Diseases())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal diseases: %w", err)
	}

	return &ListingModel{
		ID:          l.ID(),
		OwnerID:     l.OwnerID(),
		Name:        l.Name(),
		Description: l.Description(),
		PriceCents:  l.PriceCents(),
		IsFree:      l.IsFree(),
		PetType:     l.PetType(),
		Breed:       l.Breed(),
		Images:      images,
		Diseases:    diseases,
		IsAdopted:   l.IsAdopted(),
		Version:     l.Version(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}, nil
}

func toListingDomain(m *ListingModel) (*listingDomain.Listing, error) {
	var images []listingDomain.Image
	if len(m.Images) > 0 {
		if err := json.Unmarshal(m.Images, &images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}
	var diseases []string
	if len(m.Diseases) > 0 {
		if err := json.Unmarshal(m.Diseases, &diseases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal diseases: %w", err)
		}
	}

	return listingDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.Description,
		m.PriceCents, m.IsFree,
		m.PetType, m.Breed,
		images, diseases,
		m.IsAdopted,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toListingDomainSlice(models []ListingModel) ([]*listingDomain.Listing, error) {
	listings := make([]*listingDomain.Listing, len(models))
	for i, m := range models {
		l, err := toListingDomain(&m)
		if err != nil {
			return nil, err
		}
		listings[i] = l
	}
	return listings, nil
}

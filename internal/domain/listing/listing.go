package listing

import (
	"time"

	"github.com/google/uuid"

	"github.com/PawMart-Adoption/service-listing/internal/domain"
)

// Image is one hosted picture of a listing: the public URL plus the storage
// id used to release it when the listing is deleted.
type Image struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id"`
}

// Listing is the aggregate root for a pet offered for adoption or sale.
type Listing struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	priceCents  int64
	isFree      bool
	petType     string
	breed       string
	images      []Image
	diseases    []string
	isAdopted   bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewListing creates a new listing owned by ownerID. Field-level validation
// happens in the application layer; the constructor guards the invariants the
// aggregate cannot live without.
func NewListing(
	ownerID uuid.UUID,
	name, description string,
	priceCents int64,
	isFree bool,
	petType, breed string,
	images []Image,
	diseases []string,
) (*Listing, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("listing name is required")
	}
	if len(images) < 1 {
		return nil, domain.NewValidationError("at least one image is required")
	}

	now := time.Now().UTC()
	return &Listing{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		priceCents:  priceCents,
		isFree:      isFree,
		petType:     petType,
		breed:       breed,
		images:      images,
		diseases:    diseases,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Listing from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	priceCents int64,
	isFree bool,
	petType, breed string,
	images []Image,
	diseases []string,
	isAdopted bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		priceCents:  priceCents,
		isFree:      isFree,
		petType:     petType,
		breed:       breed,
		images:      images,
		diseases:    diseases,
		isAdopted:   isAdopted,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (l *Listing) ID() uuid.UUID        { return l.id }
func (l *Listing) OwnerID() uuid.UUID   { return l.ownerID }
func (l *Listing) Name() string         { return l.name }
func (l *Listing) Description() string  { return l.description }
func (l *Listing) PriceCents() int64    { return l.priceCents }
func (l *Listing) IsFree() bool         { return l.isFree }
func (l *Listing) PetType() string      { return l.petType }
func (l *Listing) Breed() string        { return l.breed }
func (l *Listing) Images() []Image      { return l.images }
func (l *Listing) Diseases() []string   { return l.diseases }
func (l *Listing) IsAdopted() bool      { return l.isAdopted }
func (l *Listing) Version() int64       { return l.version }
func (l *Listing) CreatedAt() time.Time { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time { return l.updatedAt }

// --- Behavior ---

// IsOwnedBy checks whether the listing belongs to the given user.
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.ownerID == userID
}

// UpdateDetails overwrites the mutable fields of the listing. The owner and
// adoption flag are never touched here.
func (l *Listing) UpdateDetails(
	name, description string,
	priceCents int64,
	isFree bool,
	petType, breed string,
	diseases []string,
) {
	l.name = name
	l.description = description
	l.priceCents = priceCents
	l.isFree = isFree
	l.petType = petType
	l.breed = breed
	l.diseases = diseases
	l.version++
	l.updatedAt = time.Now().UTC()
}

// ReplaceImages swaps in a new image list. Callers keep the old list when no
// replacement images made it through upload.
func (l *Listing) ReplaceImages(images []Image) {
	if len(images) < 1 {
		return
	}
	l.images = images
	l.version++
	l.updatedAt = time.Now().UTC()
}

// MarkAdopted flips the adoption flag. The transition is monotonic: once
// adopted, a listing never becomes available again. Repeated calls are
// accepted, not rejected.
func (l *Listing) MarkAdopted() {
	l.isAdopted = true
	l.version++
	l.updatedAt = time.Now().UTC()
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicListingEvents = "listing.events"
	TopicPaymentEvents = "payment.events"
)

// Event types.
const (
	ListingCreated   = "listing.created"
	ListingDeleted   = "listing.deleted"
	ListingAdopted   = "listing.adopted"
	PaymentCompleted = "payment.completed"
)

// ListingCreatedEvent is published when a new listing goes live.
type ListingCreatedEvent struct {
	ListingID  uuid.UUID `json:"listing_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	PetType    string    `json:"pet_type"`
	PriceCents int64     `json:"price_cents"`
	IsFree     bool      `json:"is_free"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ListingDeletedEvent is published after a listing and its media are removed.
type ListingDeletedEvent struct {
	ListingID  uuid.UUID `json:"listing_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	ImageCount int       `json:"image_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ListingAdoptedEvent is published when a listing is marked adopted.
type ListingAdoptedEvent struct {
	ListingID  uuid.UUID `json:"listing_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	AdopterID  uuid.UUID `json:"adopter_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentCompletedEvent arrives from the payment service when a buyer's
// payment for a listing clears.
type PaymentCompletedEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	ListingID   uuid.UUID `json:"listing_id"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawMart-Adoption/service-listing/internal/events"
)

// TestPaymentCompleted_AdoptsListing verifies that when a PaymentCompletedEvent
// is published to payment.events, the listing service picks it up, marks the
// paid listing as adopted and announces the adoption on listing.events.
func TestPaymentCompleted_AdoptsListing(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupListingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Seed an available listing.
	listingID := uuid.New()
	ownerID := uuid.New()
	buyerID := uuid.New()
	seedAvailableListing(t, infra.DB, listingID, ownerID)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish PaymentCompletedEvent.
	evt := events.PaymentCompletedEvent{
		PaymentID:   uuid.New(),
		ListingID:   listingID,
		BuyerID:     buyerID,
		AmountCents: 12050,
		Currency:    "USD",
		OccurredAt:  time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, events.TopicPaymentEvents,
		"service-payment", events.PaymentCompleted, evt)

	// Assert: the listing is marked adopted.
	model := waitForAdopted(t, infra.DB, listingID, 15*time.Second)
	assert.True(t, model.IsAdopted)

	// Assert: ListingAdoptedEvent on listing.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicListingEvents,
		events.ListingAdopted, 15*time.Second)

	var adopted events.ListingAdoptedEvent
	require.NoError(t, ce.ParseData(&adopted))
	assert.Equal(t, listingID, adopted.ListingID)
	assert.Equal(t, ownerID, adopted.OwnerID)
	assert.Equal(t, buyerID, adopted.AdopterID)
}

package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/PawMart-Adoption/service-listing/internal/application"
	"github.com/PawMart-Adoption/service-listing/internal/events"
	"github.com/PawMart-Adoption/service-listing/internal/kafka"
)

// PaymentEventConsumer listens to payment events and marks the paid listing
// as adopted on behalf of the buyer.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.ListingService
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	service *application.ListingService,
	logger *zap.Logger,
) *PaymentEventConsumer {
	c := kafka.NewConsumer(brokers, groupID, events.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: c,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. Blocks until ctx is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var ce kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &ce); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch ce.Type {
	case events.PaymentCompleted:
		return c.handlePaymentCompleted(ctx, ce)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", ce.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentCompleted(ctx context.Context, ce kafka.CloudEvent) error {
	var evt events.PaymentCompletedEvent
	if err := ce.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentCompletedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing payment completed event",
		zap.String("listing_id", evt.ListingID.String()),
		zap.String("payment_id", evt.PaymentID.String()),
	)

	if _, err := c.service.AdoptListing(ctx, evt.ListingID, evt.BuyerID); err != nil {
		c.logger.Error("failed to mark listing adopted after payment",
			zap.String("listing_id", evt.ListingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("listing adopted after payment",
		zap.String("listing_id", evt.ListingID.String()),
	)
	return nil
}

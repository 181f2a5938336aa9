//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PawMart-Adoption/service-listing/internal/application"
	"github.com/PawMart-Adoption/service-listing/internal/consumer"
	"github.com/PawMart-Adoption/service-listing/internal/events"
	"github.com/PawMart-Adoption/service-listing/internal/kafka"
	"github.com/PawMart-Adoption/service-listing/internal/media"
	"github.com/PawMart-Adoption/service-listing/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// listingStack holds wired-up listing service components.
type listingStack struct {
	Service         *application.ListingService
	Consumer        *consumer.PaymentEventConsumer
	CleanupProducer func()
}

// nopStorage satisfies media.Storage for flows that never touch the media host.
type nopStorage struct{}

func (nopStorage) Upload(_ context.Context, localPath string) (*media.Asset, error) {
	return &media.Asset{URL: "https://media.test/" + localPath, StorageID: "sid-" + localPath}, nil
}

func (nopStorage) Delete(_ context.Context, _ string) error { return nil }

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start PostgreSQL container with log-based wait strategy.
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_listings",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_listings sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(&repository.ListingModel{}, &repository.PostModel{}))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, events.TopicListingEvents, events.TopicPaymentEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupListingStack wires up the full listing service stack.
func setupListingStack(t *testing.T, db *gorm.DB, brokers []string) *listingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	listingRepo := repository.NewGormListingRepository(db)
	producer := kafka.NewProducer(brokers, logger)
	listingSvc := application.NewListingService(listingRepo, nopStorage{}, producer, logger)

	groupID := fmt.Sprintf("test-listing-%s", uuid.New().String()[:8])
	paymentConsumer := consumer.NewPaymentEventConsumer(brokers, groupID, listingSvc, logger)

	return &listingStack{
		Service:         listingSvc,
		Consumer:        paymentConsumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedAvailableListing inserts a not-yet-adopted listing for testing.
func seedAvailableListing(t *testing.T, db *gorm.DB, listingID, ownerID uuid.UUID) {
	t.Helper()
	now := time.Now().UTC()

	images, _ := json.Marshal([]map[string]string{
		{"url": "https://media.test/milo.jpg", "storage_id": "sid-milo"},
	})
	diseases, _ := json.Marshal([]string{"none"})

	model := repository.ListingModel{
		ID:          listingID,
		OwnerID:     ownerID,
		Name:        "Milo",
		Description: "Friendly orange tabby",
		PriceCents:  12050,
		IsFree:      false,
		PetType:     "cat",
		Breed:       "tabby",
		Images:      images,
		Diseases:    diseases,
		IsAdopted:   false,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed listing")
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForAdopted polls the listings table until the adoption flag is set.
func waitForAdopted(t *testing.T, db *gorm.DB, listingID uuid.UUID, timeout time.Duration) repository.ListingModel {
	t.Helper()
	var result repository.ListingModel
	require.Eventually(t, func() bool {
		var model repository.ListingModel
		err := db.Where("id = ?", listingID).First(&model).Error
		if err != nil {
			return false
		}
		if model.IsAdopted {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "listing was not marked adopted")
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}

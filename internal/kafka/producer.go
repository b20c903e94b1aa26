package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// TopicCustomerProcessed receives one event per customer per batch run.
const TopicCustomerProcessed = "customer_processed"

// ProcessedEvent describes the outcome of processing one customer.
type ProcessedEvent struct {
	CustomerID  int64     `json:"customer_id"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	FinalPrice  float64   `json:"final_price"`
	Notified    bool      `json:"notified"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Producer publishes processing events. Implementations must be safe for
// concurrent use by the batch workers.
type Producer interface {
	// PublishProcessedEvent sends a per-customer outcome event. The
	// customer ID is used as the message key so events for one customer
	// stay ordered within a partition.
	PublishProcessedEvent(ctx context.Context, event *ProcessedEvent) error
	// Close closes the underlying Kafka writer.
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaProducer creates a producer writing to TopicCustomerProcessed.
func NewKafkaProducer(brokers []string, log *logger.Logger) (Producer, error) {
	if len(brokers) == 0 {
		log.Errorw("Kafka brokers list is empty in config, cannot create producer")
		return nil, errors.New("kafka brokers are not configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicCustomerProcessed,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Infow("Kafka producer initialized", "brokers", brokers, "topic", TopicCustomerProcessed)

	return &kafkaProducer{
		writer: writer,
		log:    log,
	}, nil
}

// PublishProcessedEvent marshals the event to JSON and writes it.
func (k *kafkaProducer) PublishProcessedEvent(ctx context.Context, event *ProcessedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		k.log.Errorw("Failed to marshal processed event for Kafka", "error", err, "customerID", event.CustomerID)
		return fmt.Errorf("kafka: failed to marshal message data: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.CustomerID, 10)),
		Value: value,
		Time:  time.Now(),
	}

	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(writeCtx, message); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			k.log.Errorw("Kafka write timeout exceeded", "error", err, "customerID", event.CustomerID)
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		k.log.Errorw("Failed to write message to Kafka", "error", err, "customerID", event.CustomerID)
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Debugw("Published processed event to Kafka", "customerID", event.CustomerID, "status", event.Status)
	return nil
}

// Close closes the Kafka writer.
func (k *kafkaProducer) Close() error {
	k.log.Infow("Closing Kafka producer writer...")
	if err := k.writer.Close(); err != nil {
		k.log.Errorw("Failed to close Kafka writer", "error", err)
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	return nil
}

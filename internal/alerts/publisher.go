package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// Alert kinds emitted by the analytics engine.
const (
	KindDuplicateRegistrations = "duplicate_registrations"
	KindPaymentOutliers        = "payment_outliers"
)

// Alert is one anomaly notification for the operations channel.
type Alert struct {
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher defines the contract for pushing anomaly alerts downstream.
type Publisher interface {
	Publish(ctx context.Context, alert *Alert) error
	Close() error
}

// KafkaConfig contains configuration for the Kafka alert publisher.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	RetryMax int
	Timeout  time.Duration
}

// DefaultKafkaConfig returns a default publisher configuration.
func DefaultKafkaConfig() *KafkaConfig {
	return &KafkaConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "analytics-alerts",
		RetryMax: 3,
		Timeout:  10 * time.Second,
	}
}

// kafkaPublisher publishes alerts to a Kafka topic, keyed by alert kind so
// that consumers see per-kind ordering.
type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher creates a Kafka-backed alert publisher.
func NewKafkaPublisher(cfg *KafkaConfig) (Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaPublisher{producer: producer, topic: cfg.Topic}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, alert *Alert) error {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(alert.Kind),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("severity"), Value: []byte(alert.Severity)},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// noopPublisher drops alerts. Used when no brokers are configured so the
// analytics service never has to care whether alerting is wired.
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that discards every alert.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, alert *Alert) error { return nil }
func (noopPublisher) Close() error                                   { return nil }

package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"eventx/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// LifecycleProducer publishes ticket lifecycle messages.
type LifecycleProducer interface {
	PublishTicketMinted(ctx context.Context, msg TicketMinted) error
	PublishEventCreated(ctx context.Context, msg EventCreated) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka lifecycle producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	ChainID          int64
	Contract         string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "ticket-lifecycle",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// SaramaConfig maps cfg onto a sarama producer configuration.
func (cfg *KafkaProducerConfig) SaramaConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = cfg.RequiredAcks
	saramaConfig.Producer.Compression = cfg.CompressionType
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = cfg.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes

	if cfg.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one event's messages ordered.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

// KafkaLifecycleProducer handles publishing lifecycle messages to Kafka
type KafkaLifecycleProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewKafkaLifecycleProducer connects to the brokers in cfg.
func NewKafkaLifecycleProducer(cfg *KafkaProducerConfig) (*KafkaLifecycleProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, cfg.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaLifecycleProducerWith(producer, cfg), nil
}

// NewKafkaLifecycleProducerWith wraps an existing sync producer.
func NewKafkaLifecycleProducerWith(producer sarama.SyncProducer, cfg *KafkaProducerConfig) *KafkaLifecycleProducer {
	return &KafkaLifecycleProducer{
		producer: producer,
		config:   cfg,
		log:      logger.GetDefault(),
	}
}

func (p *KafkaLifecycleProducer) PublishTicketMinted(ctx context.Context, msg TicketMinted) error {
	return p.publish(ctx, MessageTypeTicketMinted, msg.EventID, msg)
}

func (p *KafkaLifecycleProducer) PublishEventCreated(ctx context.Context, msg EventCreated) error {
	return p.publish(ctx, MessageTypeEventCreated, msg.EventID, msg)
}

func (p *KafkaLifecycleProducer) publish(ctx context.Context, typ MessageType, eventID uint64, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", typ, err)
	}

	envelope := &LifecycleMessage{
		ID:        uuid.New(),
		Type:      typ,
		ChainID:   p.config.ChainID,
		Contract:  p.config.Contract,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}
	messageBytes, err := envelope.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", typ, err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(partitionKey(eventID)),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(envelope),
		Timestamp: envelope.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send %s to Kafka: %w", typ, err)
	}

	p.log.InfoContext(ctx, "Lifecycle message published",
		"topic", p.config.Topic,
		"partition", partition,
		"offset", offset,
		"type", string(typ),
		"event_id", eventID,
	)
	return nil
}

func (p *KafkaLifecycleProducer) createHeaders(m *LifecycleMessage) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(m.ID.String())},
		{Key: []byte("message_type"), Value: []byte(m.Type)},
		{Key: []byte("chain_id"), Value: []byte(strconv.FormatInt(m.ChainID, 10))},
		{Key: []byte("producer"), Value: []byte("eventx-api")},
		{Key: []byte("created_at"), Value: []byte(m.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (p *KafkaLifecycleProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// partitionKey keeps every message of one event on the same partition.
func partitionKey(eventID uint64) string {
	return "event-" + strconv.FormatUint(eventID, 10)
}

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type KafkaProducerClient struct {
	ContentEventsWriter *kafka.Writer
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Kafka.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialized Kafka producer", zap.String("topic", cfg.Kafka.Topic))
	return &KafkaProducerClient{ContentEventsWriter: writer, logger: log}, nil
}

// Publish writes the event keyed by its type so one type stays on one partition.
func (c *KafkaProducerClient) Publish(ctx context.Context, e event.ContentEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal content event: %w", err)
	}
	msg := kafka.Message{Key: []byte(e.Type), Value: payload}
	if err := c.ContentEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write content event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		if err := c.ContentEventsWriter.Close(); err != nil {
			c.logger.Warn("Error closing Kafka producer", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka producer")
}

// LogPublisher stands in for Kafka when no brokers are configured.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) Publish(_ context.Context, e event.ContentEvent) error {
	p.logger.Debug("Content event",
		zap.String("event_id", e.ID.String()),
		zap.String("type", string(e.Type)),
		zap.Strings("sections", e.Sections),
	)
	return nil
}

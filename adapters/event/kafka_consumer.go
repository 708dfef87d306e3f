package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// Handler processes one decoded content event. A returned error leaves the
// message uncommitted so it is redelivered.
type Handler func(ctx context.Context, e event.ContentEvent) error

type KafkaConsumer struct {
	reader *kafka.Reader
	logger logger.Logger
}

func NewKafkaConsumer(cfg config.Config, log logger.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &KafkaConsumer{reader: reader, logger: log.With(zap.String("topic", cfg.Kafka.Topic))}
}

// Run reads until ctx is cancelled.
func (c *KafkaConsumer) Run(ctx context.Context, handle Handler) error {
	c.logger.Info("Worker listening on topic")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		var e event.ContentEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			c.logger.Warn("Skipping undecodable event", zap.Int64("offset", msg.Offset), zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		if err := handle(ctx, e); err != nil {
			c.logger.Error("Failed to process event", err, zap.String("event_id", e.ID.String()))
			continue
		}
		c.commit(ctx, msg)
	}
}

func (c *KafkaConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err)
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

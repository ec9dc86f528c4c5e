package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/sea-level-etl/internal/config"
	"github.com/couchcryptid/sea-level-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces series records to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes all records in a single WriteMessages call.
// Records are keyed by their canonical line, which is a measurement's only
// identity, so two values for the same year stay distinct under compaction.
func (w *Writer) Publish(ctx context.Context, records []domain.SeriesRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d records to %s: %w", len(msgs), w.writer.Topic, err)
	}
	w.logger.Debug("published series records", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SeriesRecord into a Kafka message.
func serializeToMessage(rec domain.SeriesRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize series record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Line),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "period", Value: []byte(rec.Period)},
			{Key: "published_at", Value: []byte(rec.PublishedAt.Format(time.RFC3339))},
		},
	}, nil
}

package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/FedericoMusa/incident-data-etl/internal/config"
	"github.com/FedericoMusa/incident-data-etl/internal/domain"
)

// Reader consumes raw report documents from the source topic as part of a
// consumer group. It implements pipeline.BatchReader.
type Reader struct {
	reader        *kafkago.Reader
	logger        *slog.Logger
	flushInterval time.Duration
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaSourceTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return &Reader{
		reader:        r,
		logger:        logger,
		flushInterval: cfg.BatchFlushInterval,
	}
}

// ReadBatch fetches up to batchSize messages, returning early with a partial
// batch once the flush interval elapses so low-traffic periods still make
// progress. Offsets are not committed here; each report carries a Commit
// closure the pipeline calls after a successful load.
func (r *Reader) ReadBatch(ctx context.Context, batchSize int) ([]domain.RawReport, error) {
	flushCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	batch := make([]domain.RawReport, 0, batchSize)
	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(flushCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break // flush interval elapsed, hand over what we have
			}
			if len(batch) > 0 {
				r.logger.Warn("fetch failed mid-batch, flushing partial batch",
					"error", err, "batch_size", len(batch))
				return batch, nil
			}
			return nil, err
		}
		batch = append(batch, r.mapMessage(msg))
	}
	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessage converts a Kafka message to a RawReport, binding the offset
// commit to this reader's consumer group.
func (r *Reader) mapMessage(msg kafkago.Message) domain.RawReport {
	raw := mapMessageToRawReport(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

func mapMessageToRawReport(msg kafkago.Message) domain.RawReport {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawReport{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}

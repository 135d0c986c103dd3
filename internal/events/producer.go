package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/notuna/order-service/internal/config"
	"github.com/notuna/order-service/internal/entities"

	"github.com/segmentio/kafka-go"
)

// StatusChange is the JSON payload published after every successful order
// transition.
type StatusChange struct {
	OrderID int64     `json:"order_id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}

// Producer publishes order transitions to Kafka. A Producer built without
// brokers is a no-op, so callers never have to nil-check.
type Producer struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewProducer(logger *slog.Logger, cfg config.Kafka) *Producer {
	p := &Producer{logger: logger.With(slog.String("component", "events"))}
	if len(cfg.Brokers) == 0 {
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: cfg.BatchTimeout,
	}
	return p
}

// PublishStatusChange is best-effort: failures are logged, never surfaced to
// the caller, so a broker outage cannot fail an order transition.
func (p *Producer) PublishStatusChange(ctx context.Context, orderID int64, from, to entities.Status) {
	if p.writer == nil {
		return
	}

	event := StatusChange{
		OrderID: orderID,
		From:    string(from),
		To:      string(to),
		At:      time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal event", slog.Any("error", err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%d", orderID)),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.Int64("order_id", orderID), slog.Any("error", err))
	}
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

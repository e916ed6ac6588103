package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/internal/domain"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/jitter"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventOrderPlaced — тип события о новом заказе.
const EventOrderPlaced = "order.placed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer  messageWriter
	logger  logger.Logger
	cfg     *cfg.KafkaCfg
	backoff jitter.Backoff
	now     func() time.Time
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1,
		BatchSize:              1,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return newProducer(writer, logger, cfg)
}

func newProducer(writer messageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
		backoff: jitter.Backoff{
			Base:         200 * time.Millisecond,
			Max:          2 * time.Second,
			JitterFactor: jitter.DefaultJitter,
		},
		now: time.Now,
	}
}

// PublishOrderPlaced отправляет событие о заказе. Ключ сообщения — ID заказа,
// поэтому события одного заказа попадают в одну партицию.
// Временные ошибки брокера повторяются с экспоненциальной паузой.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	value, err := p.GetPayloadBytes(order)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderPlaced)},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}

	attempts := max(p.cfg.MaxAttempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && !p.backoff.Sleep(ctx, attempt-1) {
			return e.Wrap(whereami.WhereAmI(), errors.Join(ctx.Err(), lastErr))
		}

		lastErr = p.writer.WriteMessages(ctx, msg)
		if lastErr == nil {
			return nil
		}

		p.logger.Warnf("Kafka write failed (order %s, attempt %d/%d): %v", order.ID, attempt+1, attempts, lastErr)
	}

	return e.Wrap(whereami.WhereAmI(), lastErr)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// GetPayloadBytes сериализует событие в JSON через protobuf Struct.
// Суммы передаются строками, чтобы не терять точность.
func (p *Producer) GetPayloadBytes(order *domain.Order) ([]byte, error) {
	items := make([]any, 0, len(order.Items))
	for _, it := range order.Items {
		item := map[string]any{
			"product_id": it.ProductID,
			"name":       it.Name,
			"price":      it.Price.String(),
			"quantity":   it.Quantity,
			"item_total": it.ItemTotal.String(),
		}
		if it.Notes != "" {
			item["notes"] = it.Notes
		}
		items = append(items, item)
	}

	event, err := structpb.NewStruct(map[string]any{
		"event_id":        uuid.NewString(),
		"event_type":      EventOrderPlaced,
		"event_timestamp": p.now().UTC().Format(time.RFC3339Nano),
		"order": map[string]any{
			"id":           order.ID,
			"items":        items,
			"total_amount": order.TotalAmount.String(),
			"currency":     order.Currency,
			"created_at":   order.CreatedAt.Format(time.RFC3339Nano),
			"status":       order.Status.String(),
		},
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return protojson.Marshal(event)
}

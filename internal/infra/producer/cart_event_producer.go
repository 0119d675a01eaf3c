package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// 購物車/訂單變更事件
// 前端畫面訂閱這些事件重新渲染, 核心本身不等待任何訂閱者
const (
	EventCartLineAdded   = "cart_line_added"
	EventCartLineUpdated = "cart_line_updated"
	EventCartLineRemoved = "cart_line_removed"
	EventCartCleared     = "cart_cleared"
	EventOrderPlaced     = "order_placed"
)

type CartChangedEvent struct {
	EventType string          `json:"event_type"`
	UserID    int             `json:"user_id"`
	Line      *model.CartItem `json:"line,omitempty"`
	OccuredAt time.Time       `json:"occured_at"`
}

type OrderPlacedEvent struct {
	EventType string      `json:"event_type"`
	UserID    int         `json:"user_id"`
	Order     model.Order `json:"order"`
	OccuredAt time.Time   `json:"occured_at"`
}

type IEventPublisher interface {
	PublishCartChanged(ctx context.Context, eventType string, userID int, line *model.CartItem) error
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	Close() error
}

// 需要根據userid做分區, 同一使用者的事件保持順序
type CartEventProducer struct {
	writer *kafka.Writer
}

func NewCartEventProducer(brokers []string, topic string) *CartEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}
	return &CartEventProducer{writer: writer}
}

func (p *CartEventProducer) PublishCartChanged(ctx context.Context, eventType string, userID int, line *model.CartItem) error {
	event := CartChangedEvent{
		EventType: eventType,
		UserID:    userID,
		Line:      line,
		OccuredAt: time.Now(),
	}
	return p.publish(ctx, userID, eventType, event)
}

func (p *CartEventProducer) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	event := OrderPlacedEvent{
		EventType: EventOrderPlaced,
		UserID:    order.UserID,
		Order:     *order,
		OccuredAt: time.Now(),
	}
	return p.publish(ctx, order.UserID, EventOrderPlaced, event)
}

func (p *CartEventProducer) publish(ctx context.Context, userID int, eventType string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", userID)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(eventType),
			},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

func (p *CartEventProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher 不發送任何事件, 測試與離線模式使用
type NoopPublisher struct{}

func (NoopPublisher) PublishCartChanged(ctx context.Context, eventType string, userID int, line *model.CartItem) error {
	return nil
}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

var (
	_ IEventPublisher = (*CartEventProducer)(nil)
	_ IEventPublisher = NoopPublisher{}
)

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

const (
	OrderCreatedQueue       = "order.created"
	OrderStatusChangedQueue = "order.status_changed"
)

// Publisher emits order lifecycle events for downstream consumers
// (fulfillment, notifications). Publishing is best effort: the order is
// already durable in Postgres by the time an event goes out.
type Publisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) error
	Close() error
}

// OrderCreatedEvent is the wire contract of the order.created queue
type OrderCreatedEvent struct {
	EventType string           `json:"event_type"`
	OrderID   string           `json:"order_id"`
	Items     []OrderItemEvent `json:"items"`
	Subtotal  float64          `json:"subtotal"`
	Shipping  float64          `json:"shipping_cost"`
	Total     float64          `json:"total"`
	Wilaya    string           `json:"wilaya"`
	Timestamp time.Time        `json:"timestamp"`
}

type OrderItemEvent struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderStatusChangedEvent is the wire contract of the order.status_changed queue
type OrderStatusChangedEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

type amqpPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher connects to RabbitMQ and declares the order queues so
// publish never fails due to missing infra.
func NewAMQPPublisher(url string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	for _, queue := range []string{OrderCreatedQueue, OrderStatusChangedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &amqpPublisher{conn: conn, ch: ch}, nil
}

func (p *amqpPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	ev := OrderCreatedEvent{
		EventType: "OrderCreated",
		OrderID:   order.ID.String(),
		Subtotal:  order.Subtotal,
		Shipping:  order.ShippingCost,
		Total:     order.Total,
		Wilaya:    order.Customer.Wilaya,
		Timestamp: time.Now().UTC(),
	}
	for _, item := range order.Items {
		ev.Items = append(ev.Items, OrderItemEvent{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCreated: %w", err)
	}
	return p.publishJSON(ctx, OrderCreatedQueue, body)
}

func (p *amqpPublisher) OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) error {
	ev := OrderStatusChangedEvent{
		EventType: "OrderStatusChanged",
		OrderID:   order.ID.String(),
		From:      string(from),
		To:        string(order.Status),
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderStatusChanged: %w", err)
	}
	return p.publishJSON(ctx, OrderStatusChangedQueue, body)
}

func (p *amqpPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher is used when no AMQP URL is configured
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *domain.Order) error { return nil }
func (NopPublisher) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}
func (NopPublisher) Close() error { return nil }

var _ Publisher = (*amqpPublisher)(nil)
var _ Publisher = NopPublisher{}

// NewPublisher returns the AMQP publisher when a URL is configured, the nop
// publisher otherwise.
func NewPublisher(url string, logger *zap.Logger) Publisher {
	if url == "" {
		logger.Info("AMQP not configured, order events disabled")
		return NopPublisher{}
	}
	pub, err := NewAMQPPublisher(url)
	if err != nil {
		logger.Warn("Failed to connect to AMQP, order events disabled", zap.Error(err))
		return NopPublisher{}
	}
	return pub
}

package services

import (
	"encoding/json"
	"log"
	"time"

	"lanari/internal/models"
	"lanari/pkg/rabbitmq"
)

// Routing keys of the order events.
const (
	EventOrderCreated      = "order.created"
	EventOrderPaid         = "order.paid"
	EventOrderStatusChange = "order.status_changed"
)

// EventPublisher publishes a message to a broker exchange.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderEvent is the payload of every order event.
type OrderEvent struct {
	Event      string             `json:"event"`
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     models.OrderStatus `json:"status"`
	TotalPLN   int64              `json:"total_pln"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// publishOrderEvent runs after the database commit; a failed publish is logged and dropped.
func publishOrderEvent(p EventPublisher, routingKey string, order *models.Order) {
	if p == nil {
		return
	}

	body, err := json.Marshal(OrderEvent{
		Event:      routingKey,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPLN:   order.TotalPLN,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}

	if err := p.Publish(rabbitmq.OrderExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	log.Printf("Published %s event for order %s", routingKey, order.ID)
}

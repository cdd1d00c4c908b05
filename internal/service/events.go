package service

import (
	"context"
	"time"

	"pos-service/internal/models"

	"github.com/google/uuid"
)

type OrderCreatedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   uuid.UUID          `json:"order_id"`
	Code      string             `json:"code"`
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	ChangedBy string             `json:"changed_by,omitempty"`
	ChangedAt time.Time          `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}

package service

import (
	"context"

	"pos-service/internal/models"

	"github.com/google/uuid"
)

// Policy — поведение, различающееся между развёртываниями.
type Policy struct {
	// Разрешить правку позиций в статусе preparing (не только pending).
	AllowItemEditInPreparing bool
	// Списывать прямой остаток недедуктируемых продуктов сразу при правке
	// позиций; тогда завершение заказа прямой остаток не трогает,
	// а отмена из pending возвращает его.
	EagerDirectDeduct bool
	// Разрешить completed -> cancelled с возвратом списанного склада.
	AllowCompletedCancel bool
}

type CreateOrderInput struct {
	CustomerID   *uuid.UUID
	CustomerName *string
}

type OrderListFilter struct {
	CustomerID *uuid.UUID
	Status     *models.OrderStatus
	Limit      int
	Offset     int
}

// Availability — результат расчёта доступности на текущий момент.
type Availability struct {
	Units    int64
	Warnings []ConversionWarning
}

// TransitionResult — итог принятого перехода статуса.
type TransitionResult struct {
	Order             *models.Order
	HistoryEntry      *models.OrderStatusHistory // nil, если переход был no-op
	IngredientChanges []IngredientChange
	ProductChanges    []ProductStockChange
	Unchanged         bool
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByCode(ctx context.Context, code string) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) (bool, error)

	AddItem(ctx context.Context, orderID, productID uuid.UUID, quantity int64) (*models.OrderItem, error)
	UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, quantity int64) (*models.OrderItem, error)
	RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*models.Order, error)

	GetAvailableUnits(ctx context.Context, productID uuid.UUID) (Availability, error)
	TransitionStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus) (*TransitionResult, error)
}

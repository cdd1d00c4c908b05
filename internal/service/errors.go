package service

import (
	"errors"
	"fmt"
	"strings"

	"pos-service/internal/models"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrItemNotFound       = errors.New("order item not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
	ErrOrderNotEditable   = errors.New("order items can no longer be edited")
	ErrRecipeLineInvalid  = errors.New("recipe line quantity must be > 0")
	ErrIngredientShort    = errors.New("ingredient stock is insufficient")
)

// Shortfall — нехватка по конкретному продукту при завершении заказа.
type Shortfall struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int64
	Available   int64
}

// InsufficientStockError агрегирует все нехватки перехода в completed:
// переход либо проходит целиком, либо не трогает склад вовсе.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s: requested %d, available %d", s.ProductName, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// InsufficientAvailabilityError — отказ при добавлении/изменении позиции.
type InsufficientAvailabilityError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientAvailabilityError) Error() string {
	return fmt.Sprintf("insufficient availability for %s: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Заказы ---

type CreateOrderRequest struct {
	CustomerID   *uuid.UUID `json:"customer_id"`
	CustomerName *string    `json:"customer_name"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

type UpdateItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Каталог ---

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Deductable  bool            `json:"deductable"`
	Stock       int64           `json:"stock"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Deductable  *bool            `json:"deductable"`
}

type RecipeLineRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	RequiredUnit string          `json:"required_unit"`
}

type SetRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines"`
}

type AddProductStockRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// --- Склад ---

type CreateIngredientRequest struct {
	Name         string          `json:"name" binding:"required"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	Stock        decimal.Decimal `json:"stock"`
	Unit         string          `json:"unit" binding:"required"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Notes        string          `json:"notes"`
}

type UpdateIngredientRequest struct {
	Name         *string          `json:"name"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit"`
	Notes        *string          `json:"notes"`
}

type StockMoveRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Unit   string          `json:"unit"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// --- Ответы ---

type AvailabilityResponse struct {
	ProductID uuid.UUID           `json:"product_id"`
	Units     int64               `json:"units"`
	Warnings  []ConversionWarning `json:"warnings,omitempty"`
}

type ConversionWarning struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	FromUnit       string    `json:"from_unit"`
	ToUnit         string    `json:"to_unit"`
}

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
}

func (Category) TableName() string { return "categories" }

type Ingredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"type:text;not null"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	Stock        decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Unit         string          `gorm:"type:text;not null"` // ml, g, pcs и т.д.
	ReorderPoint decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	CostPerUnit  decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0"`
	Notes        string          `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Ingredient) TableName() string { return "ingredients" }

func (i *Ingredient) IsLowStock() bool {
	return i.Stock.LessThanOrEqual(i.ReorderPoint)
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Stock       int64           `gorm:"not null;default:0"` // авторитетен только для !Deductable
	Description string          `gorm:"type:text"`
	Deductable  bool            `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Recipe []ProductIngredient `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

type ProductIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_product_ingredients_pair"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_product_ingredients_pair"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,4);not null"` // расход на единицу продукта
	RequiredUnit string          `gorm:"type:text;not null"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (ProductIngredient) TableName() string { return "product_ingredients" }

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code         string          `gorm:"type:text;not null;uniqueIndex"` // внешний код заказа, не ID
	CustomerID   *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName *string         `gorm:"type:text"`
	Status       OrderStatus     `gorm:"type:text;not null;default:'pending';index"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"` // всегда пересчитывается из позиций

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"` // пара (order, product) не уникальна
	Quantity  int64     `gorm:"not null"`
	// Цена фиксируется в момент добавления позиции и не меняется при смене цены продукта
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderStatusHistory struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"type:text;not null"`
	ChangedBy *string     `gorm:"type:text"` // null для системных переходов

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (OrderStatusHistory) TableName() string { return "order_status_history" }

package service

import (
	"context"

	"pos-service/internal/models"
	"pos-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Моки для всех зависимостей сервисов

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc       func(ctx context.Context, o *models.Order) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByCodeFunc    func(ctx context.Context, code string) (*models.Order, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdateTotalFunc  func(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	ListFunc         func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	ExistsFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	if m.UpdateTotalFunc != nil {
		return m.UpdateTotalFunc(ctx, id, total)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

// MockOrderItemRepo
type MockOrderItemRepo struct {
	CreateFunc         func(ctx context.Context, item *models.OrderItem) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	GetByOrderIDFunc   func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	UpdateQuantityFunc func(ctx context.Context, id uuid.UUID, quantity int64, lineTotal decimal.Decimal) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) (bool, error)
	SumByOrderFunc     func(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

func (m *MockOrderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64, lineTotal decimal.Decimal) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, quantity, lineTotal)
	}
	return nil
}

func (m *MockOrderItemRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockOrderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	if m.SumByOrderFunc != nil {
		return m.SumByOrderFunc(ctx, orderID)
	}
	return decimal.Zero, nil
}

// MockProductRepo
type MockProductRepo struct {
	CreateFunc        func(ctx context.Context, p *models.Product) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc          func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdateFieldsFunc  func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) (bool, error)
	GetRecipeFunc     func(ctx context.Context, productID uuid.UUID) ([]models.ProductIngredient, error)
	ReplaceRecipeFunc func(ctx context.Context, productID uuid.UUID, lines []models.ProductIngredient) error
	AdjustStockFunc   func(ctx context.Context, id uuid.UUID, delta int64) (bool, error)
	AddStockFunc      func(ctx context.Context, id uuid.UUID, amount int64) error
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) GetRecipe(ctx context.Context, productID uuid.UUID) ([]models.ProductIngredient, error) {
	if m.GetRecipeFunc != nil {
		return m.GetRecipeFunc(ctx, productID)
	}
	return nil, nil
}

func (m *MockProductRepo) ReplaceRecipe(ctx context.Context, productID uuid.UUID, lines []models.ProductIngredient) error {
	if m.ReplaceRecipeFunc != nil {
		return m.ReplaceRecipeFunc(ctx, productID, lines)
	}
	return nil
}

func (m *MockProductRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (bool, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, delta)
	}
	return true, nil
}

func (m *MockProductRepo) AddStock(ctx context.Context, id uuid.UUID, amount int64) error {
	if m.AddStockFunc != nil {
		return m.AddStockFunc(ctx, id, amount)
	}
	return nil
}

// MockIngredientRepo
type MockIngredientRepo struct {
	CreateFunc       func(ctx context.Context, ing *models.Ingredient) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	ListFunc         func(ctx context.Context, f repository.IngredientListFilter) ([]models.Ingredient, int64, error)
	ListLowStockFunc func(ctx context.Context) ([]models.Ingredient, error)
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
	AdjustStockFunc  func(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error)
	AddStockFunc     func(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

func (m *MockIngredientRepo) Create(ctx context.Context, ing *models.Ingredient) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ing)
	}
	return nil
}

func (m *MockIngredientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIngredientRepo) List(ctx context.Context, f repository.IngredientListFilter) ([]models.Ingredient, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockIngredientRepo) ListLowStock(ctx context.Context) ([]models.Ingredient, error) {
	if m.ListLowStockFunc != nil {
		return m.ListLowStockFunc(ctx)
	}
	return nil, nil
}

func (m *MockIngredientRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockIngredientRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockIngredientRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, delta)
	}
	return true, nil
}

func (m *MockIngredientRepo) AddStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if m.AddStockFunc != nil {
		return m.AddStockFunc(ctx, id, amount)
	}
	return nil
}

// MockCategoryRepo
type MockCategoryRepo struct {
	CreateFunc  func(ctx context.Context, c *models.Category) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListFunc    func(ctx context.Context) ([]models.Category, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

// MockHistoryRepo
type MockHistoryRepo struct {
	AppendFunc       func(ctx context.Context, entry *models.OrderStatusHistory) error
	ListByOrderFunc  func(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error)
	CountByOrderFunc func(ctx context.Context, orderID uuid.UUID) (int64, error)
}

func (m *MockHistoryRepo) Append(ctx context.Context, entry *models.OrderStatusHistory) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}

func (m *MockHistoryRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	if m.ListByOrderFunc != nil {
		return m.ListByOrderFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockHistoryRepo) CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	if m.CountByOrderFunc != nil {
		return m.CountByOrderFunc(ctx, orderID)
	}
	return 0, nil
}

// MockEventBus
type MockEventBus struct {
	PublishOrderCreatedFunc       func(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChangedFunc func(ctx context.Context, e OrderStatusChangedEvent) error
}

func (m *MockEventBus) PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error {
	if m.PublishOrderCreatedFunc != nil {
		return m.PublishOrderCreatedFunc(ctx, e)
	}
	return nil
}

func (m *MockEventBus) PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error {
	if m.PublishOrderStatusChangedFunc != nil {
		return m.PublishOrderStatusChangedFunc(ctx, e)
	}
	return nil
}

// testRepos собирает Repository поверх моков. DB == nil: WithTx выполняет
// замыкание на том же наборе репо, без транзакции.
func testRepos(
	orders *MockOrderRepo,
	items *MockOrderItemRepo,
	products *MockProductRepo,
	ingredients *MockIngredientRepo,
	categories *MockCategoryRepo,
	history *MockHistoryRepo,
) *repository.Repository {
	if orders == nil {
		orders = &MockOrderRepo{}
	}
	if items == nil {
		items = &MockOrderItemRepo{}
	}
	if products == nil {
		products = &MockProductRepo{}
	}
	if ingredients == nil {
		ingredients = &MockIngredientRepo{}
	}
	if categories == nil {
		categories = &MockCategoryRepo{}
	}
	if history == nil {
		history = &MockHistoryRepo{}
	}
	return &repository.Repository{
		Orders:      orders,
		OrderItems:  items,
		Products:    products,
		Ingredients: ingredients,
		Categories:  categories,
		History:     history,
	}
}

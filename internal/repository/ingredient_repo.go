package repository

import (
	"context"
	"errors"

	"pos-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IngredientListFilter struct {
	CategoryID *uuid.UUID
	Query      string
	Limit      int
	Offset     int
}

type IngredientRepo interface {
	Create(ctx context.Context, ing *models.Ingredient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	List(ctx context.Context, f IngredientListFilter) ([]models.Ingredient, int64, error)
	ListLowStock(ctx context.Context) ([]models.Ingredient, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AdjustStock: атомарное условное списание/пополнение.
	// if stock + delta >= 0 then stock += delta — одним UPDATE, без
	// read-modify-write, чтобы два конкурентных списания не увели склад в минус.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error)
	// AddStock: безусловное пополнение (возврат). Верхней границы нет.
	AddStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepo(db *gorm.DB) IngredientRepo { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, ing *models.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := r.db.WithContext(ctx).First(&ing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ing, err
}

func (r *ingredientRepo) List(ctx context.Context, f IngredientListFilter) ([]models.Ingredient, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Ingredient{})

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []models.Ingredient
	err := q.Order("name ASC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *ingredientRepo) ListLowStock(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	err := r.db.WithContext(ctx).
		Where("stock <= reorder_point").
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *ingredientRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ingredientRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *ingredientRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE ingredients
SET stock = stock + @delta,
    updated_at = now()
WHERE id = @id
  AND stock + @delta >= 0
`, map[string]any{
		"id":    id,
		"delta": delta,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *ingredientRepo) AddStock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE ingredients
SET stock = stock + @amount,
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id":     id,
		"amount": amount,
	}).Error
}

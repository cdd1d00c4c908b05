package repository

import (
	"context"
	"errors"

	"pos-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	Query      string
	Deductable *bool
	Limit      int
	Offset     int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// GetRecipe возвращает строки рецепта с подгруженными ингредиентами.
	GetRecipe(ctx context.Context, productID uuid.UUID) ([]models.ProductIngredient, error)
	// ReplaceRecipe: полная замена рецепта (удалить все строки, создать заново).
	ReplaceRecipe(ctx context.Context, productID uuid.UUID, lines []models.ProductIngredient) error

	// AdjustStock: атомарное условное изменение прямого остатка
	// (для недедуктируемых продуктов), по той же схеме, что и ингредиенты.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (bool, error)
	AddStock(ctx context.Context, id uuid.UUID, amount int64) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Recipe.Ingredient").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}
	if f.Deductable != nil {
		q = q.Where("deductable = ?", *f.Deductable)
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

	var list []models.Product
	err := q.Order("name ASC").Limit(f.Limit).Offset(f.Offset).Preload("Recipe.Ingredient").Find(&list).Error
	return list, total, err
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) GetRecipe(ctx context.Context, productID uuid.UUID) ([]models.ProductIngredient, error) {
	var lines []models.ProductIngredient
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("Ingredient").
		Find(&lines).Error
	return lines, err
}

func (r *productRepo) ReplaceRecipe(ctx context.Context, productID uuid.UUID, lines []models.ProductIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductIngredient{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].ProductID = productID
		}
		return tx.Create(&lines).Error
	})
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
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

func (r *productRepo) AddStock(ctx context.Context, id uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock = stock + @amount,
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id":     id,
		"amount": amount,
	}).Error
}

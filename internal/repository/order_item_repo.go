package repository

import (
	"context"
	"errors"

	"pos-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemRepo interface {
	Create(ctx context.Context, item *models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64, lineTotal decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *orderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var rows []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *orderItemRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64, lineTotal decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("id = ?", id).Updates(map[string]any{
		"quantity":   quantity,
		"line_total": lineTotal,
	}).Error
}

func (r *orderItemRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	type aggRow struct {
		Total decimal.Decimal
	}

	var res aggRow
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(line_total), 0) AS total").
		Where("order_id = ?", orderID).
		Scan(&res).Error
	return res.Total, err
}

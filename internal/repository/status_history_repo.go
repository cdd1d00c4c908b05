package repository

import (
	"context"

	"pos-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusHistoryRepo — только добавление и чтение.
// Методов Update/Delete нет намеренно: журнал неизменяем.
type StatusHistoryRepo interface {
	Append(ctx context.Context, entry *models.OrderStatusHistory) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error)
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type statusHistoryRepo struct{ db *gorm.DB }

func NewStatusHistoryRepo(db *gorm.DB) StatusHistoryRepo { return &statusHistoryRepo{db: db} }

func (r *statusHistoryRepo) Append(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *statusHistoryRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *statusHistoryRepo) CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderStatusHistory{}).
		Where("order_id = ?", orderID).
		Count(&cnt).Error
	return cnt, err
}

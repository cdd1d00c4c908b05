package service

import (
	"context"

	"pos-service/internal/models"
	"pos-service/internal/repository"
	"pos-service/internal/units"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateIngredientInput struct {
	Name         string
	CategoryID   *uuid.UUID
	Stock        decimal.Decimal
	Unit         string
	ReorderPoint decimal.Decimal
	CostPerUnit  decimal.Decimal
	Notes        string
}

type UpdateIngredientInput struct {
	Name         *string
	CategoryID   *uuid.UUID
	ReorderPoint *decimal.Decimal
	CostPerUnit  *decimal.Decimal
	Notes        *string
}

type InventoryService interface {
	CreateIngredient(ctx context.Context, in CreateIngredientInput) (*models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	ListIngredients(ctx context.Context, f repository.IngredientListFilter) ([]models.Ingredient, int64, error)
	ListLowStock(ctx context.Context) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, in UpdateIngredientInput) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) (bool, error)

	// Restock пополняет склад на amount в единице unit (конвертация в родную).
	Restock(ctx context.Context, id uuid.UUID, amount decimal.Decimal, unit string) (*models.Ingredient, error)
	// WriteOff списывает порчу/усушку. ok=false при нехватке остатка.
	WriteOff(ctx context.Context, id uuid.UUID, amount decimal.Decimal, unit string) (*models.Ingredient, error)

	CreateCategory(ctx context.Context, name, description string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)
}

type inventoryService struct {
	repo   *repository.Repository
	ledger *Ledger
	log    *zap.Logger
}

func NewInventoryService(repo *repository.Repository, tbl *units.Table, log *zap.Logger) InventoryService {
	return &inventoryService{repo: repo, ledger: NewLedger(tbl, log), log: log}
}

func (s *inventoryService) CreateIngredient(ctx context.Context, in CreateIngredientInput) (*models.Ingredient, error) {
	if in.Stock.Sign() < 0 {
		return nil, ErrInvalidQuantity
	}

	if in.CategoryID != nil {
		c, err := s.repo.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
	}

	ing := &models.Ingredient{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		Stock:        in.Stock,
		Unit:         units.Normalize(in.Unit),
		ReorderPoint: in.ReorderPoint,
		CostPerUnit:  in.CostPerUnit,
		Notes:        in.Notes,
	}
	if err := s.repo.Ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *inventoryService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ing, err := s.repo.Ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, ErrIngredientNotFound
	}
	return ing, nil
}

func (s *inventoryService) ListIngredients(ctx context.Context, f repository.IngredientListFilter) ([]models.Ingredient, int64, error) {
	return s.repo.Ingredients.List(ctx, f)
}

func (s *inventoryService) ListLowStock(ctx context.Context) ([]models.Ingredient, error) {
	return s.repo.Ingredients.ListLowStock(ctx)
}

func (s *inventoryService) UpdateIngredient(ctx context.Context, id uuid.UUID, in UpdateIngredientInput) (*models.Ingredient, error) {
	ing, err := s.repo.Ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, ErrIngredientNotFound
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.CategoryID != nil {
		c, err := s.repo.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *in.CategoryID
	}
	if in.ReorderPoint != nil {
		fields["reorder_point"] = *in.ReorderPoint
	}
	if in.CostPerUnit != nil {
		fields["cost_per_unit"] = *in.CostPerUnit
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}

	if len(fields) > 0 {
		if err := s.repo.Ingredients.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.Ingredients.GetByID(ctx, id)
}

func (s *inventoryService) DeleteIngredient(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Ingredients.Delete(ctx, id)
}

func (s *inventoryService) Restock(ctx context.Context, id uuid.UUID, amount decimal.Decimal, unit string) (*models.Ingredient, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidQuantity
	}

	var updated *models.Ingredient
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		ing, err := tx.Ingredients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ing == nil {
			return ErrIngredientNotFound
		}

		if _, err := s.ledger.ReturnIngredient(ctx, tx, ing, amount, unit); err != nil {
			return err
		}

		updated, err = tx.Ingredients.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) WriteOff(ctx context.Context, id uuid.UUID, amount decimal.Decimal, unit string) (*models.Ingredient, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidQuantity
	}

	var updated *models.Ingredient
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		ing, err := tx.Ingredients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ing == nil {
			return ErrIngredientNotFound
		}

		_, ok, err := s.ledger.DeductIngredient(ctx, tx, ing, amount, unit)
		if err != nil {
			return err
		}
		if !ok {
			return ErrIngredientShort
		}

		updated, err = tx.Ingredients.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	c := &models.Category{Name: name, Description: description}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *inventoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories.List(ctx)
}

func (s *inventoryService) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Categories.Delete(ctx, id)
}

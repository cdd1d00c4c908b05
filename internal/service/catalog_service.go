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

type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Deductable  bool
	Stock       int64 // учитывается только для недедуктируемых
}

type UpdateProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	Deductable  *bool
}

// RecipeLineInput — одна строка рецепта при полной замене.
type RecipeLineInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	RequiredUnit string
}

type CatalogService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)

	// SetRecipe полностью заменяет рецепт продукта.
	SetRecipe(ctx context.Context, productID uuid.UUID, lines []RecipeLineInput) (*models.Product, error)
	AddProductStock(ctx context.Context, id uuid.UUID, amount int64) (*models.Product, error)
}

type catalogService struct {
	repo  *repository.Repository
	units *units.Table
	log   *zap.Logger
}

func NewCatalogService(repo *repository.Repository, tbl *units.Table, log *zap.Logger) CatalogService {
	return &catalogService{repo: repo, units: tbl, log: log}
}

func (s *catalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Deductable:  in.Deductable,
	}
	if !in.Deductable {
		p.Stock = in.Stock
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.Products.List(ctx, f)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*models.Product, error) {
	var updated *models.Product

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}

		fields := map[string]any{}
		if in.Name != nil {
			fields["name"] = *in.Name
		}
		if in.Price != nil {
			fields["price"] = *in.Price
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		if in.Deductable != nil && *in.Deductable != p.Deductable {
			fields["deductable"] = *in.Deductable
			if *in.Deductable {
				// прямой остаток теряет смысл, источником истины
				// становится рецепт
				fields["stock"] = int64(0)
			}
		}

		if len(fields) > 0 {
			if err := tx.Products.UpdateFields(ctx, id, fields); err != nil {
				return err
			}
		}

		updated, err = tx.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Products.Delete(ctx, id)
}

func (s *catalogService) SetRecipe(ctx context.Context, productID uuid.UUID, lines []RecipeLineInput) (*models.Product, error) {
	var updated *models.Product

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}

		seen := make(map[uuid.UUID]struct{}, len(lines))
		rows := make([]models.ProductIngredient, 0, len(lines))

		for _, ln := range lines {
			if ln.Quantity.Sign() <= 0 {
				return ErrRecipeLineInvalid
			}
			if _, dup := seen[ln.IngredientID]; dup {
				return ErrRecipeLineInvalid
			}
			seen[ln.IngredientID] = struct{}{}

			ing, err := tx.Ingredients.GetByID(ctx, ln.IngredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				return ErrIngredientNotFound
			}

			ru := units.Normalize(ln.RequiredUnit)
			if ru == "" {
				ru = units.Normalize(ing.Unit)
			}
			if !s.units.Known(ru, ing.Unit) {
				s.log.Warn("recipe line uses unit pair without conversion factor",
					zap.String("product", p.Name),
					zap.String("ingredient", ing.Name),
					zap.String("from", ru),
					zap.String("to", units.Normalize(ing.Unit)),
				)
			}

			rows = append(rows, models.ProductIngredient{
				ProductID:    productID,
				IngredientID: ln.IngredientID,
				Quantity:     ln.Quantity,
				RequiredUnit: ru,
			})
		}

		if err := tx.Products.ReplaceRecipe(ctx, productID, rows); err != nil {
			return err
		}

		updated, err = tx.Products.GetByID(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *catalogService) AddProductStock(ctx context.Context, id uuid.UUID, amount int64) (*models.Product, error) {
	if amount <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if err := s.repo.Products.AddStock(ctx, id, amount); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

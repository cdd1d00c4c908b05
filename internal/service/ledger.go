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

// IngredientChange — фактическое движение по складу ингредиента
// в его родной единице. Delta < 0 — списание, > 0 — возврат.
type IngredientChange struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Delta          decimal.Decimal `json:"delta"`
	Unverified     bool            `json:"unverified,omitempty"`
}

// ProductStockChange — движение прямого остатка недедуктируемого продукта.
type ProductStockChange struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Delta       int64     `json:"delta"`
}

// Ledger — единственная точка мутации остатков. Списание выполняется
// атомарным условным UPDATE на уровне хранилища; предварительные проверки
// доступности выше по стеку — оптимизация, а не граница корректности.
type Ledger struct {
	units *units.Table
	log   *zap.Logger
}

func NewLedger(tbl *units.Table, log *zap.Logger) *Ledger {
	return &Ledger{units: tbl, log: log}
}

func (l *Ledger) convert(ing *models.Ingredient, amount decimal.Decimal, unit string) (decimal.Decimal, bool) {
	converted, verified := l.units.Convert(amount, unit, ing.Unit)
	if !verified {
		l.log.Warn("unverified unit conversion, falling back to 1:1",
			zap.String("ingredient", ing.Name),
			zap.String("from", units.Normalize(unit)),
			zap.String("to", units.Normalize(ing.Unit)),
		)
	}
	return converted, verified
}

// DeductIngredient списывает amount (в единице unit) со склада ингредиента.
// ok=false — остатка не хватает, ни одна строка не изменена.
func (l *Ledger) DeductIngredient(ctx context.Context, tx *repository.Repository, ing *models.Ingredient, amount decimal.Decimal, unit string) (IngredientChange, bool, error) {
	native, verified := l.convert(ing, amount, unit)

	ok, err := tx.Ingredients.AdjustStock(ctx, ing.ID, native.Neg())
	if err != nil {
		return IngredientChange{}, false, err
	}

	change := IngredientChange{
		IngredientID:   ing.ID,
		IngredientName: ing.Name,
		Unit:           units.Normalize(ing.Unit),
		Delta:          native.Neg(),
		Unverified:     !verified,
	}
	return change, ok, nil
}

// ReturnIngredient возвращает amount на склад. Всегда успешен: верхней
// границы нет, избыточный возврат — инвариант вызывающего, не леджера.
func (l *Ledger) ReturnIngredient(ctx context.Context, tx *repository.Repository, ing *models.Ingredient, amount decimal.Decimal, unit string) (IngredientChange, error) {
	native, verified := l.convert(ing, amount, unit)

	if err := tx.Ingredients.AddStock(ctx, ing.ID, native); err != nil {
		return IngredientChange{}, err
	}

	return IngredientChange{
		IngredientID:   ing.ID,
		IngredientName: ing.Name,
		Unit:           units.Normalize(ing.Unit),
		Delta:          native,
		Unverified:     !verified,
	}, nil
}

// DeductProductStock — прямой остаток недедуктируемого продукта.
func (l *Ledger) DeductProductStock(ctx context.Context, tx *repository.Repository, productID uuid.UUID, qty int64) (bool, error) {
	return tx.Products.AdjustStock(ctx, productID, -qty)
}

func (l *Ledger) ReturnProductStock(ctx context.Context, tx *repository.Repository, productID uuid.UUID, qty int64) error {
	return tx.Products.AddStock(ctx, productID, qty)
}

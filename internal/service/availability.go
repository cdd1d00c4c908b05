package service

import (
	"math"

	"pos-service/internal/models"
	"pos-service/internal/units"

	"github.com/google/uuid"
)

// ConversionWarning — пара единиц без записи в таблице пересчёта:
// расчёт прошёл по множителю 1:1 и может искажать остаток.
type ConversionWarning struct {
	IngredientID   uuid.UUID
	IngredientName string
	FromUnit       string
	ToUnit         string
}

// availableUnits считает, сколько единиц продукта можно произвести сейчас.
// Недедуктируемый продукт — прямой остаток. Дедуктируемый — минимум по всем
// ингредиентам рецепта: floor(остаток в требуемой единице / расход на единицу).
// Один дефицитный ингредиент ограничивает весь выпуск.
// Значение никогда не кэшируется: остатки меняются непрерывно.
func availableUnits(p *models.Product, recipe []models.ProductIngredient, tbl *units.Table) (int64, []ConversionWarning) {
	if !p.Deductable {
		if p.Stock < 0 {
			return 0, nil
		}
		return p.Stock, nil
	}

	if len(recipe) == 0 {
		return 0, nil
	}

	var warnings []ConversionWarning
	minUnits := int64(math.MaxInt64)
	constrained := false

	for i := range recipe {
		line := &recipe[i]
		if line.Quantity.Sign() <= 0 {
			// вырожденная строка, ограничения не даёт
			continue
		}
		if line.Ingredient == nil {
			continue
		}

		converted, verified := tbl.Convert(line.Ingredient.Stock, line.Ingredient.Unit, line.RequiredUnit)
		if !verified {
			warnings = append(warnings, ConversionWarning{
				IngredientID:   line.Ingredient.ID,
				IngredientName: line.Ingredient.Name,
				FromUnit:       units.Normalize(line.Ingredient.Unit),
				ToUnit:         units.Normalize(line.RequiredUnit),
			})
		}

		// округление вниз только здесь, на целых единицах продукта
		possible := converted.Div(line.Quantity).Floor().IntPart()
		if possible < 0 {
			possible = 0
		}
		if possible < minUnits {
			minUnits = possible
		}
		constrained = true
	}

	if !constrained {
		return 0, warnings
	}
	return minUnits, warnings
}

// Package units хранит таблицу пересчёта единиц измерения ингредиентов.
// Таблица фиксированная и версионируемая: новые единицы добавляются здесь,
// а не в местах вызова.
package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Pair struct {
	From string
	To   string
}

type Table struct {
	version string
	factors map[Pair]decimal.Decimal
}

func New(version string, factors map[Pair]decimal.Decimal) *Table {
	return &Table{version: version, factors: factors}
}

func (t *Table) Version() string { return t.version }

// Convert переводит количество из одной единицы в другую.
// Если пары нет в таблице, применяется множитель 1:1, а verified=false —
// вызывающий обязан пробросить это как предупреждение, не как ошибку.
func (t *Table) Convert(qty decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	from = Normalize(from)
	to = Normalize(to)

	if from == to {
		return qty, true
	}
	if f, ok := t.factors[Pair{From: from, To: to}]; ok {
		return qty.Mul(f), true
	}
	return qty, false
}

// Known сообщает, определён ли пересчёт для пары (без выполнения).
func (t *Table) Known(from, to string) bool {
	from = Normalize(from)
	to = Normalize(to)
	if from == to {
		return true
	}
	_, ok := t.factors[Pair{From: from, To: to}]
	return ok
}

func Normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultTable — множители для массы, объёма, штук и ложек.
// Ложки пересчитываются в массу/объём приближённо (вода/сыпучие).
// Особый случай: обжаренное кофейное зерно хранится по массе, а рецепты
// задают его по объёму — 1 кг ~ 2500 мл, обратно 1 мл ~ 0.4 г.
func DefaultTable() *Table {
	return New("2025-06", map[Pair]decimal.Decimal{
		// масса
		{"g", "kg"}: d("0.001"), {"g", "mg"}: d("1000"),
		{"kg", "g"}: d("1000"), {"kg", "mg"}: d("1000000"),
		{"mg", "g"}: d("0.001"), {"mg", "kg"}: d("0.000001"),

		// объём
		{"ml", "l"}: d("0.001"), {"ml", "cl"}: d("0.1"),
		{"l", "ml"}: d("1000"), {"l", "cl"}: d("100"),
		{"cl", "ml"}: d("10"), {"cl", "l"}: d("0.01"),

		// штуки
		{"pcs", "dozen"}: d("0.0833"), {"pcs", "unit"}: d("1"),
		{"dozen", "pcs"}: d("12"), {"dozen", "unit"}: d("12"),
		{"unit", "pcs"}: d("1"), {"unit", "dozen"}: d("0.0833"),

		// ложки <-> масса/объём
		{"g", "tsp"}: d("0.2"), {"g", "tbsp"}: d("0.067"),
		{"kg", "tsp"}: d("200"), {"kg", "tbsp"}: d("67"),
		{"ml", "tsp"}: d("0.2"), {"ml", "tbsp"}: d("0.067"),
		{"l", "tsp"}: d("200"), {"l", "tbsp"}: d("67"),
		{"tbsp", "tsp"}: d("3"), {"tbsp", "ml"}: d("15"), {"tbsp", "g"}: d("15"),
		{"tsp", "tbsp"}: d("0.333333"), {"tsp", "ml"}: d("5"), {"tsp", "g"}: d("5"),

		// кофейное зерно: масса <-> объём
		{"kg", "ml"}: d("2500"), {"g", "ml"}: d("2.5"),
		{"ml", "g"}: d("0.4"), {"ml", "kg"}: d("0.0004"),
	})
}

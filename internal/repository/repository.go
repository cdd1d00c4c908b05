package repository

import "gorm.io/gorm"

type Repository struct {
	DB          *gorm.DB
	Categories  CategoryRepo
	Ingredients IngredientRepo
	Products    ProductRepo
	Orders      OrderRepo
	OrderItems  OrderItemRepo
	History     StatusHistoryRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		Categories:  NewCategoryRepo(db),
		Ingredients: NewIngredientRepo(db),
		Products:    NewProductRepo(db),
		Orders:      NewOrderRepo(db),
		OrderItems:  NewOrderItemRepo(db),
		History:     NewStatusHistoryRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Глобальная транзакция на весь набор репо: либо все мутации
// (позиции, итог, склад, статус, история) коммитятся вместе, либо никакие.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	if r.DB == nil {
		return fn(r)
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}

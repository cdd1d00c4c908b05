package migrate

import (
	"context"

	"pos-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, pg_trgm
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigratePosDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных")

	// Расширения
	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error; err != nil {
			log.Error("Не удалось включить расширение pg_trgm", zap.Error(err))
			return err
		}
		log.Info("Расширения PostgreSQL успешно созданы")
	}

	// Таблицы
	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Ingredient{},
		&models.Product{},
		&models.ProductIngredient{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	// Триггер updated_at
	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_ingredients_updated ON ingredients;
CREATE TRIGGER trg_ingredients_updated
BEFORE UPDATE ON ingredients
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated
BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггеры updated_at", zap.Error(err))
			return err
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	// CHECK-constraint
	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Статусы (так как храним TEXT)
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','processing','preparing','completed','cancelled'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказов", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE order_status_history
  DROP CONSTRAINT IF EXISTS chk_history_status_allowed;
ALTER TABLE order_status_history
  ADD CONSTRAINT chk_history_status_allowed
  CHECK (status IN ('pending','processing','preparing','completed','cancelled'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов журнала", zap.Error(err))
			return err
		}

		// Склад не уходит в минус: вторая линия обороны поверх условных UPDATE
		if err := db.Exec(`
ALTER TABLE ingredients
  DROP CONSTRAINT IF EXISTS chk_ingredients_stock_non_negative;
ALTER TABLE ingredients
  ADD CONSTRAINT chk_ingredients_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для ingredients.stock", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для products.stock", zap.Error(err))
			return err
		}

		// Количество > 0
		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для order_items.quantity", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE product_ingredients
  DROP CONSTRAINT IF EXISTS chk_product_ingredients_quantity_gt_zero;
ALTER TABLE product_ingredients
  ADD CONSTRAINT chk_product_ingredients_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для product_ingredients.quantity", zap.Error(err))
			return err
		}

		// Цены неотрицательные
		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_prices_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_prices_non_negative
  CHECK (unit_price >= 0 AND line_total >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для цен в order_items", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_price_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_price_non_negative
  CHECK (total_price >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для orders.total_price", zap.Error(err))
			return err
		}

		log.Info("CHECK-ограничения успешно созданы")
	}

	// Индексы
	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// Рецепт: одна строка на пару (product, ingredient)
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_product_ingredients_pair
ON product_ingredients (product_id, ingredient_id);
`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс ux_product_ingredients_pair", zap.Error(err))
			return err
		}

		// Для выборок: заказы клиента по дате
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_customer_created
ON orders (customer_id, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_customer_created", zap.Error(err))
			return err
		}

		// Для выборок по статусу
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_status_created", zap.Error(err))
			return err
		}

		// Журнал статусов читается по заказу в хронологическом порядке
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_order_status_history_order_created
ON order_status_history (order_id, created_at ASC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_order_status_history_order_created", zap.Error(err))
			return err
		}

		// Поиск ингредиентов и продуктов по имени (ILIKE)
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_ingredients_name_trgm
ON ingredients USING gin (name gin_trgm_ops);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_ingredients_name_trgm", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_products_name_trgm
ON products USING gin (name gin_trgm_ops);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_products_name_trgm", zap.Error(err))
			return err
		}

		log.Info("Индексы успешно созданы")
	}

	log.Info("Миграция базы данных успешно завершена")
	return nil
}

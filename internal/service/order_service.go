package service

import (
	"context"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/repository"
	"pos-service/internal/units"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type orderService struct {
	repo   *repository.Repository
	ledger *Ledger
	units  *units.Table
	sm     StateMachine
	policy Policy
	events EventBus
	log    *zap.Logger
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, tbl *units.Table, policy Policy, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		ledger: NewLedger(tbl, log),
		units:  tbl,
		sm:     StateMachine{AllowCompletedCancel: policy.AllowCompletedCancel},
		policy: policy,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *orderService) actor(ctx context.Context) *string {
	if a, ok := ActorFromContext(ctx); ok && a != "" {
		return &a
	}
	return nil
}

// editable: позиции правятся в pending; в preparing — только по политике.
func (s *orderService) editable(status models.OrderStatus) bool {
	switch status {
	case models.OrderStatusPending:
		return true
	case models.OrderStatusPreparing:
		return s.policy.AllowItemEditInPreparing
	default:
		return false
	}
}

// recomputeTotal пересчитывает итог заказа из позиций и сохраняет его.
// Вызывается после каждой правки позиций в той же транзакции.
func (s *orderService) recomputeTotal(ctx context.Context, tx *repository.Repository, orderID uuid.UUID) error {
	total, err := tx.OrderItems.SumByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return tx.Orders.UpdateTotal(ctx, orderID, total)
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	rng, err := nanorand.Gen(10)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		Code:         "ORD-" + rng,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Status:       models.OrderStatusPending,
		TotalPrice:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:   order.ID,
			Code:      order.Code,
			CreatedAt: order.CreatedAt,
		})
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) GetOrderByCode(ctx context.Context, code string) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		CustomerID: f.CustomerID,
		Status:     f.Status,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Orders.Delete(ctx, id)
}

func (s *orderService) GetAvailableUnits(ctx context.Context, productID uuid.UUID) (Availability, error) {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return Availability{}, err
	}
	if p == nil {
		return Availability{}, ErrProductNotFound
	}

	n, warnings := availableUnits(p, p.Recipe, s.units)
	return Availability{Units: n, Warnings: warnings}, nil
}

func (s *orderService) AddItem(ctx context.Context, orderID, productID uuid.UUID, quantity int64) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var item *models.OrderItem

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		order, err := tx.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !s.editable(order.Status) {
			return ErrOrderNotEditable
		}

		p, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}

		avail, _ := availableUnits(p, p.Recipe, s.units)
		if avail < quantity {
			return &InsufficientAvailabilityError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   quantity,
				Available:   avail,
			}
		}

		if s.policy.EagerDirectDeduct && !p.Deductable {
			ok, err := s.ledger.DeductProductStock(ctx, tx, p.ID, quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientAvailabilityError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   quantity,
					Available:   avail,
				}
			}
		}

		// цена фиксируется сейчас; дальнейшие изменения цены продукта
		// эту позицию не трогают
		item = &models.OrderItem{
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  quantity,
			UnitPrice: p.Price,
			LineTotal: p.Price.Mul(decimal.NewFromInt(quantity)),
			CreatedAt: s.now(),
		}
		if err := tx.OrderItems.Create(ctx, item); err != nil {
			return err
		}

		return s.recomputeTotal(ctx, tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *orderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, quantity int64) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var item *models.OrderItem

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		order, err := tx.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !s.editable(order.Status) {
			return ErrOrderNotEditable
		}

		item, err = tx.OrderItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != order.ID {
			return ErrItemNotFound
		}

		p, err := tx.Products.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}

		if s.policy.EagerDirectDeduct && !p.Deductable {
			// разница количеств проводится через атомарный условный UPDATE:
			// увеличение может не пройти, уменьшение возвращает остаток
			delta := quantity - item.Quantity
			if delta != 0 {
				ok, err := tx.Products.AdjustStock(ctx, p.ID, -delta)
				if err != nil {
					return err
				}
				if !ok {
					avail, _ := availableUnits(p, p.Recipe, s.units)
					return &InsufficientAvailabilityError{
						ProductID:   p.ID,
						ProductName: p.Name,
						Requested:   quantity,
						Available:   item.Quantity + avail,
					}
				}
			}
		} else {
			avail, _ := availableUnits(p, p.Recipe, s.units)
			if avail < quantity {
				return &InsufficientAvailabilityError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   quantity,
					Available:   avail,
				}
			}
		}

		// цена позиции — снимок на момент создания, не пересчитывается
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(quantity))
		if err := tx.OrderItems.UpdateQuantity(ctx, item.ID, quantity, lineTotal); err != nil {
			return err
		}
		item.Quantity = quantity
		item.LineTotal = lineTotal

		return s.recomputeTotal(ctx, tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *orderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*models.Order, error) {
	var updated *models.Order

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		order, err := tx.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !s.editable(order.Status) {
			return ErrOrderNotEditable
		}

		item, err := tx.OrderItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != order.ID {
			return ErrItemNotFound
		}

		if s.policy.EagerDirectDeduct {
			p, err := tx.Products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if p != nil && !p.Deductable {
				if err := s.ledger.ReturnProductStock(ctx, tx, p.ID, item.Quantity); err != nil {
					return err
				}
			}
		}

		if _, err := tx.OrderItems.Delete(ctx, item.ID); err != nil {
			return err
		}
		if err := s.recomputeTotal(ctx, tx, order.ID); err != nil {
			return err
		}

		updated, err = tx.Orders.GetByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *orderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus) (*TransitionResult, error) {
	actor := s.actor(ctx)

	var res *TransitionResult
	var fromStatus models.OrderStatus

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		order, err := tx.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		fromStatus = order.Status

		// повторный запрос текущего статуса — принятый no-op без записи в журнал
		if order.Status == newStatus {
			res = &TransitionResult{Order: order, Unchanged: true}
			return nil
		}

		if err := s.sm.CanTransition(order.Status, newStatus); err != nil {
			return err
		}

		var ingChanges []IngredientChange
		var prodChanges []ProductStockChange

		switch {
		case newStatus == models.OrderStatusCompleted:
			ingChanges, prodChanges, err = s.deductForCompletion(ctx, tx, order)
		case newStatus == models.OrderStatusCancelled && order.Status == models.OrderStatusCompleted:
			ingChanges, prodChanges, err = s.returnAfterCompletion(ctx, tx, order)
		case newStatus == models.OrderStatusCancelled && s.policy.EagerDirectDeduct:
			// отмена до завершения: вернуть только рано списанный прямой остаток
			prodChanges, err = s.returnEagerDirect(ctx, tx, order)
		}
		if err != nil {
			return err
		}

		if err := tx.Orders.UpdateStatus(ctx, order.ID, newStatus); err != nil {
			return err
		}

		entry := &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    newStatus,
			ChangedBy: actor,
			CreatedAt: s.now(),
		}
		if err := tx.History.Append(ctx, entry); err != nil {
			return err
		}

		updated, err := tx.Orders.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}

		res = &TransitionResult{
			Order:             updated,
			HistoryEntry:      entry,
			IngredientChanges: ingChanges,
			ProductChanges:    prodChanges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !res.Unchanged && s.events != nil {
		changedBy := ""
		if actor != nil {
			changedBy = *actor
		}
		_ = s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:   res.Order.ID,
			Code:      res.Order.Code,
			From:      fromStatus,
			To:        newStatus,
			ChangedBy: changedBy,
			ChangedAt: s.now(),
		})
	}

	return res, nil
}

// itemsByProduct агрегирует позиции заказа по продукту, сохраняя порядок
// первого появления: у одного продукта может быть несколько строк.
func itemsByProduct(items []models.OrderItem) ([]uuid.UUID, map[uuid.UUID]int64) {
	order := make([]uuid.UUID, 0, len(items))
	qty := make(map[uuid.UUID]int64, len(items))
	for _, it := range items {
		if _, seen := qty[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}
	return order, qty
}

// deductForCompletion проводит списание склада при переходе в completed.
// Сначала предварительная проверка со сбором всех нехваток разом, затем
// атомарные списания; любой отказ откатывает транзакцию целиком.
// Предварительная проверка — ранний выход, граница корректности — сами
// условные UPDATE внутри этой же транзакции.
func (s *orderService) deductForCompletion(ctx context.Context, tx *repository.Repository, order *models.Order) ([]IngredientChange, []ProductStockChange, error) {
	productIDs, qtyByProduct := itemsByProduct(order.Items)

	products := make(map[uuid.UUID]*models.Product, len(productIDs))
	for _, pid := range productIDs {
		p, err := tx.Products.GetByID(ctx, pid)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, ErrProductNotFound
		}
		products[pid] = p
	}

	var shortfalls []Shortfall
	for _, pid := range productIDs {
		p := products[pid]
		q := qtyByProduct[pid]

		if !p.Deductable && s.policy.EagerDirectDeduct {
			// прямой остаток уже списан при правке позиций
			continue
		}

		avail, _ := availableUnits(p, p.Recipe, s.units)
		if avail < q {
			shortfalls = append(shortfalls, Shortfall{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   q,
				Available:   avail,
			})
		}
	}
	if len(shortfalls) > 0 {
		return nil, nil, &InsufficientStockError{Shortfalls: shortfalls}
	}

	var ingChanges []IngredientChange
	var prodChanges []ProductStockChange

	for _, pid := range productIDs {
		p := products[pid]
		q := qtyByProduct[pid]

		if p.Deductable {
			for i := range p.Recipe {
				line := &p.Recipe[i]
				if line.Quantity.Sign() <= 0 || line.Ingredient == nil {
					continue
				}
				amount := line.Quantity.Mul(decimal.NewFromInt(q))
				change, ok, err := s.ledger.DeductIngredient(ctx, tx, line.Ingredient, amount, line.RequiredUnit)
				if err != nil {
					return nil, nil, err
				}
				if !ok {
					// конкурентное списание успело раньше — вся транзакция откатится
					return nil, nil, s.freshShortfall(ctx, tx, p, q)
				}
				ingChanges = append(ingChanges, change)
			}
			continue
		}

		if !s.policy.EagerDirectDeduct {
			ok, err := s.ledger.DeductProductStock(ctx, tx, p.ID, q)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				return nil, nil, s.freshShortfall(ctx, tx, p, q)
			}
			prodChanges = append(prodChanges, ProductStockChange{
				ProductID:   p.ID,
				ProductName: p.Name,
				Delta:       -q,
			})
		}
	}

	return ingChanges, prodChanges, nil
}

// freshShortfall перечитывает продукт и строит отказ с актуальной доступностью.
func (s *orderService) freshShortfall(ctx context.Context, tx *repository.Repository, p *models.Product, requested int64) error {
	avail := int64(0)
	if fresh, err := tx.Products.GetByID(ctx, p.ID); err == nil && fresh != nil {
		avail, _ = availableUnits(fresh, fresh.Recipe, s.units)
	}
	return &InsufficientStockError{Shortfalls: []Shortfall{{
		ProductID:   p.ID,
		ProductName: p.Name,
		Requested:   requested,
		Available:   avail,
	}}}
}

// returnAfterCompletion — возврат списанного при completed -> cancelled
// (включается только конфигурацией AllowCompletedCancel).
func (s *orderService) returnAfterCompletion(ctx context.Context, tx *repository.Repository, order *models.Order) ([]IngredientChange, []ProductStockChange, error) {
	productIDs, qtyByProduct := itemsByProduct(order.Items)

	var ingChanges []IngredientChange
	var prodChanges []ProductStockChange

	for _, pid := range productIDs {
		p, err := tx.Products.GetByID(ctx, pid)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, ErrProductNotFound
		}
		q := qtyByProduct[pid]

		if p.Deductable {
			for i := range p.Recipe {
				line := &p.Recipe[i]
				if line.Quantity.Sign() <= 0 || line.Ingredient == nil {
					continue
				}
				amount := line.Quantity.Mul(decimal.NewFromInt(q))
				change, err := s.ledger.ReturnIngredient(ctx, tx, line.Ingredient, amount, line.RequiredUnit)
				if err != nil {
					return nil, nil, err
				}
				ingChanges = append(ingChanges, change)
			}
			continue
		}

		if err := s.ledger.ReturnProductStock(ctx, tx, p.ID, q); err != nil {
			return nil, nil, err
		}
		prodChanges = append(prodChanges, ProductStockChange{
			ProductID:   p.ID,
			ProductName: p.Name,
			Delta:       q,
		})
	}

	return ingChanges, prodChanges, nil
}

// returnEagerDirect — при отмене до завершения возвращает прямой остаток,
// списанный рано по политике EagerDirectDeduct. Ингредиенты на этом этапе
// ещё не списывались.
func (s *orderService) returnEagerDirect(ctx context.Context, tx *repository.Repository, order *models.Order) ([]ProductStockChange, error) {
	productIDs, qtyByProduct := itemsByProduct(order.Items)

	var prodChanges []ProductStockChange
	for _, pid := range productIDs {
		p, err := tx.Products.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if p == nil || p.Deductable {
			continue
		}
		q := qtyByProduct[pid]
		if err := s.ledger.ReturnProductStock(ctx, tx, p.ID, q); err != nil {
			return nil, err
		}
		prodChanges = append(prodChanges, ProductStockChange{
			ProductID:   p.ID,
			ProductName: p.Name,
			Delta:       q,
		})
	}
	return prodChanges, nil
}

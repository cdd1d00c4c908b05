package service

import "pos-service/internal/models"

// Явная таблица переходов: state × requested-state -> allow.
// Отмена из processing/preparing запрещена (заказ уже на кухне),
// completed и cancelled терминальны. Запрос текущего статуса — no-op,
// обрабатывается до таблицы.
var allowedTransitions = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.OrderStatusPending: {
		models.OrderStatusProcessing: true,
		models.OrderStatusPreparing:  true,
		models.OrderStatusCompleted:  true,
		models.OrderStatusCancelled:  true,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusPreparing: true,
		models.OrderStatusCompleted: true,
	},
	models.OrderStatusPreparing: {
		models.OrderStatusCompleted: true,
	},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

type StateMachine struct {
	// AllowCompletedCancel открывает ребро completed -> cancelled
	// (с возвратом списанного склада). По умолчанию выключено.
	AllowCompletedCancel bool
}

func IsValidStatus(s models.OrderStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (m StateMachine) CanTransition(from, to models.OrderStatus) error {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	if from == to {
		return nil
	}
	if from == models.OrderStatusCompleted && to == models.OrderStatusCancelled && m.AllowCompletedCancel {
		return nil
	}
	if allowedTransitions[from][to] {
		return nil
	}
	return &InvalidTransitionError{From: from, To: to}
}

package service

import (
	"errors"
	"testing"

	"pos-service/internal/models"
)

var allStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusPreparing,
	models.OrderStatusCompleted,
	models.OrderStatusCancelled,
}

func TestStateMachine_FullMatrix(t *testing.T) {
	allowed := map[[2]models.OrderStatus]bool{
		{models.OrderStatusPending, models.OrderStatusProcessing}:   true,
		{models.OrderStatusPending, models.OrderStatusPreparing}:    true,
		{models.OrderStatusPending, models.OrderStatusCompleted}:    true,
		{models.OrderStatusPending, models.OrderStatusCancelled}:    true,
		{models.OrderStatusProcessing, models.OrderStatusPreparing}: true,
		{models.OrderStatusProcessing, models.OrderStatusCompleted}: true,
		{models.OrderStatusPreparing, models.OrderStatusCompleted}:  true,
	}

	sm := StateMachine{}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := sm.CanTransition(from, to)
			want := from == to || allowed[[2]models.OrderStatus{from, to}]
			if want && err != nil {
				t.Errorf("%s -> %s: expected allowed, got %v", from, to, err)
			}
			if !want && err == nil {
				t.Errorf("%s -> %s: expected rejection", from, to)
			}
		}
	}
}

func TestStateMachine_SameStatusIsNoop(t *testing.T) {
	sm := StateMachine{}
	for _, s := range allStatuses {
		if err := sm.CanTransition(s, s); err != nil {
			t.Errorf("%s -> %s: %v", s, s, err)
		}
	}
}

func TestStateMachine_CompletedCancelFlag(t *testing.T) {
	strict := StateMachine{}
	if err := strict.CanTransition(models.OrderStatusCompleted, models.OrderStatusCancelled); err == nil {
		t.Fatal("completed -> cancelled must be rejected by default")
	}

	relaxed := StateMachine{AllowCompletedCancel: true}
	if err := relaxed.CanTransition(models.OrderStatusCompleted, models.OrderStatusCancelled); err != nil {
		t.Fatalf("completed -> cancelled with flag: %v", err)
	}
	// флаг открывает ровно одно ребро
	if err := relaxed.CanTransition(models.OrderStatusCancelled, models.OrderStatusCompleted); err == nil {
		t.Fatal("cancelled -> completed must stay rejected")
	}
	if err := relaxed.CanTransition(models.OrderStatusCompleted, models.OrderStatusPending); err == nil {
		t.Fatal("completed -> pending must stay rejected")
	}
}

func TestStateMachine_UnknownStatus(t *testing.T) {
	sm := StateMachine{}
	err := sm.CanTransition("shipped", models.OrderStatusCompleted)
	var bad *InvalidTransitionError
	if !errors.As(err, &bad) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if err := sm.CanTransition(models.OrderStatusPending, "shipped"); err == nil {
		t.Fatal("unknown target status must be rejected")
	}
}

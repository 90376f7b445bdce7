package usecase

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
)

var (
	// ErrSubmitInFlight means a submission for the same session is
	// already running; the duplicate tap must not create a second order.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrSubmitFailed is the generic retryable persistence failure.
	ErrSubmitFailed = errors.New("order submission failed")
)

const submitScope = "order:submit"

// SubmitOrder persists a finished order exactly once per session flow.
// The redis lock backs up the caller's in-process in-flight flag, so a
// double tap racing past the flag still yields one order.
type SubmitOrder struct {
	store OrderStore
	idem  IdempotencyStore
	queue OrderQueue
	log   *slog.Logger
}

func NewSubmitOrder(store OrderStore, idem IdempotencyStore, queue OrderQueue, log *slog.Logger) *SubmitOrder {
	if queue == nil {
		queue = NopQueue{}
	}
	return &SubmitOrder{store: store, idem: idem, queue: queue, log: log}
}

// Execute validates and persists the order. key scopes the duplicate
// guard to one checkout flow: an immediate duplicate returns the
// already-created id, a failed create releases the lock so the user can
// retry.
func (uc *SubmitOrder) Execute(ctx context.Context, key string, order *domain.Order) (string, error) {
	if err := order.Validate(); err != nil {
		return "", err
	}

	if id, ok, _ := uc.idem.Recall(ctx, submitScope, key); ok {
		uc.log.Info("duplicate submit, returning existing order", "order_id", id)
		return id, nil
	}

	ok, err := uc.idem.TryLock(ctx, submitScope, key)
	if err != nil {
		// Guard store down: proceed on the caller's in-process flag alone.
		uc.log.Warn("idempotency lock unavailable", "error", err)
	} else if !ok {
		return "", ErrSubmitInFlight
	}

	id, err := uc.store.Create(ctx, order)
	if err != nil {
		uc.log.Error("order create failed", "error", err)
		_ = uc.idem.Release(ctx, submitScope, key)
		return "", ErrSubmitFailed
	}

	if err := uc.queue.PublishCreated(ctx, OrderCreatedMsg{
		OrderID:     id,
		PickupDate:  order.PickupDate,
		PickupTime:  order.PickupTime,
		TotalAmount: order.TotalAmount,
		Fettisdagen: order.IsFettisdagenOrder,
	}); err != nil {
		uc.log.Warn("order.created publish failed", "order_id", id, "error", err)
	}

	_ = uc.idem.Remember(ctx, submitScope, key, id)
	uc.log.Info("order created", "order_id", id, "pickup_date", order.PickupDate,
		"total", order.TotalAmount, "fettisdagen", order.IsFettisdagenOrder)
	return id, nil
}

package usecase

import (
	"context"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
)

// OrderStore is the remote document store holding orders. Create assigns
// the id and createdAt server-side and returns the id. The storefront
// only ever calls Create; the read and status operations serve admin
// tooling.
type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) (string, error)
	GetByEmail(ctx context.Context, email string) ([]domain.Order, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByDateRange(ctx context.Context, from, to string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// ProductStore is fetch-all only; filtering happens in this service.
type ProductStore interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	Seed(ctx context.Context, products []domain.Product) error
}

// CartStore persists one cart per session under a single key. Load
// returns ok=false when no cart was ever saved.
type CartStore interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartItem, bool, error)
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error
}

// IdempotencyStore guards re-entrant order submission across a session.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// OrderQueue notifies back-of-house tooling that an order landed.
// Publishing is best-effort.
type OrderQueue interface {
	PublishCreated(ctx context.Context, msg OrderCreatedMsg) error
}

type OrderCreatedMsg struct {
	OrderID     string `json:"order_id"`
	PickupDate  string `json:"pickup_date"`
	PickupTime  string `json:"pickup_time"`
	TotalAmount int64  `json:"total_amount"`
	Fettisdagen bool   `json:"fettisdagen"`
}

// NopQueue is used when no broker is configured.
type NopQueue struct{}

func (NopQueue) PublishCreated(context.Context, OrderCreatedMsg) error { return nil }

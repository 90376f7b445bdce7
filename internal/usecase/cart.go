package usecase

import (
	"context"
	"log/slog"
	"sync"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
)

// CartService owns one cart per customer session. It is constructed once
// and injected wherever carts are needed; the in-memory copy is
// authoritative for the session and every mutation is followed by an
// explicit save to the backing store. A failed save degrades to
// memory-only (logged, not surfaced).
type CartService struct {
	store CartStore
	log   *slog.Logger

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCartService(store CartStore, log *slog.Logger) *CartService {
	return &CartService{
		store: store,
		log:   log,
		carts: make(map[string]*domain.Cart),
	}
}

// cart loads the session's cart on first touch and caches it. Callers
// must hold s.mu.
func (s *CartService) cart(ctx context.Context, sessionID string) *domain.Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c := &domain.Cart{}
	items, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.log.Warn("cart load failed, starting empty", "session", sessionID, "error", err)
	} else if ok {
		c.Items = items
	}
	s.carts[sessionID] = c
	return c
}

func (s *CartService) save(ctx context.Context, sessionID string, c *domain.Cart) {
	if err := s.store.Save(ctx, sessionID, c.Items); err != nil {
		s.log.Warn("cart save failed, in-memory state remains authoritative",
			"session", sessionID, "error", err)
	}
}

// Get returns a copy of the session's cart.
func (s *CartService) Get(ctx context.Context, sessionID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(ctx, sessionID)
	out := domain.Cart{Items: make([]domain.CartItem, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}

// AddItem snapshots the product into the cart. A product with variants
// requires a variant choice up front.
func (s *CartService) AddItem(ctx context.Context, sessionID string, p domain.Product, variantID string) error {
	var variantName string
	if p.HasVariants() {
		if variantID == "" {
			return domain.ErrVariantRequired
		}
		v, ok := p.Variant(variantID)
		if !ok {
			return domain.ErrUnknownVariant
		}
		variantName = v.NameSv
	} else if variantID != "" {
		return domain.ErrUnknownVariant
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(ctx, sessionID)
	c.Add(p, variantID, variantName)
	s.save(ctx, sessionID, c)
	return nil
}

func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID, variantID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(ctx, sessionID)
	c.SetQuantity(productID, variantID, quantity)
	s.save(ctx, sessionID, c)
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(ctx, sessionID)
	c.Remove(productID, variantID)
	s.save(ctx, sessionID, c)
}

// Clear empties the cart; called once after a successful submission.
func (s *CartService) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(ctx, sessionID)
	c.Clear()
	s.save(ctx, sessionID, c)
}

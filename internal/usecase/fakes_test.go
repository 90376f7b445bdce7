package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memOrderStore struct {
	mu         sync.Mutex
	orders     []domain.Order
	failCreate bool
}

func (s *memOrderStore) Create(_ context.Context, o *domain.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return "", errors.New("store unavailable")
	}
	stored := *o
	stored.ID = fmt.Sprintf("order-%d", len(s.orders)+1)
	stored.CreatedAt = time.Now().UTC()
	s.orders = append(s.orders, stored)
	return stored.ID, nil
}

func (s *memOrderStore) GetByEmail(_ context.Context, email string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.Customer.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memOrderStore) GetAll(context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order{}, s.orders...), nil
}

func (s *memOrderStore) GetByDateRange(_ context.Context, from, to string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.PickupDate >= from && o.PickupDate <= to {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memOrderStore) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

type memCartStore struct {
	mu       sync.Mutex
	data     map[string][]domain.CartItem
	failSave bool
	saves    int
}

func newMemCartStore() *memCartStore {
	return &memCartStore{data: map[string][]domain.CartItem{}}
}

func (s *memCartStore) Load(_ context.Context, sessionID string) ([]domain.CartItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.data[sessionID]
	return items, ok, nil
}

func (s *memCartStore) Save(_ context.Context, sessionID string, items []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failSave {
		return errors.New("storage unavailable")
	}
	s.data[sessionID] = append([]domain.CartItem{}, items...)
	return nil
}

type memIdem struct {
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newMemIdem() *memIdem {
	return &memIdem{locks: map[string]bool{}, values: map[string]string{}}
}

func (s *memIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *memIdem) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *memIdem) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope+":"+key] = value
	return nil
}

func (s *memIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

type memProductStore struct {
	mu       sync.Mutex
	products []domain.Product
}

func (s *memProductStore) GetProducts(context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product{}, s.products...), nil
}

func (s *memProductStore) Seed(_ context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	return nil
}

type capturingQueue struct {
	mu   sync.Mutex
	msgs []OrderCreatedMsg
}

func (q *capturingQueue) PublishCreated(_ context.Context, msg OrderCreatedMsg) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
	return nil
}

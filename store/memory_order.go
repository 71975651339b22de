package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"laundryos-backend/models"
)

type MemoryOrderStore struct {
	mu         sync.RWMutex
	orders     []models.Order
	nextID     uint
	nextItemID uint
	now        func() time.Time
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{nextID: 1, nextItemID: 1, now: time.Now}
}

func (s *MemoryOrderStore) Create(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextID
	s.nextID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}

	items := make([]models.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.ID = s.nextItemID
		item.OrderID = order.ID
		s.nextItemID++
		items[i] = item
	}
	order.Items = items

	s.orders = append(s.orders, order)
	return cloneOrder(order), nil
}

func (s *MemoryOrderStore) List(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, cloneOrder(s.orders[i]))
	}
	return out, nil
}

func (s *MemoryOrderStore) Find(_ context.Context, id uint) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == id {
			return cloneOrder(order), nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (s *MemoryOrderStore) Between(_ context.Context, from, to time.Time) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Order{}
	for _, order := range s.orders {
		if !order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			out = append(out, cloneOrder(order))
		}
	}
	return out, nil
}

// cloneOrder copies the item slice so callers cannot mutate stored orders.
func cloneOrder(order models.Order) models.Order {
	order.Items = slices.Clone(order.Items)
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order
}

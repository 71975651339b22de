package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundryos-backend/models"

	"gorm.io/gorm"
)

type GormOrderStore struct {
	db *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

func (s *GormOrderStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	order.ID = 0
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = 0
	}

	// Create inserts the items through the has-many association.
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

func (s *GormOrderStore) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return normalizeItems(orders), nil
}

func (s *GormOrderStore) Find(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, fmt.Errorf("find order %d: %w", id, err)
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

func (s *GormOrderStore) Between(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("id asc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders between %s and %s: %w", from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	return normalizeItems(orders), nil
}

func normalizeItems(orders []models.Order) []models.Order {
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	return orders
}

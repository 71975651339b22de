package store

import (
	"context"
	"time"

	"laundryos-backend/models"
)

type OrderStore interface {
	// Create assigns ids to the order and its items and stores them.
	// A zero CreatedAt is set to the current time.
	Create(ctx context.Context, order models.Order) (models.Order, error)

	// List returns every order, newest first.
	List(ctx context.Context) ([]models.Order, error)

	Find(ctx context.Context, id uint) (models.Order, error)

	// Between returns orders created in [from, to), oldest first.
	Between(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

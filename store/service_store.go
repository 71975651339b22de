package store

import (
	"context"
	"strings"

	"laundryos-backend/models"
)

type ServiceStore interface {
	// List returns every service in insertion order.
	List(ctx context.Context) ([]models.Service, error)

	// Insert assigns the next id to svc and stores it. svc.ID is ignored.
	Insert(ctx context.Context, svc models.Service) (models.Service, error)

	Find(ctx context.Context, id uint) (models.Service, error)

	// Replace overwrites every field of the service with the given id.
	Replace(ctx context.Context, id uint, svc models.Service) (models.Service, error)

	Remove(ctx context.Context, id uint) error

	// Count returns the number of services and how many of them are active.
	Count(ctx context.Context) (total int, active int, err error)
}

func validateService(svc models.Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if svc.BasePrice < 0 {
		return &ValidationError{Field: "base_price", Message: "must be at least 0"}
	}
	return nil
}

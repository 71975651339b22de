package services

import (
	"context"
	"errors"
	"fmt"

	"laundryos-backend/models"
	"laundryos-backend/store"

	"go.uber.org/zap"
)

type UnknownServiceError struct {
	ServiceID uint
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("service %d not found", e.ServiceID)
}

type InactiveServiceError struct {
	ServiceID uint
	Name      string
}

func (e *InactiveServiceError) Error() string {
	return fmt.Sprintf("service %d (%s) is inactive", e.ServiceID, e.Name)
}

type OrderLineInput struct {
	ServiceID uint
	Qty       int
}

type CreateOrderInput struct {
	CustomerName  *string
	CustomerPhone *string
	Discount      float64
	Items         []OrderLineInput
}

// OrderService prices orders against the current service catalogue.
type OrderService struct {
	services store.ServiceStore
	orders   store.OrderStore
	vatRate  float64
	log      *zap.Logger
}

func NewOrderService(services store.ServiceStore, orders store.OrderStore, vatRate float64, log *zap.Logger) *OrderService {
	return &OrderService{
		services: services,
		orders:   orders,
		vatRate:  vatRate,
		log:      log,
	}
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, &store.ValidationError{Field: "items", Message: "must contain at least one item"}
	}
	if in.Discount < 0 {
		return models.Order{}, &store.ValidationError{Field: "discount", Message: "must be at least 0"}
	}

	lines := make([]Line, len(in.Items))
	items := make([]models.OrderItem, len(in.Items))
	for i, item := range in.Items {
		if item.Qty < 1 {
			return models.Order{}, &store.ValidationError{Field: "qty", Message: "must be at least 1"}
		}

		svc, err := s.services.Find(ctx, item.ServiceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.Order{}, &UnknownServiceError{ServiceID: item.ServiceID}
			}
			return models.Order{}, err
		}
		if !svc.IsActive {
			return models.Order{}, &InactiveServiceError{ServiceID: svc.ID, Name: svc.Name}
		}

		lines[i] = Line{UnitPrice: svc.BasePrice, Qty: item.Qty}
		items[i] = models.OrderItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			UnitPrice: svc.BasePrice,
			Qty:       item.Qty,
		}
	}

	totals := CalculateTotals(lines, in.Discount, s.vatRate)
	for i := range items {
		items[i].LineTotal = totals.LineTotals[i].InexactFloat64()
	}

	order, err := s.orders.Create(ctx, models.Order{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Subtotal:      totals.Subtotal.InexactFloat64(),
		Discount:      totals.Discount.InexactFloat64(),
		Taxable:       totals.Taxable.InexactFloat64(),
		VAT:           totals.VAT.InexactFloat64(),
		Total:         totals.Total.InexactFloat64(),
		Status:        models.OrderStatusPaid,
		Items:         items,
	})
	if err != nil {
		return models.Order{}, err
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Find(ctx context.Context, id uint) (models.Order, error) {
	return s.orders.Find(ctx, id)
}

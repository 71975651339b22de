// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"laundryos-backend/services"
	"laundryos-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderItemInput defines one line of an order
type OrderItemInput struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Qty       int  `json:"qty" binding:"required,min=1"`
}

// CreateOrderInput defines the expected JSON structure for ringing up an order
type CreateOrderInput struct {
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	Discount      float64          `json:"discount" binding:"min=0"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type OrderController struct {
	orders *services.OrderService
	log    *zap.Logger
}

func NewOrderController(orders *services.OrderService, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, log: log}
}

// CreateOrder prices the basket against the current catalogue and records the sale
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidation(c, utils.BindingErrors(err))
		return
	}

	name := blankToNil(input.CustomerName)
	phone := blankToNil(input.CustomerPhone)
	if phone != nil && !utils.ValidatePhone(*phone) {
		utils.RespondWithValidation(c, []utils.FieldError{{Field: "customer_phone", Error: "must be a valid phone number"}})
		return
	}

	items := make([]services.OrderLineInput, len(input.Items))
	for i, item := range input.Items {
		items[i] = services.OrderLineInput{ServiceID: item.ServiceID, Qty: item.Qty}
	}

	order, err := oc.orders.Create(c.Request.Context(), services.CreateOrderInput{
		CustomerName:  name,
		CustomerPhone: phone,
		Discount:      input.Discount,
		Items:         items,
	})
	if err != nil {
		var unknown *services.UnknownServiceError
		var inactive *services.InactiveServiceError
		switch {
		case errors.As(err, &unknown), errors.As(err, &inactive):
			utils.RespondWithValidation(c, []utils.FieldError{{Field: "items", Error: err.Error()}})
		default:
			respondStoreError(c, oc.log, err, "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders lists orders, newest first
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.orders.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, oc.log, err, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves a specific order with its items
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := oc.orders.Find(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, oc.log, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

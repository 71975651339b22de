// controllers/service.go
package controllers

import (
	"net/http"

	"laundryos-backend/models"
	"laundryos-backend/store"
	"laundryos-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceInput is the JSON body for creating or replacing a service.
// PUT takes the full field set as well; there is no partial update.
type ServiceInput struct {
	Name      string   `json:"name" binding:"required"`
	Category  string   `json:"category"`
	BasePrice *float64 `json:"base_price" binding:"required,min=0"`
	Unit      string   `json:"unit"`
	IsActive  *bool    `json:"is_active"`
}

func (in ServiceInput) toModel() models.Service {
	svc := models.Service{
		Name:      in.Name,
		Category:  in.Category,
		BasePrice: *in.BasePrice,
		Unit:      in.Unit,
		IsActive:  true,
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	svc.ApplyDefaults()
	return svc
}

type ServiceController struct {
	store store.ServiceStore
	log   *zap.Logger
}

func NewServiceController(s store.ServiceStore, log *zap.Logger) *ServiceController {
	return &ServiceController{store: s, log: log}
}

// GetServices lists every service in insertion order
func (sc *ServiceController) GetServices(c *gin.Context) {
	services, err := sc.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, sc.log, err, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	service, err := sc.store.Find(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, sc.log, err, "Failed to retrieve service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// CreateService creates a new service
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidation(c, utils.BindingErrors(err))
		return
	}

	service, err := sc.store.Insert(c.Request.Context(), input.toModel())
	if err != nil {
		respondStoreError(c, sc.log, err, "Failed to create service")
		return
	}

	sc.log.Info("service created", zap.Uint("id", service.ID), zap.String("name", service.Name))
	c.JSON(http.StatusCreated, service)
}

// UpdateService replaces every field of an existing service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithValidation(c, utils.BindingErrors(err))
		return
	}

	service, err := sc.store.Replace(c.Request.Context(), id, input.toModel())
	if err != nil {
		respondStoreError(c, sc.log, err, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service; its id is never handed out again
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := sc.store.Remove(c.Request.Context(), id); err != nil {
		respondStoreError(c, sc.log, err, "Failed to delete service")
		return
	}

	c.Status(http.StatusNoContent)
}

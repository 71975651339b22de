package controllers

import (
	"net/http"
	"time"

	"laundryos-backend/services"
	"laundryos-backend/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardOverview struct {
	Services       int     `json:"services"`
	ActiveServices int     `json:"active_services"`
	OrdersToday    int     `json:"orders_today"`
	IncomeToday    float64 `json:"income_today"`
}

type DashboardController struct {
	catalog store.ServiceStore
	summary *services.SummaryService
	log     *zap.Logger
	now     func() time.Time
}

func NewDashboardController(catalog store.ServiceStore, summary *services.SummaryService, log *zap.Logger) *DashboardController {
	return &DashboardController{catalog: catalog, summary: summary, log: log, now: time.Now}
}

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()

	total, active, err := dc.catalog.Count(ctx)
	if err != nil {
		respondStoreError(c, dc.log, err, "Failed to count services")
		return
	}

	// Today's orders and income
	today, err := dc.summary.Summarize(ctx, dc.now())
	if err != nil {
		respondStoreError(c, dc.log, err, "Failed to summarize orders")
		return
	}

	c.JSON(http.StatusOK, DashboardOverview{
		Services:       total,
		ActiveServices: active,
		OrdersToday:    today.Orders,
		IncomeToday:    today.Income,
	})
}

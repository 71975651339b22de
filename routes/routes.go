package routes

import (
	"laundryos-backend/config"
	"laundryos-backend/controllers"
	"laundryos-backend/services"
	"laundryos-backend/store"
	"laundryos-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the process-wide objects the handlers share. They are
// built once at startup and live until shutdown.
type Dependencies struct {
	Config   *config.Config
	Log      *zap.Logger
	Services store.ServiceStore
	Orders   *services.OrderService
	Summary  *services.SummaryService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	utils.RegisterJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Accept", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Use(utils.RequestID())
	r.Use(config.PerformanceLogger(deps.Log.Named("http"), deps.Config.SlowRequestThreshold))

	r.GET("/", controllers.Home)
	r.GET("/health", controllers.Health)

	serviceController := controllers.NewServiceController(deps.Services, deps.Log)
	svc := r.Group("/services")
	{
		svc.GET("", serviceController.GetServices)
		svc.POST("", serviceController.CreateService)
		svc.GET("/:id", serviceController.GetService)
		svc.PUT("/:id", serviceController.UpdateService)
		svc.DELETE("/:id", serviceController.DeleteService)
	}

	orderController := controllers.NewOrderController(deps.Orders, deps.Log)
	orders := r.Group("/orders")
	{
		orders.GET("", orderController.GetOrders)
		orders.POST("", orderController.CreateOrder)
		orders.GET("/:id", orderController.GetOrder)
	}

	dashboardController := controllers.NewDashboardController(deps.Services, deps.Summary, deps.Log)
	r.GET("/dashboard", dashboardController.GetDashboardOverview)

	return r
}

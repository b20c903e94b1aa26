package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dhoini/Billing-microservice/internal/api/rest/handlers"
	"github.com/Dhoini/Billing-microservice/internal/api/rest/middleware"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// SetupRouter wires the Gin router with middleware and all routes.
func SetupRouter(
	log *logger.Logger,
	registry *prometheus.Registry,
	customerHandler *handlers.CustomerHandler,
	processHandler *handlers.ProcessHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(gin.Recovery())

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.GET("/users", customerHandler.GetCustomers)
	r.POST("/users", customerHandler.CreateCustomer)

	r.POST("/process", processHandler.Process)
	// Legacy route name still used by older billing clients.
	r.GET("/gerar_notas", processHandler.Process)

	return r
}

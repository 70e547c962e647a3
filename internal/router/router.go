package router

import (
	"github.com/gin-gonic/gin"

	"billscan/internal/config"
	"billscan/internal/handler"
	"billscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractH *handler.ExtractHandler,
	billH *handler.BillHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Extraction pipeline
	extract := v1.Group("/extract")
	extract.POST("/email", extractH.ExtractEmail)
	extract.POST("/document", extractH.ExtractDocument)
	v1.POST("/dedupe", extractH.Dedupe)
	v1.POST("/scan", extractH.Scan)

	// Stored bills
	bills := v1.Group("/bills")
	bills.GET("", billH.List)
	bills.GET("/export", billH.Export)
	bills.GET("/:id", billH.GetByID)

	return r
}

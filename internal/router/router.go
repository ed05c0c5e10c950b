package router

import (
	"github.com/gin-gonic/gin"

	"invoiceflow/internal/handler"
	"invoiceflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.POST("/preview", invoiceH.Preview)
	invoices.POST("/pdf", invoiceH.RenderPDF)
	invoices.GET("/export/xlsx", invoiceH.ExportXLSX)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PATCH("/:id/status", invoiceH.UpdateStatus)
	invoices.GET("/:id/pdf", invoiceH.DownloadPDF)

	return r
}

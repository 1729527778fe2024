package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with the standard middleware chain and
// the finance routes.
//
// The report download lives under /finance/reports rather than as a
// sibling of /finance/vouchers/:id, which gin's route tree rejects.
func NewRouter(h *Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware())

	router.GET("/health", h.HealthCheck)

	finance := router.Group("/finance")
	{
		finance.GET("/vouchers", h.ListVouchers)
		finance.POST("/vouchers", h.CreateVoucher)
		finance.PUT("/vouchers/:id", h.UpdateVoucher)
		finance.DELETE("/vouchers/:id", h.DeleteVoucher)

		finance.GET("/banks", h.ListBanks)
		finance.POST("/banks", h.CreateBank)

		finance.GET("/affiliates", h.ListAffiliates)
		finance.POST("/affiliates", h.CreateAffiliate)

		finance.GET("/reports/vouchers", h.ExportVouchers)
	}

	return router
}

package routes

import (
	"transcribe_billing/internal/adapter/http/handlers"
	"transcribe_billing/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, pricingHandler *handlers.PricingHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("/pricing", pricingHandler.GetPricing)

		orders.POST("", middleware.RequireUser(), orderHandler.CreateOrder)
		orders.POST("/verify-payment", middleware.RequireUser(), orderHandler.VerifyPayment)
		orders.GET("/my-orders", middleware.RequireUser(), orderHandler.ListMyOrders)
		orders.GET("/stats", middleware.RequireAdmin(), orderHandler.GetOrderStats)
		orders.GET("/:id", middleware.RequireUser(), orderHandler.GetOrder)

		orders.PATCH("/:id/status", middleware.RequireAdmin(), orderHandler.UpdateOrderStatus)
		orders.GET("/:id/pricing-audit", middleware.RequireAdmin(), orderHandler.GetPricingAudit)
	}
}

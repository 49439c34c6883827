package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Eyiladeogo/MicroMart/controllers/order"
	"github.com/Eyiladeogo/MicroMart/middleware"
)

// SetupOrderRoutes registers order placement and retrieval. Status updates
// are staff only.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db))
		orders.GET("", orderControllers.ListOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderHandler(db))

		orders.PATCH("/:id/status", middleware.RequireStaff, orderControllers.UpdateOrderStatusHandler(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Eyiladeogo/MicroMart/controllers/cart"
	"github.com/Eyiladeogo/MicroMart/middleware"
)

// SetupCartRoutes registers the cart endpoints, all scoped to the caller's
// own cart. The verb mapping is deliberate: POST adds, PATCH adjusts a
// quantity, PUT removes a single line, DELETE clears the cart.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.AddItemHandler(db))
		cart.PATCH("", cartControllers.AdjustItemHandler(db))
		cart.PUT("", cartControllers.RemoveItemHandler(db))
		cart.DELETE("", cartControllers.ClearCartHandler(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/Eyiladeogo/MicroMart/controllers/product"
	"github.com/Eyiladeogo/MicroMart/middleware"
)

// SetupProductRoutes registers the catalog endpoints. Reads are open to any
// authenticated user; writes require the staff flag.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	products.Use(middleware.RequireAuth)
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		products.POST("", middleware.RequireStaff, productcontroller.CreateProduct(db))
		products.PATCH("/:id", middleware.RequireStaff, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", middleware.RequireStaff, productcontroller.DeleteProduct(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/auth"
	userControllers "github.com/Eyiladeogo/MicroMart/controllers/user"
	"github.com/Eyiladeogo/MicroMart/middleware"
)

// SetupAuthRoutes registers registration, login, and the token lifecycle
// endpoints. All of these are reachable without a bearer token.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/register", auth.RegisterHandler(db))
	r.POST("/login", auth.LoginHandler(db))

	tokenGroup := r.Group("/token")
	{
		tokenGroup.POST("/refresh", auth.RefreshHandler(db))
		tokenGroup.POST("/verify", auth.VerifyHandler(db))
		tokenGroup.POST("/blacklist", auth.BlacklistHandler(db))
	}
}

// SetupProfileRoutes registers the caller's own profile endpoints.
func SetupProfileRoutes(r *gin.Engine, db *gorm.DB) {
	profileGroup := r.Group("/profile")
	profileGroup.Use(middleware.RequireAuth)
	{
		profileGroup.GET("", userControllers.GetProfile(db))
		profileGroup.PATCH("/update", userControllers.UpdateProfile(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/doganiot/mywordismyword/internal/handlers"
	"github.com/doganiot/mywordismyword/internal/middleware"
)

// SetupRoutes registers every route of the application.
func SetupRoutes(r *gin.Engine) {
	// Public routes first: auth, the public contract pool and shared
	// template links work without a token.
	RegisterAuthRoutes(r)
	r.GET("/api/pool", handlers.PublicPoolHandler)
	r.GET("/api/templates/shared/:code", handlers.SharedTemplateHandler)

	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}

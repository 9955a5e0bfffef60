package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/doganiot/mywordismyword/internal/handlers"
)

// RegisterAuthRoutes registers the public authentication routes.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/register", handlers.SignupHandler)
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)
}

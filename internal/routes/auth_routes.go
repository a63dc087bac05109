package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/handlers"
)

// RegisterAuthRoutes registers the public authentication routes.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/logout", handlers.LogoutHandler)
	}
}

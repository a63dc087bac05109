package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/middleware"
)

// SetupRoutes wires every route of the application onto the engine.
func SetupRoutes(r *gin.Engine) {
	// Public routes first: auth and the whole donation flow. Donors
	// should never need an account to give.
	RegisterAuthRoutes(r)
	RegisterDonationRoutes(r)

	// Everything else requires a valid session.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}

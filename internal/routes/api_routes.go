package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/handlers"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/middleware"
)

// RegisterAPIRoutes registers the authenticated API.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
		}

		alumni := apiGroup.Group("/alumni")
		{
			alumni.GET("", handlers.ListAlumniHandler)
			alumni.GET("/:id", handlers.GetAlumnusHandler)
			alumni.POST("", handlers.CreateAlumnusHandler)
			alumni.PUT("/:id", handlers.UpdateAlumnusHandler)
			alumni.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteAlumnusHandler)
		}

		groups := apiGroup.Group("/class-groups")
		{
			groups.GET("", handlers.ListClassGroupsHandler)
			groups.GET("/:id", handlers.GetClassGroupHandler)
			groups.POST("", middleware.AdminMiddleware(), handlers.CreateClassGroupHandler)
			groups.PUT("/:id", middleware.AdminMiddleware(), handlers.UpdateClassGroupHandler)
			groups.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteClassGroupHandler)
			groups.POST("/:id/join", handlers.JoinClassGroupHandler)
			groups.POST("/:id/leave", handlers.LeaveClassGroupHandler)
		}

		events := apiGroup.Group("/events")
		{
			events.GET("", handlers.ListEventsHandler)
			events.GET("/:id", handlers.GetEventHandler)
			events.POST("", middleware.AdminMiddleware(), handlers.CreateEventHandler)
			events.PUT("/:id", middleware.AdminMiddleware(), handlers.UpdateEventHandler)
			events.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteEventHandler)
			events.POST("/:id/rsvp", handlers.RSVPHandler)
		}

		announcements := apiGroup.Group("/announcements")
		{
			announcements.GET("", handlers.ListAnnouncementsHandler)
			announcements.GET("/:id", handlers.GetAnnouncementHandler)
			announcements.POST("", middleware.AdminMiddleware(), handlers.CreateAnnouncementHandler)
			announcements.PUT("/:id", middleware.AdminMiddleware(), handlers.UpdateAnnouncementHandler)
			announcements.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteAnnouncementHandler)
		}

		reports := apiGroup.Group("/reports")
		reports.Use(middleware.AdminMiddleware())
		{
			reports.GET("/donations/export", handlers.ExportDonationsHandler)
			reports.GET("/donations/summary", handlers.DonationSummaryHandler)
		}
	}
}

package routes

import (
	"ReframeGo/controllers"
	"ReframeGo/middleware"
	"ReframeGo/services"
	"ReframeGo/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, eventStore *store.EventStore, eventService *services.EventService) {
	middleware.SetupMiddleware(r)

	authController := controllers.NewAuthController(eventStore)
	eventController := controllers.NewEventController(eventService)
	analyticsController := controllers.NewAnalyticsController(eventService)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/signup", authController.Signup)
		public.POST("/auth/login", authController.Login)
	}

	// Authenticated routes
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware())
	{
		private.POST("/events", eventController.LogEvent)
		private.GET("/events", eventController.ListEvents)
		private.DELETE("/events/:id", eventController.DeleteEvent)
		private.GET("/analytics", analyticsController.GetAnalytics)
		private.GET("/export", analyticsController.Export)
		private.GET("/user", authController.GetUser)
		private.DELETE("/account", eventController.DeleteAccount)
	}

	// Liveness probe
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}

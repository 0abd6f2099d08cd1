package routes

import (
	"time"

	"tutorhub/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterSchedulingRoutes sets up the endpoints for the scheduling engine.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	api := r.Group("/api/scheduling")
	{
		api.GET("/presets", h.GetPresetsHandler)
		api.POST("/slots", h.GetSlotsHandler)
		api.POST("/slots/aggregate", h.AggregateSlotsHandler)
		api.POST("/conflicts", h.CheckConflictsHandler)
		api.DELETE("/snapshots/:personID", h.InvalidateSnapshotsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.SchedulingHandler, allowedOrigins []string) {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: !allowAll,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSchedulingRoutes(r, h)
}

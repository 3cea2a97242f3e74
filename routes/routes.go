package routes

import (
	"subwatch/handlers"
	"subwatch/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface: a health probe plus the
// token-guarded admin endpoints for the reminder engine.
func RegisterRoutes(router *gin.Engine, health *handlers.HealthHandler, rem *handlers.ReminderHandler) {
	router.GET("/health", health.Check)

	admin := router.Group("/api/admin", middleware.AdminAuthMiddleware())
	{
		admin.POST("/reminders/run", rem.RunHandler)
		admin.GET("/reminders/summary", rem.SummaryHandler)
	}
}

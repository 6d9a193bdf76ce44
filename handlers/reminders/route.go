package reminders

import (
	"github.com/gin-gonic/gin"

	"zid-retention-server/handlers/auth"
)

func RegisterReminderRoutes(r *gin.Engine) {
	routes := r.Group("/", auth.StoreAuthMiddleware())
	routes.POST("/simulate/send-reminders", SendPending)
	routes.POST("/api/calculate-reminders", Calculate)
	routes.GET("/api/reminders", List)
}

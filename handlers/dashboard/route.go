package dashboard

import (
	"github.com/gin-gonic/gin"

	"zid-retention-server/handlers/auth"
)

func RegisterDashboardRoutes(r *gin.Engine) {
	routes := r.Group("/", auth.StoreAuthMiddleware())
	routes.GET("/dashboard/customers", GetCustomers)
	routes.GET("/dashboard/products", GetProducts)
	routes.POST("/settings/product/:id", UpdateProductSetting)
	routes.POST("/api/sync-customers", SyncCustomers)
	routes.POST("/api/send-message/:customerId", SendMessage)
}

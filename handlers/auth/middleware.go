package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"zid-retention-server/utils"
)

// StoreAuthMiddleware resolves the store id from a Bearer dashboard token
// when one is presented. Requests without a token pass through and must
// carry store_id explicitly; an invalid token is ignored the same way.
func StoreAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if storeID, err := utils.ParseDashboardToken(parts[1]); err == nil {
			c.Set("store_id", storeID)
		}

		c.Next()
	}
}

// StoreIDFromContext returns the store id set by the middleware, if any.
func StoreIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get("store_id")
	if !exists {
		return 0, false
	}
	storeID, ok := value.(int64)
	return storeID, ok
}

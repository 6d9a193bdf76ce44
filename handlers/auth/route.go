package auth

import "github.com/gin-gonic/gin"

func RegisterAuthRoutes(r *gin.Engine) {
	r.GET("/install", Install)
	r.GET("/callback", Callback)
	r.GET("/test-api", TestAPI)
}

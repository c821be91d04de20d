package auth

import (
	"github.com/Ashmit12092000/ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

// optionalAuth identifies the caller on /register when a token is sent.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth, optionalAuth gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/register", middleware.RateLimitByIP(0.1, 3), optionalAuth, handler.Register)
		group.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		group.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.Refresh)
		group.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
		group.PUT("/password", auth, middleware.RateLimitByUser(0.1, 3), handler.ChangePassword)
	}
}

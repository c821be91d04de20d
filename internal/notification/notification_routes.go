package notification

import (
	"github.com/Ashmit12092000/ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), h.List)
		notifications.GET("/unread-count", middleware.RBACAuthorize(rbacService, "notification", "read"), h.UnreadCount)
		notifications.POST("/read-all", middleware.RBACAuthorize(rbacService, "notification", "update"), h.MarkAllRead)
		notifications.POST("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), h.MarkRead)
	}
}

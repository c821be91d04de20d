package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes the caller's own permissions. Both endpoints only
// need a valid token since they never reveal another role's rows.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.GET("/permissions", handler.Permissions)
		group.POST("/enforce", handler.Enforce)
	}
}

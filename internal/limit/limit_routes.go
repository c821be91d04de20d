package limit

import (
	"github.com/Ashmit12092000/ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	limits := r.Group("/limits")
	limits.Use(auth)
	{
		limits.GET("", middleware.RBACAuthorize(rbacService, "limit", "read"), handler.List)
		limits.GET("/:type", middleware.RBACAuthorize(rbacService, "limit", "read"), handler.Get)
		limits.PUT("/:type",
			middleware.RateLimitByUser(0.5, 5),
			middleware.RBACAuthorize(rbacService, "limit", "update"),
			handler.Upsert,
		)
	}
}

package request

import (
	"github.com/Ashmit12092000/ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	idempotent gin.HandlerFunc,
) {
	requests := r.Group("/requests")
	requests.Use(auth)
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetByID)
		requests.POST("",
			middleware.RateLimitByUser(0.5, 5),
			middleware.RBACAuthorize(rbacService, "request", "create"),
			idempotent,
			handler.Create,
		)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.Reject)
	}
}

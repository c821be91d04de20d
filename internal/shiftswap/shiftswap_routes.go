package shiftswap

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
	swaps := r.Group("/swaps")
	swaps.Use(auth)
	{
		swaps.GET("", middleware.RBACAuthorize(rbacService, "swap", "read"), handler.GetAll)
		swaps.GET("/incoming", middleware.RBACAuthorize(rbacService, "swap", "read"), handler.Incoming)
		swaps.GET("/:id", middleware.RBACAuthorize(rbacService, "swap", "read"), handler.GetByID)
		swaps.POST("",
			middleware.RateLimitByUser(0.5, 5),
			middleware.RBACAuthorize(rbacService, "swap", "create"),
			idempotent,
			handler.Create,
		)
		swaps.POST("/:id/respond", middleware.RBACAuthorize(rbacService, "swap", "respond"), handler.Respond)
		swaps.POST("/:id/decide", middleware.RBACAuthorize(rbacService, "swap", "decide"), handler.Decide)
	}
}

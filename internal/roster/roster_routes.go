package roster

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
	roster := r.Group("/roster")
	roster.Use(auth)
	{
		roster.GET("", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.GetDay)
		roster.GET("/me", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.GetMine)
		roster.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "roster", "export"),
			handler.Export,
		)
		roster.PUT("/:date", middleware.RBACAuthorize(rbacService, "roster", "update"), handler.SaveDay)
		roster.PUT("/:date/:user_id", middleware.RBACAuthorize(rbacService, "roster", "update"), handler.SetShift)
	}
}

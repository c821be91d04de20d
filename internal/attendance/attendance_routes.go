package attendance

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
	attendance := r.Group("/attendance")
	attendance.Use(auth)
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), handler.GetDay)
		attendance.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetMine)
		attendance.PUT("/:date/:user_id", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.Mark)
	}
}

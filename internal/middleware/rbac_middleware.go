package middleware

import (
	"net/http"

	autherrors "github.com/Ashmit12092000/ems/internal/auth/errors"
	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service. Declared here so middleware does
// not import the rbac package.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortWith(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			UserID:   actor.ID.String(),
			Role:     actor.Role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			zap.L().Named("middleware.rbac").Error("enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWith(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}

		if !allowed {
			response.Error(c,
				autherrors.ErrForbidden.HTTPStatus,
				autherrors.ErrForbidden.Code,
				autherrors.ErrForbidden.Message,
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

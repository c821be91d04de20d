package middleware

import (
	"net/http"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentActor reads the caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id, err := uuid.Parse(c.GetString(CtxUserID))
	if err != nil {
		return domain.Actor{}, false
	}
	return domain.Actor{
		ID:       id,
		Username: c.GetString(CtxUsername),
		Role:     c.GetString(CtxRole),
	}, true
}

// RequireActor writes a 401 and returns false when no caller is set.
func RequireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User is not authenticated", nil)
		c.Abort()
	}
	return actor, ok
}

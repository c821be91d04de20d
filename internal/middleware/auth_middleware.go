package middleware

import (
	"errors"
	"net/http"
	"strings"

	autherrors "github.com/Ashmit12092000/ems/internal/auth/errors"
	"github.com/Ashmit12092000/ems/internal/auth/token"
	"github.com/Ashmit12092000/ems/internal/shared/contextutil"
	"github.com/Ashmit12092000/ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

type TokenParser interface {
	Parse(raw, kind string) (*token.Claims, error)
}

func abortWith(c *gin.Context, status int, code, message string) {
	response.Error(c, status, code, message, nil)
	c.Abort()
}

func bearerToken(c *gin.Context) string {
	if raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && raw != "" {
		return raw
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// authenticate validates raw and stores the caller on c. It writes the
// error response itself and reports false when the token is rejected.
func authenticate(c *gin.Context, tokens TokenParser, raw string) bool {
	claims, err := tokens.Parse(raw, token.KindAccess)
	if err != nil {
		errObj := autherrors.ErrInvalidToken
		if errors.Is(err, token.ErrExpired) {
			errObj = autherrors.ErrTokenExpired
		}
		abortWith(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
		return false
	}

	actor, err := claims.Actor()
	if err != nil {
		abortWith(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token")
		return false
	}

	c.Set(CtxUserID, actor.ID.String())
	c.Set(CtxUsername, actor.Username)
	c.Set(CtxRole, actor.Role)

	ctx := c.Request.Context()
	ctx = contextutil.WithUserID(ctx, actor.ID.String())
	ctx = contextutil.WithRole(ctx, actor.Role)
	reqLogger := contextutil.GetLogger(ctx, nil).With(zap.String("user_id", actor.ID.String()))
	ctx = contextutil.WithLogger(ctx, reqLogger)
	c.Request = c.Request.WithContext(ctx)
	return true
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortWith(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found")
			return
		}
		if !authenticate(c, tokens, raw) {
			return
		}
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through. A token that is present
// must still be valid.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw != "" && !authenticate(c, tokens, raw) {
			return
		}
		c.Next()
	}
}

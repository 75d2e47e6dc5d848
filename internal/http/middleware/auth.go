package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/http/response"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
	"github.com/yungbote/buildcare-backend/internal/services"
)

// EmailFrom extracts the identity a request targets.
type EmailFrom func(c *gin.Context) string

func EmailParam(name string) EmailFrom {
	return func(c *gin.Context) string { return c.Param(name) }
}

func EmailQuery(name string) EmailFrom {
	return func(c *gin.Context) string { return c.Query(name) }
}

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// RequireAuth verifies the bearer token before any handler reads state.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", apierr.Unauthenticated("unauthorized access"))
			return
		}
		id, err := am.authService.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireRole admits callers whose stored role is exactly role.
func (am *AuthMiddleware) RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ctxutil.GetIdentity(c.Request.Context())
		if id == nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", apierr.Unauthenticated("unauthorized access"))
			return
		}
		u, err := am.authService.RequireRole(c.Request.Context(), id.Email, role)
		if err != nil {
			am.log.Debug("role gate rejected", "email", id.Email, "required", string(role))
			abortAPIError(c, err)
			return
		}
		id.Role = string(u.Role)
		c.Next()
	}
}

// RequireSelf admits callers acting on their own identity.
func (am *AuthMiddleware) RequireSelf(target EmailFrom) gin.HandlerFunc {
	return am.requireSelf(target, false)
}

// RequireSelfOrAdmin additionally admits admins acting for anyone.
func (am *AuthMiddleware) RequireSelfOrAdmin(target EmailFrom) gin.HandlerFunc {
	return am.requireSelf(target, true)
}

func (am *AuthMiddleware) requireSelf(target EmailFrom, allowAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ctxutil.GetIdentity(c.Request.Context())
		if id == nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", apierr.Unauthenticated("unauthorized access"))
			return
		}
		if strings.EqualFold(strings.TrimSpace(target(c)), id.Email) {
			c.Next()
			return
		}
		if allowAdmin {
			role, err := am.authService.LookupRole(c.Request.Context(), id.Email)
			if err != nil {
				abortAPIError(c, err)
				return
			}
			if role == domain.RoleAdmin {
				id.Role = string(role)
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "forbidden", apierr.Forbidden("forbidden access"))
	}
}

func abortAPIError(c *gin.Context, err error) {
	response.RespondAPIError(c, err)
	c.Abort()
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/meetuphub/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":      "unauthorized",
			"message":   message,
			"requestId": c.GetString(CtxRequestID),
		},
	})
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			unauthorized(c, "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			unauthorized(c, "Invalid or expired access token")
			return
		}

		// Stash useful bits of identity on the context
		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxEmail, claims.Email)

		c.Next()
	}
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

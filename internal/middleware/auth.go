package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	teacherIDKey    = "teacher_id"
	teacherEmailKey = "teacher_email"
)

// Claims is the token payload issued at login.
type Claims struct {
	TeacherID string `json:"teacher_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the bearer token to a teacher identity before any
// protected handler runs. Token claims are the identity; no per-request
// user lookup.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing token"})
			return
		}
		tokenStr := strings.TrimSpace(auth[len("Bearer "):])

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
			return
		}

		c.Set(teacherIDKey, claims.TeacherID)
		c.Set(teacherEmailKey, claims.Email)
		c.Next()
	}
}

// TeacherID returns the authenticated teacher id set by AuthMiddleware.
func TeacherID(c *gin.Context) string {
	if v, ok := c.Get(teacherIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

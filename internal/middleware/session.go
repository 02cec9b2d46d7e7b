package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextHubID  = "hub_id"
	ContextUserID = "user_id"
)

// Session resolves the acting hub and user from a Bearer JWT issued by the
// platform's auth service. Every task operation is scoped by these two ids;
// handlers never resolve identity themselves.
func Session(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "Authorization header is required",
			})
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token_format",
				"message": "Authorization header must use Bearer token",
			})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Token is invalid or expired",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_claims",
				"message": "Token claims are malformed",
			})
			return
		}

		hubID := uuid.FromStringOrNil(stringClaim(claims, "hub_id"))
		if hubID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_hub",
				"message": "Token carries no hub scope",
			})
			return
		}

		c.Set(ContextHubID, hubID)
		if userID := uuid.FromStringOrNil(stringClaim(claims, "user_id")); userID != uuid.Nil {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}

// HubID returns the tenant scope set by Session.
func HubID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextHubID)
	if !exists {
		return uuid.Nil, false
	}
	hubID, ok := value.(uuid.UUID)
	return hubID, ok
}

// UserID returns the acting user, or nil when the token carried none.
func UserID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey = "user_id"
	// CompanyIDKey is the context key for the authenticated user's company ID
	CompanyIDKey = "company_id"
	// RoleKey is the context key for the authenticated user's role
	RoleKey = "role"
)

// Auth validates the Bearer token and stores the authenticated identity
// in the request context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if userID, ok := claims["user_id"].(string); ok {
			c.Set(UserIDKey, userID)
		}
		if companyID, ok := claims["company_id"].(string); ok {
			c.Set(CompanyIDKey, companyID)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleKey, role)
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetCompanyID returns the authenticated company ID from context
func GetCompanyID(c *gin.Context) string {
	return c.GetString(CompanyIDKey)
}

// GetRole returns the authenticated role from context
func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

// RequireRole aborts with 403 unless the authenticated user has one of
// the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[GetRole(c)] {
			response.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

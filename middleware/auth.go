package middleware

import (
	"net/http"
	"strings"

	"cedarclub/models"
	"cedarclub/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID       = "userID"
	CtxUserType     = "userType"
	CtxMembershipID = "membershipID"
	CtxRole         = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity in the context.
func JWTAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión no válida, inicia sesión de nuevo"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sesión no válida, inicia sesión de nuevo"})
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxUserType, models.UserType(claims.UserType))
		c.Set(CtxMembershipID, claims.MembershipID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// UserType returns the caller's user type set by JWTAuthMiddleware.
func UserType(c *gin.Context) models.UserType {
	if v, ok := c.Get(CtxUserType); ok {
		if t, ok := v.(models.UserType); ok {
			return t
		}
	}
	return ""
}

package middleware

import (
	"net/http"

	"cedarclub/models"

	"github.com/gin-gonic/gin"
)

// MemberOnlyMiddleware rejects staff tokens on member endpoints.
func MemberOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserType(c) != models.UserTypeMember {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Disponible solo para socios"})
			return
		}
		c.Next()
	}
}

// MembershipAccessMiddleware lets members read only their own membership,
// named by the :id path parameter.
func MembershipAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("id") != c.GetString(CtxMembershipID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a esta membresía"})
			return
		}
		c.Next()
	}
}

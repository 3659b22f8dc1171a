package middleware

import (
	"net/http"

	"cedarclub/models"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware admits staff with the admin role. It must run
// after JWTAuthMiddleware.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserType(c) != models.UserTypeEmployee || c.GetString(CtxRole) != models.StaffRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acceso restringido a administradores"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}

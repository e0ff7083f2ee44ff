package middleware

import (
	"net/http"

	"restaurant-api/services"

	"github.com/gin-gonic/gin"
)

// AdminRequired runs the admin gate once per request and stores the
// resulting scope for the handlers. It must follow AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := services.AuthorizeAdmin(GetPrincipal(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.Set("adminScope", scope)
		c.Next()
	}
}

// GetAdminScope returns the scope stored by AdminRequired. Outside an admin
// route it returns the zero scope, which every admin operation rejects.
func GetAdminScope(c *gin.Context) services.AdminScope {
	val, _ := c.Get("adminScope")
	scope, _ := val.(services.AdminScope)
	return scope
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/users"
)

// RequireOperator gates the order board: authenticated and operator role.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Faça login para continuar.",
				"request_id": GetRequestID(c),
			})
			return
		}
		if u.Role != users.RoleOperator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Acesso restrito à equipe da cafeteria.",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

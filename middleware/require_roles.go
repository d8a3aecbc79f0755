package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles autoriza pelos papéis administrativos da conta:
// "admin" exige IsAdmin, "secretaria" exige IsSecretaria.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Não foi possível identificar o usuário"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if allowed == "admin" && user.IsAdmin {
				c.Next()
				return
			}
			if allowed == "secretaria" && user.IsSecretaria {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Você não tem permissão para acessar este recurso"})
		c.Abort()
	}
}

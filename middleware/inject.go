package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anibalps/escola-backend/services"
)

// DBMiddleware coloca a conexão no contexto para os controllers.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// UploaderMiddleware injeta o pipeline de upload (classificador construído
// uma única vez no main, nada de estado global escondido).
func UploaderMiddleware(pipeline *services.UploadPipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("uploader", pipeline)
		c.Next()
	}
}

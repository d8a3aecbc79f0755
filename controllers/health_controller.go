package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
)

// HealthCheck confirma que o servidor e o banco estão de pé.
func HealthCheck(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

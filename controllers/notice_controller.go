package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
)

type NoticeInput struct {
	Content string `json:"content" binding:"required,max=500"`
}

// GetNotices lista os avisos ativos, do mais novo para o mais antigo.
func GetNotices(c *gin.Context) {
	var notices []models.Notice
	if err := config.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&notices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar avisos"})
		return
	}
	c.JSON(http.StatusOK, notices)
}

// CreateNotice publica um aviso assinado com o nome de quem criou.
func CreateNotice(c *gin.Context) {
	var input NoticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice := models.Notice{
		Content:  input.Content,
		Author:   currentUser(c).Name,
		IsActive: true,
	}
	if err := config.DB.Create(&notice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar aviso"})
		return
	}
	c.JSON(http.StatusCreated, notice)
}

// DeleteNotice desativa o aviso (soft delete, somente admin).
func DeleteNotice(c *gin.Context) {
	id := c.Param("id")

	var notice models.Notice
	if err := config.DB.First(&notice, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aviso não encontrado"})
		return
	}

	if err := config.DB.Model(&notice).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover aviso"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Aviso removido"})
}

package controllers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
	"github.com/anibalps/escola-backend/services"
)

// GetMenu devolve o PDF do cardápio atual.
func GetMenu(c *gin.Context) {
	var menu models.Menu
	if err := config.DB.Order("uploaded_at DESC").First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nenhum cardápio encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileUrl": menu.FileURL})
}

// UploadMenu substitui o cardápio. O arquivo antigo só é apagado depois que
// o registro com o novo arquivo foi gravado.
func UploadMenu(c *gin.Context) {
	pipeline := uploader(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O arquivo PDF é obrigatório"})
		return
	}
	if err := pipeline.CheckConstraints(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.ToLower(filepath.Ext(fh.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O cardápio deve ser um PDF"})
		return
	}

	data, err := pipeline.ReadFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
		return
	}
	if err := services.ValidatePDF(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileURL, err := pipeline.SaveRaw(data, "cardapio", ".pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var menu models.Menu
	if err := config.DB.First(&menu).Error; err == nil {
		oldFile := menu.FileURL
		menu.FileURL = fileURL
		menu.UploadedAt = time.Now()
		if err := config.DB.Save(&menu).Error; err != nil {
			pipeline.Remove(fileURL)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar o cardápio"})
			return
		}
		pipeline.Remove(oldFile)
	} else {
		menu = models.Menu{FileURL: fileURL}
		if err := config.DB.Create(&menu).Error; err != nil {
			pipeline.Remove(fileURL)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar o cardápio"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cardápio atualizado com sucesso", "fileUrl": menu.FileURL})
}

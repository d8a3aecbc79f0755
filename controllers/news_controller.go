package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
	"github.com/anibalps/escola-backend/services"
)

func uploader(c *gin.Context) *services.UploadPipeline {
	return c.MustGet("uploader").(*services.UploadPipeline)
}

// GetNews primeiro desativa notícias com mais de 3 meses (varredura
// preguiçosa no caminho de leitura) e então lista as ativas.
func GetNews(c *gin.Context) {
	if _, err := services.SweepOldNews(config.DB, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar notícias"})
		return
	}

	var news []models.News
	if err := config.DB.Where("is_active = ?", true).Order("date DESC").Find(&news).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar notícias"})
		return
	}
	c.JSON(http.StatusOK, news)
}

// CreateNews publica uma notícia com imagem obrigatória. O registro só é
// criado depois do artefato; se o registro falhar, o artefato é removido.
func CreateNews(c *gin.Context) {
	pipeline := uploader(c)

	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Título e conteúdo são obrigatórios"})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A imagem é obrigatória"})
		return
	}

	if err := pipeline.CheckConstraints(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !pipeline.IsImage(fh) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O arquivo da notícia deve ser uma imagem"})
		return
	}

	data, err := pipeline.ReadFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
		return
	}
	if err := pipeline.Screen(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imagePath, err := pipeline.SaveImage(data, "noticia")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	news := models.News{
		Title:        title,
		Content:      content,
		Image:        imagePath,
		ExternalLink: c.PostForm("externalLink"),
		AuthorEmail:  currentUser(c).Email,
		IsActive:     true,
	}
	if err := config.DB.Create(&news).Error; err != nil {
		pipeline.Remove(imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar notícia"})
		return
	}
	c.JSON(http.StatusCreated, news)
}

// UpdateNews altera uma notícia; a imagem antiga só é apagada depois que o
// registro com a nova imagem foi gravado.
func UpdateNews(c *gin.Context) {
	pipeline := uploader(c)
	id := c.Param("id")

	var news models.News
	if err := config.DB.First(&news, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notícia não encontrada"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		news.Title = title
	}
	if content := c.PostForm("content"); content != "" {
		news.Content = content
	}
	if link := c.PostForm("externalLink"); link != "" {
		news.ExternalLink = link
	}

	oldImage := ""
	if fh, err := c.FormFile("image"); err == nil {
		if err := pipeline.CheckConstraints(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !pipeline.IsImage(fh) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "O arquivo da notícia deve ser uma imagem"})
			return
		}
		data, err := pipeline.ReadFile(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
			return
		}
		if err := pipeline.Screen(data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newImage, err := pipeline.SaveImage(data, "noticia")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		oldImage = news.Image
		news.Image = newImage
	}

	if err := config.DB.Save(&news).Error; err != nil {
		if oldImage != "" {
			// O registro não mudou: desfaz o artefato novo
			pipeline.Remove(news.Image)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar notícia"})
		return
	}
	if oldImage != "" {
		pipeline.Remove(oldImage)
	}
	c.JSON(http.StatusOK, news)
}

// DeleteNews desativa a notícia (soft delete; o artefato fica para auditoria).
func DeleteNews(c *gin.Context) {
	id := c.Param("id")

	var news models.News
	if err := config.DB.First(&news, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notícia não encontrada"})
		return
	}

	if err := config.DB.Model(&news).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover notícia"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notícia removida"})
}

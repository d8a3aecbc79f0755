package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
)

const maxGalleryBatch = 10

// GetGallery lista as imagens ativas, das mais recentes para as mais antigas.
func GetGallery(c *gin.Context) {
	var images []models.GalleryImage
	if err := config.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a galeria"})
		return
	}
	c.JSON(http.StatusOK, images)
}

// UploadGalleryImages processa um lote de imagens para um álbum. A triagem é
// tudo-ou-nada: todas as imagens passam pelo classificador antes de qualquer
// transformação. Uma falha em qualquer etapa desfaz os registros e artefatos
// criados nesta mesma requisição.
func UploadGalleryImages(c *gin.Context) {
	pipeline := uploader(c)

	album := c.PostForm("album")
	if album == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O nome do álbum é obrigatório"})
		return
	}
	caption := c.PostForm("caption")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição multipart inválida"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhuma imagem enviada"})
		return
	}
	if len(files) > maxGalleryBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No máximo 10 imagens por envio"})
		return
	}

	// Etapa 1: restrições de tamanho/tipo em todos os arquivos
	buffers := make([][]byte, 0, len(files))
	for _, fh := range files {
		if err := pipeline.CheckConstraints(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !pipeline.IsImage(fh) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A galeria aceita apenas imagens"})
			return
		}
		data, err := pipeline.ReadFile(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
			return
		}
		buffers = append(buffers, data)
	}

	// Etapa 2: triagem de todo o lote antes de transformar qualquer imagem
	for _, data := range buffers {
		if err := pipeline.Screen(data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CONTEÚDO BLOQUEADO: uma ou mais imagens da galeria são impróprias"})
			return
		}
	}

	// Etapas 3 e 4: transforma e persiste cada imagem; falha desfaz o lote
	written := make([]string, 0, 2*len(buffers))
	created := make([]models.GalleryImage, 0, len(buffers))
	rollback := func() {
		for _, image := range created {
			config.DB.Delete(&models.GalleryImage{}, "id = ?", image.ID)
		}
		pipeline.Remove(written...)
	}

	for _, data := range buffers {
		display, thumb, err := pipeline.SaveImageWithThumb(data, album)
		if err != nil {
			rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		written = append(written, display, thumb)

		image := models.GalleryImage{
			URL:         display,
			ThumbURL:    thumb,
			Caption:     caption,
			Album:       album,
			AuthorEmail: currentUser(c).Email,
			IsActive:    true,
		}
		if err := config.DB.Create(&image).Error; err != nil {
			rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar imagem da galeria"})
			return
		}
		created = append(created, image)
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteGalleryImage desativa uma imagem (soft delete).
func DeleteGalleryImage(c *gin.Context) {
	id := c.Param("id")

	var image models.GalleryImage
	if err := config.DB.First(&image, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Imagem não encontrada"})
		return
	}

	if err := config.DB.Model(&image).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover imagem"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Imagem removida"})
}

// DeleteGalleryAlbum desativa todas as imagens de um álbum.
func DeleteGalleryAlbum(c *gin.Context) {
	albumName := c.Param("albumName")

	result := config.DB.Model(&models.GalleryImage{}).
		Where("album = ? AND is_active = ?", albumName, true).
		Update("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover álbum"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Álbum não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Álbum removido"})
}

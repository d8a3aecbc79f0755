package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// UploadFile é o endpoint genérico de upload autenticado. Imagens passam
// pela triagem e pela reencodificação; documentos são gravados como estão.
func UploadFile(c *gin.Context) {
	pipeline := uploader(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado"})
		return
	}
	if err := pipeline.CheckConstraints(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := pipeline.ReadFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
		return
	}

	var filePath string
	if pipeline.IsImage(fh) {
		if err := pipeline.Screen(data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filePath, err = pipeline.SaveImage(data, "arquivo")
	} else {
		filePath, err = pipeline.SaveRaw(data, "arquivo", filepath.Ext(fh.Filename))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Arquivo enviado com sucesso",
		"filePath": filePath,
	})
}

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

// GetSchedules devolve um mapa turma -> URL da planilha, como o frontend espera.
func GetSchedules(c *gin.Context) {
	var schedules []models.Schedule
	if err := config.DB.Order("class_name").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar horários"})
		return
	}

	result := make(map[string]string, len(schedules))
	for _, s := range schedules {
		result[s.ClassName] = s.FileURL
	}
	c.JSON(http.StatusOK, result)
}

// UploadSchedule cria ou substitui o horário de uma turma. A planilha antiga
// só é apagada depois que o registro novo foi gravado.
func UploadSchedule(c *gin.Context) {
	pipeline := uploader(c)

	className := c.PostForm("className")
	if className == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da turma e planilha Excel são obrigatórios"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da turma e planilha Excel são obrigatórios"})
		return
	}
	if err := pipeline.CheckConstraints(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O horário deve ser uma planilha Excel"})
		return
	}

	data, err := pipeline.ReadFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
		return
	}
	// xls legado não abre no excelize; validamos apenas xlsx
	if ext == ".xlsx" {
		if err := services.ValidateXLSX(data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	fileURL, err := pipeline.SaveRaw(data, "horario-"+className, ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var schedule models.Schedule
	if err := config.DB.Where("class_name = ?", className).First(&schedule).Error; err == nil {
		oldFile := schedule.FileURL
		schedule.FileURL = fileURL
		schedule.UploadedAt = time.Now()
		if err := config.DB.Save(&schedule).Error; err != nil {
			pipeline.Remove(fileURL)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar horário"})
			return
		}
		pipeline.Remove(oldFile)
	} else {
		schedule = models.Schedule{ClassName: className, FileURL: fileURL}
		if err := config.DB.Create(&schedule).Error; err != nil {
			pipeline.Remove(fileURL)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar horário"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Horário da turma " + className + " atualizado com sucesso", "schedule": schedule})
}

// DeleteSchedule remove o horário de uma turma e a planilha associada.
func DeleteSchedule(c *gin.Context) {
	pipeline := uploader(c)
	className := c.Param("className")

	var schedule models.Schedule
	if err := config.DB.Where("class_name = ?", className).First(&schedule).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Horário não encontrado para esta turma"})
		return
	}

	if err := config.DB.Delete(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover horário"})
		return
	}
	pipeline.Remove(schedule.FileURL)
	c.JSON(http.StatusOK, gin.H{"message": "Horário da turma " + className + " removido"})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
)

type EventInput struct {
	Date        time.Time `json:"date" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// GetEvents lista os eventos ativos por data crescente.
func GetEvents(c *gin.Context) {
	var events []models.Event
	if err := config.DB.Where("is_active = ?", true).Order("date").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar eventos"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func CreateEvent(c *gin.Context) {
	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Date.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A data do evento não pode ser anterior à data atual"})
		return
	}

	event := models.Event{
		Date:        input.Date,
		Title:       input.Title,
		Description: input.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar evento"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var event models.Event
	if err := config.DB.First(&event, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento não encontrado"})
		return
	}

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Date.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A data do evento não pode ser anterior à data atual"})
		return
	}

	event.Date = input.Date
	event.Title = input.Title
	event.Description = input.Description

	if err := config.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar evento"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent desativa o evento (soft delete, idempotente).
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	var event models.Event
	if err := config.DB.First(&event, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento não encontrado"})
		return
	}

	if err := config.DB.Model(&event).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover evento"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evento removido"})
}

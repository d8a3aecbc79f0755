package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
)

type HistoryInput struct {
	Year        int    `json:"year" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// GetHistory lista os marcos históricos ativos por ano crescente.
func GetHistory(c *gin.Context) {
	var items []models.History
	if err := config.DB.Where("is_active = ?", true).Order("year").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a história"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func CreateHistory(c *gin.Context) {
	var input HistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.History{
		Year:        input.Year,
		Title:       input.Title,
		Description: input.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar item da história"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateHistory(c *gin.Context) {
	id := c.Param("id")

	var item models.History
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item da história não encontrado"})
		return
	}

	var input HistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Year = input.Year
	item.Title = input.Title
	item.Description = input.Description

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar item da história"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteHistory(c *gin.Context) {
	id := c.Param("id")

	var item models.History
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item da história não encontrado"})
		return
	}

	if err := config.DB.Model(&item).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover item da história"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item da história removido"})
}

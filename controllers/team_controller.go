package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
)

// GetTeam lista o corpo docente, ordenado por função e nome.
func GetTeam(c *gin.Context) {
	var team []models.TeamMember
	if err := config.DB.Order("role, name").Find(&team).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a equipe"})
		return
	}
	c.JSON(http.StatusOK, team)
}

func splitSubjects(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	subjects := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			subjects = append(subjects, trimmed)
		}
	}
	return subjects
}

// teamPhoto valida, faz a triagem e grava a foto enviada. Devolve o caminho
// público ou responde o erro e devolve ok=false.
func teamPhoto(c *gin.Context) (string, bool) {
	pipeline := uploader(c)

	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A foto é obrigatória"})
		return "", false
	}
	if err := pipeline.CheckConstraints(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	if !pipeline.IsImage(fh) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A foto deve ser uma imagem"})
		return "", false
	}

	data, err := pipeline.ReadFile(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
		return "", false
	}
	if err := pipeline.Screen(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	photoPath, err := pipeline.SaveImage(data, "equipe")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", false
	}
	return photoPath, true
}

func CreateTeamMember(c *gin.Context) {
	pipeline := uploader(c)

	name := c.PostForm("name")
	role := c.PostForm("role")
	bio := c.PostForm("bio")
	if name == "" || role == "" || bio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome, função e bio são obrigatórios"})
		return
	}

	photoPath, ok := teamPhoto(c)
	if !ok {
		return
	}

	member := models.TeamMember{
		Name:     name,
		Role:     models.TeamRole(role),
		Subjects: splitSubjects(c.PostForm("subjects")),
		Bio:      bio,
		Photo:    photoPath,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		pipeline.Remove(photoPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar membro da equipe"})
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateTeamMember altera um membro; a foto antiga só é removida depois que
// o registro com a nova foi gravado.
func UpdateTeamMember(c *gin.Context) {
	pipeline := uploader(c)
	id := c.Param("id")

	var member models.TeamMember
	if err := config.DB.First(&member, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Membro da equipe não encontrado"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		member.Name = name
	}
	if role := c.PostForm("role"); role != "" {
		member.Role = models.TeamRole(role)
	}
	if bio := c.PostForm("bio"); bio != "" {
		member.Bio = bio
	}
	if subjects := c.PostForm("subjects"); subjects != "" {
		member.Subjects = splitSubjects(subjects)
	}

	oldPhoto := ""
	if _, err := c.FormFile("photo"); err == nil {
		photoPath, ok := teamPhoto(c)
		if !ok {
			return
		}
		oldPhoto = member.Photo
		member.Photo = photoPath
	}

	if err := config.DB.Save(&member).Error; err != nil {
		if oldPhoto != "" {
			pipeline.Remove(member.Photo)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar membro da equipe"})
		return
	}
	if oldPhoto != "" {
		pipeline.Remove(oldPhoto)
	}
	c.JSON(http.StatusOK, member)
}

// DeleteTeamMember remove o membro e a foto associada.
func DeleteTeamMember(c *gin.Context) {
	pipeline := uploader(c)
	id := c.Param("id")

	var member models.TeamMember
	if err := config.DB.First(&member, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Membro da equipe não encontrado"})
		return
	}

	if err := config.DB.Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover membro da equipe"})
		return
	}
	pipeline.Remove(member.Photo)
	c.JSON(http.StatusOK, gin.H{"message": "Membro da equipe removido"})
}

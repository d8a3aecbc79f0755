package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/models"
)

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type UpdatePermissionsInput struct {
	IsAdmin      *bool           `json:"isAdmin"`
	IsSecretaria *bool           `json:"isSecretaria"`
	Role         models.UserRole `json:"role"`
}

// GetUsers lista todas as contas (sem os campos sensíveis, via json:"-").
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("name").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuários"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetProfile devolve o perfil do usuário autenticado.
func GetProfile(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"isAdmin":      user.IsAdmin,
		"isSecretaria": user.IsSecretaria,
	})
}

// UpdateProfile altera nome/e-mail do próprio usuário.
func UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}

	if err := config.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar o perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"isAdmin":      user.IsAdmin,
		"isSecretaria": user.IsSecretaria,
	})
}

// ChangePassword troca a senha do próprio usuário (exige a senha atual).
func ChangePassword(c *gin.Context) {
	user := currentUser(c)

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha atual incorreta"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criptografar a senha"})
		return
	}

	if err := config.DB.Model(user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar a senha"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha atualizada com sucesso"})
}

// UpdatePermissions altera papel e flags de outra conta (somente admin).
// Contas protegidas nunca são alteradas, nem pelo próprio dono.
func UpdatePermissions(c *gin.Context) {
	caller := currentUser(c)
	id := c.Param("id")

	var input UpdatePermissionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	if user.IsProtected {
		c.JSON(http.StatusForbidden, gin.H{"error": "Esta conta é protegida e não pode ser alterada"})
		return
	}

	// Um admin não pode revogar o próprio acesso de admin
	if caller.ID == user.ID && input.IsAdmin != nil && !*input.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Você não pode revogar seu próprio acesso de admin"})
		return
	}

	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsSecretaria != nil {
		user.IsSecretaria = *input.IsSecretaria
	}
	if input.Role != "" {
		user.Role = input.Role
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar permissões"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permissões atualizadas", "user": user})
}

// DeleteUser remove uma conta (somente admin; nunca a própria, nunca protegida).
func DeleteUser(c *gin.Context) {
	caller := currentUser(c)
	id := c.Param("id")

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	if user.IsProtected {
		c.JSON(http.StatusForbidden, gin.H{"error": "Esta conta é protegida e não pode ser removida"})
		return
	}
	if caller.ID == user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Você não pode remover a si mesmo"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover usuário"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido"})
}

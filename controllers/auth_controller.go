package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/anibalps/escola-backend/config"
	"github.com/anibalps/escola-backend/middleware"
	"github.com/anibalps/escola-backend/models"
	"github.com/anibalps/escola-backend/utils"
)

// Validade dos segredos de curta duração
const (
	verificationCodeTTL = 90 * time.Second
	resetTokenTTL       = time.Hour
)

// Injetável nos testes
var sendMail = utils.SendEmail

// ====== INPUT STRUCTS ======
type PublicRegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AdminRegisterInput struct {
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required,min=6"`
	Role         models.UserRole `json:"role"`
	IsAdmin      bool            `json:"isAdmin"`
	IsSecretaria bool            `json:"isSecretaria"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type CheckEmailInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=6"`
}

// issueVerificationCode gera um código novo (substituindo qualquer anterior),
// persiste e dispara o e-mail. A mutação da conta não é desfeita se o envio
// falhar; quem chama decide o que reportar.
func issueVerificationCode(user *models.User) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}
	expire := time.Now().Add(verificationCodeTTL)

	if err := config.DB.Model(user).Updates(map[string]interface{}{
		"verification_code":        code,
		"verification_code_expire": expire,
	}).Error; err != nil {
		return err
	}

	subject := "Seu Código de Verificação - " + utils.SchoolName
	return sendMail(user.Email, subject, utils.VerificationEmailBody(code))
}

// issueResetToken gera um token de alta entropia, guarda apenas o hash e
// envia o token em claro por e-mail. Se o envio falhar, os campos de reset
// são limpos para que um token obsoleto nunca possa ser adivinhado depois.
func issueResetToken(user *models.User) error {
	token, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}
	hashed := utils.HashToken(token)
	expire := time.Now().Add(resetTokenTTL)

	if err := config.DB.Model(user).Updates(map[string]interface{}{
		"reset_password_token":  hashed,
		"reset_password_expire": expire,
	}).Error; err != nil {
		return err
	}

	subject := "Redefinição de Senha - " + utils.SchoolName
	if err := sendMail(user.Email, subject, utils.ResetEmailBody(utils.ResetURL(token))); err != nil {
		// Rollback: limpa os campos parcialmente gravados
		config.DB.Model(user).Updates(map[string]interface{}{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		})
		return err
	}
	return nil
}

// PublicRegister cria uma conta não verificada e envia o código por e-mail.
// Se o e-mail já existir sem verificação, apenas reenvia um código novo.
func PublicRegister(c *gin.Context) {
	var input PublicRegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		if existing.IsVerified {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário já existe"})
			return
		}
		// Conta pendente: reenvia um código novo (substitui o anterior)
		if err := issueVerificationCode(&existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível enviar o e-mail de verificação"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Um novo código de verificação foi enviado para o seu e-mail",
			"email":   existing.Email,
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criptografar a senha"})
		return
	}

	newUser := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.RoleProfessor,
	}
	if err := config.DB.Create(&newUser).Error; err != nil {
		// Corrida entre dois registros simultâneos: o índice único resolve
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário já existe"})
		return
	}

	if err := issueVerificationCode(&newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível enviar o e-mail de verificação"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registro realizado, verifique seu e-mail",
		"email":   newUser.Email,
	})
}

// RegisterByAdmin cria uma conta já verificada com o papel escolhido e envia
// um link para o novo usuário definir a própria senha. Falha no envio do
// e-mail é reportada como sucesso parcial: a conta existe, o aviso não chegou.
func RegisterByAdmin(c *gin.Context) {
	var input AdminRegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário já existe"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criptografar a senha"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleProfessor
	}

	newUser := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     string(hashed),
		Role:         role,
		IsAdmin:      input.IsAdmin,
		IsSecretaria: input.IsSecretaria,
		IsVerified:   true,
	}
	if err := config.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar usuário"})
		return
	}

	emailSent := true
	if err := issueResetToken(&newUser); err != nil {
		log.Printf("Erro ao enviar e-mail de boas-vindas para %s: %v", newUser.Email, err)
		emailSent = false
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":           newUser.ID,
			"name":         newUser.Name,
			"email":        newUser.Email,
			"role":         newUser.Role,
			"isAdmin":      newUser.IsAdmin,
			"isSecretaria": newUser.IsSecretaria,
		},
		"emailSent": emailSent,
	})
}

// Login autentica e devolve o token. Senha correta em conta não verificada
// não abre sessão: reenvia um código e sinaliza needsVerification, para
// distinguir "senha errada" de "senha certa, e-mail pendente".
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credenciais inválidas"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credenciais inválidas"})
		return
	}

	if !user.IsVerified {
		if err := issueVerificationCode(&user); err != nil {
			log.Printf("Erro ao reenviar código de verificação para %s: %v", user.Email, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"needsVerification": true,
			"email":             user.Email,
			"error":             "Conta não verificada, um novo código foi enviado",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gerar o token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"isAdmin":      user.IsAdmin,
			"isSecretaria": user.IsSecretaria,
		},
	})
}

// VerifyEmail confere o código de 6 dígitos (uso único).
func VerifyEmail(c *gin.Context) {
	var input VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	// Comparação exata com o código armazenado
	if user.VerificationCode == nil || *user.VerificationCode != input.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Código de verificação inválido"})
		return
	}
	if user.VerificationCodeExpire == nil || time.Now().After(*user.VerificationCodeExpire) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Código de verificação expirado"})
		return
	}

	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"is_verified":              true,
		"verification_code":        nil,
		"verification_code_expire": nil,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar a conta"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "E-mail verificado com sucesso"})
}

// CheckEmail informa se um e-mail já está cadastrado (e se está verificado).
func CheckEmail(c *gin.Context) {
	var input CheckEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true, "isVerified": user.IsVerified})
}

// ForgotPassword inicia o fluxo de redefinição de senha.
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Não existe usuário com este e-mail"})
		return
	}

	if err := issueResetToken(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "O e-mail não pôde ser enviado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "E-mail enviado com sucesso"})
}

// ResetPassword consome o token (uso único) e grava a nova senha.
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedToken := utils.HashToken(c.Param("token"))

	var user models.User
	err := config.DB.Where("reset_password_token = ? AND reset_password_expire > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token de redefinição inválido ou expirado"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criptografar a senha"})
		return
	}

	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"password":              string(hashed),
		"reset_password_token":  nil,
		"reset_password_expire": nil,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao redefinir a senha"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha redefinida com sucesso"})
}

// currentUser é um atalho para o usuário autenticado do contexto.
func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

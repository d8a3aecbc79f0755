package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleProfessor    UserRole = "Professor(a)"
	RoleSecretaria   UserRole = "Secretaria"
	RoleCoordenacao  UserRole = "Coordenação"
	RoleDiretora     UserRole = "Diretora"
	RoleViceDiretora UserRole = "Vice-Diretora"
	RoleAdmin        UserRole = "Admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:150;not null" json:"name"`
	Email    string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Role     UserRole  `gorm:"type:varchar(30);not null;default:'Professor(a)'" json:"role"`

	IsAdmin      bool `gorm:"not null;default:false" json:"isAdmin"`
	IsSecretaria bool `gorm:"not null;default:false" json:"isSecretaria"`
	IsVerified   bool `gorm:"not null;default:false" json:"isVerified"`
	// Contas protegidas nunca podem ser alteradas ou removidas pelos
	// endpoints de permissão/remoção, independente de quem chama.
	IsProtected bool `gorm:"not null;default:false" json:"isProtected"`

	// Código de verificação de e-mail (6 dígitos, validade curta)
	VerificationCode       *string    `gorm:"size:6" json:"-"`
	VerificationCodeExpire *time.Time `json:"-"`

	// Reset de senha: guardamos apenas o hash SHA-256 do token
	ResetPasswordToken  *string    `gorm:"size:64" json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

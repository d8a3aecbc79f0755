package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type News struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"size:200;not null" json:"title"`
	Content string    `gorm:"type:text;not null" json:"content"`
	// Caminho público da imagem derivada (ex.: /uploads/noticia-<uuid>.jpg)
	Image        string    `gorm:"size:300;not null" json:"image"`
	Date         time.Time `gorm:"not null" json:"date"`
	AuthorEmail  string    `gorm:"size:150;not null" json:"authorEmail"`
	ExternalLink string    `gorm:"size:500" json:"externalLink,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	return nil
}

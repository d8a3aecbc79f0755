package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryImage struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	// Versão de exibição e miniatura geradas a partir do mesmo upload
	URL         string    `gorm:"size:300;not null" json:"url"`
	ThumbURL    string    `gorm:"size:300;not null" json:"thumbUrl"`
	Caption     string    `gorm:"size:300;not null" json:"caption"`
	Album       string    `gorm:"size:150;not null;index" json:"album"`
	AuthorEmail string    `gorm:"size:150;not null" json:"authorEmail"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *GalleryImage) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

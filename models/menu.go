package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu guarda o cardápio atual (PDF). Existe no máximo um registro ativo;
// um novo upload substitui o arquivo anterior.
type Menu struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileURL    string    `gorm:"size:300;not null;uniqueIndex" json:"fileUrl"`
	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.UploadedAt.IsZero() {
		m.UploadedAt = time.Now()
	}
	return nil
}

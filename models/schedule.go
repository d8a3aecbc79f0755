package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule é o horário de aulas de uma turma (planilha Excel).
type Schedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClassName  string    `gorm:"size:100;not null;uniqueIndex" json:"className"`
	FileURL    string    `gorm:"size:300;not null" json:"fileUrl"`
	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.UploadedAt.IsZero() {
		s.UploadedAt = time.Now()
	}
	return nil
}

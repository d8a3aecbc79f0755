package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRole string

const (
	TeamProfessor    TeamRole = "Professor(a)"
	TeamDiretora     TeamRole = "Diretora"
	TeamCoordenador  TeamRole = "Coordenador(a)"
	TeamViceDiretora TeamRole = "Vice-Diretora"
)

type TeamMember struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:150;not null" json:"name"`
	Role TeamRole  `gorm:"type:varchar(30);not null" json:"role"`
	// Disciplinas lecionadas, serializadas como JSON
	Subjects  []string  `gorm:"serializer:json" json:"subjects"`
	Bio       string    `gorm:"type:text;not null" json:"bio"`
	Photo     string    `gorm:"size:300;not null" json:"photo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name            string `gorm:"not null"`
	Description     string
	PriceInPaisa    int64  `gorm:"not null"` // smallest currency unit, no floats for money
	DurationMinutes int    // in minutes
	Category        string `gorm:"default:'General'"`
	IsActive        bool   `gorm:"default:true"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

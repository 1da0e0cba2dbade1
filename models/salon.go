package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string
	Email   string

	WorkingHours JSONB `gorm:"type:text;default:'{}'"`

	Users    []User    `gorm:"foreignKey:SalonID"`
	Staff    []Staff   `gorm:"foreignKey:SalonID"`
	Services []Service `gorm:"foreignKey:SalonID"`
	Packages []Package `gorm:"foreignKey:SalonID"`

	gorm.Model
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is a bookable staff member of a salon. Separate from User, which is
// a login account: most staff never log in.
type Staff struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name      string `gorm:"not null"`
	Phone     string
	Specialty string
	IsActive  bool `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:StaffID"`

	gorm.Model
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

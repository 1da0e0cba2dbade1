package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ActiveBookingStatuses are the statuses that occupy a staff member's time.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	CustomerName  string `gorm:"not null"`
	CustomerPhone string `gorm:"not null"`

	// For package bookings ServiceID holds the package's first listed service,
	// a representative id for systems that expect one service per booking.
	ServiceID uuid.UUID  `gorm:"type:uuid;index;not null"`
	StaffID   *uuid.UUID `gorm:"type:uuid;index"`
	PackageID *uuid.UUID `gorm:"type:uuid;index"`

	BookingDate string `gorm:"type:varchar(10);index;not null"` // YYYY-MM-DD
	BookingTime string `gorm:"type:varchar(5);not null"`        // HH:MM, 24-hour

	Status           string `gorm:"type:varchar(20);default:'pending'"`
	IsPackageBooking bool   `gorm:"default:false"`
	TotalAmountPaisa int64  `gorm:"not null"`
	Notes            string

	Service *Service `gorm:"foreignKey:ServiceID"`
	Staff   *Staff   `gorm:"foreignKey:StaffID"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// PackageBooking is the frozen price snapshot linking a booking to the
// package that produced it. Written exactly once; later package price edits
// never touch it.
type PackageBooking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PackageID uuid.UUID `gorm:"type:uuid;index;not null"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null"`

	PackagePriceAtBooking int64 `gorm:"not null"`
	RegularPriceAtBooking int64 `gorm:"not null"`
	SavingsPaisa          int64 `gorm:"not null"` // regular - package at booking time

	Booking *Booking `gorm:"foreignKey:BookingID"`

	gorm.Model
}

func (pb *PackageBooking) BeforeCreate(tx *gorm.DB) (err error) {
	if pb.ID == uuid.Nil {
		pb.ID = uuid.New()
	}
	return
}

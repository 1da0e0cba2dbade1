package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package category values come from the published marketplace category list
// and are consumed as-is.
var PackageCategories = []string{
	"hair", "skin", "spa", "nails", "makeup", "bridal", "grooming", "combo",
}

func IsValidPackageCategory(category string) bool {
	for _, c := range PackageCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Gender targeting values
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnisex = "unisex"
)

// Package is a salon-defined bundle of two or more service instances sold at
// a combined discounted price.
type Package struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Description string
	Category    string `gorm:"type:varchar(20);default:'combo'"`
	ImageURL    string
	Gender      string `gorm:"type:varchar(10)"` // male, female, unisex or empty for unset

	// Derived pricing, recomputed whenever price or composition changes.
	TotalDurationMinutes int   `gorm:"not null"`
	RegularPriceInPaisa  int64 `gorm:"not null"`
	PackagePriceInPaisa  int64 `gorm:"not null"`
	DiscountPercentage   int   `gorm:"not null"`

	// Availability policy. All optional; nil/empty means unconstrained.
	ValidFrom              *time.Time
	ValidUntil             *time.Time
	AvailableDays          StringList `gorm:"type:text"`    // weekday abbreviations: Mon..Sun
	AvailableTimeStart     *string    `gorm:"type:varchar(5)"` // HH:MM
	AvailableTimeEnd       *string    `gorm:"type:varchar(5)"` // HH:MM
	MinAdvanceBookingHours *int
	MaxBookingsPerDay      *int

	IsActive     bool `gorm:"default:true;index"`
	IsFeatured   bool `gorm:"default:false"`
	SortOrder    int  `gorm:"default:0"`
	BookingCount int  `gorm:"default:0"` // lifetime counter, advisory only

	Salon    *Salon           `gorm:"foreignKey:SalonID"`
	Services []PackageService `gorm:"foreignKey:PackageID"`

	gorm.Model
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// SavingsPaisa is the display savings against booking the services separately.
func (p *Package) SavingsPaisa() int64 {
	return p.RegularPriceInPaisa - p.PackagePriceInPaisa
}

// PackageService is one (service, quantity, order) line item of a package.
// Rows are replaced wholesale whenever the package composition changes, so
// SequenceOrder always reflects the latest submitted order.
type PackageService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PackageID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	SalonID   uuid.UUID `gorm:"type:uuid;index;not null"` // denormalized for same-salon enforcement

	SequenceOrder int `gorm:"not null"` // 1-based
	Quantity      int `gorm:"not null;default:1"`

	Service *Service `gorm:"foreignKey:ServiceID"`

	CreatedAt time.Time
}

func (ps *PackageService) BeforeCreate(tx *gorm.DB) (err error) {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return
}

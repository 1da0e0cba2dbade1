// services/availability.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultServiceDurationMinutes is assumed when an existing booking's service
// cannot be resolved.
const DefaultServiceDurationMinutes = 30

// AvailabilityResult is the decision for one (package, date, time) probe.
// On a capped success DailyBookingsRemaining carries the remaining quota.
type AvailabilityResult struct {
	Available              bool   `json:"available"`
	Code                   string `json:"code,omitempty"`
	Reason                 string `json:"reason,omitempty"`
	DailyBookingsRemaining *int   `json:"dailyBookingsRemaining,omitempty"`
}

type AvailabilityService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db, now: utils.Now}
}

// withDB returns a copy bound to tx, so the booking orchestrator can run the
// re-check inside its transaction.
func (s *AvailabilityService) withDB(tx *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: tx, now: s.now}
}

// availabilityCheck is one ordered predicate of the decision chain. It
// returns a failure code and reason, or "" to pass.
type availabilityCheck func(pkg *models.Package, date, timeOfDay string, now time.Time) (string, string)

// The temporal checks, evaluated strictly in order with short-circuit on the
// first violation. The per-day quota check needs the store and runs after.
var availabilityChecks = []availabilityCheck{
	func(pkg *models.Package, _, _ string, _ time.Time) (string, string) {
		if !pkg.IsActive {
			return CodePackageInactive, "Package is no longer available"
		}
		return "", ""
	},
	func(pkg *models.Package, _, _ string, now time.Time) (string, string) {
		if pkg.ValidFrom != nil && now.Before(*pkg.ValidFrom) {
			return CodePackageNotYetAvailable,
				fmt.Sprintf("Package is not yet available (starts %s)", pkg.ValidFrom.Format(utils.DateLayout))
		}
		return "", ""
	},
	func(pkg *models.Package, _, _ string, now time.Time) (string, string) {
		if pkg.ValidUntil != nil && now.After(*pkg.ValidUntil) {
			return CodePackageExpired, "Package has expired"
		}
		return "", ""
	},
	func(pkg *models.Package, date, _ string, _ time.Time) (string, string) {
		if len(pkg.AvailableDays) == 0 {
			return "", ""
		}
		day, err := utils.ParseDate(date)
		if err != nil {
			return CodeDayNotAllowed, err.Error()
		}
		if !pkg.AvailableDays.Contains(utils.WeekdayAbbrev(day)) {
			return CodeDayNotAllowed,
				"Package is only available on: " + strings.Join(pkg.AvailableDays, ", ")
		}
		return "", ""
	},
	func(pkg *models.Package, _, timeOfDay string, _ time.Time) (string, string) {
		if pkg.AvailableTimeStart == nil || pkg.AvailableTimeEnd == nil {
			return "", ""
		}
		// Lexical comparison is correct for zero-padded HH:MM strings.
		if timeOfDay < *pkg.AvailableTimeStart || timeOfDay > *pkg.AvailableTimeEnd {
			return CodeTimeWindowViolation,
				fmt.Sprintf("Package is only available between %s and %s",
					*pkg.AvailableTimeStart, *pkg.AvailableTimeEnd)
		}
		return "", ""
	},
	func(pkg *models.Package, date, timeOfDay string, now time.Time) (string, string) {
		if pkg.MinAdvanceBookingHours == nil {
			return "", ""
		}
		slot, err := utils.CombineDateTime(date, timeOfDay)
		if err != nil {
			return CodeInsufficientLeadTime, err.Error()
		}
		if slot.Sub(now).Hours() < float64(*pkg.MinAdvanceBookingHours) {
			return CodeInsufficientLeadTime,
				fmt.Sprintf("Package requires booking at least %d hours in advance", *pkg.MinAdvanceBookingHours)
		}
		return "", ""
	},
}

// CheckAvailability decides whether pkg can be booked for the given date and
// time. Pure read; the returned error only ever reports a storage failure.
func (s *AvailabilityService) CheckAvailability(pkg *models.Package, date, timeOfDay string) (AvailabilityResult, error) {
	now := s.now()
	for _, check := range availabilityChecks {
		if code, reason := check(pkg, date, timeOfDay, now); code != "" {
			return AvailabilityResult{Available: false, Code: code, Reason: reason}, nil
		}
	}

	if pkg.MaxBookingsPerDay == nil {
		return AvailabilityResult{Available: true}, nil
	}

	var count int64
	err := s.db.Model(&models.Booking{}).
		Where("package_id = ? AND booking_date = ? AND status <> ?",
			pkg.ID, date, models.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return AvailabilityResult{}, wrapStorage("count daily bookings", err)
	}

	if count >= int64(*pkg.MaxBookingsPerDay) {
		return AvailabilityResult{
			Available: false,
			Code:      CodeDailyCapacityReached,
			Reason:    "Maximum daily bookings reached for this package",
		}, nil
	}

	remaining := *pkg.MaxBookingsPerDay - int(count)
	return AvailabilityResult{Available: true, DailyBookingsRemaining: &remaining}, nil
}

// CheckStaffConflict scans the staff member's active bookings on the given
// date for a time overlap with a proposed [start, start+duration) interval.
// A nil return means the slot is free.
func (s *AvailabilityService) CheckStaffConflict(staffID uuid.UUID, date, startTime string, durationMinutes int) error {
	var staff models.Staff
	if err := s.db.First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewDomainError(CodeStaffNotFound, "Staff member not found")
		}
		return wrapStorage("load staff", err)
	}
	if !staff.IsActive {
		return NewDomainError(CodeStaffInactive, "Staff member is not active")
	}

	start, err := utils.ParseTimeOfDay(startTime)
	if err != nil {
		return NewDomainError(CodeInvalidInput, err.Error())
	}
	end := start + durationMinutes

	var existing []models.Booking
	err = s.db.Preload("Service").
		Where("staff_id = ? AND booking_date = ? AND status IN ?",
			staffID, date, models.ActiveBookingStatuses).
		Find(&existing).Error
	if err != nil {
		return wrapStorage("load staff bookings", err)
	}

	for _, booking := range existing {
		bStart, err := utils.ParseTimeOfDay(booking.BookingTime)
		if err != nil {
			continue
		}
		duration := DefaultServiceDurationMinutes
		if booking.Service != nil && booking.Service.DurationMinutes > 0 {
			duration = booking.Service.DurationMinutes
		}
		bEnd := bStart + duration

		// Half-open intervals: touching endpoints do not conflict.
		if start < bEnd && end > bStart {
			return NewDomainError(CodeStaffConflict,
				fmt.Sprintf("Staff member already has a booking at %s on %s", booking.BookingTime, date))
		}
	}
	return nil
}

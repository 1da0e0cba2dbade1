// services/booking_service.go
package services

import (
	"errors"
	"log"
	"sort"
	"sync"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lockTable hands out named mutexes so the check-then-insert sequence for a
// given (package, date) or (staff, date) key runs exclusively. This is the
// explicit-lock substitute for serializable isolation: without it two
// concurrent attempts could both pass the quota/overlap read before either
// insert lands.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// lockEntry is refcounted so an entry can be evicted once the last holder or
// waiter releases it; otherwise the table would grow by one entry per
// (package, date) and (staff, date) ever booked.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*lockEntry)}
}

// acquire locks every key in sorted order (stable order prevents deadlock
// between attempts sharing a subset of keys) and returns the release func.
func (t *lockTable) acquire(keys ...string) func() {
	sort.Strings(keys)
	acquired := make([]*lockEntry, 0, len(keys))
	for _, key := range keys {
		t.mu.Lock()
		entry, ok := t.locks[key]
		if !ok {
			entry = &lockEntry{}
			t.locks[key] = entry
		}
		entry.refs++
		t.mu.Unlock()
		entry.mu.Lock()
		acquired = append(acquired, entry)
	}
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()
			t.mu.Lock()
			acquired[i].refs--
			if acquired[i].refs == 0 {
				delete(t.locks, keys[i])
			}
			t.mu.Unlock()
		}
	}
}

type BookingService struct {
	db           *gorm.DB
	availability *AvailabilityService
	notifier     *NotificationService
	locks        *lockTable
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService, notifier *NotificationService) *BookingService {
	return &BookingService{
		db:           db,
		availability: availability,
		notifier:     notifier,
		locks:        newLockTable(),
	}
}

type BookPackageInput struct {
	PackageID     uuid.UUID  `json:"-"`
	SalonID       uuid.UUID  `json:"-"`
	StaffID       *uuid.UUID `json:"staffId"`
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerPhone string     `json:"customerPhone" binding:"required"`
	Date          string     `json:"date" binding:"required"`
	Time          string     `json:"time" binding:"required"`
	Notes         string     `json:"notes"`
}

type BookPackageResult struct {
	Booking        *models.Booking        `json:"booking"`
	PackageBooking *models.PackageBooking `json:"packageBooking"`
}

// BookPackage runs the full booking pipeline:
// load -> salon match -> availability -> staff conflict -> persist.
// Any stage failure aborts with that stage's reason and nothing is written.
func (s *BookingService) BookPackage(input BookPackageInput) (*BookPackageResult, error) {
	if _, err := utils.ParseDate(input.Date); err != nil {
		return nil, NewDomainError(CodeInvalidInput, err.Error())
	}
	if _, err := utils.ParseTimeOfDay(input.Time); err != nil {
		return nil, NewDomainError(CodeInvalidInput, err.Error())
	}

	var pkg models.Package
	err := s.db.
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		First(&pkg, "id = ?", input.PackageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewDomainError(CodePackageNotFound, "Package not found")
		}
		return nil, wrapStorage("load package", err)
	}

	if pkg.SalonID != input.SalonID {
		return nil, NewDomainError(CodeSalonMismatch, "Package does not belong to this salon")
	}
	if len(pkg.Services) == 0 {
		return nil, NewDomainError(CodeInvalidComposition, "Package has no services configured")
	}

	keys := []string{"pkg:" + pkg.ID.String() + ":" + input.Date}
	if input.StaffID != nil {
		keys = append(keys, "staff:"+input.StaffID.String()+":"+input.Date)
	}
	release := s.locks.acquire(keys...)
	defer release()

	var booking models.Booking
	var snapshot models.PackageBooking

	err = s.db.Transaction(func(tx *gorm.DB) error {
		avail := s.availability.withDB(tx)

		result, err := avail.CheckAvailability(&pkg, input.Date, input.Time)
		if err != nil {
			return err
		}
		if !result.Available {
			return NewDomainError(result.Code, result.Reason)
		}

		if input.StaffID != nil {
			if err := avail.CheckStaffConflict(*input.StaffID, input.Date, input.Time, pkg.TotalDurationMinutes); err != nil {
				return err
			}
		}

		booking = models.Booking{
			SalonID:          pkg.SalonID,
			CustomerName:     input.CustomerName,
			CustomerPhone:    input.CustomerPhone,
			ServiceID:        pkg.Services[0].ServiceID,
			StaffID:          input.StaffID,
			PackageID:        &pkg.ID,
			BookingDate:      input.Date,
			BookingTime:      input.Time,
			Status:           models.BookingStatusPending,
			IsPackageBooking: true,
			TotalAmountPaisa: pkg.PackagePriceInPaisa,
			Notes:            input.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		// Price and savings are frozen here; later package edits must not
		// touch historical records.
		snapshot = models.PackageBooking{
			BookingID:             booking.ID,
			PackageID:             pkg.ID,
			SalonID:               pkg.SalonID,
			PackagePriceAtBooking: pkg.PackagePriceInPaisa,
			RegularPriceAtBooking: pkg.RegularPriceInPaisa,
			SavingsPaisa:          pkg.RegularPriceInPaisa - pkg.PackagePriceInPaisa,
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		if _, ok := AsDomainError(err); ok {
			return nil, err
		}
		var se *StorageError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, wrapStorage("book package", err)
	}

	// The lifetime counter is advisory only; a failed increment is logged
	// and never fails the booking.
	if err := s.db.Model(&models.Package{}).
		Where("id = ?", pkg.ID).
		UpdateColumn("booking_count", gorm.Expr("booking_count + 1")).Error; err != nil {
		log.Printf("Failed to increment booking count for package %s: %v", pkg.ID, err)
	}

	if s.notifier != nil {
		s.notifier.SendBookingConfirmation(&booking, &pkg)
	}

	return &BookPackageResult{Booking: &booking, PackageBooking: &snapshot}, nil
}

// UpdateBookingStatus moves a booking through its lifecycle. The analytics
// rollup only counts bookings that reach 'completed'.
func (s *BookingService) UpdateBookingStatus(bookingID, salonID uuid.UUID, status string) (*models.Booking, error) {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
	default:
		return nil, NewDomainError(CodeInvalidInput, "Invalid booking status: "+status)
	}

	var booking models.Booking
	if err := s.db.Where("id = ? AND salon_id = ?", bookingID, salonID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewDomainError(CodeBookingNotFound, "Booking not found")
		}
		return nil, wrapStorage("load booking", err)
	}

	booking.Status = status
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, wrapStorage("update booking status", err)
	}
	return &booking, nil
}

// ListBookings returns a salon's bookings, optionally narrowed to one date.
func (s *BookingService) ListBookings(salonID uuid.UUID, date string) ([]models.Booking, error) {
	query := s.db.Preload("Service").Preload("Staff").Where("salon_id = ?", salonID)
	if date != "" {
		query = query.Where("booking_date = ?", date)
	}
	var bookings []models.Booking
	if err := query.Order("booking_date DESC, booking_time ASC").Find(&bookings).Error; err != nil {
		return nil, wrapStorage("list bookings", err)
	}
	return bookings, nil
}

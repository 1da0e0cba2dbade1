package services

import (
	"testing"
	"time"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRawPackage(t *testing.T, db *gorm.DB, salonID uuid.UUID, name string, active bool, validUntil *time.Time) *models.Package {
	t.Helper()
	pkg := &models.Package{
		SalonID:              salonID,
		Name:                 name,
		Category:             "combo",
		TotalDurationMinutes: 90,
		RegularPriceInPaisa:  150000,
		PackagePriceInPaisa:  120000,
		DiscountPercentage:   20,
		IsActive:             active,
		ValidUntil:           validUntil,
	}
	require.NoError(t, db.Create(pkg).Error)
	return pkg
}

func TestSweepExpired(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)

	now := salonTime(2025, time.June, 10, 0, 15)
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	lapsed := seedRawPackage(t, db, salon.ID, "Lapsed", true, &yesterday)
	current := seedRawPackage(t, db, salon.ID, "Current", true, &nextWeek)
	openEnded := seedRawPackage(t, db, salon.ID, "Open Ended", true, nil)
	alreadyOff := seedRawPackage(t, db, salon.ID, "Retired", false, &yesterday)

	svc := NewExpiryService(db)
	svc.now = fixedClock(now)

	affected, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	check := func(id uuid.UUID, wantActive bool) {
		var pkg models.Package
		require.NoError(t, db.First(&pkg, "id = ?", id).Error)
		assert.Equal(t, wantActive, pkg.IsActive, "package %s", pkg.Name)
	}
	check(lapsed.ID, false)
	check(current.ID, true)
	check(openEnded.ID, true)
	check(alreadyOff.ID, false)

	// Idempotent: immediately sweeping again touches nothing
	affected, err = svc.SweepExpired()
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSweepExpired_LeavesBookingsAlone(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 60, 100000)

	now := salonTime(2025, time.June, 10, 0, 15)
	yesterday := now.Add(-24 * time.Hour)
	lapsed := seedRawPackage(t, db, salon.ID, "Lapsed", true, &yesterday)

	booking := seedBooking(t, db, &models.Booking{
		SalonID:          salon.ID,
		ServiceID:        haircut.ID,
		PackageID:        &lapsed.ID,
		BookingDate:      "2025-06-09",
		BookingTime:      "10:00",
		Status:           models.BookingStatusConfirmed,
		IsPackageBooking: true,
		TotalAmountPaisa: 120000,
	})

	svc := NewExpiryService(db)
	svc.now = fixedClock(now)

	_, err := svc.SweepExpired()
	require.NoError(t, err)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, reloaded.Status)
}

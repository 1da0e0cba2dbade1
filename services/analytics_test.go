package services

import (
	"testing"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPackageBooking(t *testing.T, db *gorm.DB, salonID uuid.UUID, pkg *models.Package, serviceID uuid.UUID, status string, price, regular int64) {
	t.Helper()
	booking := seedBooking(t, db, &models.Booking{
		SalonID:          salonID,
		ServiceID:        serviceID,
		PackageID:        &pkg.ID,
		BookingDate:      "2025-06-11",
		BookingTime:      "10:00",
		Status:           status,
		IsPackageBooking: true,
		TotalAmountPaisa: price,
	})
	require.NoError(t, db.Create(&models.PackageBooking{
		BookingID:             booking.ID,
		PackageID:             pkg.ID,
		SalonID:               salonID,
		PackagePriceAtBooking: price,
		RegularPriceAtBooking: regular,
		SavingsPaisa:          regular - price,
	}).Error)
}

func TestGetPackageAnalytics_RollsUpCompletedOnly(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 60, 100000)
	facial := seedService(t, db, salon.ID, "Facial", 30, 50000)

	combo := createPackage(t, db, salon.ID, CreatePackageInput{
		Name:                "Grooming Combo",
		ServiceIDs:          []uuid.UUID{haircut.ID, facial.ID},
		PackagePriceInPaisa: 120000,
	})
	duo := createPackage(t, db, salon.ID, CreatePackageInput{
		Name: "Facial Duo",
		Items: []PackageItemInput{
			{ServiceID: facial.ID, Quantity: 2},
		},
		PackagePriceInPaisa: 90000,
	})

	seedPackageBooking(t, db, salon.ID, combo, haircut.ID, models.BookingStatusCompleted, 120000, 150000)
	seedPackageBooking(t, db, salon.ID, combo, haircut.ID, models.BookingStatusCompleted, 125000, 150000)
	seedPackageBooking(t, db, salon.ID, duo, facial.ID, models.BookingStatusCompleted, 90000, 100000)
	// Not yet completed: must not count
	seedPackageBooking(t, db, salon.ID, duo, facial.ID, models.BookingStatusPending, 90000, 100000)
	seedPackageBooking(t, db, salon.ID, duo, facial.ID, models.BookingStatusCancelled, 90000, 100000)

	summary, err := NewAnalyticsService(db).GetPackageAnalytics(salon.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalBookings)
	assert.Equal(t, int64(335000), summary.TotalRevenuePaisa)
	assert.Equal(t, int64(65000), summary.TotalSavingsPaisa)
	// 335000 / 3 rounded
	assert.Equal(t, int64(111667), summary.AveragePackageValuePaisa)

	require.NotNil(t, summary.TopPackage)
	assert.Equal(t, combo.ID, summary.TopPackage.PackageID)
	assert.Equal(t, 2, summary.TopPackage.CompletedBookings)
	assert.Equal(t, int64(245000), summary.TopPackage.RevenuePaisa)

	require.Len(t, summary.Packages, 2)
	assert.Equal(t, combo.ID, summary.Packages[0].PackageID)
	assert.Equal(t, duo.ID, summary.Packages[1].PackageID)
	assert.Equal(t, 1, summary.Packages[1].CompletedBookings)
	assert.Equal(t, int64(90000), summary.Packages[1].RevenuePaisa)
	assert.Equal(t, int64(10000), summary.Packages[1].SavingsPaisa)
}

func TestGetPackageAnalytics_RetiredPackageStillCounted(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 60, 100000)
	facial := seedService(t, db, salon.ID, "Facial", 30, 50000)

	combo := createPackage(t, db, salon.ID, CreatePackageInput{
		Name:                "Grooming Combo",
		ServiceIDs:          []uuid.UUID{haircut.ID, facial.ID},
		PackagePriceInPaisa: 120000,
	})
	seedPackageBooking(t, db, salon.ID, combo, haircut.ID, models.BookingStatusCompleted, 120000, 150000)

	require.NoError(t, NewPackageService(db).Deactivate(combo.ID, salon.ID))

	summary, err := NewAnalyticsService(db).GetPackageAnalytics(salon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalBookings)
	assert.Equal(t, int64(120000), summary.TotalRevenuePaisa)
}

func TestGetPackageAnalytics_EmptySalon(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 60, 100000)
	facial := seedService(t, db, salon.ID, "Facial", 30, 50000)

	// A package with no bookings at all still appears in the listing
	combo := createPackage(t, db, salon.ID, CreatePackageInput{
		Name:                "Grooming Combo",
		ServiceIDs:          []uuid.UUID{haircut.ID, facial.ID},
		PackagePriceInPaisa: 120000,
	})

	summary, err := NewAnalyticsService(db).GetPackageAnalytics(salon.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalBookings)
	assert.Zero(t, summary.TotalRevenuePaisa)
	assert.Zero(t, summary.AveragePackageValuePaisa)
	assert.Nil(t, summary.TopPackage)
	require.Len(t, summary.Packages, 1)
	assert.Equal(t, combo.ID, summary.Packages[0].PackageID)
	assert.Zero(t, summary.Packages[0].CompletedBookings)
}

func TestGetPackageAnalytics_ScopedToSalon(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	other := seedSalon(t, db)
	haircut := seedService(t, db, other.ID, "Haircut", 60, 100000)
	facial := seedService(t, db, other.ID, "Facial", 30, 50000)

	combo := createPackage(t, db, other.ID, CreatePackageInput{
		Name:                "Grooming Combo",
		ServiceIDs:          []uuid.UUID{haircut.ID, facial.ID},
		PackagePriceInPaisa: 120000,
	})
	seedPackageBooking(t, db, other.ID, combo, haircut.ID, models.BookingStatusCompleted, 120000, 150000)

	summary, err := NewAnalyticsService(db).GetPackageAnalytics(salon.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalBookings)
	assert.Empty(t, summary.Packages)
}

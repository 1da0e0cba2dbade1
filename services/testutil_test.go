package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.Package{},
		&models.PackageService{},
		&models.Booking{},
		&models.PackageBooking{},
		&models.NotificationLog{},
	))
	return db
}

func seedSalon(t *testing.T, db *gorm.DB) *models.Salon {
	t.Helper()
	salon := &models.Salon{Name: "Test Salon", WorkingHours: models.JSONB{}}
	require.NoError(t, db.Create(salon).Error)
	return salon
}

func seedService(t *testing.T, db *gorm.DB, salonID uuid.UUID, name string, durationMinutes int, priceInPaisa int64) *models.Service {
	t.Helper()
	svc := &models.Service{
		SalonID:         salonID,
		Name:            name,
		DurationMinutes: durationMinutes,
		PriceInPaisa:    priceInPaisa,
		IsActive:        true,
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}

func seedStaff(t *testing.T, db *gorm.DB, salonID uuid.UUID, name string) *models.Staff {
	t.Helper()
	staff := &models.Staff{SalonID: salonID, Name: name, IsActive: true}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func seedBooking(t *testing.T, db *gorm.DB, booking *models.Booking) *models.Booking {
	t.Helper()
	if booking.CustomerName == "" {
		booking.CustomerName = "Walk In"
	}
	if booking.CustomerPhone == "" {
		booking.CustomerPhone = "+919800000000"
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

// fixedClock pins "now" for availability and expiry decisions.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// salonTime builds an instant in the operational timezone.
func salonTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, utils.SalonLocation())
}

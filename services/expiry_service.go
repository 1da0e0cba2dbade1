// services/expiry_service.go
package services

import (
	"log"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type ExpiryService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExpiryService(db *gorm.DB) *ExpiryService {
	return &ExpiryService{db: db, now: utils.Now}
}

// StartScheduler runs the expiry sweep once a day shortly after midnight.
func (s *ExpiryService) StartScheduler() {
	c := cron.New(cron.WithLocation(utils.SalonLocation()))

	c.AddFunc("15 0 * * *", func() {
		if _, err := s.SweepExpired(); err != nil {
			log.Printf("Expiry sweep failed: %v", err)
		}
	})

	c.Start()
	log.Println("Package expiry scheduler started")
}

// SweepExpired deactivates every active package whose validity window has
// lapsed, in one batch update. Idempotent: a second run right after the
// first affects zero rows. Already-accepted bookings are never cancelled.
func (s *ExpiryService) SweepExpired() (int64, error) {
	result := s.db.Model(&models.Package{}).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until < ?", true, s.now()).
		Update("is_active", false)
	if result.Error != nil {
		return 0, wrapStorage("sweep expired packages", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Expiry sweep deactivated %d package(s)", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

// services/analytics.go
package services

import (
	"math"
	"sort"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// PackageAnalyticsRow is the per-package rollup of completed bookings.
type PackageAnalyticsRow struct {
	PackageID         uuid.UUID `json:"packageId"`
	Name              string    `json:"name"`
	CompletedBookings int       `json:"completedBookings"`
	RevenuePaisa      int64     `json:"revenuePaisa"`
	SavingsPaisa      int64     `json:"savingsPaisa"`
}

// PackageAnalyticsSummary is the salon-wide rollup.
type PackageAnalyticsSummary struct {
	TotalRevenuePaisa        int64                 `json:"totalRevenuePaisa"`
	TotalBookings            int                   `json:"totalBookings"`
	AveragePackageValuePaisa int64                 `json:"averagePackageValuePaisa"`
	TotalSavingsPaisa        int64                 `json:"totalSavingsPaisa"`
	TopPackage               *PackageAnalyticsRow  `json:"topPackage"`
	Packages                 []PackageAnalyticsRow `json:"packages"`
}

// GetPackageAnalytics rolls up every package of the salon (active or not)
// against its completed package bookings. Revenue and savings come from the
// frozen booking-time snapshots, not current package prices.
func (s *AnalyticsService) GetPackageAnalytics(salonID uuid.UUID) (*PackageAnalyticsSummary, error) {
	var packages []models.Package
	if err := s.db.Where("salon_id = ?", salonID).Find(&packages).Error; err != nil {
		return nil, wrapStorage("load packages", err)
	}

	type snapshotRow struct {
		PackageID             uuid.UUID
		PackagePriceAtBooking int64
		SavingsPaisa          int64
	}
	var snapshots []snapshotRow
	err := s.db.Table("package_bookings").
		Select("package_bookings.package_id, package_bookings.package_price_at_booking, package_bookings.savings_paisa").
		Joins("JOIN bookings ON bookings.id = package_bookings.booking_id").
		Where("package_bookings.salon_id = ? AND bookings.status = ? AND bookings.deleted_at IS NULL AND package_bookings.deleted_at IS NULL",
			salonID, models.BookingStatusCompleted).
		Scan(&snapshots).Error
	if err != nil {
		return nil, wrapStorage("load package booking snapshots", err)
	}

	rowsByPackage := make(map[uuid.UUID]*PackageAnalyticsRow, len(packages))
	rows := make([]PackageAnalyticsRow, 0, len(packages))
	for _, pkg := range packages {
		rows = append(rows, PackageAnalyticsRow{PackageID: pkg.ID, Name: pkg.Name})
	}
	for i := range rows {
		rowsByPackage[rows[i].PackageID] = &rows[i]
	}

	summary := &PackageAnalyticsSummary{}
	for _, snap := range snapshots {
		row, ok := rowsByPackage[snap.PackageID]
		if !ok {
			continue
		}
		row.CompletedBookings++
		row.RevenuePaisa += snap.PackagePriceAtBooking
		row.SavingsPaisa += snap.SavingsPaisa

		summary.TotalBookings++
		summary.TotalRevenuePaisa += snap.PackagePriceAtBooking
		summary.TotalSavingsPaisa += snap.SavingsPaisa
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CompletedBookings > rows[j].CompletedBookings
	})

	if summary.TotalBookings > 0 {
		summary.AveragePackageValuePaisa = int64(math.Round(
			float64(summary.TotalRevenuePaisa) / float64(summary.TotalBookings)))
		top := rows[0]
		summary.TopPackage = &top
	}
	summary.Packages = rows
	return summary, nil
}

// services/package_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business validation constants
const (
	MinServiceInstances = 2  // a bundle of one is not a bundle
	MaxDiscountPercent  = 50 // policy ceiling on the implied discount
)

type PackageService struct {
	db *gorm.DB
}

func NewPackageService(db *gorm.DB) *PackageService {
	return &PackageService{db: db}
}

// PackageItemInput is one (service, quantity) entry of a package composition.
type PackageItemInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CreatePackageInput is the caller-facing create shape. Either Items or the
// legacy ServiceIDs list (each id implicitly quantity 1) must be supplied.
type CreatePackageInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,oneof=hair skin spa nails makeup bridal grooming combo"`
	ImageURL    string `json:"imageUrl"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female unisex"`

	Items      []PackageItemInput `json:"items"`
	ServiceIDs []uuid.UUID        `json:"serviceIds"`

	PackagePriceInPaisa int64 `json:"packagePriceInPaisa" binding:"required,min=1"`

	ValidFrom              *time.Time `json:"validFrom"`
	ValidUntil             *time.Time `json:"validUntil"`
	AvailableDays          []string   `json:"availableDays"`
	AvailableTimeStart     *string    `json:"availableTimeStart"`
	AvailableTimeEnd       *string    `json:"availableTimeEnd"`
	MinAdvanceBookingHours *int       `json:"minAdvanceBookingHours"`
	MaxBookingsPerDay      *int       `json:"maxBookingsPerDay"`

	IsFeatured bool `json:"isFeatured"`
	SortOrder  int  `json:"sortOrder"`
}

// UpdatePackageInput carries partial updates. Pointer fields follow the usual
// "nil means keep" convention; Optional fields additionally distinguish an
// explicit null (clear) from an absent key (keep).
type UpdatePackageInput struct {
	Name        *string                 `json:"name"`
	Description utils.Optional[string]  `json:"description"`
	Category    *string                 `json:"category" binding:"omitempty,oneof=hair skin spa nails makeup bridal grooming combo"`
	ImageURL    utils.Optional[string]  `json:"imageUrl"`
	Gender      utils.Optional[string]  `json:"gender"`

	Items      *[]PackageItemInput `json:"items"`
	ServiceIDs *[]uuid.UUID        `json:"serviceIds"`

	PackagePriceInPaisa *int64 `json:"packagePriceInPaisa" binding:"omitempty,min=1"`

	ValidFrom              utils.Optional[time.Time] `json:"validFrom"`
	ValidUntil             utils.Optional[time.Time] `json:"validUntil"`
	AvailableDays          utils.Optional[[]string]  `json:"availableDays"`
	AvailableTimeStart     utils.Optional[string]    `json:"availableTimeStart"`
	AvailableTimeEnd       utils.Optional[string]    `json:"availableTimeEnd"`
	MinAdvanceBookingHours utils.Optional[int]       `json:"minAdvanceBookingHours"`
	MaxBookingsPerDay      utils.Optional[int]       `json:"maxBookingsPerDay"`

	IsActive   *bool `json:"isActive"`
	IsFeatured *bool `json:"isFeatured"`
	SortOrder  *int  `json:"sortOrder"`
}

// PricingSummary is the derived triple the validator hands back for the
// caller to persist.
type PricingSummary struct {
	TotalDurationMinutes int
	RegularPriceInPaisa  int64
	DiscountPercentage   int
}

// PackageView is a package joined with its ordered service entries and the
// owning salon's identity, plus the display savings.
type PackageView struct {
	models.Package
	SavingsPaisa int64 `json:"savingsPaisa"`
}

// PackageListFilters narrows List results. Zero value lists active,
// non-expired packages of every category.
type PackageListFilters struct {
	IncludeInactive bool
	Category        string
	Gender          string
	FeaturedOnly    bool
	IncludeExpired  bool
}

// normalizeItems folds the legacy bare-id shape into the canonical
// (service, quantity) form and defaults zero quantities to 1.
func normalizeItems(items []PackageItemInput, serviceIDs []uuid.UUID) []PackageItemInput {
	if len(items) == 0 {
		for _, id := range serviceIDs {
			items = append(items, PackageItemInput{ServiceID: id, Quantity: 1})
		}
	}
	normalized := make([]PackageItemInput, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		normalized = append(normalized, item)
	}
	return normalized
}

// ValidateComposition enforces the package pricing invariants against the
// salon's active service catalog and derives duration, regular price and
// discount. Invoked on create and on any update that changes price or
// composition.
func (s *PackageService) ValidateComposition(salonID uuid.UUID, items []PackageItemInput, packagePriceInPaisa int64) (*PricingSummary, error) {
	return s.validateComposition(s.db, salonID, items, packagePriceInPaisa)
}

func (s *PackageService) validateComposition(db *gorm.DB, salonID uuid.UUID, items []PackageItemInput, packagePriceInPaisa int64) (*PricingSummary, error) {
	totalInstances := 0
	for _, item := range items {
		totalInstances += item.Quantity
	}
	if totalInstances < MinServiceInstances {
		return nil, NewDomainError(CodeInvalidComposition,
			fmt.Sprintf("A package must include at least %d service instances", MinServiceInstances))
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ServiceID] {
			seen[item.ServiceID] = true
			ids = append(ids, item.ServiceID)
		}
	}

	var catalog []models.Service
	if err := db.Where("salon_id = ? AND id IN ? AND is_active = ?", salonID, ids, true).
		Find(&catalog).Error; err != nil {
		return nil, wrapStorage("resolve package services", err)
	}

	resolved := make(map[uuid.UUID]models.Service, len(catalog))
	for _, svc := range catalog {
		resolved[svc.ID] = svc
	}

	var missing []string
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, NewDomainError(CodeServiceNotFound,
			"Services not found or inactive: "+strings.Join(missing, ", "))
	}

	summary := &PricingSummary{}
	for _, item := range items {
		svc := resolved[item.ServiceID]
		summary.TotalDurationMinutes += svc.DurationMinutes * item.Quantity
		summary.RegularPriceInPaisa += svc.PriceInPaisa * int64(item.Quantity)
	}

	if packagePriceInPaisa >= summary.RegularPriceInPaisa {
		return nil, NewDomainError(CodePriceNotDiscounted,
			fmt.Sprintf("Package price (%d paisa) must be less than the regular price (%d paisa)",
				packagePriceInPaisa, summary.RegularPriceInPaisa))
	}

	summary.DiscountPercentage = discountPercent(summary.RegularPriceInPaisa, packagePriceInPaisa)
	if summary.DiscountPercentage > MaxDiscountPercent {
		return nil, NewDomainError(CodeDiscountTooSteep,
			fmt.Sprintf("Discount of %d%% exceeds the maximum allowed %d%%",
				summary.DiscountPercentage, MaxDiscountPercent))
	}

	return summary, nil
}

func discountPercent(regular, pkg int64) int {
	return int(math.Round(100 * float64(regular-pkg) / float64(regular)))
}

// Create validates the composition and persists the package row plus one
// association row per entry, in a single transaction.
func (s *PackageService) Create(salonID uuid.UUID, input CreatePackageInput) (*models.Package, error) {
	items := normalizeItems(input.Items, input.ServiceIDs)

	if err := validateAvailabilityPolicy(input.AvailableDays, input.AvailableTimeStart, input.AvailableTimeEnd); err != nil {
		return nil, err
	}

	summary, err := s.ValidateComposition(salonID, items, input.PackagePriceInPaisa)
	if err != nil {
		return nil, err
	}

	pkg := models.Package{
		SalonID:     salonID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Gender:      input.Gender,

		TotalDurationMinutes: summary.TotalDurationMinutes,
		RegularPriceInPaisa:  summary.RegularPriceInPaisa,
		PackagePriceInPaisa:  input.PackagePriceInPaisa,
		DiscountPercentage:   summary.DiscountPercentage,

		ValidFrom:              input.ValidFrom,
		ValidUntil:             input.ValidUntil,
		AvailableDays:          models.StringList(input.AvailableDays),
		AvailableTimeStart:     input.AvailableTimeStart,
		AvailableTimeEnd:       input.AvailableTimeEnd,
		MinAdvanceBookingHours: input.MinAdvanceBookingHours,
		MaxBookingsPerDay:      input.MaxBookingsPerDay,

		IsActive:   true,
		IsFeatured: input.IsFeatured,
		SortOrder:  input.SortOrder,
	}
	if pkg.Category == "" {
		pkg.Category = "combo"
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pkg).Error; err != nil {
			return err
		}
		for i, item := range items {
			entry := models.PackageService{
				PackageID:     pkg.ID,
				ServiceID:     item.ServiceID,
				SalonID:       salonID,
				SequenceOrder: i + 1,
				Quantity:      item.Quantity,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapStorage("create package", err)
	}

	return s.loadPackage(pkg.ID)
}

// Update applies a partial update scoped by (packageID, salonID). A new
// composition is re-validated and replaces all existing association rows
// wholesale; a new price alone is re-validated against the stored regular
// price. Everything else is an independent field overwrite.
func (s *PackageService) Update(packageID, salonID uuid.UUID, input UpdatePackageInput) (*models.Package, error) {
	var pkg models.Package
	if err := s.db.Where("id = ? AND salon_id = ?", packageID, salonID).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewDomainError(CodePackageNotFound, "Package not found")
		}
		return nil, wrapStorage("load package", err)
	}

	var newItems []PackageItemInput
	compositionChanged := false
	if input.Items != nil {
		newItems = normalizeItems(*input.Items, nil)
		compositionChanged = true
	} else if input.ServiceIDs != nil {
		newItems = normalizeItems(nil, *input.ServiceIDs)
		compositionChanged = true
	}

	newPrice := pkg.PackagePriceInPaisa
	if input.PackagePriceInPaisa != nil {
		newPrice = *input.PackagePriceInPaisa
	}

	var summary *PricingSummary
	if compositionChanged {
		var err error
		summary, err = s.ValidateComposition(salonID, newItems, newPrice)
		if err != nil {
			return nil, err
		}
	} else if input.PackagePriceInPaisa != nil {
		// Composition untouched: validate the new price against the stored
		// regular price without re-resolving the catalog.
		if newPrice >= pkg.RegularPriceInPaisa {
			return nil, NewDomainError(CodePriceNotDiscounted,
				fmt.Sprintf("Package price (%d paisa) must be less than the regular price (%d paisa)",
					newPrice, pkg.RegularPriceInPaisa))
		}
		discount := discountPercent(pkg.RegularPriceInPaisa, newPrice)
		if discount > MaxDiscountPercent {
			return nil, NewDomainError(CodeDiscountTooSteep,
				fmt.Sprintf("Discount of %d%% exceeds the maximum allowed %d%%", discount, MaxDiscountPercent))
		}
		pkg.DiscountPercentage = discount
	}

	// Descriptive fields
	if input.Name != nil {
		pkg.Name = *input.Name
	}
	if input.Description.Present {
		if input.Description.Null {
			pkg.Description = ""
		} else {
			pkg.Description = input.Description.Value
		}
	}
	if input.Category != nil {
		pkg.Category = *input.Category
	}
	if input.ImageURL.Present {
		if input.ImageURL.Null {
			pkg.ImageURL = ""
		} else {
			pkg.ImageURL = input.ImageURL.Value
		}
	}
	if input.Gender.Present {
		if input.Gender.Null {
			pkg.Gender = ""
		} else {
			pkg.Gender = input.Gender.Value
		}
	}

	// Availability policy fields: explicit null clears, absent key keeps.
	if input.ValidFrom.Present {
		if v, ok := input.ValidFrom.Get(); ok {
			pkg.ValidFrom = &v
		} else {
			pkg.ValidFrom = nil
		}
	}
	if input.ValidUntil.Present {
		if v, ok := input.ValidUntil.Get(); ok {
			pkg.ValidUntil = &v
		} else {
			pkg.ValidUntil = nil
		}
	}
	if input.AvailableDays.Present {
		if v, ok := input.AvailableDays.Get(); ok {
			pkg.AvailableDays = models.StringList(v)
		} else {
			pkg.AvailableDays = nil
		}
	}
	if input.AvailableTimeStart.Present {
		if v, ok := input.AvailableTimeStart.Get(); ok {
			pkg.AvailableTimeStart = &v
		} else {
			pkg.AvailableTimeStart = nil
		}
	}
	if input.AvailableTimeEnd.Present {
		if v, ok := input.AvailableTimeEnd.Get(); ok {
			pkg.AvailableTimeEnd = &v
		} else {
			pkg.AvailableTimeEnd = nil
		}
	}
	if input.MinAdvanceBookingHours.Present {
		if v, ok := input.MinAdvanceBookingHours.Get(); ok {
			pkg.MinAdvanceBookingHours = &v
		} else {
			pkg.MinAdvanceBookingHours = nil
		}
	}
	if input.MaxBookingsPerDay.Present {
		if v, ok := input.MaxBookingsPerDay.Get(); ok {
			pkg.MaxBookingsPerDay = &v
		} else {
			pkg.MaxBookingsPerDay = nil
		}
	}

	if err := validateAvailabilityPolicy(pkg.AvailableDays, pkg.AvailableTimeStart, pkg.AvailableTimeEnd); err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		pkg.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		pkg.SortOrder = *input.SortOrder
	}

	pkg.PackagePriceInPaisa = newPrice
	if summary != nil {
		pkg.TotalDurationMinutes = summary.TotalDurationMinutes
		pkg.RegularPriceInPaisa = summary.RegularPriceInPaisa
		pkg.DiscountPercentage = summary.DiscountPercentage
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if compositionChanged {
			// Replace the association set wholesale rather than diffing, so
			// sequence_order always reflects the latest submitted order.
			if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageService{}).Error; err != nil {
				return err
			}
			for i, item := range newItems {
				entry := models.PackageService{
					PackageID:     pkg.ID,
					ServiceID:     item.ServiceID,
					SalonID:       salonID,
					SequenceOrder: i + 1,
					Quantity:      item.Quantity,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
		}
		return tx.Save(&pkg).Error
	})
	if err != nil {
		return nil, wrapStorage("update package", err)
	}

	return s.loadPackage(pkg.ID)
}

// Deactivate soft-deletes a package by flipping is_active. Historical
// package-booking snapshots are untouched.
func (s *PackageService) Deactivate(packageID, salonID uuid.UUID) error {
	result := s.db.Model(&models.Package{}).
		Where("id = ? AND salon_id = ?", packageID, salonID).
		Update("is_active", false)
	if result.Error != nil {
		return wrapStorage("deactivate package", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewDomainError(CodePackageNotFound, "Package not found")
	}
	return nil
}

// Get returns the package joined with its ordered service entries and the
// owning salon, with display savings computed.
func (s *PackageService) Get(packageID uuid.UUID) (*PackageView, error) {
	pkg, err := s.loadPackage(packageID)
	if err != nil {
		return nil, err
	}
	return &PackageView{Package: *pkg, SavingsPaisa: pkg.SavingsPaisa()}, nil
}

func (s *PackageService) loadPackage(packageID uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	err := s.db.
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Preload("Services.Service").
		Preload("Salon").
		First(&pkg, "id = ?", packageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewDomainError(CodePackageNotFound, "Package not found")
		}
		return nil, wrapStorage("load package", err)
	}
	return &pkg, nil
}

// List loads every package for the salon ordered by sort_order then newest
// first, and applies the filter intersection in memory.
func (s *PackageService) List(salonID uuid.UUID, filters PackageListFilters) ([]PackageView, error) {
	var packages []models.Package
	err := s.db.
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Preload("Services.Service").
		Where("salon_id = ?", salonID).
		Order("sort_order ASC, created_at DESC").
		Find(&packages).Error
	if err != nil {
		return nil, wrapStorage("list packages", err)
	}

	now := utils.Now()
	views := make([]PackageView, 0, len(packages))
	for _, pkg := range packages {
		if !filters.IncludeInactive && !pkg.IsActive {
			continue
		}
		if filters.Category != "" && pkg.Category != filters.Category {
			continue
		}
		// Gender only constrains when the package declares one.
		if filters.Gender != "" && pkg.Gender != "" && pkg.Gender != filters.Gender {
			continue
		}
		if filters.FeaturedOnly && !pkg.IsFeatured {
			continue
		}
		if !filters.IncludeExpired {
			if pkg.ValidFrom != nil && now.Before(*pkg.ValidFrom) {
				continue
			}
			if pkg.ValidUntil != nil && now.After(*pkg.ValidUntil) {
				continue
			}
		}
		views = append(views, PackageView{Package: pkg, SavingsPaisa: pkg.SavingsPaisa()})
	}
	return views, nil
}

// validateAvailabilityPolicy rejects malformed weekday abbreviations and
// time-of-day strings before they reach the decider.
func validateAvailabilityPolicy(days []string, start, end *string) error {
	for _, day := range days {
		if !utils.IsValidWeekdayAbbrev(day) {
			return NewDomainError(CodeInvalidInput,
				fmt.Sprintf("Invalid weekday abbreviation %q (expected Mon..Sun)", day))
		}
	}
	for _, t := range []*string{start, end} {
		if t == nil {
			continue
		}
		if _, err := utils.ParseTimeOfDay(*t); err != nil {
			return NewDomainError(CodeInvalidInput, err.Error())
		}
	}
	return nil
}

// controllers/booking.go
package controllers

import (
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newBookingService() *services.BookingService {
	return services.NewBookingService(
		config.DB,
		services.NewAvailabilityService(config.DB),
		services.NewNotificationService(config.DB),
	)
}

// BookPackage books a package for a customer, re-checking availability and
// staff conflicts inside the booking transaction
func BookPackage(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input services.BookPackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer phone number")
		return
	}

	input.PackageID = packageUUID
	input.SalonID = salonUUID

	result, err := newBookingService().BookPackage(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetBookings lists the salon's bookings, optionally for a single date
func GetBookings(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	bookings, err := newBookingService().ListBookings(salonUUID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatusInput defines the expected JSON for a status change
type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// UpdateBookingStatus moves a booking through its lifecycle
func UpdateBookingStatus(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := newBookingService().UpdateBookingStatus(bookingUUID, salonUUID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetPackageAnalytics returns the salon-wide package revenue/savings rollup
func GetPackageAnalytics(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	summary, err := services.NewAnalyticsService(config.DB).GetPackageAnalytics(salonUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

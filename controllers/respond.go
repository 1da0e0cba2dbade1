// controllers/respond.go
package controllers

import (
	"log"
	"net/http"

	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentSalonID extracts the authenticated salon from the gin context set
// by the auth middleware. Responds and returns false when missing/invalid.
func currentSalonID(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}

func statusForCode(code string) int {
	switch code {
	case services.CodePackageNotFound, services.CodeStaffNotFound, services.CodeBookingNotFound:
		return http.StatusNotFound
	case services.CodeSalonMismatch:
		return http.StatusForbidden
	case services.CodePackageInactive, services.CodePackageExpired,
		services.CodePackageNotYetAvailable, services.CodeDayNotAllowed,
		services.CodeTimeWindowViolation, services.CodeInsufficientLeadTime,
		services.CodeDailyCapacityReached, services.CodeStaffInactive,
		services.CodeStaffConflict:
		return http.StatusConflict
	default:
		// INVALID_COMPOSITION, SERVICE_NOT_FOUND, PRICE_NOT_DISCOUNTED,
		// DISCOUNT_TOO_STEEP, INVALID_INPUT
		return http.StatusBadRequest
	}
}

// respondServiceError maps a service-layer failure to an HTTP response,
// keeping domain rejections distinguishable from storage failures.
func respondServiceError(c *gin.Context, err error) {
	if de, ok := services.AsDomainError(err); ok {
		utils.RespondWithDomainError(c, statusForCode(de.Code), de.Code, de.Message)
		return
	}
	log.Printf("[%s %s] %v", c.Request.Method, c.Request.URL.Path, err)
	utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
}

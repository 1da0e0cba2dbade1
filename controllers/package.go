// controllers/package.go
package controllers

import (
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatePackage creates a new service bundle for the salon
func CreatePackage(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	var input services.CreatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pkg, err := services.NewPackageService(config.DB).Create(salonUUID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// GetPackages lists the salon's packages with optional filters
func GetPackages(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	filters := services.PackageListFilters{
		IncludeInactive: c.Query("includeInactive") == "true",
		Category:        c.Query("category"),
		Gender:          c.Query("gender"),
		FeaturedOnly:    c.Query("featured") == "true",
		IncludeExpired:  c.Query("includeExpired") == "true",
	}

	packages, err := services.NewPackageService(config.DB).List(salonUUID, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, packages)
}

// GetPackage retrieves a specific package with its ordered services
func GetPackage(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	view, err := services.NewPackageService(config.DB).Get(packageUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if view.SalonID != salonUUID {
		utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdatePackage applies a partial update to an existing package
func UpdatePackage(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input services.UpdatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pkg, err := services.NewPackageService(config.DB).Update(packageUUID, salonUUID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage deactivates a package; historical bookings are kept
func DeletePackage(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	if err := services.NewPackageService(config.DB).Deactivate(packageUUID, salonUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deactivated successfully"})
}

// CheckPackageAvailability probes whether a package can be booked for a
// given date and time. Always 200 with the decision in the body.
func CheckPackageAvailability(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	date := c.Query("date")
	timeOfDay := c.Query("time")
	if date == "" || timeOfDay == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date and time query parameters are required")
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := utils.ParseTimeOfDay(timeOfDay); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := services.NewPackageService(config.DB).Get(packageUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if view.SalonID != salonUUID {
		utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		return
	}

	result, err := services.NewAvailabilityService(config.DB).CheckAvailability(&view.Package, date, timeOfDay)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

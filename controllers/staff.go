// controllers/staff.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStaffInput defines the expected JSON structure for adding staff
type CreateStaffInput struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

// UpdateStaffInput defines the expected JSON structure for updating staff
type UpdateStaffInput struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
	IsActive  *bool   `json:"isActive"`
}

// CreateStaff adds a bookable staff member to the salon
func CreateStaff(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	staff := models.Staff{
		SalonID:   salonUUID,
		Name:      input.Name,
		Phone:     input.Phone,
		Specialty: input.Specialty,
		IsActive:  true,
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// GetStaff retrieves all staff members for the salon
func GetStaff(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// UpdateStaff updates an existing staff member
func UpdateStaff(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, staffUUID).
		First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.Specialty != nil {
		staff.Specialty = *input.Specialty
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// DeleteStaff deactivates a staff member; their booking history is kept
func DeleteStaff(c *gin.Context) {
	salonUUID, ok := currentSalonID(c)
	if !ok {
		return
	}

	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	result := config.DB.Model(&models.Staff{}).
		Where("salon_id = ? AND id = ?", salonUUID, staffUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate staff member")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deactivated successfully"})
}

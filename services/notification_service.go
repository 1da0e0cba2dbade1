// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"salonhub-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type NotificationService struct {
	db      *gorm.DB
	client  *twilio.RestClient
	enabled bool
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	if accountSid == "" || authToken == "" {
		log.Println("Twilio credentials not set, booking confirmations disabled")
		return &NotificationService{db: db}
	}

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		enabled: true,
	}
}

// SendBookingConfirmation messages the customer after a successful package
// booking. Best-effort: failures are logged, never surfaced to the booking.
func (s *NotificationService) SendBookingConfirmation(booking *models.Booking, pkg *models.Package) {
	if !s.enabled {
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your booking for the %s package on %s at %s is received! Total: ₹%d.%02d. You saved ₹%d.%02d.",
		booking.CustomerName, pkg.Name, booking.BookingDate, booking.BookingTime,
		booking.TotalAmountPaisa/100, booking.TotalAmountPaisa%100,
		pkg.SavingsPaisa()/100, pkg.SavingsPaisa()%100,
	)

	// WhatsApp when the phone is in E.164 format, SMS otherwise
	channel := "sms"
	to := booking.CustomerPhone
	if strings.HasPrefix(booking.CustomerPhone, "+") {
		to = "whatsapp:" + booking.CustomerPhone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send booking confirmation to %s: %v", booking.CustomerPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Booking confirmation sent to %s, SID: %s", booking.CustomerPhone, *resp.Sid)
	}

	entry := models.NotificationLog{
		SalonID:      booking.SalonID,
		BookingID:    booking.ID,
		Type:         "booking_confirmation",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log booking confirmation for booking %s: %v", booking.ID, err)
	}
}

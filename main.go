package main

import (
	"fmt"
	"log"
	"os"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/routes"
	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.Package{},
		&models.PackageService{},
		&models.Booking{},
		&models.PackageBooking{},
		&models.NotificationLog{},
	)
}

func main() {
	services.NewExpiryService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

package routes

import (
	"os"
	"strings"

	"salonhub-backend/config"
	"salonhub-backend/controllers"
	"salonhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Service catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.POST("", controllers.CreateStaff)
			staff.GET("", controllers.GetStaff)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}

		// Package routes
		packages := api.Group("/packages")
		{
			packages.POST("", controllers.CreatePackage)
			packages.GET("", controllers.GetPackages)
			packages.GET("/:id", controllers.GetPackage)
			packages.PUT("/:id", controllers.UpdatePackage)
			packages.DELETE("/:id", controllers.DeletePackage)
			packages.GET("/:id/availability", controllers.CheckPackageAvailability)
			packages.POST("/:id/book", controllers.BookPackage)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookings)
			bookings.PUT("/:id/status", controllers.UpdateBookingStatus)
		}

		// Analytics routes
		api.GET("/analytics/packages", controllers.GetPackageAnalytics)
	}

	return r
}

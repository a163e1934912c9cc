package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/curerise/curerise-backend-go/config"
	controllers "github.com/curerise/curerise-backend-go/controllers"
	middleware "github.com/curerise/curerise-backend-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/", controllers.Home())
	r.GET("/api/health", controllers.HealthCheck())

	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.AdminRequired(cfg)

	// auth
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", controllers.Register(cfg))
		authGroup.POST("/login", controllers.Login(cfg))
		authGroup.GET("/profile", auth, controllers.GetProfile(cfg))
		authGroup.PUT("/profile", auth, controllers.UpdateProfile(cfg))
	}

	// patients
	patients := r.Group("/api/patients")
	{
		patients.GET("", controllers.ListPatients(cfg))
		patients.GET("/:id", controllers.GetPatient(cfg))
		patients.POST("", auth, admin, controllers.CreatePatient(cfg))
	}

	// donations
	donations := r.Group("/api/donations")
	{
		donations.POST("", controllers.CreateDonation(cfg))
		donations.PUT("/:id/confirm", controllers.ConfirmDonation(cfg))
	}

	// food bank
	foodBank := r.Group("/api/food-bank")
	{
		foodBank.POST("/donations", controllers.CreateFoodBankDonation(cfg))
		foodBank.PUT("/donations/:id/confirm", controllers.ConfirmFoodBankDonation(cfg))
		foodBank.GET("/stats", controllers.FoodBankStats(cfg))
	}

	// education
	education := r.Group("/api/education")
	{
		education.GET("", controllers.ListEducationContent(cfg))
		education.GET("/:id", controllers.GetEducationContent(cfg))
	}

	// hospitals
	r.GET("/api/hospitals", controllers.ListHospitals(cfg))

	// admin
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, admin)
	{
		adminGroup.GET("/stats", controllers.AdminStats(cfg))
		adminGroup.GET("/patients", controllers.AdminListPatients(cfg))
		adminGroup.PUT("/patients/:id", controllers.UpdatePatient(cfg))
		adminGroup.PUT("/patients/:id/verify", controllers.VerifyPatient(cfg))
		adminGroup.POST("/hospitals", controllers.CreateHospital(cfg))
		adminGroup.POST("/education", controllers.CreateEducationContent(cfg))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "CureRise API is running",
		})
	}
}

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to CureRise API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health":    "/api/health",
				"auth":      "/api/auth/*",
				"patients":  "/api/patients/*",
				"donations": "/api/donations/*",
				"food-bank": "/api/food-bank/*",
				"education": "/api/education/*",
				"hospitals": "/api/hospitals/*",
				"admin":     "/api/admin/*",
			},
		})
	}
}

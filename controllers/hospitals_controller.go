package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// ---------------- LIST ----------------
func ListHospitals(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.Collection("hospitals").Find(ctx, bson.M{"is_verified": true})
		if err != nil {
			cfg.Logger.Error("hospitals: list failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch hospitals"})
			return
		}

		hospitals := []models.Hospital{}
		if err := cursor.All(ctx, &hospitals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode hospitals"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"hospitals": hospitals})
	}
}

// ---------------- CREATE (admin) ----------------
func CreateHospital(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name       string `json:"name"`
			Location   string `json:"location"`
			Address    string `json:"address"`
			Phone      string `json:"phone"`
			Email      string `json:"email"`
			IsVerified bool   `json:"is_verified"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.MissingFields(
			utils.Field{Name: "name", Value: input.Name},
			utils.Field{Name: "location", Value: input.Location},
		); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Email != "" && !utils.ValidEmail(input.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		hospital := models.Hospital{
			ID:         primitive.NewObjectID(),
			PublicID:   uuid.NewString(),
			Name:       input.Name,
			Location:   input.Location,
			Address:    input.Address,
			Phone:      input.Phone,
			Email:      input.Email,
			IsVerified: input.IsVerified,
			CreatedAt:  time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Collection("hospitals").InsertOne(ctx, hospital); err != nil {
			cfg.Logger.Error("hospitals: insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create hospital"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Hospital created successfully",
			"hospital": hospital,
		})
	}
}

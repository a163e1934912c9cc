package controllers

import (
	"context"
	"errors"
	"io"
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

// ---------------- CREATE ----------------
func CreateFoodBankDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount        float64 `json:"amount"`
			DonationType  string  `json:"donation_type"`
			PaymentMethod string  `json:"payment_method"`
			DonorName     string  `json:"donor_name"`
			DonorEmail    string  `json:"donor_email"`
			DonorPhone    string  `json:"donor_phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.MissingFields(
			utils.Field{Name: "donation_type", Value: input.DonationType},
			utils.Field{Name: "donor_name", Value: input.DonorName},
			utils.Field{Name: "donor_email", Value: input.DonorEmail},
		); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}
		if !utils.ValidEmail(input.DonorEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}

		cadence, err := models.ParseCadence(input.DonationType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		donation := models.FoodBankDonation{
			ID:            primitive.NewObjectID(),
			PublicID:      uuid.NewString(),
			Amount:        input.Amount,
			Cadence:       cadence,
			DonorID:       optionalDonorID(ctx, c, cfg),
			DonorName:     input.DonorName,
			DonorEmail:    input.DonorEmail,
			DonorPhone:    input.DonorPhone,
			PaymentMethod: input.PaymentMethod,
			PaymentStatus: models.PaymentPending,
			IsActive:      true,
			CreatedAt:     time.Now().UTC(),
		}

		if _, err := cfg.Collection("food_bank_donations").InsertOne(ctx, donation); err != nil {
			cfg.Logger.Error("food bank: insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Food bank donation created successfully",
			"donation": donation,
		})
	}
}

// ---------------- CONFIRM ----------------
func ConfirmFoodBankDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TransactionID string `json:"transaction_id"`
		}
		// empty body is fine, the transaction reference is optional
		if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.Collection("food_bank_donations")

		var donation models.FoodBankDonation
		if err := col.FindOne(ctx, bson.M{"public_id": c.Param("id")}).Decode(&donation); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}

		update := bson.M{
			"payment_status": models.PaymentCompleted,
			"transaction_id": input.TransactionID,
		}
		if _, err := col.UpdateOne(ctx, bson.M{"_id": donation.ID}, bson.M{"$set": update}); err != nil {
			cfg.Logger.Error("food bank: confirm failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not confirm donation"})
			return
		}
		donation.PaymentStatus = models.PaymentCompleted
		donation.TransactionID = input.TransactionID

		c.JSON(http.StatusOK, gin.H{
			"message":  "Donation confirmed successfully",
			"donation": donation,
		})
	}
}

// sumCompletedAmounts totals the amount field over documents matching the
// filter. An empty match yields 0.
func sumCompletedAmounts(ctx context.Context, cfg *config.Config, collection string, filter bson.M) (float64, error) {
	cursor, err := cfg.Collection(collection).Aggregate(ctx, []bson.M{
		{"$match": filter},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	})
	if err != nil {
		return 0, err
	}
	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// ---------------- STATS ----------------
//
// Pure read-side projection over completed rows; no side effects.
func FoodBankStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := cfg.Collection("food_bank_donations")
		completed := bson.M{"payment_status": models.PaymentCompleted}

		total, err := sumCompletedAmounts(ctx, cfg, "food_bank_donations", completed)
		if err != nil {
			cfg.Logger.Error("food bank: stats sum failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		donors, err := col.CountDocuments(ctx, completed)
		if err != nil {
			cfg.Logger.Error("food bank: donor count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		monthly, err := col.CountDocuments(ctx, bson.M{
			"donation_type":  models.CadenceMonthly,
			"is_active":      true,
			"payment_status": models.PaymentCompleted,
		})
		if err != nil {
			cfg.Logger.Error("food bank: monthly count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		stats := models.FoodBankStats{
			TotalAmount:   total,
			TotalDonors:   donors,
			MonthlyDonors: monthly,
		}
		stats.Derive(cfg.MealCost, cfg.FamilyCost)

		c.JSON(http.StatusOK, stats)
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// ---------------- STATS ----------------
func AdminStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		totalPatients, err := cfg.Collection("patients").CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			cfg.Logger.Error("admin stats: patient count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		completed := bson.M{"payment_status": models.PaymentCompleted}
		totalDonations, err := sumCompletedAmounts(ctx, cfg, "donations", completed)
		if err != nil {
			cfg.Logger.Error("admin stats: donation sum failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		totalDonors, err := cfg.Collection("donations").CountDocuments(ctx, completed)
		if err != nil {
			cfg.Logger.Error("admin stats: donor count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		totalHospitals, err := cfg.Collection("hospitals").CountDocuments(ctx, bson.M{"is_verified": true})
		if err != nil {
			cfg.Logger.Error("admin stats: hospital count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		activeCases, err := cfg.Collection("patients").CountDocuments(ctx, bson.M{"is_active": true, "is_verified": true})
		if err != nil {
			cfg.Logger.Error("admin stats: active case count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_patients":  totalPatients,
			"total_donations": totalDonations,
			"total_donors":    totalDonors,
			"total_hospitals": totalHospitals,
			"active_cases":    activeCases,
		})
	}
}

// ---------------- LIST PATIENTS ----------------
//
// Unlike the public listing, this includes inactive and unverified campaigns.
func AdminListPatients(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("patients")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		page := utils.ParsePagination(c, 20)

		total, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			cfg.Logger.Error("admin patients: count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch patients"})
			return
		}

		cursor, err := col.Find(ctx, bson.M{}, options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(page.Skip()).
			SetLimit(page.PerPage))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch patients"})
			return
		}

		var patients []models.Patient
		if err := cursor.All(ctx, &patients); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode patients"})
			return
		}

		hospitals, err := hospitalsByID(ctx, cfg, patients)
		if err != nil {
			cfg.Logger.Error("admin patients: hospital fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch patients"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"patients":     patientResponses(patients, hospitals),
			"total":        total,
			"pages":        page.Pages(total),
			"current_page": page.Page,
		})
	}
}

// ---------------- VERIFY PATIENT ----------------
//
// Idempotent: verifying an already-verified patient succeeds unchanged.
func VerifyPatient(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := cfg.Collection("patients")

		var patient models.Patient
		if err := col.FindOne(ctx, bson.M{"public_id": c.Param("id")}).Decode(&patient); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}

		now := time.Now().UTC()
		_, err := col.UpdateOne(ctx, bson.M{"_id": patient.ID},
			bson.M{"$set": bson.M{"is_verified": true, "updated_at": now}})
		if err != nil {
			cfg.Logger.Error("admin patients: verify failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify patient"})
			return
		}
		patient.IsVerified = true
		patient.UpdatedAt = now

		var hospital *models.Hospital
		var h models.Hospital
		if err := cfg.Collection("hospitals").FindOne(ctx, bson.M{"_id": patient.HospitalID}).Decode(&h); err == nil {
			hospital = &h
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Patient verified successfully",
			"patient": patient.Response(hospital),
		})
	}
}

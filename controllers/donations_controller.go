package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// optionalDonorID links the donation to a registered user when a valid
// bearer token happens to be present. Donations are a public endpoint, so
// a missing or bad token is not an error.
func optionalDonorID(ctx context.Context, c *gin.Context, cfg *config.Config) *primitive.ObjectID {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if header == "" || tokenString == header {
		return nil
	}
	publicID, err := utils.VerifyToken(cfg.JWTSecret, tokenString)
	if err != nil {
		return nil
	}
	var user models.User
	if err := cfg.Collection("users").FindOne(ctx, bson.M{"public_id": publicID}).Decode(&user); err != nil {
		return nil
	}
	return &user.ID
}

// ---------------- CREATE ----------------
//
// A patient donation credits the campaign total at creation time, while the
// payment is still pending; the increment and the donation insert commit as
// one transaction so concurrent donations are never lost and a failed insert
// never leaves a half-applied total.
func CreateDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount        float64 `json:"amount"`
			DonationType  string  `json:"donation_type"`
			PatientID     string  `json:"patient_id"`
			PaymentMethod string  `json:"payment_method"`
			DonorName     string  `json:"donor_name"`
			DonorEmail    string  `json:"donor_email"`
			DonorPhone    string  `json:"donor_phone"`
			IsAnonymous   bool    `json:"is_anonymous"`
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

		donationType, err := models.ParseDonationType(input.DonationType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// resolve the target campaign up front so a bad reference is a 404,
		// not a failed transaction
		var patient *models.Patient
		if donationType == models.DonationTypePatient && input.PatientID != "" {
			var p models.Patient
			err := cfg.Collection("patients").
				FindOne(ctx, bson.M{"public_id": input.PatientID}).
				Decode(&p)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
				return
			}
			patient = &p
		}

		donation := models.Donation{
			ID:            primitive.NewObjectID(),
			PublicID:      uuid.NewString(),
			Amount:        input.Amount,
			DonorID:       optionalDonorID(ctx, c, cfg),
			DonationType:  donationType,
			PaymentMethod: input.PaymentMethod,
			PaymentStatus: models.PaymentPending,
			DonorName:     input.DonorName,
			DonorEmail:    input.DonorEmail,
			DonorPhone:    input.DonorPhone,
			IsAnonymous:   input.IsAnonymous,
			CreatedAt:     time.Now().UTC(),
		}
		if patient != nil {
			donation.PatientID = &patient.ID
		}

		if err := recordDonation(ctx, cfg, donation, patient); err != nil {
			cfg.Logger.Error("donations: record failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation"})
			return
		}

		var patientResp *models.PatientResponse
		if patient != nil {
			patient.RaisedAmount += donation.Amount
			resp := patient.Response(lookupHospital(ctx, cfg, patient.HospitalID))
			patientResp = &resp
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Donation created successfully",
			"donation": donation.Response(patientResp),
		})
	}
}

// recordDonation applies the campaign increment and the donation insert as
// one atomic unit. The increment is an update-by-delta, so concurrent
// donations against the same patient both land.
func recordDonation(ctx context.Context, cfg *config.Config, donation models.Donation, patient *models.Patient) error {
	session, err := cfg.MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if patient != nil {
			res, err := cfg.Collection("patients").UpdateOne(sc,
				bson.M{"_id": patient.ID},
				bson.M{
					"$inc": bson.M{"raised_amount": donation.Amount},
					"$set": bson.M{"updated_at": time.Now().UTC()},
				})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, fmt.Errorf("patient %s vanished before increment", patient.PublicID)
			}
		}
		if _, err := cfg.Collection("donations").InsertOne(sc, donation); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func lookupHospital(ctx context.Context, cfg *config.Config, id primitive.ObjectID) *models.Hospital {
	var h models.Hospital
	if err := cfg.Collection("hospitals").FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		return nil
	}
	return &h
}

// ---------------- CONFIRM ----------------
//
// Confirmation only transitions payment status and stores the processor
// reference. It does not touch raised_amount: the campaign was already
// credited at creation.
func ConfirmDonation(cfg *config.Config) gin.HandlerFunc {
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

		col := cfg.Collection("donations")

		var donation models.Donation
		err := col.FindOne(ctx, bson.M{"public_id": c.Param("id")}).Decode(&donation)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}

		update := bson.M{
			"payment_status": models.PaymentCompleted,
			"transaction_id": input.TransactionID,
		}
		if _, err := col.UpdateOne(ctx, bson.M{"_id": donation.ID}, bson.M{"$set": update}); err != nil {
			cfg.Logger.Error("donations: confirm failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not confirm donation"})
			return
		}
		donation.PaymentStatus = models.PaymentCompleted
		donation.TransactionID = input.TransactionID

		var patientResp *models.PatientResponse
		if donation.PatientID != nil {
			var p models.Patient
			if err := cfg.Collection("patients").FindOne(ctx, bson.M{"_id": *donation.PatientID}).Decode(&p); err == nil {
				resp := p.Response(lookupHospital(ctx, cfg, p.HospitalID))
				patientResp = &resp
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Donation confirmed successfully",
			"donation": donation.Response(patientResp),
		})
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// hospitalsByID fetches the hospitals referenced by the given patients in a
// single query. Relationships are resolved here at the boundary, never by
// implicit traversal.
func hospitalsByID(ctx context.Context, cfg *config.Config, patients []models.Patient) (map[primitive.ObjectID]*models.Hospital, error) {
	ids := make([]primitive.ObjectID, 0, len(patients))
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range patients {
		if !seen[p.HospitalID] {
			seen[p.HospitalID] = true
			ids = append(ids, p.HospitalID)
		}
	}

	byID := make(map[primitive.ObjectID]*models.Hospital, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cursor, err := cfg.Collection("hospitals").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var hospitals []models.Hospital
	if err := cursor.All(ctx, &hospitals); err != nil {
		return nil, err
	}
	for i := range hospitals {
		byID[hospitals[i].ID] = &hospitals[i]
	}
	return byID, nil
}

// matchingHospitalIDs returns the internal ids of hospitals whose field
// matches the given case-insensitive substring.
func matchingHospitalIDs(ctx context.Context, cfg *config.Config, field, substring string) ([]primitive.ObjectID, error) {
	cursor, err := cfg.Collection("hospitals").Find(ctx,
		bson.M{field: bson.M{"$regex": substring, "$options": "i"}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func patientResponses(patients []models.Patient, hospitals map[primitive.ObjectID]*models.Hospital) []models.PatientResponse {
	out := make([]models.PatientResponse, len(patients))
	for i, p := range patients {
		out[i] = p.Response(hospitals[p.HospitalID])
	}
	return out
}

// ---------------- LIST ----------------
func ListPatients(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("patients")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		page := utils.ParsePagination(c, 10)

		// --- Build filter ---
		filter := bson.M{"is_active": true}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}
		if urgency := c.Query("urgency"); urgency != "" {
			filter["urgency"] = urgency
		}
		if location := c.Query("location"); location != "" {
			ids, err := matchingHospitalIDs(ctx, cfg, "location", location)
			if err != nil {
				cfg.Logger.Error("patients: hospital location lookup failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch patients"})
				return
			}
			filter["hospital_id"] = bson.M{"$in": ids}
		}
		if search := c.Query("search"); search != "" {
			hospitalIDs, err := matchingHospitalIDs(ctx, cfg, "name", search)
			if err != nil {
				cfg.Logger.Error("patients: hospital name lookup failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch patients"})
				return
			}
			filter["$or"] = bson.A{
				bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
				bson.M{"condition": bson.M{"$regex": search, "$options": "i"}},
				bson.M{"hospital_id": bson.M{"$in": hospitalIDs}},
			}
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			cfg.Logger.Error("patients: count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch patients"})
			return
		}

		cursor, err := col.Find(ctx, filter, options.Find().
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
			cfg.Logger.Error("patients: hospital fetch failed", zap.Error(err))
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

// ---------------- GET ----------------
func GetPatient(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var patient models.Patient
		err := cfg.Collection("patients").
			FindOne(ctx, bson.M{"public_id": c.Param("id"), "is_active": true}).
			Decode(&patient)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}

		etag := utils.GenerateETag(patient.ID, patient.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		var hospital *models.Hospital
		var h models.Hospital
		if err := cfg.Collection("hospitals").FindOne(ctx, bson.M{"_id": patient.HospitalID}).Decode(&h); err == nil {
			hospital = &h
		}

		c.JSON(http.StatusOK, gin.H{"patient": patient.Response(hospital)})
	}
}

// ---------------- CREATE ----------------
func CreatePatient(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name         string  `form:"name" json:"name"`
			Age          int     `form:"age" json:"age"`
			Condition    string  `form:"condition" json:"condition"`
			Category     string  `form:"category" json:"category"`
			Urgency      string  `form:"urgency" json:"urgency"`
			TargetAmount float64 `form:"target_amount" json:"target_amount"`
			HospitalID   string  `form:"hospital_id" json:"hospital_id"`
			ImageURL     string  `form:"image_url" json:"image_url"`
			IsVerified   bool    `form:"is_verified" json:"is_verified"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.MissingFields(
			utils.Field{Name: "name", Value: input.Name},
			utils.Field{Name: "condition", Value: input.Condition},
			utils.Field{Name: "category", Value: input.Category},
			utils.Field{Name: "urgency", Value: input.Urgency},
			utils.Field{Name: "hospital_id", Value: input.HospitalID},
		); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Age <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "age must be greater than 0"})
			return
		}
		if input.TargetAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_amount must be greater than 0"})
			return
		}

		category, err := models.ParseCategory(input.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		urgency, err := models.ParseUrgency(input.Urgency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// referenced hospital must exist
		var hospital models.Hospital
		err = cfg.Collection("hospitals").
			FindOne(ctx, bson.M{"public_id": input.HospitalID}).
			Decode(&hospital)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
			return
		}

		imageURL := input.ImageURL
		if form, err := c.MultipartForm(); err == nil && form != nil {
			if files := form.File["image"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				url, err := utils.UploadToCloudinary(cfg, file, "patients")
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
					return
				}
				imageURL = url
			}
		}

		now := time.Now().UTC()
		patient := models.Patient{
			ID:           primitive.NewObjectID(),
			PublicID:     uuid.NewString(),
			Name:         input.Name,
			Age:          input.Age,
			Condition:    input.Condition,
			Category:     category,
			Urgency:      urgency,
			TargetAmount: input.TargetAmount,
			RaisedAmount: 0,
			HospitalID:   hospital.ID,
			ImageURL:     imageURL,
			IsActive:     true,
			IsVerified:   input.IsVerified,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if _, err := cfg.Collection("patients").InsertOne(ctx, patient); err != nil {
			cfg.Logger.Error("patients: insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create patient"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Patient created successfully",
			"patient": patient.Response(&hospital),
		})
	}
}

// ---------------- UPDATE ----------------
//
// Admin-only partial update. raised_amount is off limits here: only the
// donation recorder changes it, atomically with a donation insert.
func UpdatePatient(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name         string  `form:"name" json:"name"`
			Age          int     `form:"age" json:"age"`
			Condition    string  `form:"condition" json:"condition"`
			Category     string  `form:"category" json:"category"`
			Urgency      string  `form:"urgency" json:"urgency"`
			TargetAmount float64 `form:"target_amount" json:"target_amount"`
			IsActive     *bool   `form:"is_active" json:"is_active"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Age > 0 {
			update["age"] = input.Age
		}
		if input.Condition != "" {
			update["condition"] = input.Condition
		}
		if input.Category != "" {
			category, err := models.ParseCategory(input.Category)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["category"] = category
		}
		if input.Urgency != "" {
			urgency, err := models.ParseUrgency(input.Urgency)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["urgency"] = urgency
		}
		if input.TargetAmount > 0 {
			update["target_amount"] = input.TargetAmount
		}
		if input.IsActive != nil {
			update["is_active"] = *input.IsActive
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := cfg.Collection("patients")

		var existing models.Patient
		if err := col.FindOne(ctx, bson.M{"public_id": c.Param("id")}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}

		// a new image replaces the stored one, the stale upload is removed
		if form, err := c.MultipartForm(); err == nil && form != nil {
			if files := form.File["image"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				url, err := utils.UploadToCloudinary(cfg, file, "patients")
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
					return
				}
				update["image_url"] = url
				if existing.ImageURL != "" {
					if err := utils.DeleteFromCloudinary(cfg, existing.ImageURL); err != nil {
						cfg.Logger.Warn("patients: stale image cleanup failed", zap.Error(err))
					}
				}
			}
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		update["updated_at"] = time.Now().UTC()

		if _, err := col.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": update}); err != nil {
			cfg.Logger.Error("patients: update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update patient"})
			return
		}

		var updated models.Patient
		if err := col.FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&updated); err != nil {
			cfg.Logger.Error("patients: reload after update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update patient"})
			return
		}

		var hospital *models.Hospital
		var h models.Hospital
		if err := cfg.Collection("hospitals").FindOne(ctx, bson.M{"_id": updated.HospitalID}).Decode(&h); err == nil {
			hospital = &h
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Patient updated successfully",
			"patient": updated.Response(hospital),
		})
	}
}

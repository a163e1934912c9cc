package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	config "github.com/curerise/curerise-backend-go/config"
	models "github.com/curerise/curerise-backend-go/models"
	utils "github.com/curerise/curerise-backend-go/utils"
)

// Run loads demo data for development. Every step checks for existing rows
// first, so running it repeatedly is safe. It is never part of normal
// request handling.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := seedUsers(ctx, cfg); err != nil {
		return err
	}
	hospitals, err := seedHospitals(ctx, cfg)
	if err != nil {
		return err
	}
	if err := seedPatients(ctx, cfg, hospitals); err != nil {
		return err
	}
	return seedEducation(ctx, cfg)
}

func seedUsers(ctx context.Context, cfg *config.Config) error {
	col := cfg.Collection("users")

	users := []struct {
		email    string
		password string
		name     string
		phone    string
		admin    bool
	}{
		{"admin@curerise.com", "admin123", "Admin User", "", true},
		{"demo@curerise.com", "demo123", "Demo User", "+919876543210", false},
	}

	for _, u := range users {
		err := col.FindOne(ctx, bson.M{"email": u.email}).Err()
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}

		hash, err := utils.HashPassword(u.password)
		if err != nil {
			return err
		}
		_, err = col.InsertOne(ctx, models.User{
			ID:           primitive.NewObjectID(),
			PublicID:     uuid.NewString(),
			Email:        u.email,
			PasswordHash: hash,
			Name:         u.name,
			Phone:        u.phone,
			IsAdmin:      u.admin,
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		cfg.Logger.Info("seeded user", zap.String("email", u.email))
	}
	return nil
}

func seedHospitals(ctx context.Context, cfg *config.Config) ([]models.Hospital, error) {
	col := cfg.Collection("hospitals")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		var existing []models.Hospital
		if err := cursor.All(ctx, &existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	hospitals := []models.Hospital{
		{Name: "Apollo Hospital", Location: "Mumbai", Address: "Mumbai, Maharashtra", Phone: "+91-22-12345678", Email: "info@apollo.com"},
		{Name: "Tata Memorial Hospital", Location: "Mumbai", Address: "Mumbai, Maharashtra", Phone: "+91-22-87654321", Email: "info@tata.com"},
		{Name: "AIIMS", Location: "Delhi", Address: "New Delhi", Phone: "+91-11-12345678", Email: "info@aiims.com"},
		{Name: "Fortis Hospital", Location: "Bangalore", Address: "Bangalore, Karnataka", Phone: "+91-80-12345678", Email: "info@fortis.com"},
		{Name: "Narayana Health", Location: "Bangalore", Address: "Bangalore, Karnataka", Phone: "+91-80-87654321", Email: "info@narayana.com"},
		{Name: "Max Hospital", Location: "Delhi", Address: "New Delhi", Phone: "+91-11-87654321", Email: "info@max.com"},
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(hospitals))
	for i := range hospitals {
		hospitals[i].ID = primitive.NewObjectID()
		hospitals[i].PublicID = uuid.NewString()
		hospitals[i].IsVerified = true
		hospitals[i].CreatedAt = now
		docs[i] = hospitals[i]
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	cfg.Logger.Info("seeded hospitals", zap.Int("count", len(hospitals)))
	return hospitals, nil
}

func seedPatients(ctx context.Context, cfg *config.Config, hospitals []models.Hospital) error {
	col := cfg.Collection("patients")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 || len(hospitals) < 6 {
		return err
	}

	patients := []models.Patient{
		{Name: "Rajesh Kumar", Age: 45, Condition: "Requires urgent cardiac surgery for blocked arteries. Family unable to afford the treatment cost.", Category: models.CategoryCardiac, Urgency: models.UrgencyCritical, TargetAmount: 350000, RaisedAmount: 125000},
		{Name: "Priya Sharma", Age: 8, Condition: "Diagnosed with acute lymphoblastic leukemia. Needs immediate chemotherapy treatment.", Category: models.CategoryCancer, Urgency: models.UrgencyCritical, TargetAmount: 500000, RaisedAmount: 280000},
		{Name: "Mohammed Ali", Age: 32, Condition: "Severe spinal injury from accident. Requires complex orthopedic surgery for mobility restoration.", Category: models.CategoryOrthopedic, Urgency: models.UrgencyUrgent, TargetAmount: 275000, RaisedAmount: 95000},
		{Name: "Lakshmi Devi", Age: 58, Condition: "Brain tumor requiring immediate surgical intervention. Family seeking financial assistance.", Category: models.CategoryNeurological, Urgency: models.UrgencyCritical, TargetAmount: 450000, RaisedAmount: 180000},
		{Name: "Arjun Patel", Age: 12, Condition: "Congenital heart defect requiring corrective surgery. Parents are daily wage workers.", Category: models.CategoryPediatric, Urgency: models.UrgencyUrgent, TargetAmount: 320000, RaisedAmount: 145000},
		{Name: "Sunita Rao", Age: 41, Condition: "Kidney failure requiring urgent transplant. Seeking help for medical expenses.", Category: models.CategoryEmergency, Urgency: models.UrgencyCritical, TargetAmount: 600000, RaisedAmount: 220000},
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(patients))
	for i := range patients {
		patients[i].ID = primitive.NewObjectID()
		patients[i].PublicID = uuid.NewString()
		patients[i].HospitalID = hospitals[i].ID
		patients[i].IsActive = true
		patients[i].IsVerified = true
		patients[i].CreatedAt = now
		patients[i].UpdatedAt = now
		docs[i] = patients[i]
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return err
	}
	cfg.Logger.Info("seeded patients", zap.Int("count", len(patients)))
	return nil
}

func seedEducation(ctx context.Context, cfg *config.Config) error {
	col := cfg.Collection("education_content")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return err
	}

	content := []models.EducationContent{
		{Title: "Understanding Heart Disease", Content: "Heart disease is a leading cause of death worldwide. Learn about prevention, symptoms, and treatment options.", Category: "health", Author: "Dr. Rajesh Kumar"},
		{Title: "Nutrition During Cancer Treatment", Content: "Proper nutrition is crucial during cancer treatment. Discover foods that can help with recovery and side effects.", Category: "nutrition", Author: "Dr. Priya Sharma"},
		{Title: "Post-Surgery Recovery Tips", Content: "Essential tips for faster recovery after surgery, including wound care, physical therapy, and lifestyle changes.", Category: "recovery", Author: "Dr. Mohammed Ali"},
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(content))
	for i := range content {
		content[i].ID = primitive.NewObjectID()
		content[i].PublicID = uuid.NewString()
		content[i].IsPublished = true
		content[i].CreatedAt = now
		content[i].UpdatedAt = now
		docs[i] = content[i]
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return err
	}
	cfg.Logger.Info("seeded education content", zap.Int("count", len(content)))
	return nil
}

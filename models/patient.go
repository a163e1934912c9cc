package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Urgency classifies how quickly a patient needs funding.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyModerate Urgency = "moderate"
)

func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(s) {
	case UrgencyCritical, UrgencyUrgent, UrgencyModerate:
		return Urgency(s), nil
	}
	return "", fmt.Errorf("invalid urgency %q", s)
}

// Category groups campaigns by medical condition.
type Category string

const (
	CategoryCardiac      Category = "cardiac"
	CategoryCancer       Category = "cancer"
	CategoryEmergency    Category = "emergency"
	CategoryOrthopedic   Category = "orthopedic"
	CategoryNeurological Category = "neurological"
	CategoryPediatric    Category = "pediatric"
	CategoryGeneral      Category = "general"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryCardiac, CategoryCancer, CategoryEmergency, CategoryOrthopedic,
		CategoryNeurological, CategoryPediatric, CategoryGeneral:
		return Category(s), nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}

// Patient is a fundraising campaign for a single patient. RaisedAmount is
// only ever changed by the donation recorder, atomically with the donation
// insert, and may exceed TargetAmount.
type Patient struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PublicID     string             `bson:"public_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Age          int                `bson:"age" json:"age"`
	Condition    string             `bson:"condition" json:"condition"`
	Category     Category           `bson:"category" json:"category"`
	Urgency      Urgency            `bson:"urgency" json:"urgency"`
	TargetAmount float64            `bson:"target_amount" json:"target_amount"`
	RaisedAmount float64            `bson:"raised_amount" json:"raised_amount"`
	HospitalID   primitive.ObjectID `bson:"hospital_id" json:"-"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	IsVerified   bool               `bson:"is_verified" json:"is_verified"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// PatientResponse is the external shape: hospital resolved by explicit
// lookup, progress derived from the stored amounts.
type PatientResponse struct {
	Patient
	Hospital           *Hospital `json:"hospital"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

// Response pairs the patient with its looked-up hospital. hospital may be
// nil when the caller could not resolve it.
func (p Patient) Response(hospital *Hospital) PatientResponse {
	return PatientResponse{
		Patient:            p,
		Hospital:           hospital,
		ProgressPercentage: ProgressPercentage(p.RaisedAmount, p.TargetAmount),
	}
}

// ProgressPercentage is raised/target as a percentage rounded to two
// decimals. A zero target yields 0, not a division error.
func ProgressPercentage(raised, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(raised/target*100*100) / 100
}

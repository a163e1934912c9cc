package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cadence distinguishes recurring subscriptions from one-off gifts.
type Cadence string

const (
	CadenceMonthly Cadence = "monthly"
	CadenceOnetime Cadence = "onetime"
)

func ParseCadence(s string) (Cadence, error) {
	switch Cadence(s) {
	case CadenceMonthly, CadenceOnetime:
		return Cadence(s), nil
	}
	return "", fmt.Errorf("invalid donation_type %q", s)
}

// FoodBankDonation is a contribution to the food bank. IsActive marks a
// monthly subscription as still live; creation sets it true and nothing
// clears it yet.
type FoodBankDonation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"-"`
	PublicID      string              `bson:"public_id" json:"id"`
	Amount        float64             `bson:"amount" json:"amount"`
	Cadence       Cadence             `bson:"donation_type" json:"donation_type"`
	DonorID       *primitive.ObjectID `bson:"donor_id,omitempty" json:"-"`
	DonorName     string              `bson:"donor_name" json:"donor_name"`
	DonorEmail    string              `bson:"donor_email" json:"donor_email"`
	DonorPhone    string              `bson:"donor_phone,omitempty" json:"donor_phone,omitempty"`
	PaymentMethod string              `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus       `bson:"payment_status" json:"payment_status"`
	TransactionID string              `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	IsActive      bool                `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
}

// FoodBankStats are read-side aggregates over completed food-bank donations.
// MealsProvided and FamiliesSupported are derived with configurable
// conversion amounts.
type FoodBankStats struct {
	TotalAmount       float64 `json:"total_amount"`
	TotalDonors       int64   `json:"total_donors"`
	MonthlyDonors     int64   `json:"monthly_donors"`
	MealsProvided     int64   `json:"meals_provided"`
	FamiliesSupported int64   `json:"families_supported"`
}

// Derive fills in the meal and family counts from the running total.
func (s *FoodBankStats) Derive(mealCost, familyCost float64) {
	if mealCost > 0 {
		s.MealsProvided = int64(s.TotalAmount / mealCost)
	}
	if familyCost > 0 {
		s.FamiliesSupported = int64(s.TotalAmount / familyCost)
	}
}

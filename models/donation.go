package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationType says what a donation funds.
type DonationType string

const (
	DonationTypePatient  DonationType = "patient"
	DonationTypeFoodBank DonationType = "food_bank"
	DonationTypeGeneral  DonationType = "general"
)

func ParseDonationType(s string) (DonationType, error) {
	switch DonationType(s) {
	case DonationTypePatient, DonationTypeFoodBank, DonationTypeGeneral:
		return DonationType(s), nil
	}
	return "", fmt.Errorf("invalid donation_type %q", s)
}

// PaymentStatus lifecycle: pending -> completed | failed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("invalid payment_status %q", s)
}

// Donation records a single contribution. Donor fields are a snapshot taken
// at donation time and stay valid even if the registered user changes or
// never existed. PatientID is set once at creation and never rewritten.
type Donation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	PublicID      string              `bson:"public_id"`
	Amount        float64             `bson:"amount"`
	DonorID       *primitive.ObjectID `bson:"donor_id,omitempty"`
	PatientID     *primitive.ObjectID `bson:"patient_id,omitempty"`
	DonationType  DonationType        `bson:"donation_type"`
	PaymentMethod string              `bson:"payment_method,omitempty"`
	PaymentStatus PaymentStatus       `bson:"payment_status"`
	TransactionID string              `bson:"transaction_id,omitempty"`
	DonorName     string              `bson:"donor_name"`
	DonorEmail    string              `bson:"donor_email"`
	DonorPhone    string              `bson:"donor_phone,omitempty"`
	IsAnonymous   bool                `bson:"is_anonymous"`
	CreatedAt     time.Time           `bson:"created_at"`
}

// DonationResponse is the only JSON shape a donation is ever serialized
// through, so anonymity redaction cannot be bypassed.
type DonationResponse struct {
	ID            string           `json:"id"`
	Amount        float64          `json:"amount"`
	DonationType  DonationType     `json:"donation_type"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	TransactionID string           `json:"transaction_id,omitempty"`
	DonorName     string           `json:"donor_name"`
	DonorEmail    *string          `json:"donor_email"`
	DonorPhone    *string          `json:"donor_phone"`
	IsAnonymous   bool             `json:"is_anonymous"`
	CreatedAt     time.Time        `json:"created_at"`
	Patient       *PatientResponse `json:"patient,omitempty"`
}

// Response redacts the donor snapshot for anonymous donations: the name
// becomes "Anonymous" and email/phone serialize as null.
func (d Donation) Response(patient *PatientResponse) DonationResponse {
	resp := DonationResponse{
		ID:            d.PublicID,
		Amount:        d.Amount,
		DonationType:  d.DonationType,
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: d.PaymentStatus,
		TransactionID: d.TransactionID,
		DonorName:     "Anonymous",
		IsAnonymous:   d.IsAnonymous,
		CreatedAt:     d.CreatedAt,
		Patient:       patient,
	}
	if !d.IsAnonymous {
		resp.DonorName = d.DonorName
		resp.DonorEmail = &d.DonorEmail
		if d.DonorPhone != "" {
			resp.DonorPhone = &d.DonorPhone
		}
	}
	return resp
}

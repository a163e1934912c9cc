package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hospital struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PublicID   string             `bson:"public_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Location   string             `bson:"location" json:"location"`
	Address    string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	IsVerified bool               `bson:"is_verified" json:"is_verified"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

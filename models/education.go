package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EducationContent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PublicID    string             `bson:"public_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Author      string             `bson:"author,omitempty" json:"author,omitempty"`
	IsPublished bool               `bson:"is_published" json:"is_published"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

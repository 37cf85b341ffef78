package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry with an associated image.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	ImageURL  string             `bson:"image_url" json:"image_url"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

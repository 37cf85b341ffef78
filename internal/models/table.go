package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Table is a numbered seat group in the restaurant.
type Table struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number    int                `bson:"number" json:"number"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// TableRequest is the body of POST /table and PATCH /table/:id.
type TableRequest struct {
	Number int `json:"number"`
}

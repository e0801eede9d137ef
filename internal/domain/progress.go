package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressLog is an append-only body-weight entry written by a client.
type ProgressLog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID primitive.ObjectID `bson:"clientId" json:"clientId"`
	Weight   float64            `bson:"weight" json:"weight"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	// PhotoKey is the object key of an optional progress photo in S3.
	PhotoKey string `bson:"photoKey,omitempty" json:"-"`
}

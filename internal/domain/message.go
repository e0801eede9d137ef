package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a directed text message between two users (User.ID on both ends).
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	Read       bool               `bson:"read" json:"read"`
}

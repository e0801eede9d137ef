package mongo

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messageCollectionName = "messages"

// mongoMessageRepository implements repository.MessageRepository
type mongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new Message repository backed by MongoDB.
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{
		collection: db.Collection(messageCollectionName),
	}
}

// Create appends a message. Messages always start unread.
func (r *mongoMessageRepository) Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if msg.SenderID == primitive.NilObjectID || msg.ReceiverID == primitive.NilObjectID || msg.Content == "" {
		return primitive.NilObjectID, errors.New("message requires senderId, receiverId, and content")
	}
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	msg.Read = false

	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return primitive.NilObjectID, err
	}
	return msg.ID, nil
}

// GetByID retrieves a message by its ID.
func (r *mongoMessageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error) {
	var msg domain.Message
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &msg, nil
}

// Conversation returns a page of the messages between a and b. Pages are
// counted back from the newest message; the page itself is oldest first.
func (r *mongoMessageRepository) Conversation(ctx context.Context, a, b primitive.ObjectID, offset, limit int64) ([]domain.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"senderId": a, "receiverId": b},
			{"senderId": b, "receiverId": a},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if offset > 0 {
		opts.SetSkip(offset)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	messages, err := findAll[domain.Message](ctx, r.collection, filter, opts)
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}

// MarkRead sets read=true on a message addressed to receiverID.
func (r *mongoMessageRepository) MarkRead(ctx context.Context, id, receiverID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "receiverId": receiverID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountUnread counts unread messages for receiverID, optionally only from senderID.
func (r *mongoMessageRepository) CountUnread(ctx context.Context, receiverID primitive.ObjectID, senderID *primitive.ObjectID) (int64, error) {
	filter := bson.M{"receiverId": receiverID, "read": false}
	if senderID != nil {
		filter["senderId"] = *senderID
	}
	return r.collection.CountDocuments(ctx, filter)
}

func messageIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "senderId", Value: 1}, {Key: "receiverId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			// Unread counters
			Keys:    bson.D{{Key: "receiverId", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index(),
		},
	}
}

package mongo

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressLogCollectionName = "progress_logs"

// mongoProgressLogRepository implements repository.ProgressLogRepository
type mongoProgressLogRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressLogRepository creates a new ProgressLog repository backed by MongoDB.
func NewMongoProgressLogRepository(db *mongo.Database) repository.ProgressLogRepository {
	return &mongoProgressLogRepository{
		collection: db.Collection(progressLogCollectionName),
	}
}

// Create appends a progress log entry.
func (r *mongoProgressLogRepository) Create(ctx context.Context, entry *domain.ProgressLog) (primitive.ObjectID, error) {
	if entry.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress log requires clientId")
	}
	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return primitive.NilObjectID, err
	}
	return entry.ID, nil
}

// GetByID retrieves a progress log by its ID.
func (r *mongoProgressLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressLog, error) {
	var entry domain.ProgressLog
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &entry, nil
}

// GetByClientID returns a client's logs, newest first.
func (r *mongoProgressLogRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.ProgressLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[domain.ProgressLog](ctx, r.collection, bson.M{"clientId": clientID}, opts)
}

// SetPhotoKey records the S3 object key of the entry's photo.
func (r *mongoProgressLogRepository) SetPhotoKey(ctx context.Context, id primitive.ObjectID, key string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photoKey": key}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func progressLogIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
}

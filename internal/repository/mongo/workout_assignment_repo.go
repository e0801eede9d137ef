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

const workoutAssignmentCollectionName = "workout_assignments"

// mongoWorkoutAssignmentRepository implements repository.WorkoutAssignmentRepository
type mongoWorkoutAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutAssignmentRepository creates a new WorkoutAssignment repository backed by MongoDB.
func NewMongoWorkoutAssignmentRepository(db *mongo.Database) repository.WorkoutAssignmentRepository {
	return &mongoWorkoutAssignmentRepository{
		collection: db.Collection(workoutAssignmentCollectionName),
	}
}

// Create inserts a new assignment into the database.
func (r *mongoWorkoutAssignmentRepository) Create(ctx context.Context, assignment *domain.WorkoutAssignment) (primitive.ObjectID, error) {
	if assignment.WorkoutID == primitive.NilObjectID || assignment.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires workoutId and clientId")
	}

	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = time.Now().UTC()
	assignment.Date = domain.DayStart(assignment.Date)

	if _, err := r.collection.InsertOne(ctx, assignment); err != nil {
		return primitive.NilObjectID, err
	}
	return assignment.ID, nil
}

// GetByID retrieves an assignment by its ID.
func (r *mongoWorkoutAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutAssignment, error) {
	var assignment domain.WorkoutAssignment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &assignment, nil
}

// GetByClientID retrieves a client's assignments, newest date first.
func (r *mongoWorkoutAssignmentRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[domain.WorkoutAssignment](ctx, r.collection, bson.M{"clientId": clientID}, opts)
}

// FindInRange returns the first assignment in [from, to).
func (r *mongoWorkoutAssignmentRepository) FindInRange(ctx context.Context, clientID primitive.ObjectID, from, to time.Time) (*domain.WorkoutAssignment, error) {
	filter := bson.M{
		"clientId": clientID,
		"date":     bson.M{"$gte": from, "$lt": to},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var assignment domain.WorkoutAssignment
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&assignment); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &assignment, nil
}

// SetCompleted sets the completion flag without touching feedback.
func (r *mongoWorkoutAssignmentRepository) SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error {
	return r.set(ctx, id, bson.M{"completed": completed})
}

// SetFeedback overwrites the feedback text.
func (r *mongoWorkoutAssignmentRepository) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error {
	return r.set(ctx, id, bson.M{"feedback": feedback})
}

// CountPending counts uncompleted assignments dated on or before dueBy
// for any of the given clients.
func (r *mongoWorkoutAssignmentRepository) CountPending(ctx context.Context, clientIDs []primitive.ObjectID, dueBy time.Time) (int64, error) {
	if len(clientIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"clientId":  bson.M{"$in": clientIDs},
		"completed": false,
		"date":      bson.M{"$lte": dueBy},
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *mongoWorkoutAssignmentRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func workoutAssignmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// A specific client's assignments sorted by date
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
		{
			// Pending check-ins on the coach dashboard
			Keys:    bson.D{{Key: "completed", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
}

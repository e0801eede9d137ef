// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.CoachID == primitive.NilObjectID || workout.Title == "" {
		return primitive.NilObjectID, errors.New("workout requires coachId and title")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()
	if workout.Exercises == nil {
		workout.Exercises = []domain.ExerciseEntry{}
	}

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return primitive.NilObjectID, err
	}
	return workout.ID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &workout, nil
}

// GetByIDs retrieves the workouts with the given IDs (missing ones are skipped).
func (r *mongoWorkoutRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error) {
	if len(ids) == 0 {
		return []domain.Workout{}, nil
	}
	return findAll[domain.Workout](ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}})
}

// GetByCoachID retrieves all workouts of a coach, newest first.
func (r *mongoWorkoutRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Workout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[domain.Workout](ctx, r.collection, bson.M{"coachId": coachID}, opts)
}

// SearchByTitle does a case-insensitive substring match on the coach's own workouts.
func (r *mongoWorkoutRepository) SearchByTitle(ctx context.Context, coachID primitive.ObjectID, query string, limit int64) ([]domain.Workout, error) {
	filter := bson.M{
		"coachId": coachID,
		"title":   primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[domain.Workout](ctx, r.collection, filter, opts)
}

// Delete removes a workout owned by coachID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	// Filter ensures that the workout exists AND belongs to the specified coach.
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coachId": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func workoutIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "coachId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index()},
	}
}

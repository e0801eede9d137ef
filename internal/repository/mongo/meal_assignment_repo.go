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

const mealAssignmentCollectionName = "meal_assignments"

// mongoMealAssignmentRepository implements repository.MealAssignmentRepository
type mongoMealAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoMealAssignmentRepository creates a new MealAssignment repository backed by MongoDB.
func NewMongoMealAssignmentRepository(db *mongo.Database) repository.MealAssignmentRepository {
	return &mongoMealAssignmentRepository{
		collection: db.Collection(mealAssignmentCollectionName),
	}
}

// Create inserts the day's assignment. The unique (clientId, date) index
// turns a concurrent second insert into repository.ErrDuplicateKey.
func (r *mongoMealAssignmentRepository) Create(ctx context.Context, assignment *domain.MealAssignment) (primitive.ObjectID, error) {
	if assignment.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("meal assignment requires clientId")
	}
	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = time.Now().UTC()
	assignment.Date = domain.DayStart(assignment.Date)
	if assignment.CompletedMeals == nil {
		assignment.CompletedMeals = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, assignment); err != nil {
		return primitive.NilObjectID, mapWriteErr(err)
	}
	return assignment.ID, nil
}

// GetByID retrieves an assignment by its ID.
func (r *mongoMealAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealAssignment, error) {
	var assignment domain.MealAssignment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &assignment, nil
}

// FindInRange returns the client's assignment with from <= date < to.
func (r *mongoMealAssignmentRepository) FindInRange(ctx context.Context, clientID primitive.ObjectID, from, to time.Time) (*domain.MealAssignment, error) {
	filter := bson.M{
		"clientId": clientID,
		"date":     bson.M{"$gte": from, "$lt": to},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var assignment domain.MealAssignment
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&assignment); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &assignment, nil
}

// AddCompletedMeal appends meal if it is not in the list yet.
func (r *mongoMealAssignmentRepository) AddCompletedMeal(ctx context.Context, id primitive.ObjectID, meal string) error {
	filter := bson.M{"_id": id, "completedMeals": bson.M{"$ne": meal}}
	update := bson.M{"$push": bson.M{"completedMeals": meal}}
	return r.conditionalUpdate(ctx, id, filter, update)
}

// RemoveCompletedMeal drops meal if it is in the list.
func (r *mongoMealAssignmentRepository) RemoveCompletedMeal(ctx context.Context, id primitive.ObjectID, meal string) error {
	filter := bson.M{"_id": id, "completedMeals": meal}
	update := bson.M{"$pull": bson.M{"completedMeals": meal}}
	return r.conditionalUpdate(ctx, id, filter, update)
}

// SetCustomContent overwrites the free-text daily log.
func (r *mongoMealAssignmentRepository) SetCustomContent(ctx context.Context, id primitive.ObjectID, content string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"customContent": content}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoMealAssignmentRepository) conditionalUpdate(ctx context.Context, id primitive.ObjectID, filter, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrNotModified
}

func mealAssignmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// One assignment per client per day
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "mealPlanId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
}

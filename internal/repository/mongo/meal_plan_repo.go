// internal/repository/mongo/meal_plan_repo.go
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

const mealPlanCollectionName = "meal_plans"

// mongoMealPlanRepository implements repository.MealPlanRepository
type mongoMealPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoMealPlanRepository creates a new MealPlan repository.
func NewMongoMealPlanRepository(db *mongo.Database) repository.MealPlanRepository {
	return &mongoMealPlanRepository{
		collection: db.Collection(mealPlanCollectionName),
	}
}

// Create inserts a new meal plan.
func (r *mongoMealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	if plan.CoachID == primitive.NilObjectID || plan.Title == "" {
		return primitive.NilObjectID, errors.New("meal plan requires coachId and title")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return primitive.NilObjectID, err
	}
	return plan.ID, nil
}

// GetByID retrieves a single meal plan by its ID.
func (r *mongoMealPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealPlan, error) {
	var plan domain.MealPlan
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &plan, nil
}

// GetByCoachID retrieves all plans of a coach, most recently updated first.
func (r *mongoMealPlanRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.MealPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})
	return findAll[domain.MealPlan](ctx, r.collection, bson.M{"coachId": coachID}, opts)
}

// LatestByCoachID returns the coach's most recently updated plan. Ties on
// updatedAt fall back to insertion order.
func (r *mongoMealPlanRepository) LatestByCoachID(ctx context.Context, coachID primitive.ObjectID) (*domain.MealPlan, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})

	var plan domain.MealPlan
	if err := r.collection.FindOne(ctx, bson.M{"coachId": coachID}, opts).Decode(&plan); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &plan, nil
}

// Update replaces title and content of a plan owned by plan.CoachID.
func (r *mongoMealPlanRepository) Update(ctx context.Context, plan *domain.MealPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("meal plan ID is required for update")
	}

	plan.UpdatedAt = time.Now().UTC()
	filter := bson.M{"_id": plan.ID, "coachId": plan.CoachID}
	update := bson.M{
		"$set": bson.M{
			"title":     plan.Title,
			"content":   plan.Content,
			"updatedAt": plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan owned by coachID.
func (r *mongoMealPlanRepository) Delete(ctx context.Context, id, coachID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "coachId": coachID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func mealPlanIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			// Latest plan lookup for the daily assignment resolver
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
}

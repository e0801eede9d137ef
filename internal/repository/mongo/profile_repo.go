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

const (
	coachProfileCollectionName  = "coach_profiles"
	clientProfileCollectionName = "client_profiles"
)

// mongoCoachProfileRepository implements repository.CoachProfileRepository
type mongoCoachProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachProfileRepository creates a new CoachProfile repository.
func NewMongoCoachProfileRepository(db *mongo.Database) repository.CoachProfileRepository {
	return &mongoCoachProfileRepository{
		collection: db.Collection(coachProfileCollectionName),
	}
}

func (r *mongoCoachProfileRepository) Create(ctx context.Context, profile *domain.CoachProfile) (primitive.ObjectID, error) {
	if profile.UserID == primitive.NilObjectID || profile.Code == "" {
		return primitive.NilObjectID, errors.New("coach profile requires userId and code")
	}
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return primitive.NilObjectID, mapWriteErr(err)
	}
	return profile.ID, nil
}

func (r *mongoCoachProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachProfile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoCoachProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.CoachProfile, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoCoachProfileRepository) GetByCode(ctx context.Context, code string) (*domain.CoachProfile, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *mongoCoachProfileRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *mongoCoachProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.CoachProfile, error) {
	var profile domain.CoachProfile
	if err := r.collection.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &profile, nil
}

// mongoClientProfileRepository implements repository.ClientProfileRepository
type mongoClientProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoClientProfileRepository creates a new ClientProfile repository.
func NewMongoClientProfileRepository(db *mongo.Database) repository.ClientProfileRepository {
	return &mongoClientProfileRepository{
		collection: db.Collection(clientProfileCollectionName),
	}
}

func (r *mongoClientProfileRepository) Create(ctx context.Context, profile *domain.ClientProfile) (primitive.ObjectID, error) {
	if profile.UserID == primitive.NilObjectID || profile.Code == "" {
		return primitive.NilObjectID, errors.New("client profile requires userId and code")
	}
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return primitive.NilObjectID, mapWriteErr(err)
	}
	return profile.ID, nil
}

func (r *mongoClientProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoClientProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.ClientProfile, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *mongoClientProfileRepository) GetByCode(ctx context.Context, code string) (*domain.ClientProfile, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *mongoClientProfileRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"code": code}, options.Count().SetLimit(1))
	return n > 0, err
}

// SetCoachIfUnset sets coachId only while it is still null, so two racing
// link requests cannot overwrite each other.
func (r *mongoClientProfileRepository) SetCoachIfUnset(ctx context.Context, clientID, coachID primitive.ObjectID) error {
	filter := bson.M{"_id": clientID, "coachId": nil} // matches null and missing
	update := bson.M{"$set": bson.M{"coachId": coachID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either the profile is gone or it already has a coach
		n, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": clientID})
		if countErr != nil {
			return countErr
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrNotModified
	}
	return nil
}

func (r *mongoClientProfileRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.ClientProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[domain.ClientProfile](ctx, r.collection, bson.M{"coachId": coachID}, opts)
}

func (r *mongoClientProfileRepository) CountByCoachID(ctx context.Context, coachID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"coachId": coachID})
}

func (r *mongoClientProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.ClientProfile, error) {
	var profile domain.ClientProfile
	if err := r.collection.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, mapFindOneErr(err)
	}
	return &profile, nil
}

func coachProfileIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func clientProfileIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "coachId", Value: 1}}, Options: options.Index()}, // roster lookups
	}
}

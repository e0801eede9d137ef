package mongo

import (
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary node to verify the connection.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the app.
// Unique indexes back the uniqueness invariants (email, username, codes,
// one meal assignment per client and day), so failures are reported.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{userCollectionName, userIndexes()},
		{coachProfileCollectionName, coachProfileIndexes()},
		{clientProfileCollectionName, clientProfileIndexes()},
		{workoutCollectionName, workoutIndexes()},
		{workoutAssignmentCollectionName, workoutAssignmentIndexes()},
		{mealPlanCollectionName, mealPlanIndexes()},
		{mealAssignmentCollectionName, mealAssignmentIndexes()},
		{progressLogCollectionName, progressLogIndexes()},
		{messageCollectionName, messageIndexes()},
	}

	var errs []error
	for _, step := range steps {
		if _, err := db.Collection(step.collection).Indexes().CreateMany(ctx, step.models); err != nil {
			log.Printf("WARN: Failed to create indexes for collection %s: %v", step.collection, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// mapFindOneErr converts the driver's "no documents" into repository.ErrNotFound.
func mapFindOneErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

// mapWriteErr converts unique-index violations into repository.ErrDuplicateKey.
func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}

// findAll runs a Find and decodes every document into a slice.
func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

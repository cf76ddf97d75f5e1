package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names inside the service database.
const (
	UsersCollection        = "users"
	PropertiesCollection   = "properties"
	ApplicationsCollection = "applications"
)

// Connect dials the cluster and pings the primary before returning.
// The caller owns the client and must call Disconnect.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	log.Println("connected to MongoDB")
	return client, nil
}

// Disconnect releases the client, waiting at most timeout for in-flight operations.
func Disconnect(client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on.
// The unique email index is what makes signup atomic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(UsersCollection)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	apps := db.Collection(ApplicationsCollection)
	if _, err := apps.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "renterEmail", Value: 1}}},
		{Keys: bson.D{{Key: "renterEmail", Value: 1}}},
		{Keys: bson.D{{Key: "sellerEmail", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("applications indexes: %w", err)
	}

	props := db.Collection(PropertiesCollection)
	if _, err := props.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sellerEmail", Value: 1}},
	}); err != nil {
		return fmt.Errorf("properties index: %w", err)
	}
	return nil
}

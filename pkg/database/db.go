// Package database owns the MongoDB connection shared by the repositories.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawvilla/pawvilla/config"
)

var (
	Client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection, verifies it with a ping, and
// bootstraps the indexes the application relies on.
// Returns an error instead of calling log.Fatal so the caller can shut
// down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	db = client.Database(config.MongoDB())

	if err := ensureIndexes(ctx); err != nil {
		return fmt.Errorf("database: indexes: %w", err)
	}

	return nil
}

// DB returns the application database handle.
func DB() *mongo.Database { return db }

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// Disconnect closes the client connection.
func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = Client.Disconnect(ctx)
	Client = nil
	db = nil
}

// ensureIndexes creates the indexes queries depend on. Emails are stored
// lowercased, so a plain unique index gives case-insensitive uniqueness.
func ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"pets": {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "type", Value: 1}}},
		},
		"products": {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"appointments": {
			{Keys: bson.D{{Key: "petOwner", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}
	return nil
}

// Package database provides MongoDB setup, models, and the data access
// layer (Store) for the channel posting bot.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// NewDB connects to MongoDB and verifies the connection with a ping.
func NewDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		if dcErr := client.Disconnect(context.Background()); dcErr != nil {
			slog.Error("Error disconnecting after failed ping", "error", dcErr)
		}
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	slog.Info("Database connected successfully")
	return client, nil
}

// CloseDB disconnects the MongoDB client.
func CloseDB(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		slog.Error("Error closing database connection", "error", err)
	} else {
		slog.Info("Database connection closed successfully.")
	}
}

// EnsureIndexes creates the collection indexes the store relies on. It is
// safe to run on every startup; existing indexes are left untouched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		collManagers: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		collAnnouncements: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		collServerConfig: {
			{Keys: bson.D{{Key: "server_id", Value: 1}}, Options: unique},
		},
		collPosts: {
			{Keys: bson.D{{Key: "server_id", Value: 1}, {Key: "posted_at", Value: -1}}},
		},
		collPendingPosts: {
			{Keys: bson.D{{Key: "server_id", Value: 1}, {Key: "scheduled_time", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
	}

	slog.Info("Database indexes ensured")
	return nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"comanda/internal/config"
	"comanda/internal/logger"
)

// DB wraps the MongoDB client and the application database handle.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// New connects to MongoDB, retrying a few times before giving up so the
// backend survives the database starting slightly later than it does.
func New(ctx context.Context, cfg *config.App, log *logger.Logger) (*DB, error) {
	var (
		client *mongo.Client
		err    error
	)

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, readpref.Primary())
			cancel()
			if err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			log.Error("db_connection_failed",
				"startup",
				fmt.Sprintf("Failed to connect to MongoDB, retrying in %v", waitTime),
				err, nil)
			time.Sleep(waitTime)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB after %d attempts: %w", maxRetries, err)
	}

	return &DB{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		logger: log,
	}, nil
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Ping tests the connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle on a named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the unique indexes the data model relies on.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create accounts email index: %w", err)
	}

	_, err = d.Collection("tables").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create tables number index: %w", err)
	}

	return nil
}

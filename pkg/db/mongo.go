package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds what is needed to reach the hackathon collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoClient wraps the MongoDB client and the hackathon collection.
type MongoClient struct {
	cfg         MongoConfig
	mongoClient *mongo.Client
	collection  *mongo.Collection
}

// NewMongoClient constructs a client. Nothing is dialled until Connect.
func NewMongoClient(cfg MongoConfig) *MongoClient {
	return &MongoClient{cfg: cfg}
}

// Connect establishes connection to MongoDB and verifies it with a ping.
func (c *MongoClient) Connect(ctx context.Context) error {
	if c.cfg.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(c.cfg.URI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return fmt.Errorf("ping mongo: %w", err)
	}
	c.mongoClient = mongoClient
	c.collection = mongoClient.Database(c.cfg.Database).Collection(c.cfg.Collection)
	return nil
}

// Close closes the MongoDB connection
func (c *MongoClient) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// Collection returns the hackathon collection, or nil before Connect.
func (c *MongoClient) Collection() *mongo.Collection {
	return c.collection
}

package persistence

import (
	"context"
	"fmt"

	"github.com/minimart/backend/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionCarts    = "carts"
)

// Database holds the document store connection and provides access to
// the application's collections. The client's connection pool is safe
// for concurrent use; every store accesses collections only through the
// repositories built on this handle.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewDatabase creates a new document store connection with the given configuration
func NewDatabase(ctx context.Context, cfg *config.MongoConfig) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	return &Database{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Close disconnects the underlying client
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Ping checks if the document store connection is alive
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle to a named collection
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the indexes the repositories rely on
func (d *Database) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{
			collection: CollectionProducts,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "category", Value: 1}},
			},
		},
		{
			collection: CollectionCarts,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		{
			collection: CollectionUsers,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for _, idx := range indexes {
		if _, err := d.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}

	return nil
}

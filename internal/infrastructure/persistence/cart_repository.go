package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/minimart/backend/internal/domain/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cartItemDocument is the persisted minimal form of a cart entry.
// Display fields never appear here; they are derived at read time.
type cartItemDocument struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

// cartDocument is the persisted cart record
type cartDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"user_id"`
	Items  []cartItemDocument `bson:"items"`
}

// MongoCartRepository implements cart.CartRepository on the carts collection
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new cart repository
func NewMongoCartRepository(db *Database) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection(CollectionCarts),
	}
}

// Find returns the stored cart for the user, or nil when the user has none
func (r *MongoCartRepository) Find(ctx context.Context, userID string) (*cart.StoredCart, error) {
	var doc cartDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart for user %s: %w", userID, err)
	}

	stored := &cart.StoredCart{
		UserID: doc.UserID,
		Items:  make([]cart.StoredItem, 0, len(doc.Items)),
	}
	for _, item := range doc.Items {
		stored.Items = append(stored.Items, cart.StoredItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return stored, nil
}

// UpsertItems replaces the full item list of the user's cart, inserting
// the cart document if the user had none
func (r *MongoCartRepository) UpsertItems(ctx context.Context, userID string, items []cart.StoredItem) error {
	docs := make([]cartItemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, cartItemDocument{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": docs}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart for user %s: %w", userID, err)
	}

	return nil
}

// ClearItems empties the item list while keeping the cart document
func (r *MongoCartRepository) ClearItems(ctx context.Context, userID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": []cartItemDocument{}}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}

	return nil
}

// Delete removes the cart document entirely
func (r *MongoCartRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete cart for user %s: %w", userID, err)
	}

	return nil
}

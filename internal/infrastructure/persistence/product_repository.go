package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/minimart/backend/internal/domain/catalog"
	"github.com/minimart/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// productDocument is the persisted shape of a product
type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Price    float64            `bson:"price"`
	Stock    int                `bson:"stock"`
}

func (d *productDocument) toDomain() *catalog.Product {
	return &catalog.Product{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Category: d.Category,
		Price:    d.Price,
		Stock:    d.Stock,
	}
}

// MongoProductRepository implements catalog.ProductRepository on the
// products collection
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new product repository
func NewMongoProductRepository(db *Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(CollectionProducts),
	}
}

// FindByID finds a product by its hex id
func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, shared.ErrInvalidID
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}

	return doc.toDomain(), nil
}

// FindAll returns every product
func (r *MongoProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

// FindByCategory finds all products with an exact category match
func (r *MongoProductRepository) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category %q: %w", category, err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *MongoProductRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]catalog.Product, error) {
	defer cursor.Close(ctx)

	products := make([]catalog.Product, 0)
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product document: %w", err)
		}
		products = append(products, *doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("product cursor failed: %w", err)
	}

	return products, nil
}

// LookupForRestock resolves an existing product first by id, then by name
func (r *MongoProductRepository) LookupForRestock(ctx context.Context, id, name string) (catalog.RestockLookup, error) {
	if id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return catalog.RestockLookup{}, shared.ErrInvalidID
		}

		var doc productDocument
		err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
		if err == nil {
			return catalog.RestockLookup{Match: catalog.RestockByID, Product: doc.toDomain()}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.RestockLookup{}, fmt.Errorf("restock lookup by id failed: %w", err)
		}
	}

	var doc productDocument
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == nil {
		return catalog.RestockLookup{Match: catalog.RestockByName, Product: doc.toDomain()}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return catalog.RestockLookup{}, fmt.Errorf("restock lookup by name failed: %w", err)
	}

	return catalog.RestockLookup{Match: catalog.RestockNone}, nil
}

// Insert stores a new product and returns it with its assigned identity
func (r *MongoProductRepository) Insert(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	doc := productDocument{
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Stock:    product.Stock,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, shared.ErrStore
	}
	doc.ID = oid

	return doc.toDomain(), nil
}

// AdjustStock applies stock += delta through a read-then-conditional-write
// sequence. The precondition check and the guarded $inc are separate steps,
// so concurrent negative adjustments on the same product can both pass the
// check before either write lands.
func (r *MongoProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return shared.ErrInvalidID
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("failed to read product %s for stock adjustment: %w", id, err)
	}

	if delta < 0 && doc.Stock+delta < 0 {
		return shared.ErrInsufficientStock
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"stock": delta}},
	)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %s: %w", id, err)
	}
	if result.ModifiedCount == 0 {
		// The precondition passed but the write landed on nothing: the
		// document vanished between read and write, or the write was lost
		return shared.ErrUpdateFailed
	}

	return nil
}

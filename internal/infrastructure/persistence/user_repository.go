package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/minimart/backend/internal/domain/identity"
	"github.com/minimart/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userDocument is the persisted shape of a user
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"hashed_password"`
}

func (d *userDocument) toDomain() *identity.User {
	return &identity.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
}

// MongoUserRepository implements identity.UserRepository on the users collection
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new user repository
func NewMongoUserRepository(db *Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(CollectionUsers),
	}
}

// Insert stores a new user and returns it with its assigned identity
func (r *MongoUserRepository) Insert(ctx context.Context, user *identity.User) (*identity.User, error) {
	doc := userDocument{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, shared.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, shared.ErrStore
	}
	doc.ID = oid

	return doc.toDomain(), nil
}

// FindByEmail returns the user for the email, or nil when absent
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return doc.toDomain(), nil
}

// FindByID returns the user for the hex id, or nil when absent
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, shared.ErrInvalidID
	}

	var doc userDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}

	return doc.toDomain(), nil
}

package identity

import "context"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Insert stores a new user and returns it with its assigned identity.
	// The caller is responsible for ensuring the password is already hashed.
	Insert(ctx context.Context, user *User) (*User, error)

	// FindByEmail returns the user for the email, or nil when absent
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the user for the id, or nil when absent.
	// Fails with INVALID_ID for malformed identifiers.
	FindByID(ctx context.Context, id string) (*User, error)
}

package cart

import "context"

// CartRepository defines the interface for cart persistence. Only the
// minimal record form crosses this boundary.
type CartRepository interface {
	// Find returns the stored cart for the user, or nil when the user has
	// no persisted cart.
	Find(ctx context.Context, userID string) (*StoredCart, error)

	// UpsertItems replaces the full item list of the user's cart, creating
	// the cart document if the user had none.
	UpsertItems(ctx context.Context, userID string, items []StoredItem) error

	// ClearItems empties the item list while keeping the cart document
	ClearItems(ctx context.Context, userID string) error

	// Delete removes the cart document entirely
	Delete(ctx context.Context, userID string) error
}

package catalog

import "context"

// RestockMatch tags how an existing product was resolved during catalog-add
type RestockMatch int

const (
	// RestockNone means no existing product matched; the caller should insert
	RestockNone RestockMatch = iota
	// RestockByID means the product was resolved by its identifier
	RestockByID
	// RestockByName means the product was resolved by its name
	RestockByName
)

// RestockLookup is the result of the two-step id-then-name lookup that
// drives the create-or-restock branch
type RestockLookup struct {
	Match   RestockMatch
	Product *Product
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID. Returns INVALID_ID for malformed
	// identifiers and NOT_FOUND when no document matches.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll returns every product
	FindAll(ctx context.Context) ([]Product, error)

	// FindByCategory finds all products with an exact category match.
	// An empty result is not an error at this layer.
	FindByCategory(ctx context.Context, category string) ([]Product, error)

	// LookupForRestock resolves an existing product first by id (when given
	// and well-formed), then by name. A malformed non-empty id fails with
	// INVALID_ID rather than falling through to the name lookup.
	LookupForRestock(ctx context.Context, id, name string) (RestockLookup, error)

	// Insert stores a new product and returns it with its assigned identity
	Insert(ctx context.Context, product *Product) (*Product, error)

	// AdjustStock applies stock += delta through a read-then-conditional-write
	// sequence. Fails with NOT_FOUND when the product is absent,
	// INSUFFICIENT_STOCK when a negative delta would drive stock below zero,
	// and UPDATE_FAILED when the guarded write reports no modification.
	AdjustStock(ctx context.Context, id string, delta int) error
}

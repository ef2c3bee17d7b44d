package cart

import "github.com/minimart/backend/internal/domain/catalog"

// StoredItem is the persisted minimal form of a cart entry: only the
// product reference and quantity are ever written to the store.
type StoredItem struct {
	ProductID string
	Quantity  int
}

// StoredCart is the persisted cart record, owned 1:1 by a user
type StoredCart struct {
	UserID string
	Items  []StoredItem
}

// Item is the enriched read-time view of a stored entry. Display fields
// carry the product's current state and are never persisted.
type Item struct {
	ProductID string
	Quantity  int
	Name      string
	Price     float64
	Category  string
}

// Cart is the enriched read-time view of a stored cart
type Cart struct {
	UserID string
	Items  []Item
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Enrich derives the read-time view of a stored cart from the current
// product state. Entries whose product id is missing from the lookup are
// dropped from the view; the stored record is not modified. Stored order
// is preserved for the surviving entries.
func Enrich(stored *StoredCart, products map[string]catalog.Product) *Cart {
	enriched := &Cart{
		UserID: stored.UserID,
		Items:  make([]Item, 0, len(stored.Items)),
	}

	for _, item := range stored.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		enriched.Items = append(enriched.Items, Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
		})
	}

	return enriched
}

// Merge folds a new entry into the item list: an existing entry with the
// same product id has its quantity summed, otherwise the entry is appended.
// The invariant of at most one entry per product id is preserved.
func Merge(items []StoredItem, item StoredItem) []StoredItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

// Minimal projects the enriched view back onto the persisted form
func (c *Cart) Minimal() []StoredItem {
	items := make([]StoredItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, StoredItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return items
}

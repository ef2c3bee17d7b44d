package catalog

import (
	"strings"

	"github.com/minimart/backend/internal/domain/shared"
)

// Product represents a catalog product. The ID is the hex form of the
// persisted document identity; it is empty until the product is stored.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Stock    int
}

// NewProduct creates a new product with required fields
func NewProduct(name, category string, price float64, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if price < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product stock cannot be negative")
	}

	return &Product{
		Name:     name,
		Category: strings.TrimSpace(category),
		Price:    price,
		Stock:    stock,
	}, nil
}

// HasStock reports whether the product can cover the requested quantity
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

package catalog

import "github.com/minimart/backend/internal/domain/catalog"

// CreateProductRequest contains input for catalog-add. An ID may be
// given to restock a known product; re-submission of a known product is
// a restock signal, not an error.
type CreateProductRequest struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Stock    int
}

// ProductResponse is the portable representation of a product
type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *toProductResponse(&products[i]))
	}
	return responses
}

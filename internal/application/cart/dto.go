package cart

import "github.com/minimart/backend/internal/domain/cart"

// AddItemInput carries a single cart entry to merge into the user's cart
type AddItemInput struct {
	ProductID string
	Quantity  int
}

// CartItemResponse is the enriched wire form of a cart entry
type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
}

// CartResponse is the enriched wire form of a cart
type CartResponse struct {
	UserID string             `json:"user_id"`
	Items  []CartItemResponse `json:"items"`
}

// IsEmpty reports whether the response carries no items
func (r *CartResponse) IsEmpty() bool {
	return len(r.Items) == 0
}

func toCartResponse(c *cart.Cart) *CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Name:      item.Name,
			Price:     item.Price,
			Category:  item.Category,
		})
	}
	return &CartResponse{
		UserID: c.UserID,
		Items:  items,
	}
}

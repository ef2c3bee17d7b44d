package handler

import (
	"github.com/gin-gonic/gin"
	appcart "github.com/minimart/backend/internal/application/cart"
	"github.com/minimart/backend/internal/application/catalog"
	"github.com/minimart/backend/internal/domain/shared"
	"github.com/minimart/backend/internal/interfaces/http/dto"
)

// AddToCartRequest is the add-to-cart request body
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CartHandler handles cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService    *appcart.CartService
	productService *catalog.ProductService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *appcart.CartService, productService *catalog.ProductService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		productService: productService,
	}
}

// RegisterRoutes registers the cart routes on the API group. Every route
// requires an authenticated caller.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", h.Get)
		cartGroup.POST("", h.Add)
		cartGroup.POST("/checkout", h.Checkout)
		cartGroup.DELETE("", h.Clear)
	}
}

// Get returns the caller's enriched cart. An empty or missing cart is a
// 404 on the wire even though the engine treats it as an empty cart.
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.IsEmpty() {
		h.NotFound(c, "Cart is empty")
		return
	}

	h.Success(c, result)
}

// Add merges an item into the caller's cart. The product must exist and
// have enough stock at add time; stock itself is only decremented at
// checkout.
func (h *CartHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if product.Stock < req.Quantity {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInsufficientStock),
			dto.ErrCodeInsufficientStock, shared.ErrInsufficientStock.Message)
		return
	}

	if err := h.cartService.AddToCart(c.Request.Context(), userID, appcart.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Item added to cart")
}

// Checkout walks the cart against live stock and empties it on success
func (h *CartHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Checkout(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Checkout successful")
}

// Clear deletes the caller's cart document entirely
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/minimart/backend/internal/application/catalog"
)

// CreateProductRequest is the create-or-restock request body. An id or a
// name matching an existing product restocks it instead of inserting.
type CreateProductRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"min=0"`
}

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// RegisterRoutes registers the catalog routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/category/:category", h.ListByCategory)
		products.GET("/:id", h.Get)
		products.POST("", h.Create)
	}
}

// List returns every product
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListByCategory returns the products in a category; an empty category
// surfaces as a 404 rather than an empty list
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")

	products, err := h.productService.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if len(products) == 0 {
		h.NotFound(c, "No products found in this category")
		return
	}
	h.Success(c, products)
}

// Get returns a single product by id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create adds a product to the catalog, restocking an existing one on an
// id or name match
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateOrRestock(c.Request.Context(), catalog.CreateProductRequest{
		ID:       req.ID,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

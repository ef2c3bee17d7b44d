package catalog

import (
	"context"

	"github.com/minimart/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// List returns every product
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListByCategory returns all products with an exact category match.
// An empty result is not an error at this layer; the API surface decides
// how to present it.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list products by category",
			zap.String("category", category),
			zap.Error(err))
		return nil, err
	}
	return toProductResponses(products), nil
}

// Get returns a single product by id
func (s *ProductService) Get(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// CreateOrRestock adds a product to the catalog. A product already known
// by id or by name has its stock incremented by one instead of being
// duplicated; otherwise a new record is inserted with the given stock.
func (s *ProductService) CreateOrRestock(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	lookup, err := s.productRepo.LookupForRestock(ctx, req.ID, req.Name)
	if err != nil {
		return nil, err
	}

	switch lookup.Match {
	case catalog.RestockByID, catalog.RestockByName:
		existing := lookup.Product
		if err := s.productRepo.AdjustStock(ctx, existing.ID, 1); err != nil {
			return nil, err
		}
		existing.Stock++

		s.logger.Info("Restocked existing product",
			zap.String("product_id", existing.ID),
			zap.String("name", existing.Name),
			zap.Int("stock", existing.Stock))

		return toProductResponse(existing), nil

	default:
		product, err := catalog.NewProduct(req.Name, req.Category, req.Price, req.Stock)
		if err != nil {
			return nil, err
		}

		created, err := s.productRepo.Insert(ctx, product)
		if err != nil {
			return nil, err
		}

		s.logger.Info("Created product",
			zap.String("product_id", created.ID),
			zap.String("name", created.Name))

		return toProductResponse(created), nil
	}
}

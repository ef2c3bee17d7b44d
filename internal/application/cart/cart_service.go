package cart

import (
	"context"
	"errors"

	"github.com/minimart/backend/internal/domain/cart"
	"github.com/minimart/backend/internal/domain/catalog"
	"github.com/minimart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CartService coordinates the cart and product collections. It owns the
// enrichment of stored carts with live product state and the sequential
// checkout walk over the product store.
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart loads the user's persisted cart and enriches each entry with the
// product's current name, price and category. Entries whose product can no
// longer be resolved are dropped from the view without touching the stored
// record. A user with no persisted cart gets an empty cart, not an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	enriched, err := s.loadEnriched(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(enriched), nil
}

// AddToCart merges an entry into the user's stored cart: an existing entry
// for the same product has its quantity summed, otherwise the entry is
// appended. Product existence and stock are the caller's concern; this
// layer only persists the minimal record.
func (s *CartService) AddToCart(ctx context.Context, userID string, input AddItemInput) error {
	stored, err := s.cartRepo.Find(ctx, userID)
	if err != nil {
		return err
	}
	if stored == nil {
		stored = &cart.StoredCart{UserID: userID}
	}

	stored.Items = cart.Merge(stored.Items, cart.StoredItem{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})

	if err := s.cartRepo.UpsertItems(ctx, userID, stored.Items); err != nil {
		return err
	}

	s.logger.Info("Added item to cart",
		zap.String("user_id", userID),
		zap.String("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity))

	return nil
}

// Checkout walks the enriched cart in stored order, decrementing each
// product's stock by the requested quantity, then empties the cart's item
// list. The walk is not transactional: a failure partway through leaves the
// earlier decrements committed and the cart unmodified, and the caller may
// retry after restocking.
func (s *CartService) Checkout(ctx context.Context, userID string) error {
	enriched, err := s.loadEnriched(ctx, userID)
	if err != nil {
		return err
	}
	if enriched.IsEmpty() {
		return shared.ErrEmptyCart
	}

	for _, item := range enriched.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.logger.Warn("Checkout stopped mid-walk",
				zap.String("user_id", userID),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
			return err
		}
	}

	if err := s.cartRepo.ClearItems(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Checkout completed",
		zap.String("user_id", userID),
		zap.Int("items", len(enriched.Items)))

	return nil
}

// ClearCart deletes the user's cart document entirely
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("Cleared cart", zap.String("user_id", userID))
	return nil
}

func (s *CartService) loadEnriched(ctx context.Context, userID string) (*cart.Cart, error) {
	stored, err := s.cartRepo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = &cart.StoredCart{UserID: userID}
	}

	products := make(map[string]catalog.Product, len(stored.Items))
	for _, item := range stored.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrInvalidID) {
				continue
			}
			return nil, err
		}
		products[item.ProductID] = *product
	}

	return cart.Enrich(stored, products), nil
}

package cart

import (
	"context"
	"testing"

	"github.com/minimart/backend/internal/domain/cart"
	"github.com/minimart/backend/internal/domain/catalog"
	"github.com/minimart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCartRepository is a mock implementation of cart.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Find(ctx context.Context, userID string) (*cart.StoredCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.StoredCart), args.Error(1)
}

func (m *MockCartRepository) UpsertItems(ctx context.Context, userID string, items []cart.StoredItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

func (m *MockCartRepository) ClearItems(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) LookupForRestock(ctx context.Context, id, name string) (catalog.RestockLookup, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(catalog.RestockLookup), args.Error(1)
}

func (m *MockProductRepository) Insert(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func newCartService(cartRepo *MockCartRepository, productRepo *MockProductRepository) *CartService {
	return NewCartService(cartRepo, productRepo, zap.NewNop())
}

func TestGetCart(t *testing.T) {
	t.Run("enriches stored items with live product state", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(&cart.StoredCart{
			UserID: "u1",
			Items: []cart.StoredItem{
				{ProductID: "p1", Quantity: 3},
				{ProductID: "p2", Quantity: 1},
			},
		}, nil)
		productRepo.On("FindByID", mock.Anything, "p1").
			Return(&catalog.Product{ID: "p1", Name: "Beans", Category: "food", Price: 2.5, Stock: 5}, nil)
		productRepo.On("FindByID", mock.Anything, "p2").
			Return(&catalog.Product{ID: "p2", Name: "Soap", Category: "home", Price: 1.2, Stock: 9}, nil)

		result, err := newCartService(cartRepo, productRepo).GetCart(context.Background(), "u1")

		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "Beans", result.Items[0].Name)
		assert.Equal(t, 2.5, result.Items[0].Price)
		assert.Equal(t, 3, result.Items[0].Quantity)
		assert.Equal(t, "home", result.Items[1].Category)
	})

	t.Run("drops items whose product is gone", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(&cart.StoredCart{
			UserID: "u1",
			Items: []cart.StoredItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "gone", Quantity: 4},
			},
		}, nil)
		productRepo.On("FindByID", mock.Anything, "p1").
			Return(&catalog.Product{ID: "p1", Name: "Beans", Category: "food", Price: 2.5, Stock: 5}, nil)
		productRepo.On("FindByID", mock.Anything, "gone").Return(nil, shared.ErrNotFound)

		result, err := newCartService(cartRepo, productRepo).GetCart(context.Background(), "u1")

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "p1", result.Items[0].ProductID)
		// the stored record is never rewritten during a read
		cartRepo.AssertNotCalled(t, "UpsertItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns an empty cart when none is persisted", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		cartRepo.On("Find", mock.Anything, "u1").Return(nil, nil)

		result, err := newCartService(cartRepo, productRepo).GetCart(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", result.UserID)
		assert.True(t, result.IsEmpty())
	})

	t.Run("propagates store failures from the product lookup", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(&cart.StoredCart{
			UserID: "u1",
			Items:  []cart.StoredItem{{ProductID: "p1", Quantity: 1}},
		}, nil)
		productRepo.On("FindByID", mock.Anything, "p1").Return(nil, shared.ErrStore)

		_, err := newCartService(cartRepo, productRepo).GetCart(context.Background(), "u1")

		assert.ErrorIs(t, err, shared.ErrStore)
	})
}

func TestAddToCart(t *testing.T) {
	t.Run("sums quantities for a repeated product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(&cart.StoredCart{
			UserID: "u1",
			Items:  []cart.StoredItem{{ProductID: "p1", Quantity: 2}},
		}, nil)
		cartRepo.On("UpsertItems", mock.Anything, "u1",
			[]cart.StoredItem{{ProductID: "p1", Quantity: 5}}).Return(nil)

		err := newCartService(cartRepo, productRepo).AddToCart(context.Background(), "u1",
			AddItemInput{ProductID: "p1", Quantity: 3})

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("creates the cart on first add", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(nil, nil)
		cartRepo.On("UpsertItems", mock.Anything, "u1",
			[]cart.StoredItem{{ProductID: "p1", Quantity: 3}}).Return(nil)

		err := newCartService(cartRepo, productRepo).AddToCart(context.Background(), "u1",
			AddItemInput{ProductID: "p1", Quantity: 3})

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("appends a distinct product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(&cart.StoredCart{
			UserID: "u1",
			Items:  []cart.StoredItem{{ProductID: "p1", Quantity: 2}},
		}, nil)
		cartRepo.On("UpsertItems", mock.Anything, "u1", []cart.StoredItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		}).Return(nil)

		err := newCartService(cartRepo, productRepo).AddToCart(context.Background(), "u1",
			AddItemInput{ProductID: "p2", Quantity: 1})

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})
}

func TestCheckout(t *testing.T) {
	storedCart := func() *cart.StoredCart {
		return &cart.StoredCart{
			UserID: "u1",
			Items: []cart.StoredItem{
				{ProductID: "p1", Quantity: 3},
				{ProductID: "p2", Quantity: 1},
			},
		}
	}
	stockProducts := func(productRepo *MockProductRepository) {
		productRepo.On("FindByID", mock.Anything, "p1").
			Return(&catalog.Product{ID: "p1", Name: "Beans", Category: "food", Price: 2.5, Stock: 5}, nil)
		productRepo.On("FindByID", mock.Anything, "p2").
			Return(&catalog.Product{ID: "p2", Name: "Soap", Category: "home", Price: 1.2, Stock: 9}, nil)
	}

	t.Run("decrements each item and empties the cart", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(storedCart(), nil)
		stockProducts(productRepo)
		productRepo.On("AdjustStock", mock.Anything, "p1", -3).Return(nil)
		productRepo.On("AdjustStock", mock.Anything, "p2", -1).Return(nil)
		cartRepo.On("ClearItems", mock.Anything, "u1").Return(nil)

		err := newCartService(cartRepo, productRepo).Checkout(context.Background(), "u1")

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
		// the document is emptied, never deleted
		cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty cart fails without touching any store", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		cartRepo.On("Find", mock.Anything, "u1").Return(nil, nil)

		err := newCartService(cartRepo, productRepo).Checkout(context.Background(), "u1")

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		productRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
		cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})

	t.Run("failure mid-walk leaves earlier decrements and the cart in place", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(storedCart(), nil)
		stockProducts(productRepo)
		productRepo.On("AdjustStock", mock.Anything, "p1", -3).Return(nil)
		productRepo.On("AdjustStock", mock.Anything, "p2", -1).Return(shared.ErrInsufficientStock)

		err := newCartService(cartRepo, productRepo).Checkout(context.Background(), "u1")

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		// the first decrement already happened; there is no rollback
		productRepo.AssertCalled(t, "AdjustStock", mock.Anything, "p1", -3)
		cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})

	t.Run("vanished product fails the walk", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)

		cartRepo.On("Find", mock.Anything, "u1").Return(storedCart(), nil)
		stockProducts(productRepo)
		productRepo.On("AdjustStock", mock.Anything, "p1", -3).Return(shared.ErrNotFound)

		err := newCartService(cartRepo, productRepo).Checkout(context.Background(), "u1")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})
}

func TestClearCart(t *testing.T) {
	t.Run("removes the cart document", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		cartRepo.On("Delete", mock.Anything, "u1").Return(nil)

		err := newCartService(cartRepo, new(MockProductRepository)).ClearCart(context.Background(), "u1")

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})
}

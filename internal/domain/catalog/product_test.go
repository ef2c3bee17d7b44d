package catalog

import (
	"testing"

	"github.com/minimart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with trimmed fields", func(t *testing.T) {
		product, err := NewProduct("  Keyboard ", " peripherals ", 49.9, 5)

		require.NoError(t, err)
		assert.Equal(t, "Keyboard", product.Name)
		assert.Equal(t, "peripherals", product.Category)
		assert.Equal(t, 49.9, product.Price)
		assert.Equal(t, 5, product.Stock)
		assert.Empty(t, product.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("   ", "peripherals", 10, 1)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Keyboard", "peripherals", -1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct("Keyboard", "peripherals", 10, -1)
		assert.Error(t, err)
	})
}

func TestProductHasStock(t *testing.T) {
	product := Product{Stock: 3}

	assert.True(t, product.HasStock(3))
	assert.True(t, product.HasStock(1))
	assert.False(t, product.HasStock(4))
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewMemoryTokenBlacklist()

	t.Run("unknown jti is not blacklisted", func(t *testing.T) {
		blacklisted, err := bl.IsBlacklisted(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("added jti is blacklisted until expiry", func(t *testing.T) {
		require.NoError(t, bl.Add(ctx, "jti-1", time.Minute))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("expired entries are pruned", func(t *testing.T) {
		require.NoError(t, bl.Add(ctx, "jti-2", time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		require.NoError(t, bl.Add(ctx, "jti-3", 0))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}

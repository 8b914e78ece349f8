package cachex

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemory(16)

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, cache.Delete(ctx, "k"))
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemory(16)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), -time.Second))
	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemorySweepMakesRoom(t *testing.T) {
	ctx := context.Background()
	cache := NewMemory(2)

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, cache.Set(ctx, "c", []byte("3"), time.Minute))

	// The newest entry always survives the sweep.
	got, err := cache.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCartRoundTrip(t *testing.T) {
	store := NewRedisCartStore(testRedis(t), time.Hour)
	ctx := context.Background()

	_, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "no cart saved yet")

	items := []domain.CartItem{
		{
			Product:  domain.Product{ID: "rye-bread", NameSv: "Rågbröd", Price: 58},
			Quantity: 2,
		},
		{
			Product: domain.Product{
				ID: "princess-cake", NameSv: "Prinsesstårta", Price: 320,
				Variants: []domain.Variant{{ID: "large", NameSv: "Stor", PriceDiff: 120}},
			},
			Quantity:    1,
			VariantID:   "large",
			VariantName: "Stor",
		},
	}
	require.NoError(t, store.Save(ctx, "s1", items))

	got, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, items, got)

	// other sessions untouched
	_, ok, err = store.Load(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartSaveOverwrites(t *testing.T) {
	store := NewRedisCartStore(testRedis(t), time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", []domain.CartItem{
		{Product: domain.Product{ID: "rye-bread"}, Quantity: 1},
	}))
	require.NoError(t, store.Save(ctx, "s1", nil))

	got, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestIdempotencyLockLifecycle(t *testing.T) {
	idem := NewRedisIdempotencyStore(testRedis(t), time.Minute)
	ctx := context.Background()

	ok, err := idem.TryLock(ctx, "order:submit", "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = idem.TryLock(ctx, "order:submit", "s1")
	require.NoError(t, err)
	assert.False(t, ok, "second lock attempt must fail")

	require.NoError(t, idem.Release(ctx, "order:submit", "s1"))
	ok, err = idem.TryLock(ctx, "order:submit", "s1")
	require.NoError(t, err)
	assert.True(t, ok, "released lock can be retaken")
}

func TestIdempotencyRecall(t *testing.T) {
	idem := NewRedisIdempotencyStore(testRedis(t), time.Minute)
	ctx := context.Background()

	_, ok, err := idem.Recall(ctx, "order:submit", "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, idem.Remember(ctx, "order:submit", "s1", "order-42"))
	id, ok, err := idem.Recall(ctx, "order:submit", "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "order-42", id)
}

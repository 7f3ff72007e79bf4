package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.CombinationStore = (*redis.Store)(nil)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunCombinationStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))

	batch := &domain.Batch{ID: "b1", Combinations: []domain.Combination{domain.NewCombination([]int{3, 1, 2})}}
	require.NoError(t, store.Save(context.Background(), "b1", batch))

	assert.True(t, mr.Exists("test:b1"))
	raw, err := mr.Get("test:b1")
	require.NoError(t, err)
	assert.Contains(t, raw, `"combinations":[[1,2,3]]`)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", &domain.Batch{ID: "short-lived"}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "short-lived")

	// Expire the key in miniredis; the index entry is pruned lazily by List
	// once wall-clock time passes its score.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Load(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBatchNotFound)
}

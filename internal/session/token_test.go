package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/common/database"
)

func TestTokenSlot(t *testing.T) {
	slot := NewTokenSlot()
	assert.Equal(t, "", slot.Token())

	slot.set("test-token")
	assert.Equal(t, "test-token", slot.Token())

	slot.set("")
	assert.Equal(t, "", slot.Token())
}

func TestFileTokenStore(t *testing.T) {
	ctx := context.Background()
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", token)

	require.NoError(t, store.Save(ctx, "test-token"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", token)

	// Clearing an already empty store is fine.
	require.NoError(t, store.Clear(ctx))
}

func TestFileTokenStoreTrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))

	require.NoError(t, store.Save(ctx, "test-token\n"))
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
}

func TestRedisTokenStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	store := NewRedisTokenStore(rdb)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", token)

	require.NoError(t, store.Save(ctx, "test-token"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

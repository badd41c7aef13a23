package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

// runStoreContract checks the behaviour every KVStore backend must share.
// prefix keeps keys of parallel runs against shared servers apart.
func runStoreContract(t *testing.T, store domain.KVStore, prefix string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		_, err := store.Get(ctx, prefix+"missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Set then Get", func(t *testing.T) {
		key := prefix + "ledgers"
		require.NoError(t, store.Set(ctx, key, []byte(`{"2024-01-01":{}}`)))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"2024-01-01":{}}`, string(got))
	})

	t.Run("Set replaces the previous value", func(t *testing.T) {
		key := prefix + "settings"
		require.NoError(t, store.Set(ctx, key, []byte("first")))
		require.NoError(t, store.Set(ctx, key, []byte("second")))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Keys are independent", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+"a", []byte("1")))
		require.NoError(t, store.Set(ctx, prefix+"b", []byte("2")))

		a, _ := store.Get(ctx, prefix+"a")
		b, _ := store.Get(ctx, prefix+"b")
		assert.Equal(t, "1", string(a))
		assert.Equal(t, "2", string(b))
	})

	t.Run("Concurrent writers on distinct keys", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("%sconcurrent_%d", prefix, i)
				assert.NoError(t, store.Set(ctx, key, []byte(key)))
			}(i)
		}
		wg.Wait()

		for i := 0; i < 10; i++ {
			key := fmt.Sprintf("%sconcurrent_%d", prefix, i)
			got, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, key, string(got))
		}
	})
}

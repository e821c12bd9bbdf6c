package mempool_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/taoledger/ledger-node/module/mempool"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/utils/unittest"
)

func TestClaims(t *testing.T) {
	claims := mempool.NewClaims(metrics.NewNoopCollector())

	key := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())
	tx1 := unittest.TxHashFixture()
	tx2 := unittest.TxHashFixture()

	t.Run("add and check", func(t *testing.T) {
		require.True(t, claims.Add(tx1, key))
		assert.True(t, claims.Has(key))
		assert.Equal(t, uint(1), claims.Size())
	})

	t.Run("claimed key is refused", func(t *testing.T) {
		assert.False(t, claims.Add(tx1, key))
		assert.Equal(t, uint(1), claims.Size())
	})

	t.Run("other transaction is refused", func(t *testing.T) {
		assert.False(t, claims.Add(tx2, key))
	})

	t.Run("one claim per transaction", func(t *testing.T) {
		other := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())
		assert.False(t, claims.Add(tx1, other))
		assert.False(t, claims.Has(other))
	})

	t.Run("remove releases the key", func(t *testing.T) {
		assert.True(t, claims.Rem(tx1))
		assert.False(t, claims.Rem(tx1))
		assert.False(t, claims.Has(key))
		assert.True(t, claims.Add(tx2, key))
	})
}

func TestClaimsConcurrentAdd(t *testing.T) {
	claims := mempool.NewClaims(metrics.NewNoopCollector())
	key := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())

	var won atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if claims.Add(unittest.TxHashFixture(), key) {
				won.Inc()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), won.Load())
}

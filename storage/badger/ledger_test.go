package badger

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoledger/ledger-node/module/mempool"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/storage/ledgertest"
	"github.com/taoledger/ledger-node/utils/unittest"
)

func TestLedger(t *testing.T) {
	ledgertest.Run(t, func(t *testing.T, f func(storage.Ledger)) {
		unittest.RunWithBadgerDB(t, func(db *badger.DB) {
			l, err := NewLedger(db, metrics.NewNoopCollector(), metrics.NewNoopCollector(), WithCacheSize(2))
			require.NoError(t, err)
			f(l)
		})
	})
}

func TestLedgerSpeculativeProofs(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		claims := mempool.NewClaims(metrics.NewNoopCollector())
		l, err := NewLedger(db, metrics.NewNoopCollector(), metrics.NewNoopCollector(), WithPendingProofs(claims))
		require.NoError(t, err)

		key := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())
		require.True(t, claims.Add(unittest.TxHashFixture(), key))

		spent, err := l.HasProof(key, true)
		require.NoError(t, err)
		assert.True(t, spent)

		// confirmed checks ignore pending claims
		spent, err = l.HasProof(key, false)
		require.NoError(t, err)
		assert.False(t, spent)
	})
}

func TestLedgerCacheServesCommittedState(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		l, err := NewLedger(db, metrics.NewNoopCollector(), metrics.NewNoopCollector())
		require.NoError(t, err)

		address := unittest.AddressFixture()
		first := unittest.AccountFixture(address, 0, 1, 1)
		require.NoError(t, l.Update(func(w storage.Writer) error {
			return w.WriteState(address, first)
		}))

		got, err := l.ReadState(address)
		require.NoError(t, err)
		require.Equal(t, first.Checksum(), got.Checksum())

		// mutating a returned state must not leak into the cache
		got.Data[0] ^= 0xff
		again, err := l.ReadState(address)
		require.NoError(t, err)
		require.Equal(t, first.Checksum(), again.Checksum())

		second := unittest.AccountFixture(address, 0, 2, 2)
		require.NoError(t, l.Update(func(w storage.Writer) error {
			return w.WriteState(address, second)
		}))
		got, err = l.ReadState(address)
		require.NoError(t, err)
		require.Equal(t, second.Checksum(), got.Checksum())
	})
}

func TestLedgerRejectsForeignDatabase(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		require.NoError(t, db.Update(func(txn *badger.Txn) error {
			// database type marker holding another type
			return txn.Set([]byte{1}, []byte{0xff})
		}))
		_, err := NewLedger(db, metrics.NewNoopCollector(), metrics.NewNoopCollector())
		require.Error(t, err)
	})
}

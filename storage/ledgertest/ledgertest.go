// Package ledgertest holds behaviour tests every storage.Ledger backend must
// pass.
package ledgertest

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/utils/unittest"
)

// Run exercises the backend returned by newLedger. Each subtest gets a fresh
// ledger.
func Run(t *testing.T, newLedger func(t *testing.T, f func(storage.Ledger))) {
	t.Run("state round trip", func(t *testing.T) {
		newLedger(t, func(l storage.Ledger) {
			address := unittest.AddressFixture()
			_, err := l.ReadState(address)
			require.ErrorIs(t, err, storage.ErrNotFound)

			state := unittest.AccountFixture(unittest.AddressFixture(), 0, 100, 1)
			err = l.Update(func(w storage.Writer) error {
				return w.WriteState(address, state)
			})
			require.NoError(t, err)

			got, err := l.ReadState(address)
			require.NoError(t, err)
			assert.Equal(t, state.Checksum(), got.Checksum())

			// updates replace the previous state
			next := unittest.AccountFixture(state.Owner, 0, 150, 2)
			err = l.Update(func(w storage.Writer) error {
				return w.WriteState(address, next)
			})
			require.NoError(t, err)
			got, err = l.ReadState(address)
			require.NoError(t, err)
			assert.Equal(t, next.Checksum(), got.Checksum())
		})
	})

	t.Run("transaction round trip", func(t *testing.T) {
		newLedger(t, func(l storage.Ledger) {
			tx := unittest.CoinbaseTransaction(unittest.AddressFixture(), 10, 50)
			_, err := l.ReadTransaction(tx.Hash())
			require.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, l.InsertTransaction(tx))
			require.NoError(t, l.InsertTransaction(tx))

			got, err := l.ReadTransaction(tx.Hash())
			require.NoError(t, err)
			assert.Equal(t, tx.Hash(), got.Hash())
			assert.Equal(t, tx.Genesis, got.Genesis)
			assert.Equal(t, tx.Operation, got.Operation)
		})
	})

	t.Run("proof is written once", func(t *testing.T) {
		newLedger(t, func(l storage.Ledger) {
			key := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())

			spent, err := l.HasProof(key, false)
			require.NoError(t, err)
			require.False(t, spent)

			require.NoError(t, l.Update(func(w storage.Writer) error {
				return w.WriteProof(key)
			}))

			spent, err = l.HasProof(key, false)
			require.NoError(t, err)
			require.True(t, spent)

			err = l.Update(func(w storage.Writer) error {
				return w.WriteProof(key)
			})
			require.ErrorIs(t, err, storage.ErrAlreadyExists)
		})
	})

	t.Run("failed update writes nothing", func(t *testing.T) {
		newLedger(t, func(l storage.Ledger) {
			key := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())
			address := unittest.AddressFixture()
			injected := errors.New("injected")

			called := false
			err := l.Update(func(w storage.Writer) error {
				w.OnSucceed(func() { called = true })
				require.NoError(t, w.WriteProof(key))
				require.NoError(t, w.WriteState(address, unittest.AccountFixture(address, 0, 1, 1)))
				return injected
			})
			require.ErrorIs(t, err, injected)
			require.False(t, called)

			spent, err := l.HasProof(key, false)
			require.NoError(t, err)
			assert.False(t, spent)
			_, err = l.ReadState(address)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	})

	t.Run("callbacks run after commit", func(t *testing.T) {
		newLedger(t, func(l storage.Ledger) {
			called := false
			err := l.Update(func(w storage.Writer) error {
				w.OnSucceed(func() { called = true })
				return w.WriteProof(storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture()))
			})
			require.NoError(t, err)
			require.True(t, called)
		})
	})

	t.Run("concurrent proof writes", func(t *testing.T) {
		newLedger(t, func(l storage.Ledger) {
			key := storage.NewProofKey(unittest.AddressFixture(), unittest.TxHashFixture())

			var won atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := l.Update(func(w storage.Writer) error {
						return w.WriteProof(key)
					})
					if err == nil {
						won.Inc()
						return
					}
					assert.ErrorIs(t, err, storage.ErrAlreadyExists)
				}()
			}
			wg.Wait()
			require.Equal(t, int32(1), won.Load())
		})
	})
}

package storage_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/utils/unittest"
)

func TestKeyLockerExclusive(t *testing.T) {
	locker := storage.NewKeyLocker()

	var inside atomic.Int32
	var maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locker.Lock("a", "b")
			defer release()
			n := inside.Inc()
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Dec()
		}()
	}
	unittest.RequireReturnsBefore(t, wg.Wait, 5*time.Second, "lockers did not finish")

	require.Equal(t, int32(1), maxInside.Load())
	require.Equal(t, 0, locker.Size())
}

func TestKeyLockerNoDeadlockOnReversedOrder(t *testing.T) {
	locker := storage.NewKeyLocker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			locker.Lock("x", "y")()
		}()
		go func() {
			defer wg.Done()
			locker.Lock("y", "x")()
		}()
	}
	unittest.RequireReturnsBefore(t, wg.Wait, 5*time.Second, "lock ordering deadlocked")
}

func TestKeyLockerDisjointKeys(t *testing.T) {
	locker := storage.NewKeyLocker()

	release := locker.Lock("a", "a")
	defer release()

	// a disjoint key must not block
	unittest.RequireReturnsBefore(t, func() {
		locker.Lock("b")()
	}, time.Second, "disjoint key blocked")

	release()
	// releasing twice is a no-op
	release()
	require.Equal(t, 0, locker.Size())
}

func TestProofKey(t *testing.T) {
	subject := unittest.AddressFixture()
	tx := unittest.TxHashFixture()
	key := storage.NewProofKey(subject, tx)

	b := key.Bytes()
	require.Len(t, b, 96)
	require.Equal(t, subject[:], b[:32])
	require.Equal(t, tx[:], b[32:])
	require.NotEqual(t, key.LockKey(), storage.RegisterLockKey(subject))
}

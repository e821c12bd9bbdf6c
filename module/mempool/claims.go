package mempool

import (
	"sync"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/storage"
)

// Claims holds the proof keys spent by admitted, not yet connected credit
// transactions. A proof key is claimed by at most one transaction.
type Claims struct {
	sync.RWMutex
	byKey   map[storage.ProofKey]ledger.TxHash
	byTx    map[ledger.TxHash]storage.ProofKey
	metrics module.MempoolMetrics
}

var _ storage.PendingProofs = (*Claims)(nil)

func NewClaims(collector module.MempoolMetrics) *Claims {
	return &Claims{
		byKey:   make(map[storage.ProofKey]ledger.TxHash),
		byTx:    make(map[ledger.TxHash]storage.ProofKey),
		metrics: collector,
	}
}

// Has checks whether a pending transaction claims the proof key.
func (c *Claims) Has(key storage.ProofKey) bool {
	c.RLock()
	defer c.RUnlock()
	_, ok := c.byKey[key]
	return ok
}

// Add records that tx claims key. It returns false if the key is already
// claimed.
func (c *Claims) Add(tx ledger.TxHash, key storage.ProofKey) bool {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.byKey[key]; ok {
		return false
	}
	if _, ok := c.byTx[tx]; ok {
		// a transaction carries a single credit
		return false
	}
	c.byKey[key] = tx
	c.byTx[tx] = key
	c.metrics.MempoolEntries(metrics.ResourcePendingClaim, uint(len(c.byKey)))
	return true
}

// Rem releases the claim of tx, if any.
func (c *Claims) Rem(tx ledger.TxHash) bool {
	c.Lock()
	defer c.Unlock()
	key, ok := c.byTx[tx]
	if !ok {
		return false
	}
	delete(c.byTx, tx)
	delete(c.byKey, key)
	c.metrics.MempoolEntries(metrics.ResourcePendingClaim, uint(len(c.byKey)))
	return true
}

// Size returns the number of pending claims.
func (c *Claims) Size() uint {
	c.RLock()
	defer c.RUnlock()
	return uint(len(c.byKey))
}

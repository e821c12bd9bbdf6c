package pebble

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/storage/pebble/operation"
)

// Ledger implements storage.Ledger on top of pebble. Pebble has no
// transaction conflicts, so updates are serialised by a mutex and written as
// one indexed batch.
type Ledger struct {
	db       *pebble.DB
	locks    *storage.KeyLocker
	pending  storage.PendingProofs
	metrics  module.StorageMetrics
	updateMu sync.Mutex
}

var _ storage.Ledger = (*Ledger)(nil)

func NewLedger(db *pebble.DB, metrics module.StorageMetrics, pending storage.PendingProofs) *Ledger {
	return &Ledger{
		db:      db,
		locks:   storage.NewKeyLocker(),
		pending: pending,
		metrics: metrics,
	}
}

func (l *Ledger) ReadState(address ledger.Address) (*register.State, error) {
	var state register.State
	err := operation.RetrieveRegister(address, &state)(l.db)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (l *Ledger) ReadTransaction(hash ledger.TxHash) (*ledger.Transaction, error) {
	var tx ledger.Transaction
	err := operation.RetrieveTransaction(hash, &tx)(l.db)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (l *Ledger) HasProof(key storage.ProofKey, speculative bool) (bool, error) {
	if speculative && l.pending != nil && l.pending.Has(key) {
		return true, nil
	}
	var spent bool
	err := operation.HasProof(key, &spent)(l.db)
	if err != nil {
		return false, fmt.Errorf("could not check proof: %w", err)
	}
	return spent, nil
}

func (l *Ledger) InsertTransaction(tx *ledger.Transaction) error {
	batch := l.db.NewBatch()
	defer batch.Close()

	err := operation.InsertTransaction(tx.Hash(), tx)(batch)
	if err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Update stages fn's writes in an indexed batch and commits it with a single
// synced write. Nothing is written if fn fails.
func (l *Ledger) Update(fn func(storage.Writer) error) error {
	l.updateMu.Lock()
	defer l.updateMu.Unlock()

	batch := l.db.NewIndexedBatch()
	defer batch.Close()

	w := &writer{batch: batch, metrics: l.metrics}
	err := fn(w)
	if err != nil {
		return err
	}

	err = batch.Commit(pebble.Sync)
	if err != nil {
		return fmt.Errorf("could not commit batch: %w", err)
	}
	for _, callback := range w.callbacks {
		callback()
	}
	return nil
}

func (l *Ledger) Lock(keys ...string) func() {
	return l.locks.Lock(keys...)
}

type writer struct {
	batch     *pebble.Batch
	metrics   module.StorageMetrics
	callbacks []func()
}

func (w *writer) WriteState(address ledger.Address, state *register.State) error {
	return operation.UpsertRegister(address, state)(w.batch)
}

func (w *writer) WriteProof(key storage.ProofKey) error {
	err := operation.InsertProof(w.batch, key)(w.batch)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("could not insert proof: %w", err)
	}
	w.OnSucceed(w.metrics.ProofRecorded)
	return nil
}

func (w *writer) OnSucceed(callback func()) {
	w.callbacks = append(w.callbacks, callback)
}

package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/storage/badger/operation"
)

const (
	DefaultCacheSize          = 10_000
	DefaultMaxConflictRetries = 16
)

// Ledger implements storage.Ledger on top of badger. Every Update is a
// single serializable badger transaction.
type Ledger struct {
	db         *badger.DB
	locks      *storage.KeyLocker
	registers  *Cache[ledger.Address, *register.State]
	pending    storage.PendingProofs
	metrics    module.StorageMetrics
	cacheSize  uint
	maxRetries uint64
}

var _ storage.Ledger = (*Ledger)(nil)

type Option func(*Ledger)

// WithPendingProofs lets speculative proof checks see claims of admitted
// transactions.
func WithPendingProofs(pending storage.PendingProofs) Option {
	return func(l *Ledger) {
		l.pending = pending
	}
}

func WithCacheSize(size uint) Option {
	return func(l *Ledger) {
		l.cacheSize = size
	}
}

func WithMaxConflictRetries(retries uint64) Option {
	return func(l *Ledger) {
		l.maxRetries = retries
	}
}

// NewLedger opens the ledger stored in db. It fails if db holds another kind
// of data.
func NewLedger(db *badger.DB, cacheMetrics module.CacheMetrics, storageMetrics module.StorageMetrics, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		db:         db,
		locks:      storage.NewKeyLocker(),
		metrics:    storageMetrics,
		cacheSize:  DefaultCacheSize,
		maxRetries: DefaultMaxConflictRetries,
	}
	for _, opt := range opts {
		opt(l)
	}

	err := db.Update(operation.EnsureDBType(operation.DBTypeLedger))
	if err != nil {
		return nil, fmt.Errorf("could not check database type: %w", err)
	}

	retrieve := func(address ledger.Address) (*register.State, error) {
		var state register.State
		err := db.View(operation.RetrieveRegister(address, &state))
		return &state, err
	}
	l.registers = newCache[ledger.Address, *register.State](cacheMetrics,
		withLimit[ledger.Address, *register.State](l.cacheSize),
		withRetrieve[ledger.Address, *register.State](retrieve),
		withResource[ledger.Address, *register.State](metrics.ResourceRegister),
	)

	return l, nil
}

func (l *Ledger) ReadState(address ledger.Address) (*register.State, error) {
	state, err := l.registers.Get(address)
	if err != nil {
		return nil, err
	}
	return state.Copy(), nil
}

func (l *Ledger) ReadTransaction(hash ledger.TxHash) (*ledger.Transaction, error) {
	var tx ledger.Transaction
	err := l.db.View(operation.RetrieveTransaction(hash, &tx))
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
	err := l.db.View(operation.HasProof(key, &spent))
	if err != nil {
		return false, fmt.Errorf("could not check proof: %w", err)
	}
	return spent, nil
}

// InsertTransaction stores tx. Storing the same transaction twice is a no-op.
func (l *Ledger) InsertTransaction(tx *ledger.Transaction) error {
	return operation.RetryOnConflict(l.metrics, l.maxRetries, l.db.Update,
		operation.SkipDuplicates(operation.InsertTransaction(tx.Hash(), tx)))
}

// Update runs fn in one badger transaction. A conflicting concurrent commit
// makes badger reject the transaction; fn is then run again against fresh
// state, so it must not have side effects outside the Writer.
func (l *Ledger) Update(fn func(storage.Writer) error) error {
	var w *writer
	err := operation.RetryOnConflict(l.metrics, l.maxRetries, l.db.Update, func(txn *badger.Txn) error {
		w = &writer{txn: txn, ledger: l}
		return fn(w)
	})
	if err != nil {
		return err
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
	txn       *badger.Txn
	ledger    *Ledger
	callbacks []func()
}

func (w *writer) WriteState(address ledger.Address, state *register.State) error {
	stored := state.Copy()
	err := operation.UpsertRegister(address, stored)(w.txn)
	if err != nil {
		return err
	}
	w.OnSucceed(func() {
		w.ledger.registers.Insert(address, stored)
	})
	return nil
}

func (w *writer) WriteProof(key storage.ProofKey) error {
	err := operation.InsertProof(key)(w.txn)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("could not insert proof: %w", err)
	}
	w.OnSucceed(w.ledger.metrics.ProofRecorded)
	return nil
}

func (w *writer) OnSucceed(callback func()) {
	w.callbacks = append(w.callbacks, callback)
}

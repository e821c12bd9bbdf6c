package inmemory

import (
	"sync"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/storage"
)

// Ledger is a map-backed storage.Ledger. Updates are staged and applied
// under a single mutex, so they are atomic like the persistent backends.
type Ledger struct {
	mu           sync.RWMutex
	states       map[ledger.Address]*register.State
	transactions map[ledger.TxHash]*ledger.Transaction
	proofs       map[storage.ProofKey]struct{}
	locks        *storage.KeyLocker
	pending      storage.PendingProofs

	// BeforeWriteState, if set, runs at the start of every staged state
	// write. Returning an error fails that write.
	BeforeWriteState func() error
}

var _ storage.Ledger = (*Ledger)(nil)

func NewLedger() *Ledger {
	return &Ledger{
		states:       make(map[ledger.Address]*register.State),
		transactions: make(map[ledger.TxHash]*ledger.Transaction),
		proofs:       make(map[storage.ProofKey]struct{}),
		locks:        storage.NewKeyLocker(),
	}
}

// SetPendingProofs attaches the speculative claim set.
func (l *Ledger) SetPendingProofs(pending storage.PendingProofs) {
	l.pending = pending
}

// PutState writes a register directly, bypassing Update. Used to seed state.
func (l *Ledger) PutState(address ledger.Address, state *register.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states[address] = state.Copy()
}

func (l *Ledger) ReadState(address ledger.Address) (*register.State, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	state, ok := l.states[address]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return state.Copy(), nil
}

func (l *Ledger) ReadTransaction(hash ledger.TxHash) (*ledger.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tx, ok := l.transactions[hash]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return tx.Copy(), nil
}

func (l *Ledger) HasProof(key storage.ProofKey, speculative bool) (bool, error) {
	if speculative && l.pending != nil && l.pending.Has(key) {
		return true, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.proofs[key]
	return ok, nil
}

func (l *Ledger) InsertTransaction(tx *ledger.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions[tx.Hash()] = tx.Copy()
	return nil
}

func (l *Ledger) Update(fn func(storage.Writer) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := &batch{
		ledger: l,
		states: make(map[ledger.Address]*register.State),
		proofs: make(map[storage.ProofKey]struct{}),
	}
	err := fn(b)
	if err != nil {
		return err
	}

	for key := range b.proofs {
		l.proofs[key] = struct{}{}
	}
	for address, state := range b.states {
		l.states[address] = state
	}
	for _, callback := range b.callbacks {
		callback()
	}
	return nil
}

func (l *Ledger) Lock(keys ...string) func() {
	return l.locks.Lock(keys...)
}

// ProofCount returns the number of spent proofs.
func (l *Ledger) ProofCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.proofs)
}

// batch stages writes; the ledger mutex is held by Update while it is used.
type batch struct {
	ledger    *Ledger
	states    map[ledger.Address]*register.State
	proofs    map[storage.ProofKey]struct{}
	callbacks []func()
}

func (b *batch) WriteState(address ledger.Address, state *register.State) error {
	if b.ledger.BeforeWriteState != nil {
		err := b.ledger.BeforeWriteState()
		if err != nil {
			return err
		}
	}
	b.states[address] = state.Copy()
	return nil
}

func (b *batch) WriteProof(key storage.ProofKey) error {
	if _, ok := b.ledger.proofs[key]; ok {
		return storage.ErrAlreadyExists
	}
	if _, ok := b.proofs[key]; ok {
		return storage.ErrAlreadyExists
	}
	b.proofs[key] = struct{}{}
	return nil
}

func (b *batch) OnSucceed(callback func()) {
	b.callbacks = append(b.callbacks, callback)
}

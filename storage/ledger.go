package storage

import (
	"encoding/hex"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
)

// ProofKey names a spent claim: the pair (subject, source transaction). A
// recorded proof key can never be claimed again.
type ProofKey struct {
	Subject ledger.Address
	Tx      ledger.TxHash
}

func NewProofKey(subject ledger.Address, tx ledger.TxHash) ProofKey {
	return ProofKey{Subject: subject, Tx: tx}
}

// Bytes is the canonical key encoding: subject || tx.
func (k ProofKey) Bytes() []byte {
	b := make([]byte, 0, ledger.AddressLength+ledger.TxHashLength)
	b = append(b, k.Subject[:]...)
	return append(b, k.Tx[:]...)
}

func (k ProofKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// LockKey is the key used with Ledger.Lock for this proof.
func (k ProofKey) LockKey() string {
	return "proof/" + k.String()
}

// RegisterLockKey is the key used with Ledger.Lock for a register address.
func RegisterLockKey(address ledger.Address) string {
	return "register/" + address.String()
}

// Reader gives read access to registers, transactions and proofs.
type Reader interface {
	// ReadState returns the current state of a register.
	// Expected errors:
	//   - ErrNotFound if the register does not exist
	ReadState(address ledger.Address) (*register.State, error)

	// ReadTransaction returns a connected transaction.
	// Expected errors:
	//   - ErrNotFound if no transaction with this hash is stored
	ReadTransaction(hash ledger.TxHash) (*ledger.Transaction, error)

	// HasProof reports whether the proof key has been spent. When
	// speculative is set, claims pending in the mempool count as spent too.
	HasProof(key ProofKey, speculative bool) (bool, error)
}

// Writer stages writes inside a Ledger.Update call.
type Writer interface {
	WriteState(address ledger.Address, state *register.State) error

	// WriteProof records the proof key as spent.
	// Expected errors:
	//   - ErrAlreadyExists if the key was already recorded
	WriteProof(key ProofKey) error

	// OnSucceed adds a callback to execute after the update has been
	// committed. Callbacks never run for a failed update.
	OnSucceed(callback func())
}

// Ledger is the register and proof store used by the operation engine.
type Ledger interface {
	Reader

	// Update runs fn against a single atomic batch. Either every write
	// staged by fn becomes visible, or none does.
	Update(fn func(Writer) error) error

	// InsertTransaction stores a connected transaction under its hash.
	InsertTransaction(tx *ledger.Transaction) error

	// Lock acquires exclusive locks on the given keys and returns the
	// function releasing them. Keys are acquired in a fixed order.
	Lock(keys ...string) (release func())
}

// PendingProofs reports proof keys claimed by admitted, unconfirmed
// transactions.
type PendingProofs interface {
	Has(key ProofKey) bool
}

package ledger

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"
)

// Transaction is the unit a block connects. The operation stream carries the
// opcode and operands; the register stream carries the pre-state and
// post-state records produced when the transaction was built.
type Transaction struct {
	Genesis   Address
	Timestamp uint64
	Operation []byte
	Register  []byte
}

// body is the hashed portion of a transaction. The register stream is an
// execution artifact and is not part of the identity.
type body struct {
	_         struct{} `cbor:",toarray"`
	Genesis   []byte
	Timestamp uint64
	Operation []byte
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("could not create canonical cbor encoder: %w", err))
	}
}

// Hash returns the SHA3-512 digest of the canonical encoding of the
// transaction body.
func (tx *Transaction) Hash() TxHash {
	data, err := encMode.Marshal(body{
		Genesis:   tx.Genesis[:],
		Timestamp: tx.Timestamp,
		Operation: tx.Operation,
	})
	if err != nil {
		// the body only holds byte slices and integers
		panic(fmt.Errorf("could not encode transaction body: %w", err))
	}
	return sha3.Sum512(data)
}

// Copy returns a deep copy so callers can execute against a transaction
// without aliasing its streams.
func (tx *Transaction) Copy() *Transaction {
	cp := &Transaction{
		Genesis:   tx.Genesis,
		Timestamp: tx.Timestamp,
	}
	cp.Operation = append([]byte(nil), tx.Operation...)
	cp.Register = append([]byte(nil), tx.Register...)
	return cp
}

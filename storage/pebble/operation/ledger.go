package operation

import (
	"github.com/cockroachdb/pebble"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/storage"
)

const (
	codeDBType byte = 1

	codeRegister    byte = 10
	codeTransaction byte = 11
	codeProof       byte = 12
)

func registerKey(address ledger.Address) []byte {
	return append([]byte{codeRegister}, address[:]...)
}

func transactionKey(hash ledger.TxHash) []byte {
	return append([]byte{codeTransaction}, hash[:]...)
}

func proofKey(key storage.ProofKey) []byte {
	return append([]byte{codeProof}, key.Bytes()...)
}

func UpsertRegister(address ledger.Address, state *register.State) func(pebble.Writer) error {
	return upsert(registerKey(address), state)
}

func RetrieveRegister(address ledger.Address, state *register.State) func(pebble.Reader) error {
	return retrieve(registerKey(address), state)
}

// InsertTransaction stores tx under its hash. Re-inserting is a no-op
// overwrite with identical content.
func InsertTransaction(hash ledger.TxHash, tx *ledger.Transaction) func(pebble.Writer) error {
	return upsert(transactionKey(hash), tx)
}

func RetrieveTransaction(hash ledger.TxHash, tx *ledger.Transaction) func(pebble.Reader) error {
	return retrieve(transactionKey(hash), tx)
}

// InsertProof records a spent proof key.
// Error returns:
//   - storage.ErrAlreadyExists if the proof key is visible through r
func InsertProof(r pebble.Reader, key storage.ProofKey) func(pebble.Writer) error {
	return insert(r, proofKey(key), true)
}

func HasProof(key storage.ProofKey, spent *bool) func(pebble.Reader) error {
	return exists(proofKey(key), spent)
}

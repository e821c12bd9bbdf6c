package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/taoledger/ledger-node/storage"
)

// InsertProof records a spent proof key.
// Error returns:
//   - storage.ErrAlreadyExists if the proof key was spent before
func InsertProof(key storage.ProofKey) func(*badger.Txn) error {
	return insert(makePrefix(codeProof, key.Subject, key.Tx), true)
}

// HasProof checks whether the proof key was spent.
func HasProof(key storage.ProofKey, spent *bool) func(*badger.Txn) error {
	return exists(makePrefix(codeProof, key.Subject, key.Tx), spent)
}

package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/taoledger/ledger-node/model/ledger"
)

// InsertTransaction inserts a transaction keyed by its hash.
func InsertTransaction(hash ledger.TxHash, tx *ledger.Transaction) func(*badger.Txn) error {
	return insert(makePrefix(codeTransaction, hash), tx)
}

// RetrieveTransaction retrieves a transaction by its hash.
func RetrieveTransaction(hash ledger.TxHash, tx *ledger.Transaction) func(*badger.Txn) error {
	return retrieve(makePrefix(codeTransaction, hash), tx)
}

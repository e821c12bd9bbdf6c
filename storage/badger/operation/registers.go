package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
)

// UpsertRegister stores the current state of the register at address.
func UpsertRegister(address ledger.Address, state *register.State) func(*badger.Txn) error {
	return upsert(makePrefix(codeRegister, address), state)
}

// RetrieveRegister by its address.
func RetrieveRegister(address ledger.Address, state *register.State) func(*badger.Txn) error {
	return retrieve(makePrefix(codeRegister, address), state)
}

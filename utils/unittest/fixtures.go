package unittest

import (
	"crypto/rand"

	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/operation"
)

func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func AddressFixture() ledger.Address {
	var a ledger.Address
	copy(a[:], RandomBytes(ledger.AddressLength))
	return a
}

func TxHashFixture() ledger.TxHash {
	var h ledger.TxHash
	copy(h[:], RandomBytes(ledger.TxHashLength))
	return h
}

// AccountFixture returns an account register owned by owner.
func AccountFixture(owner ledger.Address, identifier uint32, balance uint64, timestamp uint64) *register.State {
	return register.NewState(owner, timestamp, register.Account{
		Identifier: identifier,
		Balance:    balance,
	})
}

// TokenFixture returns a token register owned by owner.
func TokenFixture(owner ledger.Address, identifier uint32, maxSupply uint64, timestamp uint64) *register.State {
	return register.NewState(owner, timestamp, register.Token{
		Identifier:    identifier,
		MaxSupply:     maxSupply,
		CurrentSupply: maxSupply,
	})
}

// RawFixture returns a raw object register owned by owner.
func RawFixture(owner ledger.Address, timestamp uint64) *register.State {
	return register.NewState(owner, timestamp, register.Raw(RandomBytes(16)))
}

// CoinbaseTransaction returns a coinbase minting amount to genesis.
func CoinbaseTransaction(genesis ledger.Address, timestamp uint64, amount uint64) *ledger.Transaction {
	return &ledger.Transaction{
		Genesis:   genesis,
		Timestamp: timestamp,
		Operation: operation.EncodeCoinbase(operation.Coinbase{Amount: amount}),
	}
}

// DebitTransaction returns a debit of amount from one register to another.
func DebitTransaction(genesis ledger.Address, timestamp uint64, from, to ledger.Address, amount uint64) *ledger.Transaction {
	return &ledger.Transaction{
		Genesis:   genesis,
		Timestamp: timestamp,
		Operation: operation.EncodeDebit(operation.Debit{From: from, To: to, Amount: amount}),
	}
}

// CreditTransaction returns an unbuilt credit transaction: its register
// stream is empty.
func CreditTransaction(genesis ledger.Address, timestamp uint64, op operation.CreditOp) *ledger.Transaction {
	return &ledger.Transaction{
		Genesis:   genesis,
		Timestamp: timestamp,
		Operation: operation.EncodeCredit(op),
	}
}

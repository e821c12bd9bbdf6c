package operation

import (
	"fmt"

	"github.com/taoledger/ledger-node/model/encoding"
	"github.com/taoledger/ledger-node/model/ledger"
)

// Coinbase mints Amount to the producer's sigchain.
type Coinbase struct {
	Amount uint64
}

// Debit moves Amount out of From towards To. It is claimed later by a
// credit.
type Debit struct {
	From   ledger.Address
	To     ledger.Address
	Amount uint64
}

// CreditOp claims the value of a source coinbase or debit into Account.
// Proof is the caller for account and coinbase claims, and the temporal
// proof account for token distributions.
type CreditOp struct {
	Source  ledger.TxHash
	Proof   ledger.Address
	Account ledger.Address
	Amount  uint64
}

func EncodeCoinbase(c Coinbase) []byte {
	s := encoding.NewStream(nil)
	s.WriteUint8(uint8(OpCoinbase))
	s.WriteUint64(c.Amount)
	return s.Bytes()
}

func EncodeDebit(d Debit) []byte {
	s := encoding.NewStream(nil)
	s.WriteUint8(uint8(OpDebit))
	s.WriteAddress(d.From)
	s.WriteAddress(d.To)
	s.WriteUint64(d.Amount)
	return s.Bytes()
}

func EncodeCredit(c CreditOp) []byte {
	s := encoding.NewStream(nil)
	s.WriteUint8(uint8(OpCredit))
	s.WriteTxHash(c.Source)
	s.WriteAddress(c.Proof)
	s.WriteAddress(c.Account)
	s.WriteUint64(c.Amount)
	return s.Bytes()
}

func readOpcode(s *encoding.Stream) (Opcode, error) {
	b, err := s.ReadUint8()
	if err != nil {
		return 0, fmt.Errorf("could not read opcode: %w", err)
	}
	return Opcode(b), nil
}

func decodeCoinbase(s *encoding.Stream) (Coinbase, error) {
	var c Coinbase
	var err error
	if c.Amount, err = s.ReadUint64(); err != nil {
		return c, fmt.Errorf("could not read coinbase amount: %w", err)
	}
	return c, nil
}

func decodeDebit(s *encoding.Stream) (Debit, error) {
	var d Debit
	var err error
	if d.From, err = s.ReadAddress(); err != nil {
		return d, fmt.Errorf("could not read debit source: %w", err)
	}
	if d.To, err = s.ReadAddress(); err != nil {
		return d, fmt.Errorf("could not read debit recipient: %w", err)
	}
	if d.Amount, err = s.ReadUint64(); err != nil {
		return d, fmt.Errorf("could not read debit amount: %w", err)
	}
	return d, nil
}

func decodeCredit(s *encoding.Stream) (CreditOp, error) {
	var c CreditOp
	var err error
	if c.Source, err = s.ReadTxHash(); err != nil {
		return c, fmt.Errorf("could not read credit source: %w", err)
	}
	if c.Proof, err = s.ReadAddress(); err != nil {
		return c, fmt.Errorf("could not read credit proof: %w", err)
	}
	if c.Account, err = s.ReadAddress(); err != nil {
		return c, fmt.Errorf("could not read credit account: %w", err)
	}
	if c.Amount, err = s.ReadUint64(); err != nil {
		return c, fmt.Errorf("could not read credit amount: %w", err)
	}
	return c, nil
}

package operation

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taoledger/ledger-node/model/encoding"
	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/module"
	opErrors "github.com/taoledger/ledger-node/operation/errors"
	"github.com/taoledger/ledger-node/storage"
)

// Executor validates and applies operations against a ledger. It is safe for
// concurrent use; conflicting credits are serialised through the ledger's
// key locks.
type Executor struct {
	log     zerolog.Logger
	ledger  storage.Ledger
	metrics module.CreditMetrics
}

func NewExecutor(log zerolog.Logger, ledger storage.Ledger, metrics module.CreditMetrics) *Executor {
	return &Executor{
		log:     log.With().Str("component", "operation_executor").Logger(),
		ledger:  ledger,
		metrics: metrics,
	}
}

// Execute runs the operation at the head of the transaction's operation
// stream. The transaction's genesis is the caller. Coinbase and debit
// transactions only become claimable sources here, so for them the operands
// are validated and nothing is written.
func (e *Executor) Execute(ctx *Context, flags Flags) error {
	opcode, err := readOpcode(ctx.Operation)
	if err != nil {
		return opErrors.NewMalformedOperationError(err, "empty operation stream")
	}

	switch opcode {
	case OpCredit:
		op, err := decodeCredit(ctx.Operation)
		if err != nil {
			return opErrors.NewMalformedOperationError(err, "malformed credit")
		}
		return e.Credit(op, ctx.Tx.Genesis, flags, ctx)

	case OpCoinbase:
		if _, err := decodeCoinbase(ctx.Operation); err != nil {
			return opErrors.NewMalformedOperationError(err, "malformed coinbase")
		}
		return nil

	case OpDebit:
		if _, err := decodeDebit(ctx.Operation); err != nil {
			return opErrors.NewMalformedOperationError(err, "malformed debit")
		}
		return nil

	default:
		return opErrors.NewCodedError(opErrors.ErrCodeNotSupported, "operation %s is not supported", opcode)
	}
}

// readTransaction maps a missing transaction to a rejection and anything
// else to a ledger failure.
func (e *Executor) readTransaction(hash ledger.TxHash) (*ledger.Transaction, error) {
	tx, err := e.ledger.ReadTransaction(hash)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, opErrors.NewTransactionNotFoundError("tx doesn't exist: %s", hash.Short())
	}
	if err != nil {
		return nil, opErrors.NewLedgerFailure(fmt.Errorf("could not read transaction %s: %w", hash, err))
	}
	return tx, nil
}

func (e *Executor) readState(address ledger.Address, what string) (*register.State, error) {
	state, err := e.ledger.ReadState(address)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, opErrors.NewRegisterNotFoundError("%s register %s doesn't exist", what, address)
	}
	if err != nil {
		return nil, opErrors.NewLedgerFailure(fmt.Errorf("could not read %s register %s: %w", what, address, err))
	}
	return state, nil
}

func (e *Executor) readAccount(address ledger.Address, what string) (register.Account, error) {
	state, err := e.readState(address, what)
	if err != nil {
		return register.Account{}, err
	}
	acct, err := state.Account()
	if err != nil {
		return register.Account{}, opErrors.WrapCodedError(opErrors.ErrCodeWrongRegisterType, err, "%s register %s", what, address)
	}
	return acct, nil
}

// ClaimKey returns the proof key a credit transaction spends. ok is false for
// transactions that spend no proof.
func (e *Executor) ClaimKey(tx *ledger.Transaction) (key storage.ProofKey, ok bool, err error) {
	s := encoding.NewStream(tx.Operation)
	opcode, err := readOpcode(s)
	if err != nil {
		return key, false, opErrors.NewMalformedOperationError(err, "empty operation stream")
	}
	if opcode != OpCredit {
		return key, false, nil
	}
	op, err := decodeCredit(s)
	if err != nil {
		return key, false, opErrors.NewMalformedOperationError(err, "malformed credit")
	}
	c, err := e.resolve(op, tx.Genesis)
	if err != nil {
		return key, false, err
	}
	return c.proof, true, nil
}

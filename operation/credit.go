package operation

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/taoledger/ledger-node/model/encoding"
	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	opErrors "github.com/taoledger/ledger-node/operation/errors"
	"github.com/taoledger/ledger-node/storage"
)

// variant is the kind of source a credit claims.
type variant uint8

const (
	variantCoinbase variant = iota + 1
	variantAccount
	variantTemporal
)

func (v variant) String() string {
	switch v {
	case variantCoinbase:
		return "coinbase"
	case variantAccount:
		return "account"
	case variantTemporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// claim is a resolved credit source: what it is, which proof key it spends,
// and the decoded source operation.
type claim struct {
	variant  variant
	proof    storage.ProofKey
	source   *ledger.Transaction
	coinbase Coinbase
	debit    Debit
	object   *register.State // debited object, temporal claims only
}

// Credit claims the value of a previously connected coinbase or debit into
// op.Account. With Persist set, the spent proof and the new account state are
// written in one atomic update.
func (e *Executor) Credit(op CreditOp, caller ledger.Address, flags Flags, ctx *Context) error {
	start := time.Now()

	v, err := e.credit(op, caller, flags, ctx)
	if err != nil {
		category := opErrors.CategoryOf(err)
		e.metrics.CreditRejected(string(category))
		e.log.Debug().
			Err(err).
			Str("source", op.Source.Short()).
			Str("account", op.Account.String()).
			Str("category", string(category)).
			Str("flags", flags.String()).
			Msg("credit rejected")
		return err
	}

	e.metrics.CreditAccepted(v.String(), op.Amount, time.Since(start))
	e.log.Debug().
		Str("source", op.Source.Short()).
		Str("account", op.Account.String()).
		Str("variant", v.String()).
		Uint64("amount", op.Amount).
		Str("flags", flags.String()).
		Msg("credit accepted")
	return nil
}

func (e *Executor) credit(op CreditOp, caller ledger.Address, flags Flags, ctx *Context) (variant, error) {
	c, err := e.resolve(op, caller)
	if err != nil {
		return 0, err
	}

	// the target register and the proof key stay locked from the first
	// read until the commit is visible
	release := e.ledger.Lock(storage.RegisterLockKey(op.Account), c.proof.LockKey())
	defer release()

	spent, err := e.ledger.HasProof(c.proof, flags.Speculative)
	if err != nil {
		return 0, opErrors.NewLedgerFailure(fmt.Errorf("could not check proof %s: %w", c.proof, err))
	}
	if spent {
		return 0, opErrors.NewAlreadySpentError("transaction is already spent: %s", op.Source.Short())
	}

	state, err := e.preState(op.Account, flags, ctx)
	if err != nil {
		return 0, err
	}
	if state.Owner != caller {
		return 0, opErrors.NewCodedError(opErrors.ErrCodeRegisterOwnership,
			"caller %s is not owner of account %s", caller, op.Account)
	}
	if ctx.Tx.Timestamp < state.Timestamp {
		return 0, opErrors.NewCodedError(opErrors.ErrCodeStaleRegister,
			"account %s was modified at %d, after claim timestamp %d", op.Account, state.Timestamp, ctx.Tx.Timestamp)
	}
	account, err := state.Account()
	if err != nil {
		return 0, opErrors.WrapCodedError(opErrors.ErrCodeWrongRegisterType, err, "credit target %s", op.Account)
	}

	switch c.variant {
	case variantCoinbase:
		err = e.checkCoinbase(op, caller, c, account)
	case variantAccount:
		err = e.checkAccountDebit(op, caller, c, account)
	case variantTemporal:
		err = e.checkTemporalDebit(op, caller, c, account)
	}
	if err != nil {
		return 0, err
	}

	err = e.commit(op, c, state, account, flags, ctx)
	if err != nil {
		return 0, err
	}
	return c.variant, nil
}

// resolve reads the source transaction and decides which variant of credit
// it supports and which proof key the claim spends.
func (e *Executor) resolve(op CreditOp, caller ledger.Address) (*claim, error) {
	source, err := e.readTransaction(op.Source)
	if err != nil {
		return nil, err
	}

	s := encoding.NewStream(source.Operation)
	opcode, err := readOpcode(s)
	if err != nil {
		return nil, opErrors.WrapCodedError(opErrors.ErrCodeInvalidSource, err, "source %s", op.Source.Short())
	}

	c := &claim{source: source}
	switch opcode {
	case OpCoinbase:
		c.coinbase, err = decodeCoinbase(s)
		if err != nil {
			return nil, opErrors.WrapCodedError(opErrors.ErrCodeInvalidSource, err, "source %s", op.Source.Short())
		}
		c.variant = variantCoinbase
		c.proof = storage.NewProofKey(caller, op.Source)
		return c, nil

	case OpDebit:
		c.debit, err = decodeDebit(s)
		if err != nil {
			return nil, opErrors.WrapCodedError(opErrors.ErrCodeInvalidSource, err, "source %s", op.Source.Short())
		}
		to, err := e.readState(c.debit.To, "debit recipient")
		if err != nil {
			return nil, err
		}
		switch to.Type {
		case register.TypeAccount:
			c.variant = variantAccount
			c.proof = storage.NewProofKey(op.Account, op.Source)
		case register.TypeRaw, register.TypeReadOnly:
			c.variant = variantTemporal
			c.proof = storage.NewProofKey(op.Proof, op.Source)
			c.object = to
		default:
			return nil, opErrors.NewCodedError(opErrors.ErrCodeInvalidSource,
				"debit recipient %s has type %s, expected account or object", c.debit.To, to.Type)
		}
		return c, nil

	default:
		return nil, opErrors.NewCodedError(opErrors.ErrCodeInvalidSource,
			"source %s is a %s, not a debit or coinbase", op.Source.Short(), opcode)
	}
}

func (e *Executor) checkCoinbase(op CreditOp, caller ledger.Address, c *claim, account register.Account) error {
	if c.source.Genesis != caller {
		return opErrors.NewCodedError(opErrors.ErrCodeSigchainMismatch, "cannot claim coinbase from different sigchain")
	}
	if account.Identifier != 0 {
		return opErrors.NewIdentifierMismatchError("coinbase must be credited to a base account, got identifier %d", account.Identifier)
	}
	if op.Amount != c.coinbase.Amount {
		return opErrors.NewAmountMismatchError(op.Amount, c.coinbase.Amount)
	}
	return nil
}

func (e *Executor) checkAccountDebit(op CreditOp, caller ledger.Address, c *claim, account register.Account) error {
	if op.Proof != caller {
		return opErrors.NewCodedError(opErrors.ErrCodeProofNotAuthorized, "account credit proof must be the caller")
	}
	if c.debit.To != op.Account {
		return opErrors.NewCodedError(opErrors.ErrCodeRecipientMismatch,
			"debit recipient %s is not the credited account %s", c.debit.To, op.Account)
	}
	from, err := e.readAccount(c.debit.From, "debit source")
	if err != nil {
		return err
	}
	if from.Identifier != account.Identifier {
		return opErrors.NewIdentifierMismatchError("credit can't be of different identifier (from=%d, to=%d)", from.Identifier, account.Identifier)
	}
	if op.Amount != c.debit.Amount {
		return opErrors.NewAmountMismatchError(op.Amount, c.debit.Amount)
	}
	return nil
}

func (e *Executor) checkTemporalDebit(op CreditOp, caller ledger.Address, c *claim, account register.Account) error {
	tokenState, err := e.readState(c.object.Owner, "token")
	if err != nil {
		return err
	}
	token, err := tokenState.Token()
	if err != nil {
		return opErrors.WrapCodedError(opErrors.ErrCodeInvalidSource, err, "debited object %s is not owned by a token", c.debit.To)
	}

	proof, err := e.readState(op.Proof, "temporal proof")
	if err != nil {
		return err
	}
	if proof.Type != register.TypeAccount {
		return opErrors.NewCodedError(opErrors.ErrCodeProofRegisterInvalid, "temporal proof register must be account")
	}
	if proof.Owner != caller {
		return opErrors.NewCodedError(opErrors.ErrCodeProofNotAuthorized, "not authorized to use this temporal proof")
	}
	if proof.Timestamp > c.source.Timestamp {
		return opErrors.NewCodedError(opErrors.ErrCodeStaleProof,
			"temporal proof is stale (proof=%d, source=%d)", proof.Timestamp, c.source.Timestamp)
	}
	proofAccount, err := proof.Account()
	if err != nil {
		return opErrors.WrapCodedError(opErrors.ErrCodeProofRegisterInvalid, err, "temporal proof %s", op.Proof)
	}
	if proofAccount.Identifier != token.Identifier {
		return opErrors.NewIdentifierMismatchError("account proof identifier not token identifier (proof=%d, token=%d)",
			proofAccount.Identifier, token.Identifier)
	}

	from, err := e.readAccount(c.debit.From, "debit source")
	if err != nil {
		return err
	}
	if account.Identifier != from.Identifier {
		return opErrors.NewIdentifierMismatchError("credit can't be of different identifier (from=%d, to=%d)", from.Identifier, account.Identifier)
	}

	expected, err := Entitlement(proofAccount.Balance, c.debit.Amount, token.MaxSupply)
	if err != nil {
		return opErrors.WrapCodedError(opErrors.ErrCodeInvalidSource, err, "token %s", c.object.Owner)
	}
	if op.Amount != expected {
		return opErrors.NewAmountMismatchError(op.Amount, expected)
	}
	return nil
}

// preState returns the state the credit is applied to. Building captures it
// from the store into the register stream; verifying reads it back and
// checks it against the store.
func (e *Executor) preState(address ledger.Address, flags Flags, ctx *Context) (*register.State, error) {
	var state *register.State

	if flags.CapturePreState {
		current, err := e.readState(address, "credit target")
		if err != nil {
			return nil, err
		}
		ctx.Register.WriteUint8(StatePreState)
		current.Encode(ctx.Register)
		state = current
	}

	if flags.verifying() {
		marker, err := ctx.Register.ReadUint8()
		if err != nil {
			return nil, opErrors.WrapCodedError(opErrors.ErrCodeMissingPreState, err, "register script not in pre-state")
		}
		if marker != StatePreState {
			return nil, opErrors.NewCodedError(opErrors.ErrCodeMissingPreState,
				"register script not in pre-state (marker=0x%02x)", marker)
		}
		claimed, err := register.Decode(ctx.Register)
		if err != nil {
			return nil, opErrors.WrapCodedError(opErrors.ErrCodeMissingPreState, err, "register script has invalid pre-state")
		}

		current, err := e.readState(address, "credit target")
		if err != nil {
			return nil, err
		}
		if claimed.Checksum() != current.Checksum() {
			return nil, opErrors.NewCodedError(opErrors.ErrCodePreStateMismatch,
				"pre-state of %s does not match ledger state", address)
		}
		state = claimed
	}

	if state == nil {
		current, err := e.readState(address, "credit target")
		if err != nil {
			return nil, err
		}
		state = current
	}

	return state, nil
}

func (e *Executor) commit(op CreditOp, c *claim, pre *register.State, account register.Account, flags Flags, ctx *Context) error {
	balance, carry := bits.Add64(account.Balance, op.Amount, 0)
	if carry != 0 {
		return opErrors.NewCodedError(opErrors.ErrCodeBalanceOverflow,
			"credit of %d overflows balance %d of %s", op.Amount, account.Balance, op.Account)
	}
	account.Balance = balance

	post := pre.Copy()
	post.SetPayload(account)
	post.Timestamp = ctx.Tx.Timestamp
	if !post.IsValid() {
		return opErrors.NewCodedError(opErrors.ErrCodeInvalidState, "register script has invalid post-state")
	}

	if flags.VerifyPostState {
		ctx.Register.WriteUint8(StatePostState)
		ctx.Register.WriteUint64(post.Checksum())
	}

	if flags.verifying() {
		marker, err := ctx.Register.ReadUint8()
		if err != nil {
			return opErrors.WrapCodedError(opErrors.ErrCodeMissingPostState, err, "register script not in post-state")
		}
		if marker != StatePostState {
			return opErrors.NewCodedError(opErrors.ErrCodeMissingPostState,
				"register script not in post-state (marker=0x%02x)", marker)
		}
		recorded, err := ctx.Register.ReadUint64()
		if err != nil {
			return opErrors.WrapCodedError(opErrors.ErrCodeMissingPostState, err, "register script not in post-state")
		}

		computed, err := register.Decode(encoding.NewStream(post.Bytes()))
		if err != nil {
			return opErrors.NewEncodingFailuref(err, "could not re-decode post-state of %s", op.Account)
		}
		if recorded != computed.Checksum() {
			e.metrics.PostStateMismatch()
			e.log.Error().
				Str("account", op.Account.String()).
				Str("source", op.Source.Short()).
				Hex("recorded", uint64Bytes(recorded)).
				Hex("computed", uint64Bytes(computed.Checksum())).
				Msg("post-state checksum mismatch")
			return opErrors.NewCodedError(opErrors.ErrCodePostStateMismatch, "register script has invalid post-state")
		}
	}

	if !flags.Persist {
		return nil
	}

	err := e.ledger.Update(func(w storage.Writer) error {
		err := w.WriteProof(c.proof)
		if err != nil {
			return fmt.Errorf("could not write proof %s: %w", c.proof, err)
		}
		err = w.WriteState(op.Account, post)
		if err != nil {
			return fmt.Errorf("could not write state of %s: %w", op.Account, err)
		}
		return nil
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return opErrors.NewAlreadySpentError("transaction is already spent: %s", op.Source.Short())
	}
	if err != nil {
		return opErrors.NewLedgerFailure(fmt.Errorf("could not commit credit: %w", err))
	}
	return nil
}

func uint64Bytes(v uint64) []byte {
	s := encoding.NewStream(nil)
	s.WriteUint64(v)
	return s.Bytes()
}

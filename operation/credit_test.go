package operation_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"

	"github.com/taoledger/ledger-node/model/encoding"
	"github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/model/register"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/operation"
	opErrors "github.com/taoledger/ledger-node/operation/errors"
	"github.com/taoledger/ledger-node/storage"
	"github.com/taoledger/ledger-node/storage/inmemory"
	"github.com/taoledger/ledger-node/utils/unittest"
)

const (
	registerTime = 1
	sourceTime   = 10
	claimTime    = 20
)

type CreditSuite struct {
	suite.Suite

	ledger *inmemory.Ledger
	exec   *operation.Executor
	caller ledger.Address
	logs   *bytes.Buffer
}

func TestCredit(t *testing.T) {
	suite.Run(t, new(CreditSuite))
}

func (s *CreditSuite) SetupTest() {
	s.ledger = inmemory.NewLedger()
	s.logs = &bytes.Buffer{}
	s.exec = operation.NewExecutor(unittest.LoggerWithWriter(s.logs), s.ledger, metrics.NewNoopCollector())
	s.caller = unittest.AddressFixture()
}

// put stores state at a fresh address.
func (s *CreditSuite) put(state *register.State) ledger.Address {
	address := unittest.AddressFixture()
	s.ledger.PutState(address, state)
	return address
}

func (s *CreditSuite) account(owner ledger.Address, identifier uint32, balance uint64) ledger.Address {
	return s.put(unittest.AccountFixture(owner, identifier, balance, registerTime))
}

func (s *CreditSuite) connect(tx *ledger.Transaction) ledger.TxHash {
	s.Require().NoError(s.ledger.InsertTransaction(tx))
	return tx.Hash()
}

// build produces the register stream of a credit transaction.
func (s *CreditSuite) build(op operation.CreditOp) (*ledger.Transaction, error) {
	tx := unittest.CreditTransaction(s.caller, claimTime, op)
	ctx := operation.NewContext(tx)
	err := s.exec.Execute(ctx, operation.BuildFlags)
	ctx.Flush()
	return tx, err
}

func (s *CreditSuite) run(tx *ledger.Transaction, flags operation.Flags) error {
	return s.exec.Execute(operation.NewContext(tx.Copy()), flags)
}

// claim builds, speculatively verifies and commits a credit.
func (s *CreditSuite) claim(op operation.CreditOp) error {
	tx, err := s.build(op)
	if err != nil {
		return err
	}
	err = s.run(tx, operation.MempoolFlags)
	if err != nil {
		return err
	}
	return s.run(tx, operation.CommitFlags)
}

func (s *CreditSuite) balance(address ledger.Address) uint64 {
	state, err := s.ledger.ReadState(address)
	s.Require().NoError(err)
	acct, err := state.Account()
	s.Require().NoError(err)
	return acct.Balance
}

func (s *CreditSuite) requireCode(err error, code opErrors.ErrorCode) {
	s.Require().Error(err)
	s.Require().True(opErrors.HasErrorCode(err, code), "expected %v, got: %v", code, err)
}

func (s *CreditSuite) coinbase(amount uint64) ledger.TxHash {
	return s.connect(unittest.CoinbaseTransaction(s.caller, sourceTime, amount))
}

func (s *CreditSuite) TestCoinbase() {
	target := s.account(s.caller, 0, 7)
	source := s.coinbase(50)

	op := operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50}
	s.Require().NoError(s.claim(op))
	s.Require().Equal(uint64(57), s.balance(target))

	state, err := s.ledger.ReadState(target)
	s.Require().NoError(err)
	s.Require().Equal(uint64(claimTime), state.Timestamp)

	s.Run("re-credit is rejected", func() {
		err := s.claim(op)
		s.requireCode(err, opErrors.ErrCodeAlreadySpent)
		s.Require().Equal(uint64(57), s.balance(target))
	})

	s.Run("re-credit into another account is rejected", func() {
		other := s.account(s.caller, 0, 0)
		op := op
		op.Account = other
		s.requireCode(s.claim(op), opErrors.ErrCodeAlreadySpent)
		s.Require().Equal(uint64(0), s.balance(other))
	})
}

func (s *CreditSuite) TestCoinbaseRejections() {
	s.Run("amount mismatch", func() {
		target := s.account(s.caller, 0, 0)
		source := s.coinbase(50)
		for _, amount := range []uint64{49, 51} {
			_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: amount})
			s.requireCode(err, opErrors.ErrCodeAmountMismatch)
		}
	})

	s.Run("different sigchain", func() {
		stranger := unittest.AddressFixture()
		source := s.connect(unittest.CoinbaseTransaction(stranger, sourceTime, 50))
		target := s.account(s.caller, 0, 0)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeSigchainMismatch)
	})

	s.Run("non-base account", func() {
		source := s.coinbase(50)
		target := s.account(s.caller, 9, 0)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeIdentifierMismatch)
	})

	s.Run("target owned by someone else", func() {
		source := s.coinbase(50)
		target := s.account(unittest.AddressFixture(), 0, 0)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeRegisterOwnership)
	})

	s.Run("target is not an account", func() {
		source := s.coinbase(50)
		target := s.put(unittest.RawFixture(s.caller, registerTime))
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeWrongRegisterType)
	})

	s.Run("source does not exist", func() {
		target := s.account(s.caller, 0, 0)
		_, err := s.build(operation.CreditOp{Source: unittest.TxHashFixture(), Proof: s.caller, Account: target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeTransactionNotFound)
		s.Require().Contains(err.Error(), "tx doesn't exist")
	})

	s.Run("target does not exist", func() {
		source := s.coinbase(50)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: unittest.AddressFixture(), Amount: 50})
		s.requireCode(err, opErrors.ErrCodeRegisterNotFound)
	})

	s.Run("balance overflow", func() {
		source := s.coinbase(2)
		target := s.account(s.caller, 0, ^uint64(0)-1)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 2})
		s.requireCode(err, opErrors.ErrCodeBalanceOverflow)
	})

	s.Run("claim older than last mutation", func() {
		source := s.coinbase(5)
		target := s.put(unittest.AccountFixture(s.caller, 0, 0, claimTime+1))
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 5})
		s.requireCode(err, opErrors.ErrCodeStaleRegister)
	})
}

// debit connects a debit of amount from a fresh account with the given
// identifier towards to.
func (s *CreditSuite) debit(identifier uint32, to ledger.Address, amount uint64) ledger.TxHash {
	sender := unittest.AddressFixture()
	from := s.account(sender, identifier, 1000)
	return s.connect(unittest.DebitTransaction(sender, sourceTime, from, to, amount))
}

func (s *CreditSuite) TestAccountDebit() {
	target := s.account(s.caller, 3, 10)
	source := s.debit(3, target, 40)

	op := operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 40}
	s.Require().NoError(s.claim(op))
	s.Require().Equal(uint64(50), s.balance(target))

	s.requireCode(s.claim(op), opErrors.ErrCodeAlreadySpent)
	s.Require().Equal(uint64(50), s.balance(target))
}

func (s *CreditSuite) TestAccountDebitRejections() {
	s.Run("identifier mismatch", func() {
		target := s.account(s.caller, 0, 0)
		source := s.debit(1, target, 40)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 40})
		s.requireCode(err, opErrors.ErrCodeIdentifierMismatch)
		s.Require().Equal(uint64(0), s.balance(target))
	})

	s.Run("amount mismatch", func() {
		target := s.account(s.caller, 0, 0)
		source := s.debit(0, target, 40)
		for _, amount := range []uint64{39, 41, 0} {
			_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: amount})
			s.requireCode(err, opErrors.ErrCodeAmountMismatch)
		}
	})

	s.Run("proof is not the caller", func() {
		target := s.account(s.caller, 0, 0)
		source := s.debit(0, target, 40)
		_, err := s.build(operation.CreditOp{Source: source, Proof: unittest.AddressFixture(), Account: target, Amount: 40})
		s.requireCode(err, opErrors.ErrCodeProofNotAuthorized)
	})

	s.Run("debit sent elsewhere", func() {
		target := s.account(s.caller, 0, 0)
		elsewhere := s.account(s.caller, 0, 0)
		source := s.debit(0, elsewhere, 40)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 40})
		s.requireCode(err, opErrors.ErrCodeRecipientMismatch)
	})

	s.Run("source is a credit", func() {
		target := s.account(s.caller, 0, 0)
		credit := s.connect(unittest.CreditTransaction(s.caller, sourceTime, operation.CreditOp{}))
		_, err := s.build(operation.CreditOp{Source: credit, Proof: s.caller, Account: target, Amount: 0})
		s.requireCode(err, opErrors.ErrCodeInvalidSource)
	})

	s.Run("debit to a token register", func() {
		target := s.account(s.caller, 0, 0)
		token := s.put(unittest.TokenFixture(s.caller, 1, 1000, registerTime))
		source := s.debit(0, token, 40)
		_, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 40})
		s.requireCode(err, opErrors.ErrCodeInvalidSource)
	})
}

// distribution sets up a token with the given supply, a debit of total from
// a token-class account into an object owned by the token, and a proof
// account holding balance of the token owned by the caller.
type distribution struct {
	source ledger.TxHash
	proof  ledger.Address
	target ledger.Address
}

func (s *CreditSuite) distribution(balance, total, supply uint64, proofTime uint64) distribution {
	issuer := unittest.AddressFixture()
	token := s.put(unittest.TokenFixture(issuer, 5, supply, registerTime))
	object := s.put(unittest.RawFixture(token, registerTime))
	from := s.account(issuer, 0, 10_000)
	source := s.connect(unittest.DebitTransaction(issuer, sourceTime, from, object, total))

	proof := s.put(unittest.AccountFixture(s.caller, 5, balance, proofTime))
	target := s.account(s.caller, 0, 0)
	return distribution{source: source, proof: proof, target: target}
}

func (s *CreditSuite) TestTemporalDistribution() {
	d := s.distribution(500, 100, 1000, registerTime)

	for _, amount := range []uint64{49, 51} {
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: amount})
		s.requireCode(err, opErrors.ErrCodeAmountMismatch)
	}

	op := operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50}
	s.Require().NoError(s.claim(op))
	s.Require().Equal(uint64(50), s.balance(d.target))

	s.requireCode(s.claim(op), opErrors.ErrCodeAlreadySpent)

	s.Run("the proof is spent, not the target", func() {
		spent, err := s.ledger.HasProof(storage.NewProofKey(d.proof, d.source), false)
		s.Require().NoError(err)
		s.Require().True(spent)
	})
}

func (s *CreditSuite) TestTemporalDistributionRejections() {
	s.Run("stale proof", func() {
		d := s.distribution(500, 100, 1000, sourceTime+1)
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeStaleProof)
	})

	s.Run("proof at source time is fresh", func() {
		d := s.distribution(500, 100, 1000, sourceTime)
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50})
		s.Require().NoError(err)
	})

	s.Run("proof owned by someone else", func() {
		d := s.distribution(500, 100, 1000, registerTime)
		state, err := s.ledger.ReadState(d.proof)
		s.Require().NoError(err)
		state.Owner = unittest.AddressFixture()
		s.ledger.PutState(d.proof, state)

		_, err = s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeProofNotAuthorized)
	})

	s.Run("proof is not an account", func() {
		d := s.distribution(500, 100, 1000, registerTime)
		s.ledger.PutState(d.proof, unittest.RawFixture(s.caller, registerTime))
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeProofRegisterInvalid)
	})

	s.Run("proof of another token", func() {
		d := s.distribution(500, 100, 1000, registerTime)
		s.ledger.PutState(d.proof, unittest.AccountFixture(s.caller, 6, 500, registerTime))
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeIdentifierMismatch)
	})

	s.Run("target of another identifier", func() {
		d := s.distribution(500, 100, 1000, registerTime)
		s.ledger.PutState(d.target, unittest.AccountFixture(s.caller, 2, 0, registerTime))
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: d.proof, Account: d.target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeIdentifierMismatch)
	})

	s.Run("missing proof register", func() {
		d := s.distribution(500, 100, 1000, registerTime)
		_, err := s.build(operation.CreditOp{Source: d.source, Proof: unittest.AddressFixture(), Account: d.target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeRegisterNotFound)
	})

	s.Run("object not owned by a token", func() {
		issuer := unittest.AddressFixture()
		object := s.put(unittest.RawFixture(s.account(issuer, 0, 0), registerTime))
		from := s.account(issuer, 0, 10_000)
		source := s.connect(unittest.DebitTransaction(issuer, sourceTime, from, object, 100))
		proof := s.put(unittest.AccountFixture(s.caller, 0, 500, registerTime))
		target := s.account(s.caller, 0, 0)

		_, err := s.build(operation.CreditOp{Source: source, Proof: proof, Account: target, Amount: 50})
		s.requireCode(err, opErrors.ErrCodeInvalidSource)
	})
}

func (s *CreditSuite) TestRegisterStreamRequired() {
	target := s.account(s.caller, 0, 0)
	source := s.coinbase(50)
	tx := unittest.CreditTransaction(s.caller, claimTime, operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})

	s.requireCode(s.run(tx, operation.CommitFlags), opErrors.ErrCodeMissingPreState)
	s.requireCode(s.run(tx, operation.MempoolFlags), opErrors.ErrCodeMissingPreState)

	s.Run("pre-state without post-state", func() {
		ctx := operation.NewContext(tx.Copy())
		err := s.exec.Execute(ctx, operation.Flags{CapturePreState: true})
		s.Require().NoError(err)
		ctx.Flush()
		s.requireCode(s.run(ctx.Tx, operation.CommitFlags), opErrors.ErrCodeMissingPostState)
	})

	s.Require().Equal(uint64(0), s.balance(target))
	s.Require().Equal(0, s.ledger.ProofCount())
}

func (s *CreditSuite) TestTamperedRegisterStream() {
	target := s.account(s.caller, 0, 0)
	source := s.coinbase(50)
	tx, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)

	for i := range tx.Register {
		tampered := tx.Copy()
		tampered.Register[i] ^= 0x01
		s.Require().Error(s.run(tampered, operation.CommitFlags), "byte %d", i)
	}
	s.Require().Equal(uint64(0), s.balance(target))
	s.Require().Equal(0, s.ledger.ProofCount())

	s.Require().NoError(s.run(tx, operation.CommitFlags))
	s.Require().Equal(uint64(50), s.balance(target))
}

func (s *CreditSuite) TestRegisterStreamMatchesStore() {
	target := s.account(s.caller, 0, 7)
	source := s.coinbase(50)
	tx, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)

	before, err := s.ledger.ReadState(target)
	s.Require().NoError(err)

	stream := encoding.NewStream(tx.Register)
	marker, err := stream.ReadUint8()
	s.Require().NoError(err)
	s.Require().Equal(operation.StatePreState, marker)
	pre, err := register.Decode(stream)
	s.Require().NoError(err)
	s.Require().Equal(before.Checksum(), pre.Checksum())

	marker, err = stream.ReadUint8()
	s.Require().NoError(err)
	s.Require().Equal(operation.StatePostState, marker)
	recorded, err := stream.ReadUint64()
	s.Require().NoError(err)
	_, err = stream.ReadUint8()
	s.Require().ErrorIs(err, encoding.ErrEndOfStream)

	s.Require().NoError(s.run(tx, operation.CommitFlags))
	after, err := s.ledger.ReadState(target)
	s.Require().NoError(err)
	s.Require().Equal(after.Checksum(), recorded)
	s.Require().NotEqual(before.Checksum(), recorded)
}

func (s *CreditSuite) TestPostStateMismatchIsLogged() {
	target := s.account(s.caller, 0, 0)
	source := s.coinbase(50)
	tx, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)

	tx.Register[len(tx.Register)-1] ^= 0xff
	s.requireCode(s.run(tx, operation.CommitFlags), opErrors.ErrCodePostStateMismatch)
	s.Require().Contains(s.logs.String(), "post-state checksum mismatch")
}

func (s *CreditSuite) TestStalePreState() {
	target := s.account(s.caller, 0, 0)
	first := s.coinbase(50)
	second := s.connect(unittest.CoinbaseTransaction(s.caller, sourceTime+1, 20))

	tx1, err := s.build(operation.CreditOp{Source: first, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)
	tx2, err := s.build(operation.CreditOp{Source: second, Proof: s.caller, Account: target, Amount: 20})
	s.Require().NoError(err)

	s.Require().NoError(s.run(tx1, operation.CommitFlags))
	// tx2 was built against the state before tx1
	s.requireCode(s.run(tx2, operation.CommitFlags), opErrors.ErrCodePreStateMismatch)

	tx2, err = s.build(operation.CreditOp{Source: second, Proof: s.caller, Account: target, Amount: 20})
	s.Require().NoError(err)
	s.Require().NoError(s.run(tx2, operation.CommitFlags))
	s.Require().Equal(uint64(70), s.balance(target))
}

func (s *CreditSuite) TestSpeculativeDoesNotWrite() {
	target := s.account(s.caller, 0, 0)
	source := s.coinbase(50)
	tx, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)

	s.Require().NoError(s.run(tx, operation.MempoolFlags))
	s.Require().NoError(s.run(tx, operation.MempoolFlags))
	s.Require().Equal(uint64(0), s.balance(target))
	s.Require().Equal(0, s.ledger.ProofCount())
}

func (s *CreditSuite) TestCommitIsAtomic() {
	target := s.account(s.caller, 0, 0)
	source := s.coinbase(50)
	tx, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)

	// crash between the proof write and the state write
	s.ledger.BeforeWriteState = func() error { return errors.New("power loss") }
	err = s.run(tx, operation.CommitFlags)
	s.Require().Error(err)
	s.Require().True(opErrors.IsFailure(err))
	s.Require().Equal(0, s.ledger.ProofCount())
	s.Require().Equal(uint64(0), s.balance(target))

	// the claim is still available once the store recovers
	s.ledger.BeforeWriteState = nil
	s.Require().NoError(s.run(tx, operation.CommitFlags))
	s.Require().Equal(uint64(50), s.balance(target))
	s.Require().Equal(1, s.ledger.ProofCount())
}

func (s *CreditSuite) TestConcurrentCommits() {
	target := s.account(s.caller, 0, 0)
	source := s.coinbase(50)
	tx, err := s.build(operation.CreditOp{Source: source, Proof: s.caller, Account: target, Amount: 50})
	s.Require().NoError(err)

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.run(tx, operation.CommitFlags)
			if err == nil {
				accepted.Inc()
				return
			}
			s.Assert().True(opErrors.IsAlreadySpentError(err), err.Error())
		}()
	}
	wg.Wait()

	s.Require().Equal(int32(1), accepted.Load())
	s.Require().Equal(uint64(50), s.balance(target))
}

func (s *CreditSuite) TestExecuteDispatch() {
	s.Run("coinbase and debit are sources only", func() {
		target := s.account(s.caller, 0, 0)
		s.Require().NoError(s.run(unittest.CoinbaseTransaction(s.caller, 1, 5), operation.CommitFlags))
		s.Require().NoError(s.run(unittest.DebitTransaction(s.caller, 1, target, target, 5), operation.CommitFlags))
		s.Require().Equal(uint64(0), s.balance(target))
	})

	s.Run("unknown opcode", func() {
		tx := &ledger.Transaction{Genesis: s.caller, Operation: []byte{0x7f}}
		s.requireCode(s.run(tx, operation.CommitFlags), opErrors.ErrCodeNotSupported)
	})

	s.Run("empty operation", func() {
		tx := &ledger.Transaction{Genesis: s.caller}
		s.requireCode(s.run(tx, operation.CommitFlags), opErrors.ErrCodeMalformedOperation)
	})

	s.Run("truncated credit", func() {
		op := operation.EncodeCredit(operation.CreditOp{Amount: 1})
		tx := &ledger.Transaction{Genesis: s.caller, Operation: op[:len(op)-1]}
		s.requireCode(s.run(tx, operation.CommitFlags), opErrors.ErrCodeMalformedOperation)
	})
}

func TestCreditMetrics(t *testing.T) {
	l := inmemory.NewLedger()
	collector := &countingMetrics{}
	exec := operation.NewExecutor(unittest.Logger(), l, collector)

	caller := unittest.AddressFixture()
	target := unittest.AddressFixture()
	l.PutState(target, unittest.AccountFixture(caller, 0, 0, registerTime))
	source := unittest.CoinbaseTransaction(caller, sourceTime, 5)
	require.NoError(t, l.InsertTransaction(source))

	op := operation.CreditOp{Source: source.Hash(), Proof: caller, Account: target, Amount: 5}
	require.NoError(t, exec.Credit(op, caller, operation.BuildFlags, operation.NewContext(unittest.CreditTransaction(caller, claimTime, op))))
	op.Amount = 6
	require.Error(t, exec.Credit(op, caller, operation.BuildFlags, operation.NewContext(unittest.CreditTransaction(caller, claimTime, op))))

	require.Equal(t, []string{"coinbase"}, collector.accepted)
	require.Equal(t, []string{string(opErrors.CategoryConservation)}, collector.rejected)
}

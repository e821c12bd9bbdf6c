// Package ledger implements the engine that admits transactions into the
// mempool and connects them to the ledger.
package ledger

import (
	"fmt"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	model "github.com/taoledger/ledger-node/model/ledger"
	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/module/mempool"
	"github.com/taoledger/ledger-node/module/metrics"
	"github.com/taoledger/ledger-node/operation"
	opErrors "github.com/taoledger/ledger-node/operation/errors"
	"github.com/taoledger/ledger-node/storage"
)

// Engine runs transactions through the executor at the two points where the
// node sees them: admission into the mempool, which is speculative, and
// connection, which persists.
type Engine struct {
	log     zerolog.Logger
	exec    *operation.Executor
	ledger  storage.Ledger
	claims  *mempool.Claims
	metrics module.EngineMetrics
	workers int

	admitted  *atomic.Uint64
	connected *atomic.Uint64
	rejected  *atomic.Uint64
}

// Stats are the engine's counters since start.
type Stats struct {
	Admitted  uint64
	Connected uint64
	Rejected  uint64
}

// New creates a ledger engine. The ledger must consult claims for
// speculative proof checks, otherwise two pending credits of the same source
// can both be admitted before one of them is claimed.
func New(
	log zerolog.Logger,
	exec *operation.Executor,
	ledger storage.Ledger,
	claims *mempool.Claims,
	collector module.EngineMetrics,
	workers int,
) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		log:       log.With().Str("engine", "ledger").Logger(),
		exec:      exec,
		ledger:    ledger,
		claims:    claims,
		metrics:   collector,
		workers:   workers,
		admitted:  atomic.NewUint64(0),
		connected: atomic.NewUint64(0),
		rejected:  atomic.NewUint64(0),
	}
}

// Admit verifies tx against the current ledger without writing, then records
// the proof it claims so no other pending transaction can claim it too.
func (e *Engine) Admit(tx *model.Transaction) error {
	hash := tx.Hash()
	log := e.log.With().Str("tx_hash", hash.Short()).Logger()

	err := e.admit(hash, tx)
	if err != nil {
		e.reject(metrics.StageAdmission)
		log.Debug().Err(err).Msg("transaction not admitted")
		return fmt.Errorf("could not admit transaction %s: %w", hash.Short(), err)
	}

	e.admitted.Inc()
	e.metrics.TransactionAdmitted()
	log.Debug().Msg("transaction admitted")
	return nil
}

func (e *Engine) admit(hash model.TxHash, tx *model.Transaction) error {
	err := e.exec.Execute(operation.NewContext(tx.Copy()), operation.MempoolFlags)
	if err != nil {
		return err
	}
	return e.claim(hash, tx)
}

// claim records the proof spent by tx in the mempool. A connect of the same
// proof may have committed since tx was executed, so the proof is checked
// against the store again while its lock is held.
func (e *Engine) claim(hash model.TxHash, tx *model.Transaction) error {
	key, ok, err := e.exec.ClaimKey(tx)
	if err != nil {
		return fmt.Errorf("could not resolve claimed proof: %w", err)
	}
	if !ok {
		return nil
	}

	release := e.ledger.Lock(key.LockKey())
	defer release()

	if !e.claims.Add(hash, key) {
		return opErrors.NewAlreadySpentError("proof %s is claimed by another pending transaction", key)
	}
	spent, err := e.ledger.HasProof(key, false)
	if err != nil {
		e.claims.Rem(hash)
		return opErrors.NewLedgerFailure(fmt.Errorf("could not check proof %s: %w", key, err))
	}
	if spent {
		e.claims.Rem(hash)
		return opErrors.NewAlreadySpentError("proof %s is already spent", key)
	}
	return nil
}

// AdmitBatch admits txs concurrently on the engine's worker pool. The
// returned slice holds the admission error of each transaction by index.
func (e *Engine) AdmitBatch(txs []*model.Transaction) []error {
	errs := make([]error, len(txs))
	wp := workerpool.New(e.workers)
	for i, tx := range txs {
		i, tx := i, tx
		wp.Submit(func() {
			errs[i] = e.Admit(tx)
		})
	}
	wp.StopWait()
	return errs
}

// Connect executes txs in order and persists their effects. Rejected
// transactions are dropped and reported in the returned error while the rest
// of the batch is connected. A failure of the ledger itself stops the batch.
func (e *Engine) Connect(txs []*model.Transaction) error {
	var errs error
	for _, tx := range txs {
		hash := tx.Hash()

		err := e.connect(tx)
		e.claims.Rem(hash)
		if err == nil {
			e.connected.Inc()
			e.metrics.TransactionConnected()
			continue
		}

		e.reject(metrics.StageConnection)
		err = fmt.Errorf("could not connect transaction %s: %w", hash.Short(), err)
		if opErrors.IsFailure(err) {
			e.log.Error().Err(err).Msg("ledger failure, aborting batch")
			return multierr.Append(errs, err)
		}
		e.log.Warn().Err(err).Msg("transaction rejected at connect")
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (e *Engine) connect(tx *model.Transaction) error {
	err := e.exec.Execute(operation.NewContext(tx.Copy()), operation.CommitFlags)
	if err != nil {
		return err
	}
	err = e.ledger.InsertTransaction(tx)
	if err != nil {
		return opErrors.NewLedgerFailure(fmt.Errorf("could not store transaction: %w", err))
	}
	return nil
}

func (e *Engine) reject(stage string) {
	e.rejected.Inc()
	e.metrics.TransactionRejected(stage)
}

// Pending returns the number of proofs claimed by admitted transactions.
func (e *Engine) Pending() uint {
	return e.claims.Size()
}

func (e *Engine) Stats() Stats {
	return Stats{
		Admitted:  e.admitted.Load(),
		Connected: e.connected.Load(),
		Rejected:  e.rejected.Load(),
	}
}

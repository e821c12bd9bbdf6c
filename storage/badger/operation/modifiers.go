package operation

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/sethvargo/go-retry"

	"github.com/taoledger/ledger-node/module"
	"github.com/taoledger/ledger-node/storage"
)

// RetryOnConflict runs op through action until it commits without a
// serialization conflict, waiting a little longer after each conflict. It
// gives up after maxRetries conflicts and returns badger.ErrConflict.
func RetryOnConflict(metrics module.StorageMetrics, maxRetries uint64, action func(func(*badger.Txn) error) error, op func(tx *badger.Txn) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(time.Millisecond))
	return retry.Do(context.Background(), backoff, func(context.Context) error {
		err := action(op)
		if errors.Is(err, badger.ErrConflict) {
			metrics.RetryOnConflict()
			return retry.RetryableError(err)
		}
		return err
	})
}

// SkipDuplicates turns storage.ErrAlreadyExists into success, for inserts
// that may legitimately be repeated.
func SkipDuplicates(op func(*badger.Txn) error) func(tx *badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := op(tx)
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil
		}
		return err
	}
}

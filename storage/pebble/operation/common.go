package operation

import (
	"errors"

	"github.com/cockroachdb/pebble"

	"github.com/taoledger/ledger-node/module/irrecoverable"
	"github.com/taoledger/ledger-node/storage"
)

func upsert(key []byte, val interface{}) func(pebble.Writer) error {
	return func(w pebble.Writer) error {
		value, err := encodeEntity(val)
		if err != nil {
			return err
		}

		err = w.Set(key, value, nil)
		if err != nil {
			return irrecoverable.NewExceptionf("failed to store data: %w", err)
		}

		return nil
	}
}

// insert stores val under key unless the key is already present, reading
// through r. r must observe the writes of w for this to hold within a batch.
// Error returns:
//   - storage.ErrAlreadyExists if the key exists
func insert(r pebble.Reader, key []byte, val interface{}) func(pebble.Writer) error {
	return func(w pebble.Writer) error {
		var keyExists bool
		err := exists(key, &keyExists)(r)
		if err != nil {
			return err
		}
		if keyExists {
			return storage.ErrAlreadyExists
		}
		return upsert(key, val)(w)
	}
}

func retrieve(key []byte, sc interface{}) func(r pebble.Reader) error {
	return func(r pebble.Reader) error {
		val, closer, err := r.Get(key)
		if err != nil {
			return convertNotFoundError(err)
		}
		defer closer.Close()

		return decodeValue(val, sc)
	}
}

func exists(key []byte, keyExists *bool) func(r pebble.Reader) error {
	return func(r pebble.Reader) error {
		_, closer, err := r.Get(key)
		if err != nil {
			if errors.Is(err, pebble.ErrNotFound) {
				*keyExists = false
				return nil
			}

			// exception while checking for the key
			return irrecoverable.NewExceptionf("could not load data: %w", err)
		}
		*keyExists = true
		defer closer.Close()
		return nil
	}
}

func convertNotFoundError(err error) error {
	if errors.Is(err, pebble.ErrNotFound) {
		return storage.ErrNotFound
	}
	return err
}

package operation

import (
	"github.com/taoledger/ledger-node/model/encoding"
	"github.com/taoledger/ledger-node/model/ledger"
)

// Context carries the streams of the transaction being executed. The
// register stream is written while building and read back while verifying.
type Context struct {
	Tx        *ledger.Transaction
	Operation *encoding.Stream
	Register  *encoding.Stream
}

func NewContext(tx *ledger.Transaction) *Context {
	return &Context{
		Tx:        tx,
		Operation: encoding.NewStream(tx.Operation),
		Register:  encoding.NewStream(tx.Register),
	}
}

// Flush stores the register stream back into the transaction.
func (c *Context) Flush() {
	c.Tx.Register = append([]byte(nil), c.Register.Bytes()...)
}

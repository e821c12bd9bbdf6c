package operation

import "fmt"

// Opcode is the leading byte of an operation stream.
type Opcode uint8

const (
	OpDebit    Opcode = 0x20
	OpCredit   Opcode = 0x21
	OpCoinbase Opcode = 0x22
)

func (op Opcode) String() string {
	switch op {
	case OpDebit:
		return "debit"
	case OpCredit:
		return "credit"
	case OpCoinbase:
		return "coinbase"
	default:
		return fmt.Sprintf("opcode(0x%02x)", uint8(op))
	}
}

// Register-context stream markers.
const (
	StatePreState  uint8 = 0x01
	StatePostState uint8 = 0x02
)

package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/taoledger/ledger-node/model/ledger"
)

const (

	// codes for special database markers

	codeDBType = 1 // specifies a database type

	// codes for ledger entities

	codeRegister    = 10 // current state of a register, by address
	codeTransaction = 11 // connected transactions, by hash
	codeProof       = 12 // spent proof keys, by subject and source tx
)

func makePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, keyPartToBinary(key)...)
	}
	return prefix
}

func keyPartToBinary(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, i)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, i)
		return b
	case string:
		return []byte(i)
	case []byte:
		return i
	case ledger.Address:
		return i[:]
	case ledger.TxHash:
		return i[:]
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}

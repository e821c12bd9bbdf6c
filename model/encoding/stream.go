package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/taoledger/ledger-node/model/ledger"
)

// MaxBytesLength bounds length-prefixed fields so a corrupt prefix cannot
// trigger a huge allocation.
const MaxBytesLength = 1 << 20

// ErrEndOfStream is returned when a read needs more bytes than remain.
var ErrEndOfStream = errors.New("end of stream")

// Stream is an append-only byte buffer with an independent read cursor.
// Writes always go to the end; reads advance from the front. It is not safe
// for concurrent use.
type Stream struct {
	buf []byte
	pos int
}

// NewStream wraps a copy of b. The read cursor starts at the beginning.
func NewStream(b []byte) *Stream {
	return &Stream{buf: append([]byte(nil), b...)}
}

// Bytes returns the whole buffer, independent of the read cursor.
func (s *Stream) Bytes() []byte {
	return s.buf
}

func (s *Stream) Len() int {
	return len(s.buf)
}

// Remaining is the number of unread bytes.
func (s *Stream) Remaining() int {
	return len(s.buf) - s.pos
}

// Rewind moves the read cursor back to the beginning.
func (s *Stream) Rewind() {
	s.pos = 0
}

// Seek moves the read cursor to the end, so that subsequent reads only see
// data appended afterwards.
func (s *Stream) Seek() {
	s.pos = len(s.buf)
}

func (s *Stream) next(n int) ([]byte, error) {
	if n < 0 || s.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n, s.Remaining(), ErrEndOfStream)
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *Stream) WriteUint8(v uint8) {
	s.buf = append(s.buf, v)
}

func (s *Stream) WriteUint32(v uint32) {
	s.buf = binary.BigEndian.AppendUint32(s.buf, v)
}

func (s *Stream) WriteUint64(v uint64) {
	s.buf = binary.BigEndian.AppendUint64(s.buf, v)
}

func (s *Stream) WriteAddress(a ledger.Address) {
	s.buf = append(s.buf, a[:]...)
}

func (s *Stream) WriteTxHash(h ledger.TxHash) {
	s.buf = append(s.buf, h[:]...)
}

// WriteRaw appends b without a length prefix.
func (s *Stream) WriteRaw(b []byte) {
	s.buf = append(s.buf, b...)
}

// WriteBytes appends b prefixed with its uvarint length.
func (s *Stream) WriteBytes(b []byte) {
	s.buf = binary.AppendUvarint(s.buf, uint64(len(b)))
	s.buf = append(s.buf, b...)
}

func (s *Stream) ReadUint8() (uint8, error) {
	b, err := s.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *Stream) ReadUint32() (uint32, error) {
	b, err := s.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (s *Stream) ReadUint64() (uint64, error) {
	b, err := s.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *Stream) ReadAddress() (ledger.Address, error) {
	var a ledger.Address
	b, err := s.next(ledger.AddressLength)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

func (s *Stream) ReadTxHash() (ledger.TxHash, error) {
	var h ledger.TxHash
	b, err := s.next(ledger.TxHashLength)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// ReadBytes reads a uvarint length prefix followed by that many bytes. The
// returned slice is a copy.
func (s *Stream) ReadBytes() ([]byte, error) {
	n, read := binary.Uvarint(s.buf[s.pos:])
	if read == 0 {
		return nil, fmt.Errorf("missing length prefix: %w", ErrEndOfStream)
	}
	if read < 0 {
		return nil, fmt.Errorf("length prefix overflows uint64")
	}
	if n > MaxBytesLength {
		return nil, fmt.Errorf("length prefix %d exceeds limit %d", n, MaxBytesLength)
	}
	s.pos += read
	b, err := s.next(int(n))
	if err != nil {
		s.pos -= read
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

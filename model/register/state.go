package register

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/taoledger/ledger-node/model/encoding"
	"github.com/taoledger/ledger-node/model/ledger"
)

// MaxPayloadSize is the largest payload a register may carry.
const MaxPayloadSize = 1 << 16

// ErrWrongType is returned when a typed view is requested from a register of
// another type.
var ErrWrongType = errors.New("register has wrong type")

// State is the persistent record for one register address. Data holds the
// canonical encoding of the payload selected by Type.
type State struct {
	Type      Type           `msgpack:"type"`
	Owner     ledger.Address `msgpack:"owner"`
	Timestamp uint64         `msgpack:"timestamp"`
	Data      []byte         `msgpack:"data"`
}

// NewState builds a state from a typed payload.
func NewState(owner ledger.Address, timestamp uint64, payload Payload) *State {
	st := &State{
		Owner:     owner,
		Timestamp: timestamp,
	}
	st.SetPayload(payload)
	return st
}

// SetPayload clears the staged data and re-serialises it from payload. The
// register type follows the payload.
func (s *State) SetPayload(payload Payload) {
	buf := encoding.NewStream(nil)
	payload.encode(buf)
	s.Type = payload.Type()
	s.Data = buf.Bytes()
}

// Payload decodes the variant selected by the register type.
func (s *State) Payload() (Payload, error) {
	switch s.Type {
	case TypeRaw:
		return Raw(clone(s.Data)), nil
	case TypeReadOnly:
		return ReadOnly(clone(s.Data)), nil
	case TypeObject:
		return Object(clone(s.Data)), nil
	case TypeName:
		return Name(clone(s.Data)), nil
	case TypeNamespace:
		return Namespace(clone(s.Data)), nil
	case TypeAccount:
		return decodeAccount(s.Data)
	case TypeToken:
		return decodeToken(s.Data)
	default:
		return nil, fmt.Errorf("unknown register type %d", uint8(s.Type))
	}
}

// Account returns the account view of the register.
func (s *State) Account() (Account, error) {
	if s.Type != TypeAccount {
		return Account{}, fmt.Errorf("expected %s, got %s: %w", TypeAccount, s.Type, ErrWrongType)
	}
	return decodeAccount(s.Data)
}

// Token returns the token view of the register.
func (s *State) Token() (Token, error) {
	if s.Type != TypeToken {
		return Token{}, fmt.Errorf("expected %s, got %s: %w", TypeToken, s.Type, ErrWrongType)
	}
	return decodeToken(s.Data)
}

// IsValid reports whether the state is consistent with its type schema.
func (s *State) IsValid() bool {
	if !s.Type.Valid() {
		return false
	}
	if len(s.Data) > MaxPayloadSize {
		return false
	}
	switch s.Type {
	case TypeAccount:
		_, err := decodeAccount(s.Data)
		return err == nil
	case TypeToken:
		t, err := decodeToken(s.Data)
		if err != nil {
			return false
		}
		return t.MaxSupply > 0 && t.CurrentSupply <= t.MaxSupply
	}
	return true
}

// Encode appends the canonical encoding of the state to the stream.
func (s *State) Encode(stream *encoding.Stream) {
	stream.WriteUint8(uint8(s.Type))
	stream.WriteAddress(s.Owner)
	stream.WriteUint64(s.Timestamp)
	stream.WriteBytes(s.Data)
}

// Bytes returns the canonical encoding of the state.
func (s *State) Bytes() []byte {
	stream := encoding.NewStream(nil)
	s.Encode(stream)
	return stream.Bytes()
}

// Decode reads a state in canonical encoding from the stream.
func Decode(stream *encoding.Stream) (*State, error) {
	var st State

	typ, err := stream.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("could not read register type: %w", err)
	}
	st.Type = Type(typ)
	if !st.Type.Valid() {
		return nil, fmt.Errorf("unknown register type %d", typ)
	}

	st.Owner, err = stream.ReadAddress()
	if err != nil {
		return nil, fmt.Errorf("could not read register owner: %w", err)
	}
	st.Timestamp, err = stream.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("could not read register timestamp: %w", err)
	}
	st.Data, err = stream.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("could not read register data: %w", err)
	}

	return &st, nil
}

// Checksum is the first eight bytes, read big-endian, of the Keccak-256
// digest of the canonical encoding. Two nodes holding the same state always
// compute the same checksum.
func (s *State) Checksum() uint64 {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(s.Bytes())
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}

// Copy returns a deep copy of the state.
func (s *State) Copy() *State {
	cp := *s
	cp.Data = clone(s.Data)
	return &cp
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

package register

import (
	"fmt"

	"github.com/taoledger/ledger-node/model/encoding"
)

// Payload is the typed content of a register. Each variant knows its own
// register type and canonical encoding.
type Payload interface {
	Type() Type
	encode(s *encoding.Stream)
}

// Raw is an unstructured, writable register.
type Raw []byte

// ReadOnly is an unstructured register that cannot be overwritten.
type ReadOnly []byte

// Object is an opaque structured object.
type Object []byte

// Name is a name record pointing at a register.
type Name []byte

// Namespace is a namespace record.
type Namespace []byte

func (Raw) Type() Type       { return TypeRaw }
func (ReadOnly) Type() Type  { return TypeReadOnly }
func (Object) Type() Type    { return TypeObject }
func (Name) Type() Type      { return TypeName }
func (Namespace) Type() Type { return TypeNamespace }

func (p Raw) encode(s *encoding.Stream)       { s.WriteRaw(p) }
func (p ReadOnly) encode(s *encoding.Stream)  { s.WriteRaw(p) }
func (p Object) encode(s *encoding.Stream)    { s.WriteRaw(p) }
func (p Name) encode(s *encoding.Stream)      { s.WriteRaw(p) }
func (p Namespace) encode(s *encoding.Stream) { s.WriteRaw(p) }

// Account holds a balance of one token class. Identifier 0 is the base
// currency.
type Account struct {
	Version    uint32
	Identifier uint32
	Balance    uint64
}

func (Account) Type() Type { return TypeAccount }

func (a Account) encode(s *encoding.Stream) {
	s.WriteUint32(a.Version)
	s.WriteUint32(a.Identifier)
	s.WriteUint64(a.Balance)
}

// Token defines a token class and its supply.
type Token struct {
	Version       uint32
	Identifier    uint32
	MaxSupply     uint64
	CurrentSupply uint64
}

func (Token) Type() Type { return TypeToken }

func (t Token) encode(s *encoding.Stream) {
	s.WriteUint32(t.Version)
	s.WriteUint32(t.Identifier)
	s.WriteUint64(t.MaxSupply)
	s.WriteUint64(t.CurrentSupply)
}

func decodeAccount(data []byte) (Account, error) {
	var a Account
	s := encoding.NewStream(data)
	var err error
	if a.Version, err = s.ReadUint32(); err != nil {
		return a, fmt.Errorf("could not read account version: %w", err)
	}
	if a.Identifier, err = s.ReadUint32(); err != nil {
		return a, fmt.Errorf("could not read account identifier: %w", err)
	}
	if a.Balance, err = s.ReadUint64(); err != nil {
		return a, fmt.Errorf("could not read account balance: %w", err)
	}
	if s.Remaining() != 0 {
		return a, fmt.Errorf("account payload has %d trailing bytes", s.Remaining())
	}
	return a, nil
}

func decodeToken(data []byte) (Token, error) {
	var t Token
	s := encoding.NewStream(data)
	var err error
	if t.Version, err = s.ReadUint32(); err != nil {
		return t, fmt.Errorf("could not read token version: %w", err)
	}
	if t.Identifier, err = s.ReadUint32(); err != nil {
		return t, fmt.Errorf("could not read token identifier: %w", err)
	}
	if t.MaxSupply, err = s.ReadUint64(); err != nil {
		return t, fmt.Errorf("could not read token max supply: %w", err)
	}
	if t.CurrentSupply, err = s.ReadUint64(); err != nil {
		return t, fmt.Errorf("could not read token current supply: %w", err)
	}
	if s.Remaining() != 0 {
		return t, fmt.Errorf("token payload has %d trailing bytes", s.Remaining())
	}
	return t, nil
}

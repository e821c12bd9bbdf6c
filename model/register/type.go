package register

import "fmt"

// Type selects the payload schema of a register.
type Type uint8

const (
	TypeRaw Type = iota + 1
	TypeReadOnly
	TypeAccount
	TypeToken
	TypeObject
	TypeName
	TypeNamespace
)

func (t Type) Valid() bool {
	return t >= TypeRaw && t <= TypeNamespace
}

func (t Type) String() string {
	switch t {
	case TypeRaw:
		return "raw"
	case TypeReadOnly:
		return "readonly"
	case TypeAccount:
		return "account"
	case TypeToken:
		return "token"
	case TypeObject:
		return "object"
	case TypeName:
		return "name"
	case TypeNamespace:
		return "namespace"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

package operation

import "strings"

// Flags control how an operation is executed. They combine freely.
type Flags struct {
	// CapturePreState reads the target register from the store and appends a
	// pre-state record to the register stream. Set when building a
	// transaction.
	CapturePreState bool

	// VerifyPostState appends the checksum of the computed post-state to the
	// register stream, for verifiers to check against.
	VerifyPostState bool

	// Persist verifies the register stream and writes the proof and the new
	// state to the store.
	Persist bool

	// Speculative verifies the register stream without writing. Proofs
	// claimed by other admitted transactions count as spent.
	Speculative bool
}

var (
	// BuildFlags produce the register stream of a new transaction.
	BuildFlags = Flags{CapturePreState: true, VerifyPostState: true}

	// MempoolFlags admit a transaction speculatively.
	MempoolFlags = Flags{Speculative: true}

	// CommitFlags connect a transaction and persist its effects.
	CommitFlags = Flags{Persist: true}
)

// verifying is true when the register stream must be read back and checked.
func (f Flags) verifying() bool {
	return f.Persist || f.Speculative
}

func (f Flags) String() string {
	var names []string
	if f.CapturePreState {
		names = append(names, "prestate")
	}
	if f.VerifyPostState {
		names = append(names, "poststate")
	}
	if f.Persist {
		names = append(names, "write")
	}
	if f.Speculative {
		names = append(names, "mempool")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

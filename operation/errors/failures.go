package errors

import (
	"fmt"
)

// UnknownFailure captures an error that carries no code
type UnknownFailure struct {
	err error
}

// NewUnknownFailure constructs a new UnknownFailure
func NewUnknownFailure(err error) *UnknownFailure {
	return &UnknownFailure{err: err}
}

func (e *UnknownFailure) Error() string {
	return fmt.Sprintf("%s unknown failure: %s", e.FailureCode().String(), e.err.Error())
}

// FailureCode returns the failure code
func (e *UnknownFailure) FailureCode() FailureCode {
	return FailureCodeUnknownFailure
}

func (e *UnknownFailure) Unwrap() error {
	return e.err
}

// EncodingFailure captures a fatal error sourced from encoding issues
type EncodingFailure struct {
	err error
}

// NewEncodingFailuref formats and returns a new EncodingFailure
func NewEncodingFailuref(err error, msg string, args ...interface{}) *EncodingFailure {
	return &EncodingFailure{
		err: fmt.Errorf("%s: %w", fmt.Sprintf(msg, args...), err),
	}
}

func (e *EncodingFailure) Error() string {
	return fmt.Sprintf("%s encoding failed: %s", e.FailureCode().String(), e.err.Error())
}

// FailureCode returns the failure code
func (e *EncodingFailure) FailureCode() FailureCode {
	return FailureCodeEncodingFailure
}

func (e *EncodingFailure) Unwrap() error {
	return e.err
}

// LedgerFailure captures a fatal error caused by the register or proof store
type LedgerFailure struct {
	err error
}

// NewLedgerFailure constructs a new LedgerFailure
func NewLedgerFailure(err error) *LedgerFailure {
	return &LedgerFailure{err: err}
}

func (e *LedgerFailure) Error() string {
	return fmt.Sprintf("%s ledger returns unsuccessful: %s", e.FailureCode().String(), e.err.Error())
}

// FailureCode returns the failure code
func (e *LedgerFailure) FailureCode() FailureCode {
	return FailureCodeLedgerFailure
}

func (e *LedgerFailure) Unwrap() error {
	return e.err
}

package errors

import (
	stdErrors "errors"
	"fmt"
)

// CodedError is a rejection of an operation. The transaction is invalid; the
// node keeps running.
type CodedError interface {
	Code() ErrorCode

	error
}

// CodedFailure is a fault of the node itself (storage, encoding). It is not a
// statement about the transaction.
type CodedFailure interface {
	FailureCode() FailureCode

	error
}

type codedError struct {
	code ErrorCode
	err  error
}

// NewCodedError formats a new coded error.
func NewCodedError(code ErrorCode, format string, args ...interface{}) CodedError {
	return codedError{
		code: code,
		err:  fmt.Errorf(format, args...),
	}
}

// WrapCodedError wraps err, keeping it available to errors.Is / errors.As.
func WrapCodedError(code ErrorCode, err error, prefixMsgFormat string, formatArguments ...interface{}) CodedError {
	if prefixMsgFormat != "" {
		msg := fmt.Sprintf(prefixMsgFormat, formatArguments...)
		err = fmt.Errorf("%s: %w", msg, err)
	}
	return codedError{
		code: code,
		err:  err,
	}
}

func (e codedError) Unwrap() error {
	return e.err
}

func (e codedError) Error() string {
	return fmt.Sprintf("%v %v", e.code, e.err)
}

func (e codedError) Code() ErrorCode {
	return e.code
}

// Find returns the first coded error in the chain with the given code.
func Find(originalErr error, code ErrorCode) CodedError {
	if originalErr == nil {
		return nil
	}

	var unwrappable interface{ Unwrap() error }
	err := originalErr
	for err != nil {
		coded, ok := err.(CodedError)
		if ok && coded.Code() == code {
			return coded
		}
		if !stdErrors.As(err, &unwrappable) {
			return nil
		}
		err = unwrappable.Unwrap()
	}
	return nil
}

// HasErrorCode reports whether any error in the chain carries the code.
func HasErrorCode(err error, code ErrorCode) bool {
	return Find(err, code) != nil
}

// CodeOf returns the outermost error code of err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var coded CodedError
	if stdErrors.As(err, &coded) {
		return coded.Code(), true
	}
	return 0, false
}

// CategoryOf classifies err for metrics and logs. Uncoded errors are
// failures.
func CategoryOf(err error) Category {
	if IsFailure(err) {
		return CategoryFailure
	}
	code, ok := CodeOf(err)
	if !ok {
		return CategoryFailure
	}
	return code.Category()
}

// IsFailure reports whether err is (or wraps) a node failure.
func IsFailure(err error) bool {
	if err == nil {
		return false
	}
	var failure CodedFailure
	return stdErrors.As(err, &failure)
}

// SplitErrorTypes splits err into a transaction rejection and a node
// failure. Uncoded errors are treated as failures.
func SplitErrorTypes(inp error) (err CodedError, failure CodedFailure) {
	if inp == nil {
		return nil, nil
	}

	if stdErrors.As(inp, &failure) {
		return nil, failure
	}

	if stdErrors.As(inp, &err) {
		return err, nil
	}

	return nil, NewUnknownFailure(inp)
}

func NewTransactionNotFoundError(format string, args ...interface{}) CodedError {
	return NewCodedError(ErrCodeTransactionNotFound, format, args...)
}

func NewRegisterNotFoundError(format string, args ...interface{}) CodedError {
	return NewCodedError(ErrCodeRegisterNotFound, format, args...)
}

func NewAlreadySpentError(format string, args ...interface{}) CodedError {
	return NewCodedError(ErrCodeAlreadySpent, format, args...)
}

func NewAmountMismatchError(claimed, expected uint64) CodedError {
	return NewCodedError(ErrCodeAmountMismatch,
		"credit and debit totals don't match (claimed=%d, expected=%d)", claimed, expected)
}

func NewIdentifierMismatchError(format string, args ...interface{}) CodedError {
	return NewCodedError(ErrCodeIdentifierMismatch, format, args...)
}

func NewMalformedOperationError(err error, format string, args ...interface{}) CodedError {
	return WrapCodedError(ErrCodeMalformedOperation, err, format, args...)
}

func IsAlreadySpentError(err error) bool {
	return HasErrorCode(err, ErrCodeAlreadySpent)
}

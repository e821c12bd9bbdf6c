package errors

import "fmt"

type ErrorCode uint16

func (ec ErrorCode) String() string {
	return fmt.Sprintf("[Error Code: %d]", ec)
}

type FailureCode uint16

func (fc FailureCode) String() string {
	return fmt.Sprintf("[Failure Code: %d]", fc)
}

const (
	FailureCodeUnknownFailure  FailureCode = 2000
	FailureCodeEncodingFailure FailureCode = 2001
	FailureCodeLedgerFailure   FailureCode = 2002
)

const (
	// not found errors 1000 - 1049
	ErrCodeTransactionNotFound ErrorCode = 1000
	ErrCodeRegisterNotFound    ErrorCode = 1001

	// authorization errors 1050 - 1099
	ErrCodeRegisterOwnership    ErrorCode = 1050
	ErrCodeSigchainMismatch     ErrorCode = 1051
	ErrCodeProofNotAuthorized   ErrorCode = 1052
	ErrCodeRecipientMismatch    ErrorCode = 1053
	ErrCodeProofRegisterInvalid ErrorCode = 1054

	// conservation errors 1100 - 1149
	ErrCodeAmountMismatch     ErrorCode = 1100
	ErrCodeIdentifierMismatch ErrorCode = 1101
	ErrCodeBalanceOverflow    ErrorCode = 1102
	ErrCodeAlreadySpent       ErrorCode = 1103

	// protocol errors 1150 - 1199
	ErrCodeMissingPreState    ErrorCode = 1150
	ErrCodeMissingPostState   ErrorCode = 1151
	ErrCodePostStateMismatch  ErrorCode = 1152
	ErrCodePreStateMismatch   ErrorCode = 1153
	ErrCodeMalformedOperation ErrorCode = 1154
	ErrCodeInvalidState       ErrorCode = 1155
	ErrCodeNotSupported       ErrorCode = 1156
	ErrCodeInvalidSource      ErrorCode = 1157
	ErrCodeWrongRegisterType  ErrorCode = 1158

	// staleness errors 1200 - 1249
	ErrCodeStaleProof    ErrorCode = 1200
	ErrCodeStaleRegister ErrorCode = 1201
)

// Category is the coarse class of a rejection.
type Category string

const (
	CategoryNotFound      Category = "not_found"
	CategoryAuthorization Category = "authorization"
	CategoryConservation  Category = "conservation"
	CategoryProtocol      Category = "protocol"
	CategoryStaleness     Category = "staleness"
	CategoryFailure       Category = "failure"
)

// Category maps an error code onto its class by range.
func (ec ErrorCode) Category() Category {
	switch {
	case ec >= 1000 && ec < 1050:
		return CategoryNotFound
	case ec >= 1050 && ec < 1100:
		return CategoryAuthorization
	case ec >= 1100 && ec < 1150:
		return CategoryConservation
	case ec >= 1150 && ec < 1200:
		return CategoryProtocol
	case ec >= 1200 && ec < 1250:
		return CategoryStaleness
	default:
		return CategoryFailure
	}
}

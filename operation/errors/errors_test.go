package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorHandling(t *testing.T) {
	require.False(t, IsFailure(nil))

	t.Run("test nested coded errors", func(t *testing.T) {
		e1 := NewRegisterNotFoundError("register %s", "abcd")
		e2 := WrapCodedError(ErrCodeInvalidSource, e1, "source")
		e3 := fmt.Errorf("wrapped: %w", e2)

		require.True(t, HasErrorCode(e3, ErrCodeRegisterNotFound))
		require.True(t, HasErrorCode(e3, ErrCodeInvalidSource))
		require.False(t, HasErrorCode(e3, ErrCodeAlreadySpent))
		require.False(t, IsFailure(e3))

		code, ok := CodeOf(e3)
		require.True(t, ok)
		require.Equal(t, ErrCodeInvalidSource, code)

		txErr, vmErr := SplitErrorTypes(e3)
		require.Nil(t, vmErr)
		require.Equal(t, e2, txErr)
	})

	t.Run("test failures are split out", func(t *testing.T) {
		e1 := NewLedgerFailure(fmt.Errorf("disk on fire"))
		e2 := fmt.Errorf("commit: %w", e1)
		require.True(t, IsFailure(e2))

		txErr, failure := SplitErrorTypes(e2)
		require.Nil(t, txErr)
		require.Equal(t, FailureCodeLedgerFailure, failure.FailureCode())
		require.Equal(t, CategoryFailure, CategoryOf(e2))
	})

	t.Run("test uncoded error is unknown failure", func(t *testing.T) {
		txErr, failure := SplitErrorTypes(fmt.Errorf("boom"))
		require.Nil(t, txErr)
		require.Equal(t, FailureCodeUnknownFailure, failure.FailureCode())
	})

	t.Run("test nil", func(t *testing.T) {
		txErr, failure := SplitErrorTypes(nil)
		require.Nil(t, txErr)
		require.Nil(t, failure)
		require.Nil(t, Find(nil, ErrCodeAlreadySpent))
	})
}

func TestErrorCategories(t *testing.T) {
	cases := map[ErrorCode]Category{
		ErrCodeTransactionNotFound: CategoryNotFound,
		ErrCodeRegisterNotFound:    CategoryNotFound,
		ErrCodeRegisterOwnership:   CategoryAuthorization,
		ErrCodeProofNotAuthorized:  CategoryAuthorization,
		ErrCodeAmountMismatch:      CategoryConservation,
		ErrCodeIdentifierMismatch:  CategoryConservation,
		ErrCodeAlreadySpent:        CategoryConservation,
		ErrCodePostStateMismatch:   CategoryProtocol,
		ErrCodeMissingPreState:     CategoryProtocol,
		ErrCodeStaleProof:          CategoryStaleness,
	}
	for code, category := range cases {
		require.Equal(t, category, code.Category(), code.String())
		require.Equal(t, category, CategoryOf(NewCodedError(code, "x")))
	}
}

func TestAmountMismatchMessage(t *testing.T) {
	err := NewAmountMismatchError(51, 50)
	require.Contains(t, err.Error(), "credit and debit totals don't match")
	require.Contains(t, err.Error(), "[Error Code: 1100]")
}

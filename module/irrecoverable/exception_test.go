package irrecoverable

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestException(t *testing.T) {
	cause := errors.New("corrupt value")
	err := fmt.Errorf("reading register: %w", NewExceptionf("could not decode: %w", cause))

	assert.True(t, IsException(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsException(cause))
	assert.Contains(t, err.Error(), "could not decode: corrupt value")
}

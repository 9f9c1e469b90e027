package carlist_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/carlist"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := carlist.Errorf(carlist.EINVALID, "page %d out of range", 0)

	assert.Equal(t, carlist.EINVALID, carlist.ErrorCode(err))
	assert.Equal(t, "page 0 out of range", carlist.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("page 3: %w", carlist.Errorf(carlist.EINVALID, "failed to parse HTML"))

	assert.Equal(t, carlist.EINVALID, carlist.ErrorCode(err))
	assert.Equal(t, "failed to parse HTML", carlist.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, carlist.EINTERNAL, carlist.ErrorCode(err))
	assert.Equal(t, "Internal error.", carlist.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, carlist.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, carlist.ErrorMessage(nil))
}

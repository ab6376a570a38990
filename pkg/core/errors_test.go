package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventmem/eventmem-go/pkg/core"
)

func TestMemoryErrorFormat(t *testing.T) {
	err := core.NewMemoryError("Commit", core.ErrValidation)
	assert.Equal(t, "eventmem: Commit: invalid draft", err.Error())
}

func TestMemoryErrorUnwrap(t *testing.T) {
	err := core.NewMemoryError("Commit", fmt.Errorf("%w: missing target date", core.ErrValidation))
	assert.ErrorIs(t, err, core.ErrValidation)

	var memErr *core.MemoryError
	assert.True(t, errors.As(err, &memErr))
	assert.Equal(t, "Commit", memErr.Op)
}

func TestNewMemoryErrorNil(t *testing.T) {
	assert.NoError(t, core.NewMemoryError("Commit", nil))
}

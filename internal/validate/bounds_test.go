package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBound(t *testing.T) {
	// Empty parent table is its own outcome, not an out-of-range id.
	assert.ErrorIs(t, CheckBound(1, 0), ErrNoParentRows)
	assert.ErrorIs(t, CheckBound(99, 0), ErrNoParentRows)

	assert.ErrorIs(t, CheckBound(6, 5), ErrIDOutOfRange)
	assert.ErrorIs(t, CheckBound(0, 5), ErrIDOutOfRange)
	assert.ErrorIs(t, CheckBound(-1, 5), ErrIDOutOfRange)

	assert.NoError(t, CheckBound(3, 5))
	assert.NoError(t, CheckBound(1, 5))
	assert.NoError(t, CheckBound(5, 5))
}

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchThroughWrapping(t *testing.T) {
	for _, tc := range []struct {
		err  error
		kind error
		msg  string
	}{
		{Invalid("synthesize", "size %d is not a power of two", 6), ErrInvalidParameter, "synthesize: invalid parameter: size 6 is not a power of two"},
		{Bounds("rasterize", "(%d,%d)", 9, 9), ErrOutOfBounds, "rasterize: out of bounds: (9,9)"},
		{Empty("sample", "no points"), ErrEmptyInput, "sample: empty input: no points"},
	} {
		assert.Equal(t, tc.msg, tc.err.Error())
		assert.True(t, errors.Is(tc.err, tc.kind))
		wrapped := fmt.Errorf("viewer: %w", tc.err)
		assert.True(t, errors.Is(wrapped, tc.kind))

		var e *Error
		assert.True(t, errors.As(wrapped, &e))
		assert.Equal(t, tc.kind, e.Kind)
	}
}

func TestErrorWithoutDetail(t *testing.T) {
	e := &Error{Op: "sample", Kind: ErrEmptyInput}
	assert.Equal(t, "sample: empty input", e.Error())
	assert.False(t, errors.Is(e, ErrOutOfBounds))
}

package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("event not found")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("not a member")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("checking conflicts: %w", Validation("invalid date"))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)
	assert.Equal(t, "internal error", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated: 401,
		KindForbidden:       403,
		KindNotFound:        404,
		KindValidation:      400,
		KindConflict:        409,
		KindInternal:        500,
	}
	for kind, want := range cases {
		assert.Equal(t, want, statusOf(kind), string(kind))
	}
}

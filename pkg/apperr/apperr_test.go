package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(NotFound("gone"))
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestKindOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading invoice: %w", Conflict("duplicate"))
	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindConflict, kind)
}

func TestAuthorization_GenericMessage(t *testing.T) {
	err := Authorization("forbidden-scope")
	assert.Equal(t, "Forbidden", err.Error())
	assert.Equal(t, "forbidden-scope", err.Reason)
	assert.True(t, IsKind(err, KindAuthorization))
}

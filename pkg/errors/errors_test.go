package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationMessageCountsRemainingErrors(t *testing.T) {
	err := Validation(map[string][]string{
		"name": {"The name has already been taken."},
		"code": {"The code has already been taken."},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "The code has already been taken. (and 1 more error)", err.Message)
	assert.Len(t, err.Fields, 2)

	single := FieldError("year", "The year has already been taken.")
	assert.Equal(t, "The year has already been taken.", single.Message)

	many := Validation(map[string][]string{"a": {"x", "y"}, "b": {"z"}})
	assert.Equal(t, "x (and 2 more errors)", many.Message)
}

func TestCloneDoesNotShareFields(t *testing.T) {
	orig := FieldError("email", "taken")
	clone := Clone(orig, "")
	clone.Fields["email"][0] = "changed"

	assert.Equal(t, "taken", orig.Fields["email"][0])
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	wrapped := FromError(fmt.Errorf("query: %w", sql.ErrConnDone))
	assert.Equal(t, ErrInternal.Status, wrapped.Status)
	assert.True(t, errors.Is(wrapped, sql.ErrConnDone))

	typed := Clone(ErrNotFound, "Event not found")
	assert.Same(t, typed, FromError(fmt.Errorf("ctx: %w", typed)))
}

func TestMerge(t *testing.T) {
	out := Merge(nil, map[string][]string{"a": {"1"}})
	out = Merge(out, map[string][]string{"a": {"2"}, "b": {"3"}})
	assert.Equal(t, []string{"1", "2"}, out["a"])
	assert.Equal(t, []string{"3"}, out["b"])
}

package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Room   Optional[string] `json:"room"`
	Notes  Optional[string] `json:"notes"`
	Weight Optional[int]    `json:"weight"`
}

func TestOptionalTracksPresence(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"room":"B12","notes":null}`), &p))

	assert.True(t, p.Room.Set)
	assert.Equal(t, "B12", *p.Room.Value)
	assert.True(t, p.Notes.Set)
	assert.Nil(t, p.Notes.Value)
	assert.False(t, p.Weight.Set)

	existing := "old"
	room, notes, untouched := &existing, &existing, &existing
	p.Room.Apply(&room)
	p.Notes.Apply(&notes)
	var w *int
	p.Weight.Apply(&w)

	assert.Equal(t, "B12", *room)
	assert.Nil(t, notes)
	assert.Equal(t, "old", *untouched)
	assert.Nil(t, w)
}

func TestOptionalTypeMismatchNamesField(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"weight":"heavy"}`), &p)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "weight", typeErr.Field)
}

func TestOptionalValidationValue(t *testing.T) {
	assert.Nil(t, Null[string]().ValidationValue())
	assert.Equal(t, 3, Some(3).ValidationValue())
}

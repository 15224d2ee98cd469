package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskFields_DecodeKeepsAbsentEmptyAndNullApart(t *testing.T) {
	var fields TaskFields
	require.NoError(t, json.Unmarshal([]byte(`{"notes":"","assignee":null,"due_on":"2026-01-02","completed":false}`), &fields))

	assert.False(t, fields.Name.Set)
	assert.Equal(t, String(""), fields.Notes)
	assert.Equal(t, NullString(), fields.Assignee)
	assert.Equal(t, String("2026-01-02"), fields.DueDate)
	require.NotNil(t, fields.Completed)
	assert.False(t, *fields.Completed)
}

func TestTaskFields_EncodeOmitsOnlyUnsetFields(t *testing.T) {
	raw, err := json.Marshal(TaskFields{
		Notes:    String(""),
		Assignee: NullString(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":"","assignee":null}`, string(raw))

	raw, err = json.Marshal(TaskFields{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestOptionalString_Get(t *testing.T) {
	assert.Equal(t, "", OptionalString{}.Get())
	assert.Equal(t, "", NullString().Get())
	assert.Equal(t, "x", String("x").Get())
	assert.True(t, OptionalString{}.IsZero())
	assert.False(t, String("").IsZero())

	var bad OptionalString
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

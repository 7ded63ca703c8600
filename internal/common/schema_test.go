package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const limitSchema = `{
  "type": "object",
  "required": ["limit"],
  "properties": {"limit": {"type": "integer", "minimum": 1}}
}`

func TestValidateJSON(t *testing.T) {
	s, err := CompileSchema("limit.json", []byte(limitSchema))
	require.NoError(t, err)

	assert.NoError(t, ValidateJSON(s, []byte(`{"limit": 3}`)))

	err = ValidateJSON(s, []byte(`{"limit": 0}`))
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateJSON(s, []byte(`{"limit":`))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema("broken.json", []byte(`{"type": `))
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompileSchema("broken2.json", []byte(`{`)) })
}

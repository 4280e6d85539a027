package schema

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberSchema() *jsonschema.Schema { return &jsonschema.Schema{Type: "number"} }

func TestAny_PassesPayloadThrough(t *testing.T) {
	v := Any()

	args := map[string]any{"foo": 1, "bar": "x", "extra": true}
	out, err := v.Validate(args)
	require.NoError(t, err)
	assert.Equal(t, args, out)

	out, err = v.Validate(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Equal(t, "object", v.JSON().Type)
}

func TestFromSchema_ValidatesObjects(t *testing.T) {
	s := Object([]string{"a", "b"}, map[string]*jsonschema.Schema{
		"a": numberSchema(),
		"b": numberSchema(),
	})
	v := FromSchema(s)

	out, err := v.Validate(map[string]any{"a": 2.0, "b": 3.0})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 2.0, "b": 3.0}, out)

	_, err = v.Validate(map[string]any{"a": 2.0, "b": "three"})
	assert.Error(t, err)

	_, err = v.Validate(map[string]any{"a": 2.0})
	assert.Error(t, err, "missing required field")
}

func TestFromSchema_NilFallsBackToAny(t *testing.T) {
	v := FromSchema(nil)
	out, err := v.Validate(map[string]any{"anything": []any{1, 2}})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

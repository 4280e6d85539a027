package docparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBlockAbove(t *testing.T) {
	tests := []struct {
		name   string
		source string
		anchor int
		want   string
		ok     bool
	}{
		{
			name: "block comment directly above",
			source: `/**
 * Adds two numbers.
 */
func (c *Calc) Add(args map[string]any) (float64, error) {`,
			anchor: 3,
			want:   "/**\n * Adds two numbers.\n */",
			ok:     true,
		},
		{
			name: "blank lines between block and anchor are skipped",
			source: `/* doc */


func target() {`,
			anchor: 3,
			want:   "/* doc */",
			ok:     true,
		},
		{
			name: "line comment run is a doc block",
			source: `// Adds two numbers.
// @param a first number
func (c *Calc) Add() {`,
			anchor: 2,
			want:   "// Adds two numbers.\n// @param a first number",
			ok:     true,
		},
		{
			name: "code between block and anchor fails",
			source: `/* doc */
var x = 1
func target() {`,
			anchor: 2,
			ok:     false,
		},
		{
			name:   "top of file",
			source: `func target() {`,
			anchor: 0,
			ok:     false,
		},
		{
			name: "terminator without opener fails",
			source: ` */
func target() {`,
			anchor: 1,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(tt.source, "\n")
			got, ok := ExtractBlockAbove(lines, tt.anchor)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("summary params and returns", func(t *testing.T) {
		doc := Parse(`/**
 * Adds two numbers
 * together.
 * @param a the first number
 * @param b the second number
 * @returns the sum
 */`)
		description := "Adds two numbers together."
		returns := "the sum"
		want := Doc{
			Description: &description,
			Params: []Param{
				{Name: "a", Text: "the first number"},
				{Name: "b", Text: "the second number"},
			},
			Returns: &returns,
		}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("Parse mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("tag only block yields absent description", func(t *testing.T) {
		doc := Parse("/**\n * @param x a value\n */")
		assert.Nil(t, doc.Description)
		require.Len(t, doc.Params, 1)
	})

	t.Run("unknown tags are ignored", func(t *testing.T) {
		doc := Parse("// Greets someone.\n// @deprecated use v2\n// @param name who to greet")
		require.NotNil(t, doc.Description)
		assert.Equal(t, "Greets someone.", *doc.Description)
		require.Len(t, doc.Params, 1)
		assert.Equal(t, "name", doc.Params[0].Name)
	})

	t.Run("prose after tags is not description", func(t *testing.T) {
		doc := Parse("// @param x a value\n// trailing prose")
		assert.Nil(t, doc.Description)
	})

	t.Run("trailing stray slash is trimmed", func(t *testing.T) {
		doc := Parse("/** Does a thing. /")
		require.NotNil(t, doc.Description)
		assert.Equal(t, "Does a thing.", *doc.Description)
	})

	t.Run("return singular is accepted", func(t *testing.T) {
		doc := Parse("// @return the answer")
		require.NotNil(t, doc.Returns)
		assert.Equal(t, "the answer", *doc.Returns)
	})
}

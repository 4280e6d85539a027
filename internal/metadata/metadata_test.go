package metadata

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liudonghua123/fastmcp-go/internal/docparse"
)

func docWith(desc string, params ...docparse.Param) *docparse.Doc {
	d := &docparse.Doc{Params: params}
	if desc != "" {
		d.Description = &desc
	}
	return d
}

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		explicit Explicit
		doc      *docparse.Doc
		wantName string
		wantDesc string
	}{
		{
			name:     "explicit wins over doc",
			explicit: Explicit{Name: "add", Description: "adds"},
			doc:      docWith("doc description"),
			wantName: "add",
			wantDesc: "adds",
		},
		{
			name:     "doc fills unspecified description",
			explicit: Explicit{Name: "add"},
			doc:      docWith("doc description"),
			wantName: "add",
			wantDesc: "doc description",
		},
		{
			name:     "name falls back to method, never to doc",
			explicit: Explicit{},
			doc:      docWith("doc description"),
			wantName: "Add",
			wantDesc: "doc description",
		},
		{
			name:     "no explicit no doc",
			explicit: Explicit{},
			doc:      nil,
			wantName: "Add",
			wantDesc: "",
		},
		{
			name:     "tag-only doc leaves description empty",
			explicit: Explicit{},
			doc:      docWith("", docparse.Param{Name: "x", Text: "a value"}),
			wantName: "Add",
			wantDesc: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve("Add", tt.explicit, tt.doc)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantDesc, got.Description)
		})
	}
}

func TestResolve_ExplicitSchemaWins(t *testing.T) {
	explicit := &jsonschema.Schema{Type: "object"}
	got := Resolve("Add", Explicit{Schema: explicit},
		docWith("", docparse.Param{Name: "x", Text: "a number"}))
	assert.Same(t, explicit, got.Schema)
}

func TestResolve_NoParamsNoSchema(t *testing.T) {
	got := Resolve("Add", Explicit{}, docWith("some doc"))
	assert.Nil(t, got.Schema)
}

func TestInferType_PriorityOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"the first number", "number"},
		{"a boolean flag", "boolean"},
		{"true when enabled", "boolean"},
		{"defaults to false", "boolean"},
		{"an array of things", "array"},
		{"some list of names", "array"},
		{"the items to sort", "array"},
		{"an arbitrary value", "string"},
		{"NUMBER in caps", "number"},
		// Mixed keywords resolve by check order, not specificity.
		{"a boolean array", "boolean"},
		{"a number array", "number"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, inferType(tt.text))
		})
	}
}

func TestInferSchema_AllFieldsRequired(t *testing.T) {
	got := Resolve("Add", Explicit{}, docWith("",
		docparse.Param{Name: "a", Text: "the first number"},
		docparse.Param{Name: "b", Text: "a list of extras"},
		docparse.Param{Name: "c", Text: "anything"},
	))
	require.NotNil(t, got.Schema)
	assert.Equal(t, "object", got.Schema.Type)
	assert.Equal(t, []string{"a", "b", "c"}, got.Schema.Required)
	assert.Equal(t, "number", got.Schema.Properties["a"].Type)
	assert.Equal(t, "array", got.Schema.Properties["b"].Type)
	assert.Equal(t, "string", got.Schema.Properties["c"].Type)
}

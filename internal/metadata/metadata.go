// Package metadata merges explicit operation configuration with parsed
// documentation into a fully-resolved descriptor. The precedence rule is
// strict: a field supplied explicitly is used verbatim and documentation is
// never consulted for it; only unspecified fields are eligible for
// inference.
package metadata

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/liudonghua123/fastmcp-go/internal/docparse"
	"github.com/liudonghua123/fastmcp-go/internal/schema"
)

// Explicit carries the configuration supplied at the annotation call site.
// Zero values mean "unspecified".
type Explicit struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
}

// Resolved is the canonical outcome of one annotation application. A nil
// Schema means accept-anything.
type Resolved struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
}

// Resolve merges explicit configuration with an optional parsed doc block.
// The name is never inferred from documentation: it is explicit or the
// method's own name. Description defaults to the empty string and the
// schema to nil when neither explicit nor inferable.
func Resolve(method string, explicit Explicit, doc *docparse.Doc) Resolved {
	out := Resolved{
		Name:        explicit.Name,
		Description: explicit.Description,
		Schema:      explicit.Schema,
	}
	if out.Name == "" {
		out.Name = method
	}
	if out.Description == "" && doc != nil && doc.Description != nil {
		out.Description = *doc.Description
	}
	if out.Schema == nil && doc.HasParams() {
		out.Schema = inferSchema(doc.Params)
	}
	return out
}

// inferSchema maps @param descriptions to typed fields. Every inferred field
// is required: the heuristic has no optionality signal.
func inferSchema(params []docparse.Param) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(params))
	required := make([]string, 0, len(params))
	for _, p := range params {
		if _, dup := props[p.Name]; dup {
			continue
		}
		props[p.Name] = &jsonschema.Schema{Type: inferType(p.Text)}
		required = append(required, p.Name)
	}
	return schema.Object(required, props)
}

// inferType inspects a free-text parameter description. The check order is
// fixed: number, then boolean, then array, then the string default; the
// first keyword match wins on mixed-keyword input.
func inferType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "number"):
		return "number"
	case strings.Contains(lower, "boolean"),
		strings.Contains(lower, "true"),
		strings.Contains(lower, "false"):
		return "boolean"
	case strings.Contains(lower, "array"),
		strings.Contains(lower, "list"),
		strings.Contains(lower, "items"):
		return "array"
	default:
		return "string"
	}
}

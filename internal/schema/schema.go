// Package schema wraps the jsonschema validation capability behind the two
// shapes dispatch depends on: an object-with-fields validator and an
// accept-anything validator that passes payloads through untouched.
package schema

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Validator checks an argument payload against a resolved schema.
type Validator interface {
	// Validate returns the payload to dispatch with, or an error when the
	// payload does not match the schema.
	Validate(args map[string]any) (map[string]any, error)
	// JSON returns the schema as rendered in listing responses.
	JSON() *jsonschema.Schema
}

type anyValidator struct{}

func (anyValidator) Validate(args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func (anyValidator) JSON() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

// Any returns the accept-anything validator used when a tool declares no
// parameter schema.
func Any() Validator {
	return anyValidator{}
}

type schemaValidator struct {
	schema *jsonschema.Schema

	once     sync.Once
	resolved *jsonschema.Resolved
	err      error
}

// FromSchema wraps a jsonschema object schema. Resolution happens once, on
// first use; a schema that cannot be resolved reports the failure as a
// validation error rather than failing registration.
func FromSchema(s *jsonschema.Schema) Validator {
	if s == nil {
		return Any()
	}
	return &schemaValidator{schema: s}
}

func (v *schemaValidator) Validate(args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}
	v.once.Do(func() {
		v.resolved, v.err = v.schema.Resolve(nil)
	})
	if v.err != nil {
		return nil, fmt.Errorf("resolve schema: %w", v.err)
	}
	// Validate wants the decoded JSON form of the payload.
	decoded := make(map[string]any, len(args))
	for k, val := range args {
		decoded[k] = val
	}
	if err := v.resolved.Validate(decoded); err != nil {
		return nil, err
	}
	return args, nil
}

func (v *schemaValidator) JSON() *jsonschema.Schema {
	return v.schema
}

// Object builds an object schema with the given property schemas, requiring
// every named field.
func Object(names []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   names,
	}
}

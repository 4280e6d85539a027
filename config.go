package fastmcp

import (
	"regexp"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolConfig is the explicit configuration of one tool annotation. Zero
// values mean "unspecified": Name falls back to the method name, Description
// and InputSchema become eligible for doc-comment inference.
type ToolConfig struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// PromptConfig is the explicit configuration of one prompt annotation.
// ArgumentSchema is optional; when nil the prompt is invoked with an empty
// argument object and no validation.
type PromptConfig struct {
	Name           string
	Description    string
	ArgumentSchema *jsonschema.Schema
}

// ResourceConfig is the explicit configuration of one resource annotation.
// URI and URIPattern are mutually exclusive matchers; URIPattern wins when
// both are set. MIMEType defaults to text/plain.
type ResourceConfig struct {
	URI         string
	URIPattern  *regexp.Regexp
	Name        string
	Description string
	MIMEType    string
}

// ToolDef pairs a method name with its tool configuration for the
// self-describing registration path.
type ToolDef struct {
	Method string
	ToolConfig
}

// PromptDef pairs a method name with its prompt configuration.
type PromptDef struct {
	Method string
	PromptConfig
}

// ResourceDef pairs a method name with its resource configuration.
type ResourceDef struct {
	Method string
	ResourceConfig
}

// ToolProvider is the secondary annotation path consulted by
// (*Server).RegisterInstance when the registry holds no tool descriptors
// for the instance's type. It tolerates programs that neither run init-time
// registration nor annotate in a constructor.
type ToolProvider interface {
	MCPTools() []ToolDef
}

// PromptProvider is the prompt counterpart of ToolProvider.
type PromptProvider interface {
	MCPPrompts() []PromptDef
}

// ResourceProvider is the resource counterpart of ToolProvider.
type ResourceProvider interface {
	MCPResources() []ResourceDef
}

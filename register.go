package fastmcp

import (
	"reflect"

	"github.com/liudonghua123/fastmcp-go/internal/callsite"
	"github.com/liudonghua123/fastmcp-go/internal/docparse"
	"github.com/liudonghua123/fastmcp-go/internal/metadata"
	"github.com/liudonghua123/fastmcp-go/internal/schema"
)

// Tool annotates a method of Owner as a remotely-invokable tool in the
// default registry. Call it at package initialization time:
//
//	func init() {
//		fastmcp.Tool[*Calculator]("Add", fastmcp.ToolConfig{})
//	}
//
// Unspecified fields are inferred from the documentation block above the
// method declaration; inference is best-effort and silent on failure.
func Tool[Owner any](method string, cfg ToolConfig) {
	defaultRegistry.RegisterTool(typeFor[Owner](), method, cfg)
}

// Prompt annotates a method of Owner as a prompt template in the default
// registry.
func Prompt[Owner any](method string, cfg PromptConfig) {
	defaultRegistry.RegisterPrompt(typeFor[Owner](), method, cfg)
}

// Resource annotates a method of Owner as an addressable resource in the
// default registry.
func Resource[Owner any](method string, cfg ResourceConfig) {
	defaultRegistry.RegisterResource(typeFor[Owner](), method, cfg)
}

// AttachTool is the deferred-binding form of Tool: call it from the owning
// type's constructor. Re-running it for every constructed instance is safe;
// registration is exactly-once per (owner, method).
func AttachTool(instance any, method string, cfg ToolConfig) {
	defaultRegistry.RegisterTool(reflect.TypeOf(instance), method, cfg)
}

// AttachPrompt is the deferred-binding form of Prompt.
func AttachPrompt(instance any, method string, cfg PromptConfig) {
	defaultRegistry.RegisterPrompt(reflect.TypeOf(instance), method, cfg)
}

// AttachResource is the deferred-binding form of Resource.
func AttachResource(instance any, method string, cfg ResourceConfig) {
	defaultRegistry.RegisterResource(reflect.TypeOf(instance), method, cfg)
}

// RegisterTool resolves and stores one tool annotation for owner.
func (r *Registry) RegisterTool(owner reflect.Type, method string, cfg ToolConfig) {
	doc := inferDoc(owner, method)
	resolved := metadata.Resolve(method, metadata.Explicit{
		Name:        cfg.Name,
		Description: cfg.Description,
		Schema:      cfg.InputSchema,
	}, doc)

	r.Append(&Descriptor{
		Kind:        KindTool,
		Name:        resolved.Name,
		Description: resolved.Description,
		Method:      method,
		Owner:       owner,
		InputSchema: schema.FromSchema(resolved.Schema),
	})
}

// RegisterPrompt resolves and stores one prompt annotation for owner.
func (r *Registry) RegisterPrompt(owner reflect.Type, method string, cfg PromptConfig) {
	doc := inferDoc(owner, method)
	resolved := metadata.Resolve(method, metadata.Explicit{
		Name:        cfg.Name,
		Description: cfg.Description,
		Schema:      cfg.ArgumentSchema,
	}, doc)

	d := &Descriptor{
		Kind:        KindPrompt,
		Name:        resolved.Name,
		Description: resolved.Description,
		Method:      method,
		Owner:       owner,
	}
	if resolved.Schema != nil {
		d.ArgumentSchema = schema.FromSchema(resolved.Schema)
	}
	r.Append(d)
}

// RegisterResource resolves and stores one resource annotation for owner.
// The URI matcher is never inferred: it is the resource's identity and must
// be configured explicitly.
func (r *Registry) RegisterResource(owner reflect.Type, method string, cfg ResourceConfig) {
	doc := inferDoc(owner, method)
	resolved := metadata.Resolve(method, metadata.Explicit{
		Name:        cfg.Name,
		Description: cfg.Description,
	}, doc)

	mimeType := cfg.MIMEType
	if mimeType == "" {
		mimeType = "text/plain"
	}

	r.Append(&Descriptor{
		Kind:        KindResource,
		Name:        resolved.Name,
		Description: resolved.Description,
		Method:      method,
		Owner:       owner,
		URI:         cfg.URI,
		URIPattern:  cfg.URIPattern,
		MIMEType:    mimeType,
	})
}

// inferDoc locates the method's declaration and parses the documentation
// block above it. Every failure returns nil: no callsite, no block, or no
// parseable content all mean "no inference possible", never an error.
func inferDoc(owner reflect.Type, method string) *docparse.Doc {
	file, hint, ok := callsite.MethodSite(owner, method)
	if !ok {
		// The compiler's view of the method is unavailable; fall back to
		// the first call-chain frame outside the framework, which is the
		// annotation's own declaration site.
		file, ok = callsite.CallerSite(0)
		hint = -1
	}
	if !ok {
		return nil
	}
	lines, ok := callsite.ReadLines(file)
	if !ok {
		return nil
	}
	anchor, ok := callsite.MethodLine(lines, method, hint)
	if !ok {
		return nil
	}
	raw, ok := docparse.ExtractBlockAbove(lines, anchor)
	if !ok {
		return nil
	}
	doc := docparse.Parse(raw)
	return &doc
}

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

package fastmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// DispatchTool handles one tools/call request envelope. Argument binding is
// two-stage: the explicit "arguments" field wins; when it is absent or
// empty, the remaining top-level fields (minus the operation name) become
// the payload.
func (s *Server) DispatchTool(ctx context.Context, request map[string]any) (*mcp.CallToolResult, error) {
	name, _ := request["name"].(string)

	args, ok := request["arguments"].(map[string]any)
	if !ok || len(args) == 0 {
		args = make(map[string]any, len(request))
		for k, v := range request {
			if k == "name" || k == "arguments" {
				continue
			}
			args[k] = v
		}
	}
	return s.CallTool(ctx, name, args)
}

// CallTool validates args against the named tool's resolved schema, invokes
// the bound method, and normalizes the result to text. Validation and
// invocation failures come back as error-flagged results; an unknown tool
// name is a hard error.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (result *mcp.CallToolResult, err error) {
	start := time.Now()
	defer func() { s.observe(KindTool, start, result, err) }()

	d := s.lastBound(KindTool, func(d *Descriptor) bool { return d.Name == name })
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}

	payload, verr := d.InputSchema.Validate(args)
	if verr != nil {
		s.logger.Debug("tool argument validation failed",
			zap.String("tool", name), zap.Error(verr))
		return errorResult(verr), nil
	}

	out, ierr := s.invoke(ctx, d, payload)
	if ierr != nil {
		s.logger.Debug("tool invocation failed",
			zap.String("tool", name), zap.Error(ierr))
		return errorResult(ierr), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out}},
	}, nil
}

// GetPrompt invokes the named prompt template. Arguments are validated only
// when an argument schema was configured; otherwise the method receives an
// empty object. Failures propagate, naming the prompt.
func (s *Server) GetPrompt(ctx context.Context, name string, args map[string]string) (result *mcp.GetPromptResult, err error) {
	start := time.Now()
	defer func() { s.observe(KindPrompt, start, result, err) }()

	d := s.lastBound(KindPrompt, func(d *Descriptor) bool { return d.Name == name })
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrPromptNotFound, name)
	}

	payload := map[string]any{}
	if d.ArgumentSchema != nil {
		raw := make(map[string]any, len(args))
		for k, v := range args {
			raw[k] = v
		}
		payload, err = d.ArgumentSchema.Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
	}

	out, err := s.invoke(ctx, d, payload)
	if err != nil {
		return nil, fmt.Errorf("prompt %q: %w", name, err)
	}

	return &mcp.GetPromptResult{
		Description: d.Description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: out}},
		},
	}, nil
}

// ReadResource matches uri against each resource matcher in registration
// order and invokes the first match with the exact URI string. Failures and
// no-match propagate, naming the URI.
func (s *Server) ReadResource(ctx context.Context, uri string) (result *mcp.ReadResourceResult, err error) {
	start := time.Now()
	defer func() { s.observe(KindResource, start, result, err) }()

	d := s.firstBound(KindResource, func(d *Descriptor) bool { return d.MatchesURI(uri) })
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, uri)
	}

	out, err := s.invoke(ctx, d, map[string]any{"uri": uri})
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: d.MIMEType, Text: out},
		},
	}, nil
}

// lastBound re-scans the full registry on every call and returns the last
// matching descriptor whose owner has a bound instance; registering a
// duplicate name later therefore wins.
func (s *Server) lastBound(kind Kind, match func(*Descriptor) bool) *Descriptor {
	var found *Descriptor
	for _, d := range s.registry.All(kind) {
		if match(d) && s.boundInstance(d.Owner).IsValid() {
			found = d
		}
	}
	return found
}

// firstBound returns the first matching descriptor with a bound owner.
// Resource matching is sequential: the first matcher to accept a URI
// answers it.
func (s *Server) firstBound(kind Kind, match func(*Descriptor) bool) *Descriptor {
	for _, d := range s.registry.All(kind) {
		if match(d) && s.boundInstance(d.Owner).IsValid() {
			return d
		}
	}
	return nil
}

var (
	ctxType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	argsType = reflect.TypeOf(map[string]any(nil))
	errType  = reflect.TypeOf((*error)(nil)).Elem()
)

// invoke calls the descriptor's method on whichever instance is currently
// bound for its owner. Supported shapes take an optional leading context,
// one map[string]any argument, and return one value with an optional
// trailing error. Panics inside the method are converted to errors so a
// misbehaving tool cannot take the dispatcher down.
func (s *Server) invoke(ctx context.Context, d *Descriptor, args map[string]any) (out string, err error) {
	instance := s.boundInstance(d.Owner)
	if !instance.IsValid() {
		return "", fmt.Errorf("no instance bound for %s", d.Owner)
	}
	method := instance.MethodByName(d.Method)
	if !method.IsValid() {
		return "", fmt.Errorf("method %s.%s not found", d.Owner, d.Method)
	}

	in, err := buildCallArgs(method.Type(), ctx, args)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s.%s panicked: %v", d.Owner, d.Method, r)
		}
	}()
	results := method.Call(in)

	if n := len(results); n > 0 && method.Type().Out(n-1) == errType {
		if e, _ := results[n-1].Interface().(error); e != nil {
			return "", e
		}
		results = results[:n-1]
	}
	if len(results) == 0 {
		return "undefined", nil
	}
	return renderText(results[0]), nil
}

func buildCallArgs(mt reflect.Type, ctx context.Context, args map[string]any) ([]reflect.Value, error) {
	switch {
	case mt.NumIn() == 2 && mt.In(0) == ctxType && mt.In(1) == argsType:
		return []reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(args)}, nil
	case mt.NumIn() == 1 && mt.In(0) == argsType:
		return []reflect.Value{reflect.ValueOf(args)}, nil
	default:
		return nil, fmt.Errorf("unsupported method signature %s", mt)
	}
}

// renderText normalizes a method's return value to the protocol's text
// shape: strings pass through, numbers format in decimal (NaN stays "NaN"),
// nil renders "null", and anything else serializes structurally with a
// generic string conversion as the last resort.
func renderText(v reflect.Value) string {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "null"
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "null"
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if v.IsNil() {
			return "null"
		}
	}
	if b, err := json.Marshal(v.Interface()); err == nil {
		return string(b)
	}
	return fmt.Sprint(v.Interface())
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func (s *Server) observe(kind Kind, start time.Time, result any, err error) {
	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case kind == KindTool:
		if r, _ := result.(*mcp.CallToolResult); r != nil && r.IsError {
			status = "error"
		}
	}
	s.metrics.Observe(string(kind), status, time.Since(start))
}

package fastmcp

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/liudonghua123/fastmcp-go/internal/logging"
	"github.com/liudonghua123/fastmcp-go/internal/telemetry"
)

// ServerOptions configures a Server. Every field is optional.
type ServerOptions struct {
	// Name and Version identify the server in the MCP handshake.
	Name    string
	Version string

	// Logger defaults to an environment-configured logger
	// (FASTMCP_LOG_LEVEL, LOG_LEVEL, FASTMCP_LOG_PRETTY).
	Logger *zap.Logger

	// Registry defaults to the package-wide Default() registry.
	Registry *Registry

	// MCPOptions are passed through to the underlying mcp.Server.
	MCPOptions *mcp.ServerOptions

	// MetricsRegisterer enables dispatch metrics when non-nil.
	MetricsRegisterer prometheus.Registerer
}

// Server binds registered descriptors to live instances and dispatches
// protocol requests against them. It owns the instance-binding map
// exclusively: one instance per owner type, last registration wins.
type Server struct {
	name    string
	version string

	logger   *zap.Logger
	registry *Registry
	mcp      *mcp.Server
	metrics  *telemetry.DispatchMetrics

	mu        sync.RWMutex
	instances map[reflect.Type]reflect.Value
}

// NewServer constructs a dispatch server over the given registry.
func NewServer(opts ServerOptions) *Server {
	name := opts.Name
	if name == "" {
		name = "fastmcp-go"
	}
	version := opts.Version
	if version == "" {
		version = "0.0.0"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromEnv()
	}
	registry := opts.Registry
	if registry == nil {
		registry = Default()
	}

	s := &Server{
		name:      name,
		version:   version,
		logger:    logger.Named("fastmcp"),
		registry:  registry,
		metrics:   telemetry.NewDispatchMetrics(opts.MetricsRegisterer),
		instances: make(map[reflect.Type]reflect.Value),
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, opts.MCPOptions)
	return s
}

// MCPServer exposes the underlying mcp.Server for callers that need to plug
// into existing MCP infrastructure.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// RegisterInstance binds instance as the dispatch target for every
// descriptor its type declared. Registering a second instance of the same
// type silently replaces the target for all of that type's operations.
//
// When the registry holds nothing for the type, the instance may
// self-describe through the ToolProvider, PromptProvider, or
// ResourceProvider interfaces; those definitions run through the same
// resolution step as the annotation functions.
func (s *Server) RegisterInstance(instance any) error {
	if instance == nil {
		return errNilInstance
	}
	t := reflect.TypeOf(instance)

	tools := s.ownerDescriptors(KindTool, t, instance)
	prompts := s.ownerDescriptors(KindPrompt, t, instance)
	resources := s.ownerDescriptors(KindResource, t, instance)

	if len(tools)+len(prompts)+len(resources) == 0 {
		s.logger.Warn("no operations registered for type", zap.Stringer("type", t))
	}

	s.mu.Lock()
	s.instances[t] = reflect.ValueOf(instance)
	s.mu.Unlock()

	for _, d := range tools {
		s.installTool(d)
	}
	for _, d := range prompts {
		s.installPrompt(d)
	}
	for _, d := range resources {
		s.installResource(d)
	}

	s.logger.Debug("instance bound",
		zap.Stringer("type", t),
		zap.Int("tools", len(tools)),
		zap.Int("prompts", len(prompts)),
		zap.Int("resources", len(resources)))
	return nil
}

// ownerDescriptors reads the registry for one kind, falling back to the
// instance's self-describing interface when the registry has no entries for
// the type.
func (s *Server) ownerDescriptors(kind Kind, t reflect.Type, instance any) []*Descriptor {
	if ds := s.registry.ForOwner(kind, t); len(ds) > 0 {
		return ds
	}
	switch kind {
	case KindTool:
		if p, ok := instance.(ToolProvider); ok {
			for _, def := range p.MCPTools() {
				s.registry.RegisterTool(t, def.Method, def.ToolConfig)
			}
		}
	case KindPrompt:
		if p, ok := instance.(PromptProvider); ok {
			for _, def := range p.MCPPrompts() {
				s.registry.RegisterPrompt(t, def.Method, def.PromptConfig)
			}
		}
	case KindResource:
		if p, ok := instance.(ResourceProvider); ok {
			for _, def := range p.MCPResources() {
				s.registry.RegisterResource(t, def.Method, def.ResourceConfig)
			}
		}
	}
	return s.registry.ForOwner(kind, t)
}

func (s *Server) boundInstance(owner reflect.Type) reflect.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instances[owner]
}

// installTool registers the descriptor with the protocol layer. The handler
// ignores its registration identity and re-dispatches through the façade,
// so rebinding an instance is immediately visible without re-registration.
func (s *Server) installTool(d *Descriptor) {
	s.mcp.AddTool(&mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: d.InputSchema.JSON(),
	}, s.toolHandler(d.Name))
}

func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request := map[string]any{"name": name}
		if len(req.Params.Arguments) > 0 {
			var args map[string]any
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, err
			}
			request["arguments"] = args
		}
		return s.DispatchTool(ctx, request)
	}
}

func (s *Server) installPrompt(d *Descriptor) {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        d.Name,
		Description: d.Description,
		Arguments:   promptArguments(d),
	}, s.promptHandler(d.Name))
}

func (s *Server) promptHandler(name string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var args map[string]string
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		return s.GetPrompt(ctx, name, args)
	}
}

func (s *Server) installResource(d *Descriptor) {
	if d.URIPattern != nil {
		s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: d.URIPattern.String(),
			Name:        d.Name,
			Description: d.Description,
			MIMEType:    d.MIMEType,
		}, s.resourceHandler())
		return
	}
	s.mcp.AddResource(&mcp.Resource{
		URI:         d.URI,
		Name:        d.Name,
		Description: d.Description,
		MIMEType:    d.MIMEType,
	}, s.resourceHandler())
}

func (s *Server) resourceHandler() mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.ReadResource(ctx, req.Params.URI)
	}
}

// ListTools enumerates every tool descriptor in the registry, flattened
// across owner types in registration order.
func (s *Server) ListTools() []*mcp.Tool {
	descs := s.registry.All(KindTool)
	out := make([]*mcp.Tool, 0, len(descs))
	for _, d := range descs {
		out = append(out, &mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema.JSON(),
		})
	}
	return out
}

// ListPrompts enumerates every prompt descriptor in registration order.
func (s *Server) ListPrompts() []*mcp.Prompt {
	descs := s.registry.All(KindPrompt)
	out := make([]*mcp.Prompt, 0, len(descs))
	for _, d := range descs {
		out = append(out, &mcp.Prompt{
			Name:        d.Name,
			Description: d.Description,
			Arguments:   promptArguments(d),
		})
	}
	return out
}

// ListResources enumerates every resource descriptor in registration order,
// rendering pattern matchers as their source text.
func (s *Server) ListResources() []*mcp.Resource {
	descs := s.registry.All(KindResource)
	out := make([]*mcp.Resource, 0, len(descs))
	for _, d := range descs {
		uri := d.URI
		if d.URIPattern != nil {
			uri = d.URIPattern.String()
		}
		out = append(out, &mcp.Resource{
			URI:         uri,
			Name:        d.Name,
			Description: d.Description,
			MIMEType:    d.MIMEType,
		})
	}
	return out
}

// promptArguments renders a prompt's argument schema, required fields
// first, the rest alphabetically.
func promptArguments(d *Descriptor) []*mcp.PromptArgument {
	if d.ArgumentSchema == nil {
		return nil
	}
	js := d.ArgumentSchema.JSON()
	if js == nil {
		return nil
	}
	required := make(map[string]bool, len(js.Required))
	out := make([]*mcp.PromptArgument, 0, len(js.Properties))
	for _, name := range js.Required {
		if _, ok := js.Properties[name]; ok {
			required[name] = true
			out = append(out, &mcp.PromptArgument{Name: name, Required: true})
		}
	}
	var optional []string
	for name := range js.Properties {
		if !required[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	for _, name := range optional {
		out = append(out, &mcp.PromptArgument{Name: name})
	}
	return out
}

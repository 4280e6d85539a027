package fastmcp

import (
	"reflect"
	"regexp"
	"sync"

	"github.com/liudonghua123/fastmcp-go/internal/schema"
)

// Kind partitions the registry into the three operation families.
type Kind string

const (
	KindTool     Kind = "tool"
	KindPrompt   Kind = "prompt"
	KindResource Kind = "resource"
)

// Descriptor is the resolved, immutable record of one annotated operation.
// It is created exactly once per annotation application and never mutated
// after it enters a Registry.
type Descriptor struct {
	Kind        Kind
	Name        string
	Description string

	// Method names the method on Owner to invoke at dispatch time.
	Method string
	// Owner identifies the declaring type; it is the registry key.
	Owner reflect.Type

	// InputSchema validates tool arguments. Never nil for tools: an
	// unspecified schema resolves to the accept-anything validator.
	InputSchema schema.Validator
	// ArgumentSchema validates prompt arguments. Nil means none configured.
	ArgumentSchema schema.Validator

	// URI and URIPattern are the mutually exclusive resource matchers.
	URI        string
	URIPattern *regexp.Regexp
	MIMEType   string
}

// MatchesURI reports whether a resource descriptor answers to uri.
func (d *Descriptor) MatchesURI(uri string) bool {
	if d.URIPattern != nil {
		return d.URIPattern.MatchString(uri)
	}
	return d.URI == uri
}

type registryKey struct {
	kind   Kind
	owner  reflect.Type
	method string
}

// Registry is the store of resolved descriptors, keyed by owner type and
// partitioned by kind. Entries keep insertion order and live for the
// process lifetime; there is no teardown contract.
//
// Append deduplicates on (kind, owner, method): the deferred binding model
// re-runs annotation on every instance construction, and registration is
// exactly-once by design here (see the duplicate-registration test).
type Registry struct {
	mu     sync.RWMutex
	byKind map[Kind][]*Descriptor
	seen   map[registryKey]struct{}
}

// NewRegistry constructs an empty registry. Most programs use Default();
// an explicit registry isolates tests and embedded servers.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[Kind][]*Descriptor),
		seen:   make(map[registryKey]struct{}),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// registration functions.
func Default() *Registry {
	return defaultRegistry
}

// Append stores d unless an equal (kind, owner, method) annotation was
// already applied. It reports whether the descriptor was stored.
func (r *Registry) Append(d *Descriptor) bool {
	key := registryKey{kind: d.Kind, owner: d.Owner, method: d.Method}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = struct{}{}
	r.byKind[d.Kind] = append(r.byKind[d.Kind], d)
	return true
}

// ForOwner returns the descriptors of one kind declared by owner, in
// registration order.
func (r *Registry) ForOwner(kind Kind, owner reflect.Type) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Descriptor
	for _, d := range r.byKind[kind] {
		if d.Owner == owner {
			out = append(out, d)
		}
	}
	return out
}

// All returns a snapshot of every descriptor of one kind, flattened across
// owner types in registration order.
func (r *Registry) All(kind Kind) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, len(r.byKind[kind]))
	copy(out, r.byKind[kind])
	return out
}

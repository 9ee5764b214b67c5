package resolver

import "github.com/blackrooksoftware/rookscript/pkg/ident"

// Registry is a simple in-memory HostFunctionResolver: a case-insensitive
// table of HostFunctions keyed by (namespace, name). It is the resolver
// implementation host-function bundles (internal/builtins/*) register
// themselves into, and that internal/builder assembles into an instance.
type Registry struct {
	namespaces *ident.Map[*ident.Map[HostFunction]]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{namespaces: ident.NewMap[*ident.Map[HostFunction]]()}
}

// Register adds fn under its own Namespace()/Name(). A function with no
// namespace is registered under the empty string, the default global pool
// (spec GLOSSARY "Namespace").
func (r *Registry) Register(fn HostFunction) {
	ns, ok := r.namespaces.Get(fn.Namespace())
	if !ok {
		ns = ident.NewMap[HostFunction]()
		r.namespaces.Set(fn.Namespace(), ns)
	}
	ns.Set(fn.Name(), fn)
}

// RegisterAll registers every function in fns.
func (r *Registry) RegisterAll(fns ...HostFunction) {
	for _, fn := range fns {
		r.Register(fn)
	}
}

// Resolve implements HostFunctionResolver.
func (r *Registry) Resolve(namespace, name string) (HostFunction, bool) {
	ns, ok := r.namespaces.Get(namespace)
	if !ok {
		return nil, false
	}
	return ns.Get(name)
}

// Merged returns a HostFunctionResolver that tries each resolver in order,
// returning the first match. Useful for combining multiple builtin
// bundles plus an embedder's own resolver.
type Merged []HostFunctionResolver

func (m Merged) Resolve(namespace, name string) (HostFunction, bool) {
	for _, r := range m {
		if r == nil {
			continue
		}
		if fn, ok := r.Resolve(namespace, name); ok {
			return fn, true
		}
	}
	return nil, false
}

// Package builder implements spec §6.1's fluent Builder: assembly of a
// ScriptInstance from source text (or a prebuilt Script), an optional
// includer, one or more host-function resolvers, named scopes, a wait
// handler, an environment, and stack/runaway sizing — grounded on the
// teacher's parser_builder.go ParserBuilder, generalized from building a
// *Parser to building a *vm.ScriptInstance.
package builder

import (
	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/compiler"
	"github.com/blackrooksoftware/rookscript/internal/env"
	"github.com/blackrooksoftware/rookscript/internal/optimizer"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/vm"
)

const (
	defaultValueStackSize      = 1024
	defaultActivationStackSize = 256
)

type namedScope struct {
	name     string
	resolver resolver.ScopeResolver
}

// Builder provides a fluent API for constructing a ScriptInstance.
//
// Example usage:
//
//	inst, err := builder.New().
//	    WithSource(src).
//	    WithHostResolver(corelib.New()).
//	    WithEnvironment(env.New(os.Stdin, os.Stdout, os.Stderr)).
//	    Build()
type Builder struct {
	source   string
	filename string
	includer compiler.Includer
	script   *bytecode.Script

	valueStackSize      int
	activationStackSize int
	runawayLimit        int

	hostResolvers []resolver.HostFunctionResolver
	scopes        []namedScope
	waitHandler   vm.WaitHandler
	environment   *env.Environment
}

// New returns a Builder with default stack sizing.
func New() *Builder {
	return &Builder{
		valueStackSize:      defaultValueStackSize,
		activationStackSize: defaultActivationStackSize,
	}
}

// WithSource supplies script source text to be compiled and optimized by
// Build. Mutually exclusive with WithScript; whichever is set last wins.
func (b *Builder) WithSource(source string) *Builder {
	b.source = source
	b.script = nil
	return b
}

// WithScript supplies an already compiled-and-optimized Script, skipping
// compilation entirely.
func (b *Builder) WithScript(script *bytecode.Script) *Builder {
	b.script = script
	return b
}

// WithFilename sets the name reported in compile errors.
func (b *Builder) WithFilename(name string) *Builder {
	b.filename = name
	return b
}

// WithIncluder installs the collaborator that resolves #include
// directives during compilation.
func (b *Builder) WithIncluder(inc compiler.Includer) *Builder {
	b.includer = inc
	return b
}

// WithStackSizes overrides the default value/activation stack capacities
// (spec §4.2's V and A).
func (b *Builder) WithStackSizes(valueStackSize, activationStackSize int) *Builder {
	b.valueStackSize = valueStackSize
	b.activationStackSize = activationStackSize
	return b
}

// WithRunawayLimit overrides the script's compiled-in runaway limit (spec
// §4.6). Zero leaves whatever the Script already carries untouched.
func (b *Builder) WithRunawayLimit(limit int) *Builder {
	b.runawayLimit = limit
	return b
}

// WithHostResolver adds a host-function resolver to the pool consulted at
// runtime (and, at compile time, to decide whether a statement-form call
// is void). Resolvers are tried in the order added; the first match wins
// (spec §6.1: "one or more host-function resolvers, global or under a
// namespace").
func (b *Builder) WithHostResolver(r resolver.HostFunctionResolver) *Builder {
	b.hostResolvers = append(b.hostResolvers, r)
	return b
}

// WithScope registers a named scope resolver, consulted in registration
// order when a variable is not found in the current local scope (spec
// §9).
func (b *Builder) WithScope(name string, r resolver.ScopeResolver) *Builder {
	b.scopes = append(b.scopes, namedScope{name: name, resolver: r})
	return b
}

// WithWaitHandler installs the embedder's cooperative-suspension callback
// (spec §4.6, §9 "Coroutines / wait").
func (b *Builder) WithWaitHandler(h vm.WaitHandler) *Builder {
	b.waitHandler = h
	return b
}

// WithEnvironment installs the stdin/stdout/stderr handles host functions
// and the VM read from (spec §6.3).
func (b *Builder) WithEnvironment(e *env.Environment) *Builder {
	b.environment = e
	return b
}

// Build compiles (if necessary), optimizes, and assembles a ready-to-run
// ScriptInstance in the Created state.
func (b *Builder) Build() (*vm.ScriptInstance, error) {
	script := b.script
	merged := resolver.Merged(b.hostResolvers)

	if script == nil {
		var opts []compiler.Option
		if b.includer != nil {
			opts = append(opts, compiler.WithIncluder(b.includer))
		}
		if b.filename != "" {
			opts = append(opts, compiler.WithFilename(b.filename))
		}
		if len(b.hostResolvers) > 0 {
			opts = append(opts, compiler.WithHostResolver(merged))
		}

		compiled, err := compiler.Compile(b.source, opts...)
		if err != nil {
			return nil, err
		}
		script = optimizer.Optimize(compiled)
	}

	if len(b.hostResolvers) > 0 {
		script.HostFunctionResolver = merged
	}
	if b.runawayLimit != 0 {
		script.CommandRunawayLimit = b.runawayLimit
	}

	inst := vm.New(script, b.valueStackSize, b.activationStackSize)
	inst.SetEnvironment(b.environment)
	inst.SetWaitHandler(b.waitHandler)
	for _, sc := range b.scopes {
		inst.AddScope(sc.name, sc.resolver)
	}
	return inst, nil
}

// MustBuild builds the instance and panics if there's an error. Useful in
// test code where construction should never fail.
func (b *Builder) MustBuild() *vm.ScriptInstance {
	inst, err := b.Build()
	if err != nil {
		panic(err)
	}
	return inst
}

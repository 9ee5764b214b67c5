// Package compiler lowers RookScript source text directly to bytecode: a
// recursive-descent parser, with one function per expression precedence
// level, emits commands as it goes, with no intermediate AST (spec §4.4).
package compiler

import (
	"fmt"
	"math"

	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/errs"
	"github.com/blackrooksoftware/rookscript/internal/lexer"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// Includer resolves an #include directive's filename to source text. A
// nil Includer rejects any #include with a compile error.
type Includer interface {
	Include(filename string) (string, error)
}

// Compiler holds the state of one compilation: the token stream, the
// script under construction, and the error list that becomes a single
// ScriptParseException at the end (spec §7.1).
type Compiler struct {
	lex *lexer.Lexer
	cur lexer.Token
	nxt lexer.Token

	script *bytecode.Script

	includer Includer
	filename string
	source   string

	// hostResolver, when supplied via WithHostResolver, lets the compiler
	// ask whether a host function is void so it can decide whether a
	// statement-form call needs a trailing POP (spec §4.4). It plays no
	// other role: argument binding and dispatch happen at run time.
	hostResolver resolver.HostFunctionResolver

	errors []*errs.CompilerError

	labelSeq int

	// loopLabels tracks the (continue, break) label pair for each
	// enclosing while/for loop, innermost last, for break/continue
	// statements.
	loopLabels []loopLabel
}

type loopLabel struct {
	continueLabel string
	breakLabel    string
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithIncluder installs the collaborator that resolves #include
// directives (spec §4.4).
func WithIncluder(inc Includer) Option {
	return func(c *Compiler) { c.includer = inc }
}

// WithFilename sets the name reported in compile errors.
func WithFilename(name string) Option {
	return func(c *Compiler) { c.filename = name }
}

// WithHostResolver supplies the resolver the compiler consults, at
// compile time only, to tell whether a host function called in statement
// position is void and so needs no trailing POP (spec §4.4). Without it,
// a statement-form host call is assumed void and no POP is emitted: a
// value a non-void host function returns then stays on the value stack,
// which RETURN does not clear. Assuming void avoids popping a value that
// was never pushed, which would underflow the stack.
func WithHostResolver(r resolver.HostFunctionResolver) Option {
	return func(c *Compiler) { c.hostResolver = r }
}

// Compile tokenizes and parses source into a finalized, unoptimized
// Script. The caller is expected to run the result through
// internal/optimizer before execution.
func Compile(source string, opts ...Option) (*bytecode.Script, error) {
	c := &Compiler{
		lex:    lexer.New(source),
		script: bytecode.New(),
		source: source,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.prescanDeclarations()
	c.advance()
	c.advance()

	c.parseProgram()

	if lexErrs := c.lex.Errors(); len(lexErrs) > 0 {
		for _, m := range lexErrs {
			c.errors = append(c.errors, errs.NewCompilerError(lexer.Position{}, m, c.source, c.filename))
		}
	}

	if len(c.errors) > 0 {
		return nil, fmt.Errorf("%s", errs.FormatErrors(c.errors, false))
	}
	return c.script, nil
}

func (c *Compiler) advance() {
	c.cur = c.nxt
	c.nxt = c.lex.Next()
}

func (c *Compiler) curIs(t lexer.Type) bool { return c.cur.Type == t }
func (c *Compiler) nxtIs(t lexer.Type) bool { return c.nxt.Type == t }

func (c *Compiler) expect(t lexer.Type) lexer.Token {
	tok := c.cur
	if !c.curIs(t) {
		c.errorf("expected %s, got %s (%q)", t, c.cur.Type, c.cur.Literal)
	} else {
		c.advance()
	}
	return tok
}

func (c *Compiler) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.errors = append(c.errors, errs.NewCompilerError(c.cur.Pos, msg, c.source, c.filename))
}

// newLabel returns a fresh, never-reused synthetic label name for compiler
// control-flow constructs (if/else, while, for, short-circuit, ternary).
func (c *Compiler) newLabel(prefix string) string {
	c.labelSeq++
	return fmt.Sprintf("$%s_%d", prefix, c.labelSeq)
}

func (c *Compiler) emit(cmd bytecode.Command) int {
	return c.script.Append(cmd)
}

func posInf() float64 { return math.Inf(1) }
func nan() float64    { return math.NaN() }

func falseValue() value.Value { return value.NewBoolean(false) }
func trueValue() value.Value  { return value.NewBoolean(true) }

package compiler

import (
	"strconv"
	"strings"

	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/lexer"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// Expression compilation is a cascade of recursive-descent levels, one per
// row of spec §4.4's precedence table (lowest binds loosest: ternary,
// then ||, then &&, then the bitwise/relational/shift/additive/
// multiplicative levels in that order, then unary). This achieves the
// same precedence and associativity as a precedence-climbing operator
// stack, in the more ordinary idiom of one Go function per precedence
// level.

func (c *Compiler) parseExpr() {
	c.parseTernary()
}

func (c *Compiler) parseTernary() {
	c.parseLogicalOr()
	if !c.curIs(lexer.QUESTION) {
		return
	}
	c.advance()

	falseLabel := c.newLabel("tern_false")
	endLabel := c.newLabel("tern_end")

	c.emit(bytecode.New1(bytecode.JUMP_FALSE, falseLabel))
	c.parseExpr() // true branch; right-associative via recursive parseExpr
	c.expect(lexer.COLON)
	c.emit(bytecode.New1(bytecode.JUMP, endLabel))
	c.script.MarkLabel(falseLabel)
	c.parseExpr() // false branch
	c.script.MarkLabel(endLabel)
}

func (c *Compiler) parseLogicalOr() {
	c.parseLogicalAnd()
	for c.curIs(lexer.PIPEPIPE) {
		c.advance()
		trueLabel := c.newLabel("or_true")
		endLabel := c.newLabel("or_end")
		c.emit(bytecode.New1(bytecode.JUMP_TRUE, trueLabel))
		c.parseLogicalAnd()
		c.emit(bytecode.New1(bytecode.JUMP, endLabel))
		c.script.MarkLabel(trueLabel)
		c.emit(bytecode.New1(bytecode.PUSH, value.NewBoolean(true)))
		c.script.MarkLabel(endLabel)
	}
}

func (c *Compiler) parseLogicalAnd() {
	c.parseBitOr()
	for c.curIs(lexer.AMPAMP) {
		c.advance()
		falseLabel := c.newLabel("and_false")
		endLabel := c.newLabel("and_end")
		c.emit(bytecode.New1(bytecode.JUMP_FALSE, falseLabel))
		c.parseBitOr()
		c.emit(bytecode.New1(bytecode.JUMP, endLabel))
		c.script.MarkLabel(falseLabel)
		c.emit(bytecode.New1(bytecode.PUSH, value.NewBoolean(false)))
		c.script.MarkLabel(endLabel)
	}
}

func (c *Compiler) parseBitOr() {
	c.parseBitXor()
	for c.curIs(lexer.PIPE) {
		c.advance()
		c.parseBitXor()
		c.emit(bytecode.New(bytecode.OR))
	}
}

func (c *Compiler) parseBitXor() {
	c.parseBitAnd()
	for c.curIs(lexer.CARET) {
		c.advance()
		c.parseBitAnd()
		c.emit(bytecode.New(bytecode.XOR))
	}
}

func (c *Compiler) parseBitAnd() {
	c.parseEquality()
	for c.curIs(lexer.AMP) {
		c.advance()
		c.parseEquality()
		c.emit(bytecode.New(bytecode.AND))
	}
}

func (c *Compiler) parseEquality() {
	c.parseRelational()
	for {
		var op bytecode.Opcode
		switch c.cur.Type {
		case lexer.EQ:
			op = bytecode.EQUAL
		case lexer.SEQ:
			op = bytecode.STRICT_EQUAL
		case lexer.NEQ:
			op = bytecode.NOT_EQUAL
		case lexer.SNEQ:
			op = bytecode.STRICT_NOT_EQUAL
		default:
			return
		}
		c.advance()
		c.parseRelational()
		c.emit(bytecode.New(op))
	}
}

func (c *Compiler) parseRelational() {
	c.parseShift()
	for {
		var op bytecode.Opcode
		switch c.cur.Type {
		case lexer.LT:
			op = bytecode.LESS
		case lexer.LE:
			op = bytecode.LESS_OR_EQUAL
		case lexer.GT:
			op = bytecode.GREATER
		case lexer.GE:
			op = bytecode.GREATER_OR_EQUAL
		default:
			return
		}
		c.advance()
		c.parseShift()
		c.emit(bytecode.New(op))
	}
}

func (c *Compiler) parseShift() {
	c.parseAdditive()
	for {
		var op bytecode.Opcode
		switch c.cur.Type {
		case lexer.SHL:
			op = bytecode.LEFT_SHIFT
		case lexer.SHR:
			op = bytecode.RIGHT_SHIFT
		case lexer.USHR:
			op = bytecode.RIGHT_SHIFT_PADDED
		default:
			return
		}
		c.advance()
		c.parseAdditive()
		c.emit(bytecode.New(op))
	}
}

func (c *Compiler) parseAdditive() {
	c.parseMultiplicative()
	for {
		var op bytecode.Opcode
		switch c.cur.Type {
		case lexer.PLUS:
			op = bytecode.ADD
		case lexer.MINUS:
			op = bytecode.SUBTRACT
		default:
			return
		}
		c.advance()
		c.parseMultiplicative()
		c.emit(bytecode.New(op))
	}
}

func (c *Compiler) parseMultiplicative() {
	c.parseUnary()
	for {
		var op bytecode.Opcode
		switch c.cur.Type {
		case lexer.STAR:
			op = bytecode.MULTIPLY
		case lexer.SLASH:
			op = bytecode.DIVIDE
		case lexer.PERCENT:
			op = bytecode.MODULO
		default:
			return
		}
		c.advance()
		c.parseUnary()
		c.emit(bytecode.New(op))
	}
}

func (c *Compiler) parseUnary() {
	switch c.cur.Type {
	case lexer.PLUS:
		c.advance()
		c.parseUnary()
		c.emit(bytecode.New(bytecode.ABSOLUTE))
	case lexer.MINUS:
		c.advance()
		c.parseUnary()
		c.emit(bytecode.New(bytecode.NEGATE))
	case lexer.BANG:
		c.advance()
		c.parseUnary()
		c.emit(bytecode.New(bytecode.LOGICAL_NOT))
	case lexer.TILDE:
		c.advance()
		c.parseUnary()
		c.emit(bytecode.New(bytecode.NOT))
	default:
		c.parsePrimary()
	}
}

func (c *Compiler) parsePrimary() {
	switch c.cur.Type {
	case lexer.INTEGER:
		c.emit(bytecode.New1(bytecode.PUSH, value.NewInteger(parseIntLiteral(c.cur.Literal))))
		c.advance()
	case lexer.FLOAT:
		f, _ := strconv.ParseFloat(c.cur.Literal, 64)
		c.emit(bytecode.New1(bytecode.PUSH, value.NewFloat(f)))
		c.advance()
	case lexer.STRING:
		c.emit(bytecode.New1(bytecode.PUSH, value.NewString(c.cur.Literal)))
		c.advance()
	case lexer.TRUE:
		c.emit(bytecode.New1(bytecode.PUSH, value.NewBoolean(true)))
		c.advance()
	case lexer.FALSE:
		c.emit(bytecode.New1(bytecode.PUSH, value.NewBoolean(false)))
		c.advance()
	case lexer.INFINITY:
		c.emit(bytecode.New1(bytecode.PUSH, value.NewFloat(posInf())))
		c.advance()
	case lexer.NAN:
		c.emit(bytecode.New1(bytecode.PUSH, value.NewFloat(nan())))
		c.advance()
	case lexer.LPAREN:
		c.advance()
		c.parseExpr()
		c.expect(lexer.RPAREN)
	case lexer.LBRACK:
		c.parseListLiteral()
	case lexer.IDENT:
		c.parseIdentExpr()
	default:
		c.errorf("unexpected token %s (%q) in expression", c.cur.Type, c.cur.Literal)
		c.emit(bytecode.New1(bytecode.PUSH, value.NewNull()))
		c.advance()
	}
}

func (c *Compiler) parseListLiteral() {
	c.expect(lexer.LBRACK)
	n := 0
	if !c.curIs(lexer.RBRACK) {
		c.parseExpr()
		n++
		for c.curIs(lexer.COMMA) {
			c.advance()
			c.parseExpr()
			n++
		}
	}
	c.expect(lexer.RBRACK)
	if n == 0 {
		c.emit(bytecode.New(bytecode.PUSH_LIST_NEW))
		return
	}
	c.emit(bytecode.New1(bytecode.PUSH_LIST_INIT, n))
}

// parseIdentExpr compiles an identifier appearing in expression position:
// a call, a plain variable read, or a variable read followed by one or
// more index operations.
func (c *Compiler) parseIdentExpr() {
	name := c.cur.Literal
	c.advance()

	if c.curIs(lexer.LPAREN) {
		c.compileCall(name, false)
		return
	}

	c.emit(bytecode.New1(bytecode.PUSH_VARIABLE, name))
	for c.curIs(lexer.LBRACK) {
		c.advance()
		c.parseExpr()
		c.expect(lexer.RBRACK)
		c.emit(bytecode.New(bytecode.PUSH_LIST_INDEX))
	}
}

// compileCall parses a call's argument list and emits CALL or CALL_HOST
// depending on whether name is a known script-local function/entry, per
// spec §4.4's parameter-call lowering. statementPos indicates whether a
// trailing POP should be emitted for a non-void result (spec: "statement-
// form local calls emit a trailing POP").
func (c *Compiler) compileCall(name string, statementPos bool) {
	c.expect(lexer.LPAREN)
	argc := c.parseArgList()
	c.expect(lexer.RPAREN)

	if info, ok := c.script.Functions.Get(name); ok {
		c.checkArity(name, info.ParamCount, argc)
		c.emit(bytecode.New1(bytecode.CALL, bytecode.FunctionPrefix+name))
		if statementPos {
			c.emit(bytecode.New(bytecode.POP))
		}
		return
	}
	if info, ok := c.script.Entries.Get(name); ok {
		c.checkArity(name, info.ParamCount, argc)
		c.emit(bytecode.New1(bytecode.CALL, bytecode.EntryPrefix+name))
		if statementPos {
			c.emit(bytecode.New(bytecode.POP))
		}
		return
	}

	isVoid := c.hostIsVoid(name)
	c.emit(bytecode.New1(bytecode.CALL_HOST, name))
	if statementPos && !isVoid {
		c.emit(bytecode.New(bytecode.POP))
	}
}

func (c *Compiler) checkArity(name string, want, got int) {
	if want != got {
		c.errorf("%s expects %d argument(s), got %d", name, want, got)
	}
}

func (c *Compiler) hostIsVoid(name string) bool {
	if c.hostResolver == nil {
		return true
	}
	fn, ok := c.hostResolver.Resolve("", name)
	if !ok {
		return true
	}
	return fn.IsVoid()
}

func (c *Compiler) parseArgList() int {
	n := 0
	if c.curIs(lexer.RPAREN) {
		return 0
	}
	c.parseExpr()
	n++
	for c.curIs(lexer.COMMA) {
		c.advance()
		c.parseExpr()
		n++
	}
	return n
}

func parseIntLiteral(lit string) int64 {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		n, _ := strconv.ParseInt(lit[2:], 16, 64)
		return n
	}
	n, _ := strconv.ParseInt(lit, 10, 64)
	return n
}

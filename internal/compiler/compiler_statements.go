package compiler

import (
	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/lexer"
)

// prescanDeclarations runs a throwaway lexer over the whole source once,
// before the real parse, and registers every "function"/"entry"
// declaration's name and parameter count in the script's Functions/Entries
// tables with a placeholder index of 0. Expression compilation consults
// these tables to decide CALL vs. CALL_HOST (spec §4.4), and a call is
// free to precede the declaration it targets in source order; the real
// parse overwrites the placeholder index once it reaches the declaration.
func (c *Compiler) prescanDeclarations() {
	l := lexer.New(c.source)
	tok := l.Next()
	for tok.Type != lexer.EOF {
		if tok.Type != lexer.FUNCTION && tok.Type != lexer.ENTRY {
			tok = l.Next()
			continue
		}
		isFunction := tok.Type == lexer.FUNCTION
		nameTok := l.Next()
		if nameTok.Type != lexer.IDENT {
			tok = nameTok
			continue
		}
		paren := l.Next()
		if paren.Type != lexer.LPAREN {
			tok = paren
			continue
		}
		count := 0
		t := l.Next()
		if t.Type != lexer.RPAREN {
			count++
			for t.Type == lexer.IDENT {
				t = l.Next()
				if t.Type != lexer.COMMA {
					break
				}
				count++
				t = l.Next()
			}
		}
		if isFunction {
			c.script.Functions.Set(nameTok.Literal, bytecode.EntryInfo{ParamCount: count})
		} else {
			c.script.Entries.Set(nameTok.Literal, bytecode.EntryInfo{ParamCount: count})
		}
		tok = l.Next()
	}
}

// parseProgram parses the top-level Script := (Entry)* production.
func (c *Compiler) parseProgram() {
	for !c.curIs(lexer.EOF) {
		c.parseEntry()
	}
}

func (c *Compiler) parseEntry() {
	switch c.cur.Type {
	case lexer.INCLUDE:
		c.parseIncludeDirective()
	case lexer.MAIN:
		c.parseMainEntry()
	case lexer.ENTRY:
		c.parseNamedEntry()
	case lexer.FUNCTION:
		c.parseFunctionEntry()
	case lexer.PRAGMA:
		c.parsePragmaEntry()
	default:
		c.errorf("unexpected token %s (%q) at top level", c.cur.Type, c.cur.Literal)
		c.advance()
	}
}

// parseIncludeDirective resolves an #include and splices the included
// source's entries into the current script by recursively compiling it
// with a fresh sub-lexer, restoring the outer lexer state afterward.
func (c *Compiler) parseIncludeDirective() {
	filename := c.cur.Literal
	c.advance()

	if c.includer == nil {
		c.errorf("#include %q: no includer configured", filename)
		return
	}
	src, err := c.includer.Include(filename)
	if err != nil {
		c.errorf("#include %q: %v", filename, err)
		return
	}

	savedLex, savedCur, savedNxt := c.lex, c.cur, c.nxt
	savedFilename, savedSource := c.filename, c.source

	c.lex = lexer.New(src)
	c.filename = filename
	c.source = src
	c.advance()
	c.advance()

	for !c.curIs(lexer.EOF) {
		c.parseEntry()
	}
	if lexErrs := c.lex.Errors(); len(lexErrs) > 0 {
		for _, m := range lexErrs {
			c.errorf("%s", m)
		}
	}

	c.lex, c.cur, c.nxt = savedLex, savedCur, savedNxt
	c.filename, c.source = savedFilename, savedSource
}

func (c *Compiler) parseMainEntry() {
	c.expect(lexer.MAIN)
	c.expect(lexer.LPAREN)
	c.expect(lexer.RPAREN)

	idx := len(c.script.Commands)
	c.script.MarkLabelAt(bytecode.MainLabel, idx)
	c.script.Entries.Set(bytecode.MainLabel, bytecode.EntryInfo{ParamCount: 0, Index: idx})

	c.parseFunctionBody()
}

func (c *Compiler) parseNamedEntry() {
	c.expect(lexer.ENTRY)
	name := c.expect(lexer.IDENT).Literal
	c.expect(lexer.LPAREN)
	params := c.parseParamList()
	c.expect(lexer.RPAREN)

	label := bytecode.EntryPrefix + name
	idx := len(c.script.Commands)
	c.script.MarkLabelAt(label, idx)
	c.script.Entries.Set(name, bytecode.EntryInfo{ParamCount: len(params), Index: idx})

	c.bindParams(params)
	c.parseFunctionBody()
}

func (c *Compiler) parseFunctionEntry() {
	c.expect(lexer.FUNCTION)
	name := c.expect(lexer.IDENT).Literal
	c.expect(lexer.LPAREN)
	params := c.parseParamList()
	c.expect(lexer.RPAREN)

	label := bytecode.FunctionPrefix + name
	idx := len(c.script.Commands)
	c.script.MarkLabelAt(label, idx)
	c.script.Functions.Set(name, bytecode.EntryInfo{ParamCount: len(params), Index: idx})

	c.bindParams(params)
	c.parseFunctionBody()
}

// parsePragmaEntry consumes a top-level "pragma name(args);" directive.
// RookScript pragmas are purely informational hints to the host tooling
// (e.g. a disassembler annotation); the compiler parses and discards them
// rather than lowering them to bytecode.
func (c *Compiler) parsePragmaEntry() {
	c.expect(lexer.PRAGMA)
	c.expect(lexer.IDENT)
	if c.curIs(lexer.LPAREN) {
		c.advance()
		for !c.curIs(lexer.RPAREN) && !c.curIs(lexer.EOF) {
			c.advance()
		}
		c.expect(lexer.RPAREN)
	}
	c.expect(lexer.SEMI)
}

func (c *Compiler) parseParamList() []string {
	var params []string
	if c.curIs(lexer.RPAREN) {
		return params
	}
	params = append(params, c.expect(lexer.IDENT).Literal)
	for c.curIs(lexer.COMMA) {
		c.advance()
		params = append(params, c.expect(lexer.IDENT).Literal)
	}
	return params
}

// bindParams emits the callee-side prologue that pops arguments the
// caller pushed left-to-right into named locals. Binding in reverse
// parameter order matches the stack's LIFO order: the last-pushed
// argument is on top and belongs to the last parameter.
func (c *Compiler) bindParams(params []string) {
	for i := len(params) - 1; i >= 0; i-- {
		c.emit(bytecode.New1(bytecode.POP_VARIABLE, params[i]))
	}
}

// parseFunctionBody parses a brace-delimited statement list and appends an
// implicit "return false;" if control can fall off the end without one,
// so RETURN always has a value underneath it on the stack (spec §4.3).
func (c *Compiler) parseFunctionBody() {
	c.expect(lexer.LBRACE)
	for !c.curIs(lexer.RBRACE) && !c.curIs(lexer.EOF) {
		c.parseStatement()
	}
	c.expect(lexer.RBRACE)

	// A label at the end index (an if/else or loop exit, or the function's
	// own entry label on an empty body) means control can still arrive
	// there even when the last command is a RETURN.
	if n := len(c.script.Commands); n == 0 || c.script.Commands[n-1].Op != bytecode.RETURN || len(c.script.LabelsByIndex[n]) > 0 {
		c.emit(bytecode.New1(bytecode.PUSH, falseValue()))
		c.emit(bytecode.New(bytecode.RETURN))
	}
}

func (c *Compiler) parseBlock() {
	c.expect(lexer.LBRACE)
	for !c.curIs(lexer.RBRACE) && !c.curIs(lexer.EOF) {
		c.parseStatement()
	}
	c.expect(lexer.RBRACE)
}

func (c *Compiler) parseStmtBody() {
	if c.curIs(lexer.LBRACE) {
		c.parseBlock()
	} else {
		c.parseStatement()
	}
}

func (c *Compiler) parseStatement() {
	switch c.cur.Type {
	case lexer.SEMI:
		c.advance()
	case lexer.LBRACE:
		c.parseBlock()
	case lexer.BREAK:
		c.advance()
		c.expect(lexer.SEMI)
		if len(c.loopLabels) == 0 {
			c.errorf("break outside of a loop")
			return
		}
		top := c.loopLabels[len(c.loopLabels)-1]
		c.emit(bytecode.New1(bytecode.JUMP, top.breakLabel))
	case lexer.CONTINUE:
		c.advance()
		c.expect(lexer.SEMI)
		if len(c.loopLabels) == 0 {
			c.errorf("continue outside of a loop")
			return
		}
		top := c.loopLabels[len(c.loopLabels)-1]
		c.emit(bytecode.New1(bytecode.JUMP, top.continueLabel))
	case lexer.RETURN:
		c.advance()
		if c.curIs(lexer.SEMI) {
			c.emit(bytecode.New1(bytecode.PUSH, falseValue()))
		} else {
			c.parseExpr()
		}
		c.expect(lexer.SEMI)
		c.emit(bytecode.New(bytecode.RETURN))
	case lexer.IF:
		c.parseIfStatement()
	case lexer.WHILE:
		c.parseWhileStatement()
	case lexer.FOR:
		c.parseForStatement()
	case lexer.IDENT:
		name := c.cur.Literal
		c.advance()
		c.parseIdentifierStmt(name)
		c.expect(lexer.SEMI)
	default:
		c.errorf("unexpected token %s (%q) in statement", c.cur.Type, c.cur.Literal)
		c.advance()
	}
}

func (c *Compiler) parseIfStatement() {
	c.expect(lexer.IF)
	c.expect(lexer.LPAREN)
	c.parseExpr()
	c.expect(lexer.RPAREN)

	elseLabel := c.newLabel("else")
	c.emit(bytecode.New1(bytecode.JUMP_FALSE, elseLabel))
	c.parseStmtBody()

	if c.curIs(lexer.ELSE) {
		c.advance()
		endLabel := c.newLabel("endif")
		c.emit(bytecode.New1(bytecode.JUMP, endLabel))
		c.script.MarkLabel(elseLabel)
		c.parseStmtBody()
		c.script.MarkLabel(endLabel)
		return
	}
	c.script.MarkLabel(elseLabel)
}

func (c *Compiler) parseWhileStatement() {
	c.expect(lexer.WHILE)
	c.expect(lexer.LPAREN)

	startLabel := c.newLabel("while_start")
	endLabel := c.newLabel("while_end")

	c.script.MarkLabel(startLabel)
	c.parseExpr()
	c.expect(lexer.RPAREN)
	c.emit(bytecode.New1(bytecode.JUMP_FALSE, endLabel))

	c.loopLabels = append(c.loopLabels, loopLabel{continueLabel: startLabel, breakLabel: endLabel})
	c.parseStmtBody()
	c.loopLabels = c.loopLabels[:len(c.loopLabels)-1]

	c.emit(bytecode.New1(bytecode.JUMP, startLabel))
	c.script.MarkLabel(endLabel)
}

// parseForStatement compiles for (init; cond; post) body by parsing the
// post clause where it appears in source (before the body), then jumping
// around it on the loop's first pass: the body always ends by jumping
// back into the post clause, which falls through into the condition
// check, so the post clause only ever runs between iterations.
func (c *Compiler) parseForStatement() {
	c.expect(lexer.FOR)
	c.expect(lexer.LPAREN)

	c.parseForClause()
	c.expect(lexer.SEMI)

	startLabel := c.newLabel("for_start")
	endLabel := c.newLabel("for_end")
	postLabel := c.newLabel("for_post")
	bodyLabel := c.newLabel("for_body")

	c.script.MarkLabel(startLabel)
	if c.curIs(lexer.SEMI) {
		c.emit(bytecode.New1(bytecode.PUSH, trueValue()))
	} else {
		c.parseExpr()
	}
	c.expect(lexer.SEMI)
	c.emit(bytecode.New1(bytecode.JUMP_FALSE, endLabel))
	c.emit(bytecode.New1(bytecode.JUMP, bodyLabel))

	c.script.MarkLabel(postLabel)
	c.parseForClause()
	c.expect(lexer.RPAREN)
	c.emit(bytecode.New1(bytecode.JUMP, startLabel))

	c.script.MarkLabel(bodyLabel)
	c.loopLabels = append(c.loopLabels, loopLabel{continueLabel: postLabel, breakLabel: endLabel})
	c.parseStmtBody()
	c.loopLabels = c.loopLabels[:len(c.loopLabels)-1]
	c.emit(bytecode.New1(bytecode.JUMP, postLabel))

	c.script.MarkLabel(endLabel)
}

// parseForClause parses an optional single identifier-led statement
// (assignment or call) used as a for loop's init or post clause, without
// consuming a delimiter; the caller expects the following ';' or ')'.
func (c *Compiler) parseForClause() {
	if !c.curIs(lexer.IDENT) {
		return
	}
	name := c.cur.Literal
	c.advance()
	c.parseIdentifierStmt(name)
}

// parseIdentifierStmt compiles everything that can follow a bare
// identifier in statement position: a call, a plain or compound
// assignment, or an indexed (list element) assignment. An indexed
// assignment accepts the same chained ('[' Expr ']')+ the expression-
// position reader does, descending through all but the final index
// with a plain read before handing the last container/index pair to
// compileIndexedAssign.
func (c *Compiler) parseIdentifierStmt(name string) {
	if c.curIs(lexer.LPAREN) {
		c.compileCall(name, true)
		return
	}

	if c.curIs(lexer.LBRACK) {
		c.advance()
		c.emit(bytecode.New1(bytecode.PUSH_VARIABLE, name))
		c.parseExpr()
		c.expect(lexer.RBRACK)
		for c.curIs(lexer.LBRACK) {
			c.emit(bytecode.New(bytecode.PUSH_LIST_INDEX))
			c.advance()
			c.parseExpr()
			c.expect(lexer.RBRACK)
		}
		c.compileIndexedAssign()
		return
	}

	c.compileSimpleAssign(name)
}

// compileSimpleAssign handles "name = expr" and "name OP= expr".
func (c *Compiler) compileSimpleAssign(name string) {
	op, isAssign := c.assignOp()
	if isAssign {
		c.advance()
		c.parseExpr()
		c.emit(bytecode.New1(bytecode.POP_VARIABLE, name))
		return
	}
	if op == bytecode.NOOP {
		c.errorf("expected assignment operator, got %s (%q)", c.cur.Type, c.cur.Literal)
		return
	}
	c.advance()
	c.emit(bytecode.New1(bytecode.PUSH_VARIABLE, name))
	c.parseExpr()
	c.emit(bytecode.New(op))
	c.emit(bytecode.New1(bytecode.POP_VARIABLE, name))
}

// compileIndexedAssign handles "name[index] = expr" and
// "name[index] OP= expr". The caller has already emitted code leaving
// list, index on the stack (in that order).
func (c *Compiler) compileIndexedAssign() {
	op, isAssign := c.assignOp()
	if !isAssign && op == bytecode.NOOP {
		c.errorf("expected assignment operator, got %s (%q)", c.cur.Type, c.cur.Literal)
		return
	}
	c.advance()

	if isAssign {
		c.parseExpr() // stack: list, index, value
		c.emit(bytecode.New(bytecode.POP_LIST))
		return
	}
	c.emit(bytecode.New(bytecode.PUSH_LIST_INDEX_CONTENTS)) // stack: list, index, current
	c.parseExpr()                                           // stack: list, index, current, rhs
	c.emit(bytecode.New(op))                                // stack: list, index, result
	c.emit(bytecode.New(bytecode.POP_LIST))
}

// assignOp reports the binary opcode a compound assignment operator
// lowers to, and whether the current token is a plain '='.
func (c *Compiler) assignOp() (bytecode.Opcode, bool) {
	switch c.cur.Type {
	case lexer.ASSIGN:
		return bytecode.NOOP, true
	case lexer.PLUS_ASSIGN:
		return bytecode.ADD, false
	case lexer.MINUS_ASSIGN:
		return bytecode.SUBTRACT, false
	case lexer.STAR_ASSIGN:
		return bytecode.MULTIPLY, false
	case lexer.SLASH_ASSIGN:
		return bytecode.DIVIDE, false
	case lexer.PERCENT_ASSIGN:
		return bytecode.MODULO, false
	case lexer.AMP_ASSIGN:
		return bytecode.AND, false
	case lexer.PIPE_ASSIGN:
		return bytecode.OR, false
	case lexer.CARET_ASSIGN:
		return bytecode.XOR, false
	case lexer.SHL_ASSIGN:
		return bytecode.LEFT_SHIFT, false
	case lexer.SHR_ASSIGN:
		return bytecode.RIGHT_SHIFT, false
	case lexer.USHR_ASSIGN:
		return bytecode.RIGHT_SHIFT_PADDED, false
	default:
		return bytecode.NOOP, false
	}
}

package lexer

import "testing"

func TestNextBasicTokens(t *testing.T) {
	input := `main() { return 1 + 2 * 3; }`
	want := []Type{MAIN, LPAREN, RPAREN, LBRACE, RETURN, INTEGER, PLUS, INTEGER, STAR, INTEGER, SEMI, RBRACE, EOF}

	l := New(input)
	for i, wt := range want {
		tok := l.Next()
		if tok.Type != wt {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, wt)
		}
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	for _, s := range []string{"IF", "If", "if", "WHILE", "While"} {
		l := New(s)
		tok := l.Next()
		if tok.Type == IDENT {
			t.Errorf("%q lexed as IDENT, want keyword", s)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\""`)
	tok := l.Next()
	if tok.Type != STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	want := "hello\nworld\t\"quoted\""
	if tok.Literal != want {
		t.Errorf("got %q, want %q", tok.Literal, want)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   Type
	}{
		{"123", INTEGER},
		{"0x1F", INTEGER},
		{"0XFF", INTEGER},
		{"1.5", FLOAT},
		{"1.5e10", FLOAT},
		{"1.5e-10", FLOAT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Type != tt.typ {
			t.Errorf("%q: got %s, want %s", tt.input, tok.Type, tt.typ)
		}
		if tok.Literal != tt.input {
			t.Errorf("%q: literal = %q", tt.input, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % & | ^ ~ ! && || << >> >>> < <= > >= == === != !== = += -= *= /= %= &= |= ^= <<= >>= >>>=`
	want := []Type{
		PLUS, MINUS, STAR, SLASH, PERCENT, AMP, PIPE, CARET, TILDE, BANG,
		AMPAMP, PIPEPIPE, SHL, SHR, USHR, LT, LE, GT, GE, EQ, SEQ, NEQ, SNEQ, ASSIGN,
		PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		AMP_ASSIGN, PIPE_ASSIGN, CARET_ASSIGN, SHL_ASSIGN, SHR_ASSIGN, USHR_ASSIGN,
	}
	l := New(input)
	for i, wt := range want {
		tok := l.Next()
		if tok.Type != wt {
			t.Fatalf("token %d (%q): got %s, want %s", i, tok.Literal, tok.Type, wt)
		}
	}
}

func TestLineComment(t *testing.T) {
	l := New("1 // comment\n2")
	first := l.Next()
	second := l.Next()
	if first.Type != INTEGER || first.Literal != "1" {
		t.Fatalf("first = %+v", first)
	}
	if second.Type != INTEGER || second.Literal != "2" {
		t.Fatalf("second = %+v", second)
	}
}

func TestBlockComment(t *testing.T) {
	l := New("1 /* comment\nspans lines */ 2")
	first := l.Next()
	second := l.Next()
	if first.Literal != "1" || second.Literal != "2" {
		t.Fatalf("got %+v, %+v", first, second)
	}
}

func TestIncludeDirective(t *testing.T) {
	l := New(`#include "common.rookscript"` + "\nmain(){}")
	tok := l.Next()
	if tok.Type != INCLUDE {
		t.Fatalf("got %s, want INCLUDE", tok.Type)
	}
	if tok.Literal != "common.rookscript" {
		t.Errorf("literal = %q", tok.Literal)
	}
}

func TestUnterminatedStringError(t *testing.T) {
	l := New(`"unterminated`)
	l.Next()
	if len(l.Errors()) == 0 {
		t.Error("expected an error for unterminated string")
	}
}

func TestUnicodeColumnCounting(t *testing.T) {
	l := New("中 x")
	first := l.Next()
	second := l.Next()
	if first.Pos.Column != 1 {
		t.Errorf("first.Pos.Column = %d, want 1", first.Pos.Column)
	}
	if second.Pos.Column != 3 {
		t.Errorf("second.Pos.Column = %d, want 3", second.Pos.Column)
	}
}

package lexer

import (
	"testing"

	"github.com/rickenator/vyn/internal/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	lex := New("test.vyn", input)
	toks, err := lex.Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, toks []token.Token, expected []token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\nexpected: %v\ngot: %v", len(expected), len(got), expected, got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %s, got %s (lexeme %q)", i, exp, got[i], toks[i].Lexeme)
		}
	}
}

func TestIndentedFunction(t *testing.T) {
	input := "fn main():\n    let x = 1\n    return x\n"
	toks := tokenize(t, input)
	assertKinds(t, toks, []token.Kind{
		token.KEYWORD_FN, token.IDENTIFIER, token.LPAREN, token.RPAREN, token.COLON,
		token.INDENT,
		token.KEYWORD_LET, token.IDENTIFIER, token.EQ, token.INT_LITERAL, token.NEWLINE,
		token.KEYWORD_RETURN, token.IDENTIFIER, token.NEWLINE,
		token.DEDENT, token.END_OF_FILE,
	})
}

func TestNestedBlocksDedentBalance(t *testing.T) {
	input := "fn f():\n    if true:\n        let a = 1\n    let b = 2\n"
	toks := tokenize(t, input)
	indent, dedent := 0, 0
	for _, tk := range toks {
		switch tk.Kind {
		case token.INDENT:
			indent++
		case token.DEDENT:
			dedent++
		}
	}
	if indent != dedent {
		t.Fatalf("unbalanced INDENT/DEDENT: %d INDENT vs %d DEDENT", indent, dedent)
	}
}

func TestTabRejected(t *testing.T) {
	input := "fn f():\n\tlet a = 1\n"
	lex := New("test.vyn", input)
	_, err := lex.Tokenize()
	if err == nil {
		t.Fatal("expected an error for tab-indented line")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
	want := "Tabs not allowed at line 2, column 1"
	if lexErr.Message != want {
		t.Errorf("expected message %q, got %q", want, lexErr.Message)
	}
}

func TestNestingSuppressesNewline(t *testing.T) {
	input := "let xs = [\n    1,\n    2,\n]\n"
	toks := tokenize(t, input)
	for _, tk := range toks {
		if tk.Kind == token.INDENT || tk.Kind == token.DEDENT {
			t.Fatalf("did not expect INDENT/DEDENT while nested inside brackets, got %s", tk.Kind)
		}
	}
	assertKinds(t, toks, []token.Kind{
		token.KEYWORD_LET, token.IDENTIFIER, token.EQ, token.LBRACKET,
		token.INT_LITERAL, token.COMMA, token.INT_LITERAL, token.COMMA,
		token.RBRACKET, token.NEWLINE, token.END_OF_FILE,
	})
}

func TestRangeOperatorVsFloat(t *testing.T) {
	toks := tokenize(t, "1..10\n")
	assertKinds(t, toks, []token.Kind{
		token.INT_LITERAL, token.DOTDOT, token.INT_LITERAL, token.NEWLINE, token.END_OF_FILE,
	})

	toks = tokenize(t, "1.5\n")
	assertKinds(t, toks, []token.Kind{token.FLOAT_LITERAL, token.NEWLINE, token.END_OF_FILE})
}

func TestDigraphOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Kind
	}{
		{"==", token.EQEQ}, {"!=", token.NOTEQ}, {"<=", token.LTEQ}, {">=", token.GTEQ},
		{"->", token.ARROW}, {"=>", token.FAT_ARROW}, {"::", token.COLONCOLON},
		{"..", token.DOTDOT}, {"<<", token.SHL}, {">>", token.SHR},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lex := New("test.vyn", tt.input)
			tok, err := lex.NextToken()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok.Kind != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, tok.Kind)
			}
		})
	}
}

func TestKeywordsAndOwnershipWrappers(t *testing.T) {
	toks := tokenize(t, "my our their ptr borrow view scoped smuggle\n")
	assertKinds(t, toks, []token.Kind{
		token.KEYWORD_MY, token.KEYWORD_OUR, token.KEYWORD_THEIR, token.KEYWORD_PTR,
		token.KEYWORD_BORROW, token.KEYWORD_VIEW, token.KEYWORD_SCOPED, token.KEYWORD_SMUGGLE,
		token.NEWLINE, token.END_OF_FILE,
	})
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := tokenize(t, `"hello\n" 'a'` + "\n")
	assertKinds(t, toks, []token.Kind{
		token.STRING_LITERAL, token.CHAR_LITERAL, token.NEWLINE, token.END_OF_FILE,
	})
	if toks[0].Lexeme != "hello\n" {
		t.Errorf("expected decoded escape, got %q", toks[0].Lexeme)
	}
}

func TestNoNewlineBeforeIndentOrLeadingBlankLine(t *testing.T) {
	input := "\nfn main()\n  const x = 1\n"
	toks := tokenize(t, input)
	assertKinds(t, toks, []token.Kind{
		token.KEYWORD_FN, token.IDENTIFIER, token.LPAREN, token.RPAREN,
		token.INDENT,
		token.KEYWORD_CONST, token.IDENTIFIER, token.EQ, token.INT_LITERAL, token.NEWLINE,
		token.DEDENT, token.END_OF_FILE,
	})
}

func TestMalformedTrailingDot(t *testing.T) {
	lex := New("test.vyn", "1.\n")
	_, err := lex.NextToken()
	if err == nil {
		t.Fatal("expected an error for a digit run followed by a lone trailing dot")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
	want := "malformed numeric literal (trailing dot not followed by another dot)"
	if lexErr.Message != want {
		t.Errorf("expected message %q, got %q", want, lexErr.Message)
	}
}

func TestBlankAndCommentLinesDoNotShiftIndent(t *testing.T) {
	input := "fn f():\n    let a = 1\n\n    // comment\n    let b = 2\n"
	toks := tokenize(t, input)
	indent, dedent := 0, 0
	for _, tk := range toks {
		switch tk.Kind {
		case token.INDENT:
			indent++
		case token.DEDENT:
			dedent++
		}
	}
	if indent != 1 || dedent != 1 {
		t.Fatalf("expected exactly one INDENT/DEDENT pair, got %d/%d", indent, dedent)
	}
}

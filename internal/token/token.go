// Package token defines the lexical atom produced by the lexer and consumed
// by the parser: Kind, the fixed keyword table, and the Token record
// itself.
package token

import (
	"fmt"

	"github.com/rickenator/vyn/pkg/diagnostics"
)

// Kind partitions tokens into literals, identifiers, keywords,
// punctuation/operators, and the synthetic kinds emitted by the lexer.
type Kind int

const (
	// Special
	ILLEGAL Kind = iota
	END_OF_FILE
	COMMENT
	NEWLINE
	INDENT
	DEDENT

	// Literals
	IDENTIFIER
	INT_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL
	CHAR_LITERAL
	BOOL_LITERAL

	// Keywords
	KEYWORD_LET
	KEYWORD_VAR
	KEYWORD_CONST
	KEYWORD_MUT
	KEYWORD_IF
	KEYWORD_ELSE
	KEYWORD_WHILE
	KEYWORD_FOR
	KEYWORD_IN
	KEYWORD_RETURN
	KEYWORD_BREAK
	KEYWORD_CONTINUE
	KEYWORD_NIL
	KEYWORD_TRUE
	KEYWORD_FALSE
	KEYWORD_FN
	KEYWORD_STRUCT
	KEYWORD_CLASS
	KEYWORD_ENUM
	KEYWORD_TRAIT
	KEYWORD_IMPL
	KEYWORD_TYPE
	KEYWORD_MODULE
	KEYWORD_USE
	KEYWORD_PUB
	KEYWORD_TRY
	KEYWORD_CATCH
	KEYWORD_FINALLY
	KEYWORD_DEFER
	KEYWORD_MATCH
	KEYWORD_SCOPED
	KEYWORD_REF
	KEYWORD_EXTERN
	KEYWORD_AS
	KEYWORD_TEMPLATE
	KEYWORD_IMPORT
	KEYWORD_SMUGGLE
	KEYWORD_AWAIT
	KEYWORD_ASYNC
	KEYWORD_OPERATOR
	KEYWORD_THROWS
	KEYWORD_MY
	KEYWORD_OUR
	KEYWORD_THEIR
	KEYWORD_PTR
	KEYWORD_BORROW
	KEYWORD_VIEW
	KEYWORD_AT
	KEYWORD_ADDR
	KEYWORD_FROM
	KEYWORD_LOC

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	EQ       // =
	EQEQ     // ==
	NOTEQ    // !=
	LT       // <
	GT       // >
	LTEQ     // <=
	GTEQ     // >=
	AND_AND  // &&
	OR_OR    // ||
	BANG     // !
	AMP      // &
	PIPE     // |
	CARET    // ^
	TILDE    // ~
	SHL      // <<
	SHR      // >>
	DOTDOT   // ..
	QUESTION // ?

	// Punctuation
	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }
	LBRACKET   // [
	RBRACKET   // ]
	COMMA      // ,
	DOT        // .
	COLON      // :
	SEMICOLON  // ;
	ARROW      // ->
	FAT_ARROW  // =>
	COLONCOLON // ::
	AT         // @
)

var names = map[Kind]string{
	ILLEGAL:        "ILLEGAL",
	END_OF_FILE:    "EOF",
	COMMENT:        "COMMENT",
	NEWLINE:        "NEWLINE",
	INDENT:         "INDENT",
	DEDENT:         "DEDENT",
	IDENTIFIER:     "IDENTIFIER",
	INT_LITERAL:    "INT_LITERAL",
	FLOAT_LITERAL:  "FLOAT_LITERAL",
	STRING_LITERAL: "STRING_LITERAL",
	CHAR_LITERAL:   "CHAR_LITERAL",
	BOOL_LITERAL:   "BOOL_LITERAL",

	KEYWORD_LET: "let", KEYWORD_VAR: "var", KEYWORD_CONST: "const",
	KEYWORD_MUT: "mut", KEYWORD_IF: "if", KEYWORD_ELSE: "else",
	KEYWORD_WHILE: "while", KEYWORD_FOR: "for", KEYWORD_IN: "in",
	KEYWORD_RETURN: "return", KEYWORD_BREAK: "break", KEYWORD_CONTINUE: "continue",
	KEYWORD_NIL: "nil", KEYWORD_TRUE: "true", KEYWORD_FALSE: "false",
	KEYWORD_FN: "fn", KEYWORD_STRUCT: "struct", KEYWORD_CLASS: "class",
	KEYWORD_ENUM: "enum", KEYWORD_TRAIT: "trait", KEYWORD_IMPL: "impl",
	KEYWORD_TYPE: "type", KEYWORD_MODULE: "module", KEYWORD_USE: "use",
	KEYWORD_PUB: "pub", KEYWORD_TRY: "try", KEYWORD_CATCH: "catch",
	KEYWORD_FINALLY: "finally", KEYWORD_DEFER: "defer", KEYWORD_MATCH: "match",
	KEYWORD_SCOPED: "scoped", KEYWORD_REF: "ref", KEYWORD_EXTERN: "extern",
	KEYWORD_AS: "as", KEYWORD_TEMPLATE: "template", KEYWORD_IMPORT: "import",
	KEYWORD_SMUGGLE: "smuggle", KEYWORD_AWAIT: "await", KEYWORD_ASYNC: "async",
	KEYWORD_OPERATOR: "operator", KEYWORD_THROWS: "throws",
	KEYWORD_MY: "my", KEYWORD_OUR: "our", KEYWORD_THEIR: "their", KEYWORD_PTR: "ptr",
	KEYWORD_BORROW: "borrow", KEYWORD_VIEW: "view", KEYWORD_AT: "at",
	KEYWORD_ADDR: "addr", KEYWORD_FROM: "from", KEYWORD_LOC: "loc",

	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	EQ: "=", EQEQ: "==", NOTEQ: "!=", LT: "<", GT: ">", LTEQ: "<=", GTEQ: ">=",
	AND_AND: "&&", OR_OR: "||", BANG: "!", AMP: "&", PIPE: "|", CARET: "^",
	TILDE: "~", SHL: "<<", SHR: ">>", DOTDOT: "..", QUESTION: "?",

	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", COMMA: ",", DOT: ".", COLON: ":",
	SEMICOLON: ";", ARROW: "->", FAT_ARROW: "=>", COLONCOLON: "::", AT: "@",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords is the fixed table the lexer resolves identifiers against by
// exact match. Soft/contextual keywords (scoped, borrow, view, at, addr,
// from, loc, my/our/their/ptr) are included here as real keywords: Vyn
// reserves them everywhere, unlike the teacher's Solidity grammar which
// treats a handful of keywords as contextual identifiers.
var Keywords = map[string]Kind{
	"let": KEYWORD_LET, "var": KEYWORD_VAR, "const": KEYWORD_CONST,
	"mut": KEYWORD_MUT, "if": KEYWORD_IF, "else": KEYWORD_ELSE,
	"while": KEYWORD_WHILE, "for": KEYWORD_FOR, "in": KEYWORD_IN,
	"return": KEYWORD_RETURN, "break": KEYWORD_BREAK, "continue": KEYWORD_CONTINUE,
	"nil": KEYWORD_NIL, "null": KEYWORD_NIL, "true": KEYWORD_TRUE, "false": KEYWORD_FALSE,
	"fn": KEYWORD_FN, "struct": KEYWORD_STRUCT, "class": KEYWORD_CLASS,
	"enum": KEYWORD_ENUM, "trait": KEYWORD_TRAIT, "impl": KEYWORD_IMPL,
	"type": KEYWORD_TYPE, "module": KEYWORD_MODULE, "use": KEYWORD_USE,
	"pub": KEYWORD_PUB, "try": KEYWORD_TRY, "catch": KEYWORD_CATCH,
	"finally": KEYWORD_FINALLY, "defer": KEYWORD_DEFER, "match": KEYWORD_MATCH,
	"scoped": KEYWORD_SCOPED, "ref": KEYWORD_REF, "extern": KEYWORD_EXTERN,
	"as": KEYWORD_AS, "template": KEYWORD_TEMPLATE, "import": KEYWORD_IMPORT,
	"smuggle": KEYWORD_SMUGGLE, "await": KEYWORD_AWAIT, "async": KEYWORD_ASYNC,
	"operator": KEYWORD_OPERATOR, "throws": KEYWORD_THROWS,
	"my": KEYWORD_MY, "our": KEYWORD_OUR, "their": KEYWORD_THEIR, "ptr": KEYWORD_PTR,
	"borrow": KEYWORD_BORROW, "view": KEYWORD_VIEW, "at": KEYWORD_AT,
	"addr": KEYWORD_ADDR, "from": KEYWORD_FROM, "loc": KEYWORD_LOC,
}

// IsKeyword reports whether k names one of the reserved words above.
func IsKeyword(k Kind) bool {
	return k >= KEYWORD_LET && k <= KEYWORD_LOC
}

// Token is a tagged, immutable record: (kind, lexeme, location).
type Token struct {
	Kind     Kind
	Lexeme   string
	Location diagnostics.SourceLocation
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Location)
}

// IsSignificant reports whether t is visible to the parser's cursor
// operations. Comments are transparent; NEWLINE, INDENT and DEDENT are
// significant.
func (t Token) IsSignificant() bool {
	return t.Kind != COMMENT
}

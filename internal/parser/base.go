// Package parser implements Vyn's recursive-descent parser as a set of
// cooperating sub-parsers (expressions, types, statements, declarations,
// module) that all share one cursor over the token stream, following the
// BaseParser pattern: no sub-parser owns its own copy of the position.
package parser

import (
	"fmt"

	"github.com/rickenator/vyn/internal/token"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

// SyntaxError is returned for any parse failure; it halts parsing unless
// Options.Tolerant is set, in which case the parser resynchronizes and
// keeps going, and all errors are returned together.
type SyntaxError struct {
	Location diagnostics.SourceLocation
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Location)
}

// Options configures parsing behavior.
type Options struct {
	// Tolerant makes the parser collect errors and attempt to resynchronize
	// at statement/declaration boundaries instead of stopping at the first.
	Tolerant bool
}

// Parser is the shared cursor and error sink that BaseParser-style methods
// operate on; ExpressionParser/TypeParser/StatementParser/
// DeclarationParser/ModuleParser are all methods on *Parser rather than
// separate stateful structs, avoiding duplicated cursor state.
type Parser struct {
	file    string
	tokens  []token.Token
	pos     int
	options Options
	errors  []*SyntaxError
}

// New creates a Parser over an already-lexed token stream, keeping only the
// tokens for which IsSignificant reports true (COMMENT tokens are dropped).
func New(file string, tokens []token.Token, opts Options) *Parser {
	filtered := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.IsSignificant() {
			filtered = append(filtered, t)
		}
	}
	return &Parser{file: file, tokens: filtered, options: opts}
}

// Errors returns every error collected while running in tolerant mode.
func (p *Parser) Errors() []*SyntaxError { return p.errors }

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.END_OF_FILE}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Kind: token.END_OF_FILE}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) previousToken() token.Token {
	if p.pos == 0 {
		return token.Token{}
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.END_OF_FILE
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkNext(kind token.Kind) bool {
	return p.peekNext().Kind == kind
}

// match advances and returns true if the current token's kind is one of
// kinds, otherwise leaves the cursor untouched.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or records/raises a SyntaxError.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf("expected %s, found %s %q", kind, p.peek().Kind, p.peek().Lexeme)
}

func (p *Parser) errorf(format string, args ...any) error {
	err := &SyntaxError{Location: p.peek().Location, Message: fmt.Sprintf(format, args...)}
	p.errors = append(p.errors, err)
	return err
}

// skipNewlines consumes any run of NEWLINE tokens; Vyn statements may be
// separated by one or more blank lines with no semantic effect.
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// synchronize discards tokens until a likely statement/declaration boundary,
// used only in Tolerant mode after recording an error.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previousToken().Kind == token.NEWLINE || p.previousToken().Kind == token.DEDENT {
			return
		}
		switch p.peek().Kind {
		case token.KEYWORD_FN, token.KEYWORD_STRUCT, token.KEYWORD_CLASS, token.KEYWORD_ENUM,
			token.KEYWORD_TRAIT, token.KEYWORD_IMPL, token.KEYWORD_LET, token.KEYWORD_VAR,
			token.KEYWORD_RETURN, token.KEYWORD_IF, token.KEYWORD_WHILE, token.KEYWORD_FOR:
			return
		}
		p.advance()
	}
}

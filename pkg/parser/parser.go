// Package parser is the public façade over internal/lexer and
// internal/parser: it lexes, then parses, and translates internal error
// types into a stable public ParserError.
package parser

import (
	"io"

	"github.com/rickenator/vyn/internal/lexer"
	internalparser "github.com/rickenator/vyn/internal/parser"
	"github.com/rickenator/vyn/pkg/ast"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

// Options configures parsing behavior.
type Options struct {
	// Tolerant collects syntax errors and resynchronizes instead of
	// stopping at the first one.
	Tolerant bool
}

// Error is a single parsing error translated from an internal lexer or
// parser failure.
type Error struct {
	Message  string
	Location diagnostics.SourceLocation
}

func (e *Error) Error() string {
	return e.Message + " at " + e.Location.String()
}

// ParserError wraps every error collected during a parse; in non-tolerant
// mode it always carries exactly one.
type ParserError struct {
	Errors []*Error
}

func (e *ParserError) Error() string {
	if len(e.Errors) == 0 {
		return "parsing error"
	}
	return e.Errors[0].Error()
}

// Parse lexes and parses Vyn source named file, returning its Module.
func Parse(file, input string, opts *Options) (*ast.Module, error) {
	if opts == nil {
		opts = &Options{}
	}

	lex := lexer.New(file, input)
	tokens, err := lex.Tokenize()
	if err != nil {
		lexErr := err.(*lexer.LexError)
		return nil, &ParserError{Errors: []*Error{{Message: lexErr.Message, Location: lexErr.Location}}}
	}

	p := internalparser.New(file, tokens, internalparser.Options{Tolerant: opts.Tolerant})
	module, err := p.ParseModule(file)
	if err != nil {
		if !opts.Tolerant {
			syntaxErr := err.(*internalparser.SyntaxError)
			return nil, &ParserError{Errors: []*Error{{Message: syntaxErr.Message, Location: syntaxErr.Location}}}
		}
	}

	if len(p.Errors()) > 0 {
		var errs []*Error
		for _, e := range p.Errors() {
			errs = append(errs, &Error{Message: e.Message, Location: e.Location})
		}
		if !opts.Tolerant || module == nil {
			return nil, &ParserError{Errors: errs}
		}
		// Tolerant mode: return the partial module alongside every
		// collected error so a caller can inspect what did parse.
		return module, &ParserError{Errors: errs}
	}

	return module, nil
}

// ParseReader parses Vyn source read from r.
func ParseReader(file string, r io.Reader, opts *Options) (*ast.Module, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(file, string(content), opts)
}

// Visitor is an alias for ast.Visitor, kept for callers that only import
// pkg/parser.
type Visitor = ast.Visitor

// Visit walks node, dispatching to the matching Visitor method.
func Visit(node interface{ Accept(ast.Visitor) }, visitor ast.Visitor) {
	node.Accept(visitor)
}

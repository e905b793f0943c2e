// Package diagnostics provides the SourceLocation and Diagnostic types shared
// by every phase of the compiler, and the single line format used to report
// them to the user.
package diagnostics

import "fmt"

// SourceLocation is a (file, line, column) triple attached to every token and
// every AST node. Lines and columns are 1-based. It is used solely for
// diagnostics, never for semantic decisions.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsZero reports whether the location was never set.
func (l SourceLocation) IsZero() bool {
	return l.File == "" && l.Line == 0 && l.Column == 0
}

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// Diagnostic is a single positioned compiler message. Lexical and syntactic
// failures are raised as errors (see lexer.LexError / parser.SyntaxError);
// semantic and codegen failures accumulate into a List instead of halting.
type Diagnostic struct {
	Severity Severity
	Location SourceLocation
	Message  string
}

// String renders the diagnostic using the fixed contract from spec §6:
// "Error at <file>:<line>:<column>: <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %s: %s", d.Severity, d.Location, d.Message)
}

func (d Diagnostic) Error() string { return d.String() }

// List accumulates diagnostics from a best-effort walk (semantic analysis,
// code generation) that must continue past the first failure to surface as
// many problems as possible.
type List struct {
	items []Diagnostic
}

// Add appends an error-severity diagnostic at loc.
func (l *List) Add(loc SourceLocation, format string, args ...any) {
	l.items = append(l.items, Diagnostic{
		Severity: SeverityError,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// AddWarning appends a warning-severity diagnostic at loc.
func (l *List) AddWarning(loc SourceLocation, format string, args ...any) {
	l.items = append(l.items, Diagnostic{
		Severity: SeverityWarning,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Items returns the accumulated diagnostics in emission order.
func (l *List) Items() []Diagnostic {
	return l.items
}

// Len reports the number of accumulated diagnostics.
func (l *List) Len() int { return len(l.items) }

package parser

import (
	"errors"
	"fmt"

	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// ErrorKind classifies a diagnostic.
type ErrorKind int

// ErrorKind values.
const (
	// LexicalError reports text that could not be tokenized.
	LexicalError ErrorKind = iota + 1
	// SyntaxError reports a token sequence that matches no production.
	SyntaxError
	// StructuralError reports a construct that parsed but breaks a
	// cardinality rule, such as a one-element tuple.
	StructuralError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case StructuralError:
		return "structural error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Expectation describes what the parser was looking for when it failed.
type Expectation string

// Expectation values.
const (
	ExpectedClause        Expectation = "expected clause"
	ExpectedExpression    Expectation = "expected expression"
	ExpectedIdentifier    Expectation = "expected identifier"
	ExpectedToken         Expectation = "expected token"
	UnterminatedLiteral   Expectation = "unterminated literal"
	UnrecognizedCharacter Expectation = "unrecognized character"
	InvalidEscape         Expectation = "invalid escape sequence"
	MalformedConstruct    Expectation = "malformed construct"
	NestingTooDeep        Expectation = "nesting too deep"
)

// Sentinel errors matched by Diagnostic.Is, for use with errors.Is.
var (
	ErrLexical    = errors.New("lexical error")
	ErrSyntax     = errors.New("syntax error")
	ErrStructural = errors.New("structural error")
)

// Diagnostic is a single error with its location.
type Diagnostic struct {
	Kind     ErrorKind
	Expected Expectation
	Want     string // the specific token wanted, for ExpectedToken
	Found    string // offending text, or "end of input"
	Span     token.Span
	Message  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", d.Kind, d.Span.Start.Line, d.Span.Start.Column, d.Message)
}

// Is reports whether target is the sentinel for d's kind.
func (d *Diagnostic) Is(target error) bool {
	switch target {
	case ErrLexical:
		return d.Kind == LexicalError
	case ErrSyntax:
		return d.Kind == SyntaxError
	case ErrStructural:
		return d.Kind == StructuralError
	}
	return false
}

// ErrorList is the error returned by the parse entry points. It is never
// empty when returned as an error.
type ErrorList []*Diagnostic

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, d := range l {
		out[i] = d
	}
	return out
}

// Diagnostics extracts the diagnostics carried by err, if any.
func Diagnostics(err error) []*Diagnostic {
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return []*Diagnostic{d}
	}
	return nil
}

func foundText(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return tok.Literal
}

func newSyntaxError(tok token.Token, exp Expectation, want string) *Diagnostic {
	found := foundText(tok)
	var msg string
	if exp == ExpectedToken {
		msg = fmt.Sprintf("expected %s, found %s", want, quoteFound(tok))
	} else {
		msg = fmt.Sprintf("%s, found %s", exp, quoteFound(tok))
	}
	return &Diagnostic{
		Kind:     SyntaxError,
		Expected: exp,
		Want:     want,
		Found:    found,
		Span:     tok.Span(),
		Message:  msg,
	}
}

func quoteFound(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

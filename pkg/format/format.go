// Package format prints HQL syntax trees back to canonical query text.
//
// Output re-parses to an equivalent tree: formatting the parse of formatted
// text yields the same text again. Keywords are normalized to one case,
// identifiers and literals keep their source spelling.
package format

import (
	"fmt"
	"strings"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

// KeywordCase selects how keywords are spelled in the output.
type KeywordCase int

// KeywordCase values.
const (
	Upper KeywordCase = iota
	Lower
)

func (c KeywordCase) String() string {
	if c == Lower {
		return "lower"
	}
	return "upper"
}

// ParseKeywordCase maps "upper" or "lower" to a KeywordCase.
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	}
	return Upper, fmt.Errorf("invalid keyword case %q: want upper or lower", s)
}

type options struct {
	keywordCase KeywordCase
	multiline   bool
}

// Option configures the printer.
type Option func(*options)

// WithKeywordCase sets the keyword spelling. The default is Upper.
func WithKeywordCase(c KeywordCase) Option {
	return func(o *options) { o.keywordCase = c }
}

// WithMultiline puts each clause on its own line and indents subqueries.
func WithMultiline() Option {
	return func(o *options) { o.multiline = true }
}

// Statement formats a statement.
func Statement(stmt ast.Statement, opts ...Option) string {
	p := newPrinter(opts)
	p.formatStatement(stmt)
	return p.String()
}

// Expression formats an expression.
func Expression(expr ast.Expression, opts ...Option) string {
	p := newPrinter(opts)
	p.formatExpr(expr)
	return p.String()
}

// Predicate formats a predicate.
func Predicate(pred ast.Predicate, opts ...Option) string {
	p := newPrinter(opts)
	p.formatPredicate(pred)
	return p.String()
}

// Node formats any node the parser produces, including clause-level nodes
// such as joins and sort specifications.
func Node(n ast.Node, opts ...Option) string {
	p := newPrinter(opts)
	p.formatAny(n)
	return p.String()
}

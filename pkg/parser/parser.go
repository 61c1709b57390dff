// Package parser turns HQL query text into the typed syntax tree declared in
// package ast.
//
// # Usage
//
//	stmt, err := parser.Parse("SELECT e FROM Employee e WHERE e.salary > :min")
//	if err != nil {
//	    for _, d := range parser.Diagnostics(err) {
//	        fmt.Println(d.Span.Start, d.Message)
//	    }
//	}
//
// # Grammar Overview
//
// The parser is a hand-written recursive descent parser over a token slice,
// with precedence climbing for expressions and predicates:
//
//	statement        → [WITH cte_list] (query_expression | update | delete | insert)
//	query_expression → ordered_query ((UNION|INTERSECT|EXCEPT) [ALL] ordered_query)*
//	ordered_query    → (query | "(" query_expression ")") [ORDER BY ...] [LIMIT] [OFFSET] [FETCH]
//	query            → select [from] [where] [group by] [having]
//	                 | from [where] [group by] [having] [select]
//
// See each file for the grammar rules of that area. Parsing is fail-fast:
// the first mismatch aborts the statement and no partial tree is returned.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// DefaultMaxDepth bounds the nesting of parenthesized operands, function
// arguments and subqueries.
const DefaultMaxDepth = 256

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
	logger   *slog.Logger
}

// WithMaxDepth sets the nesting limit. Values below 1 restore the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Parser parses one HQL input. Create one per input; it is not safe for
// concurrent use.
type Parser struct {
	src    string
	tokens []token.Token
	pos    int
	tok    token.Token // tokens[pos]
	prev   token.Token // last consumed token

	depth    int
	maxDepth int
	logger   *slog.Logger

	// notQuery remembers token positions where a parenthesized subquery
	// has already been tried and failed.
	notQuery map[int]bool
}

// bailout carries the first diagnostic up to the entry point. Parsing stops
// at the first error, so instead of collecting errors the parser panics
// with a bailout, in the manner of go/parser, and run recovers it. A bailout
// never leaves the package.
type bailout struct {
	diag *Diagnostic
}

func newParser(input string, opts []Option) (*Parser, error) {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		src:      input,
		tokens:   tokens,
		maxDepth: o.maxDepth,
		logger:   o.logger,
	}
	p.tok = p.tokens[0]
	return p, nil
}

// Parse parses a single statement.
func Parse(query string, opts ...Option) (ast.Statement, error) {
	p, err := newParser(query, opts)
	if err != nil {
		return nil, err
	}
	var stmt ast.Statement
	if err := p.run(func() {
		stmt = p.parseStatement()
		p.expectEOF()
	}); err != nil {
		return nil, err
	}
	p.logger.Debug("parsed statement",
		slog.String("kind", fmt.Sprintf("%T", stmt)),
		slog.Int("tokens", len(p.tokens)))
	return stmt, nil
}

// ParseExpression parses a standalone expression such as "e.salary * 1.1".
// A predicate is rejected.
func ParseExpression(input string, opts ...Option) (ast.Expression, error) {
	p, err := newParser(input, opts)
	if err != nil {
		return nil, err
	}
	var expr ast.Expression
	if err := p.run(func() {
		expr = p.asExpression(p.parseExpressionOrPredicate())
		p.expectEOF()
	}); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParsePredicate parses a standalone predicate such as "e.age >= 18". A bare
// expression is wrapped in an ExpressionPredicate.
func ParsePredicate(input string, opts ...Option) (ast.Predicate, error) {
	p, err := newParser(input, opts)
	if err != nil {
		return nil, err
	}
	var pred ast.Predicate
	if err := p.run(func() {
		pred = p.parsePredicate()
		p.expectEOF()
	}); err != nil {
		return nil, err
	}
	return pred, nil
}

// run calls fn and converts a bailout into an ErrorList.
func (p *Parser) run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.logger.Debug("parse failed", slog.String("error", b.diag.Error()))
			err = ErrorList{b.diag}
		}
	}()
	fn()
	return nil
}

// try runs fn and rewinds to the current position if it fails. Nesting
// failures are not recoverable and propagate.
func (p *Parser) try(fn func()) (ok bool) {
	pos, depth := p.pos, p.depth
	defer func() {
		if r := recover(); r != nil {
			b, isBailout := r.(bailout)
			if !isBailout || b.diag.Expected == NestingTooDeep {
				panic(r)
			}
			p.reset(pos)
			p.depth = depth
			ok = false
		}
	}()
	fn()
	return true
}

// ---------- Token Helpers ----------

// next consumes the current token and returns it.
func (p *Parser) next() token.Token {
	tok := p.tok
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.prev = tok
	p.tok = p.tokens[p.pos]
	return tok
}

func (p *Parser) reset(pos int) {
	p.pos = pos
	p.tok = p.tokens[pos]
	if pos > 0 {
		p.prev = p.tokens[pos-1]
	} else {
		p.prev = token.Token{}
	}
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// at reports whether the current token is of type t.
func (p *Parser) at(t token.TokenType) bool {
	return p.tok.Type == t
}

// atAny reports whether the current token is any of types.
func (p *Parser) atAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// peekIs reports whether the token n positions ahead is of type t.
func (p *Parser) peekIs(n int, t token.TokenType) bool {
	return p.peek(n).Type == t
}

// match consumes the current token if it is of type t.
func (p *Parser) match(t token.TokenType) bool {
	if p.at(t) {
		p.next()
		return true
	}
	return false
}

// expect consumes a token of type t or fails.
func (p *Parser) expect(t token.TokenType) token.Token {
	if !p.at(t) {
		p.failToken(t)
	}
	return p.next()
}

func (p *Parser) expectEOF() {
	if !p.at(token.EOF) {
		p.bail(newSyntaxError(p.tok, ExpectedToken, "end of input"))
	}
}

// adjacent reports whether the current token starts exactly where the
// previous one ended.
func (p *Parser) adjacent() bool {
	return p.tok.Pos.Offset == p.prev.End.Offset
}

// ---------- Errors ----------

func (p *Parser) bail(d *Diagnostic) {
	panic(bailout{diag: d})
}

func (p *Parser) fail(exp Expectation) {
	p.bail(newSyntaxError(p.tok, exp, ""))
}

func (p *Parser) failToken(t token.TokenType) {
	p.bail(newSyntaxError(p.tok, ExpectedToken, wantText(t)))
}

func (p *Parser) failStructural(span token.Span, found, msg string) {
	p.bail(&Diagnostic{
		Kind:     StructuralError,
		Expected: MalformedConstruct,
		Found:    found,
		Span:     span,
		Message:  msg,
	})
}

func wantText(t token.TokenType) string {
	if t.IsKeyword() {
		return t.String()
	}
	return fmt.Sprintf("%q", t.String())
}

// enter increments the nesting depth; callers defer leave.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.bail(&Diagnostic{
			Kind:     SyntaxError,
			Expected: NestingTooDeep,
			Found:    foundText(p.tok),
			Span:     p.tok.Span(),
			Message:  fmt.Sprintf("nesting exceeds maximum depth of %d", p.maxDepth),
		})
	}
}

func (p *Parser) leave() {
	p.depth--
}

// ---------- Spans ----------

// info returns node info spanning from start to the end of the last
// consumed token.
func (p *Parser) info(start token.Position) ast.NodeInfo {
	return ast.NodeInfo{Span: token.Span{Start: start, End: p.prev.End}}
}

// ---------- Identifiers ----------

// isIdentifier reports whether the current token acts as an identifier in ctx.
func (p *Parser) isIdentifier(ctx roleContext) bool {
	return identifierRole(ctx, p.tok, p.peek(1))
}

// identifier consumes an identifier in ctx or fails.
func (p *Parser) identifier(ctx roleContext) *ast.Identifier {
	if !p.isIdentifier(ctx) {
		p.fail(ExpectedIdentifier)
	}
	tok := p.next()
	id := &ast.Identifier{
		NodeInfo: ast.NodeInfo{Span: tok.Span()},
		Name:     tok.Literal,
		Keyword:  tok.Type.IsKeyword(),
	}
	if tok.Type == token.QUOTED_IDENT {
		id.Name = tok.Value
		id.Quoted = true
	}
	if joinTypeWords[tok.Type] {
		p.logger.Debug("reserved word used as identifier",
			slog.String("word", tok.Literal),
			slog.String("pos", tok.Pos.String()))
	}
	return id
}

// alias parses an optional "[AS] name".
func (p *Parser) alias() *ast.Identifier {
	if p.match(token.AS) {
		return p.identifier(roleName)
	}
	if p.isIdentifier(roleAlias) {
		return p.identifier(roleAlias)
	}
	return nil
}

// simplePath parses identifier(.identifier)* with the first part in ctx.
func (p *Parser) simplePath(ctx roleContext) *ast.SimplePath {
	start := p.tok.Pos
	parts := []*ast.Identifier{p.identifier(ctx)}
	for p.at(token.DOT) {
		p.next()
		parts = append(parts, p.identifier(roleName))
	}
	return &ast.SimplePath{NodeInfo: p.info(start), Parts: parts}
}

// continuation parses an optional ".a.b" following a path head.
func (p *Parser) continuation() *ast.SimplePath {
	if !p.at(token.DOT) {
		return nil
	}
	start := p.peek(1).Pos
	var parts []*ast.Identifier
	for p.match(token.DOT) {
		parts = append(parts, p.identifier(roleName))
	}
	return &ast.SimplePath{NodeInfo: p.info(start), Parts: parts}
}

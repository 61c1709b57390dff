package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// FROM clause parsing: entity roots, subqueries, set-returning functions and joins.
//
// Grammar:
//
//	from_clause → FROM root_with_joins ("," root_with_joins)*
//	root        → entity_name [[AS] alias]
//	            | [LATERAL] "(" query_expression ")" [[AS] alias]
//	            | [LATERAL] function [[AS] alias]
//	join        → join_type JOIN [FETCH] target [[AS] alias] [(ON | WITH) predicate]
//	            | CROSS JOIN target [[AS] alias]
//	            | "," IN "(" path ")" [[AS] alias]
//	join_type   → [INNER] | (LEFT | RIGHT | FULL) [OUTER] | OUTER
//	target      → path | [LATERAL] "(" query_expression ")" | [LATERAL] function

func (p *Parser) parseFromClause() *ast.FromClause {
	start := p.expect(token.FROM).Pos
	from := &ast.FromClause{}
	for {
		from.Roots = append(from.Roots, p.parseEntityWithJoins())
		if !p.match(token.COMMA) {
			break
		}
	}
	from.NodeInfo = p.info(start)
	return from
}

func (p *Parser) parseEntityWithJoins() *ast.EntityWithJoins {
	start := p.tok.Pos
	ewj := &ast.EntityWithJoins{Root: p.parseFromRoot()}
	for {
		switch {
		case isJoinStart(p.tok, p.peek(1)):
			ewj.Joins = append(ewj.Joins, p.parseJoin())
		case p.at(token.COMMA) && p.peekIs(1, token.IN) && p.peekIs(2, token.LPAREN):
			ewj.Joins = append(ewj.Joins, p.parseCollectionJoin())
		default:
			ewj.NodeInfo = p.info(start)
			return ewj
		}
	}
}

func (p *Parser) parseFromRoot() ast.FromRoot {
	start := p.tok.Pos
	lateral := p.match(token.LATERAL)

	if p.at(token.LPAREN) {
		p.next()
		q := p.parseQueryExpression()
		p.expect(token.RPAREN)
		root := &ast.RootSubquery{Lateral: lateral, Query: q}
		root.Alias = p.alias()
		root.NodeInfo = p.info(start)
		return root
	}

	if lateral || p.functionAhead() {
		root := &ast.RootFunction{Lateral: lateral, Function: p.parseSetReturningFunction()}
		root.Alias = p.alias()
		root.NodeInfo = p.info(start)
		return root
	}

	// A clause keyword names an entity only when something that continues a
	// root follows it: "FROM Order o" but not "FROM WHERE".
	if structural[p.tok.Type] && !continuesRoot(p.peek(1), p.peek(2)) {
		p.fail(ExpectedIdentifier)
	}
	root := &ast.RootEntity{Entity: p.simplePath(roleName)}
	root.Alias = p.alias()
	root.NodeInfo = p.info(start)
	return root
}

// continuesRoot reports whether tok, followed by next, can come right after
// an entity name in a FROM root.
func continuesRoot(tok, next token.Token) bool {
	switch tok.Type {
	case token.DOT, token.AS, token.COMMA:
		return true
	}
	return isJoinStart(tok, next) || identifierRole(roleAlias, tok, next)
}

// functionAhead reports whether the tokens ahead read name(.name)* "(".
func (p *Parser) functionAhead() bool {
	if !identifierRole(roleName, p.tok, p.peek(1)) {
		return false
	}
	for i := 1; ; i += 2 {
		switch p.peek(i).Type {
		case token.LPAREN:
			return true
		case token.DOT:
			if !identifierRole(roleName, p.peek(i+1), p.peek(i+2)) {
				return false
			}
		default:
			return false
		}
	}
}

// parseSetReturningFunction parses a function call used as a row source.
func (p *Parser) parseSetReturningFunction() ast.Expression {
	start := p.tok
	expr := p.asExpression(p.parsePrimary())
	if _, isPath := expr.(ast.Path); isPath {
		p.bail(&Diagnostic{
			Kind:     SyntaxError,
			Expected: ExpectedToken,
			Want:     "function call",
			Found:    foundText(start),
			Span:     token.Span{Start: start.Pos, End: p.prev.End},
			Message:  "expected function call, found path",
		})
	}
	return expr
}

var outerJoinKinds = map[token.TokenType]ast.JoinKind{
	token.LEFT:  ast.JoinLeft,
	token.RIGHT: ast.JoinRight,
	token.FULL:  ast.JoinFull,
}

func (p *Parser) parseJoin() *ast.Join {
	start := p.tok.Pos
	j := &ast.Join{Kind: ast.JoinInner}

	switch p.tok.Type {
	case token.CROSS:
		p.next()
		j.Kind = ast.JoinCross
		j.Explicit = true
	case token.INNER:
		p.next()
		j.Explicit = true
	case token.LEFT, token.RIGHT, token.FULL:
		j.Kind = outerJoinKinds[p.next().Type]
		j.Explicit = true
		j.Outer = p.match(token.OUTER)
	case token.OUTER:
		// A bare OUTER JOIN is a left outer join.
		p.next()
		j.Kind = ast.JoinLeft
		j.Outer = true
	}
	p.expect(token.JOIN)

	if j.Kind != ast.JoinCross {
		j.Fetch = p.match(token.FETCH)
	}
	j.Target = p.parseJoinTarget()
	j.Alias = p.alias()

	if j.Kind != ast.JoinCross && p.atAny(token.ON, token.WITH) {
		rstart := p.tok.Pos
		with := p.next().Type == token.WITH
		pred := p.parsePredicate()
		j.Restriction = &ast.JoinRestriction{NodeInfo: p.info(rstart), With: with, Predicate: pred}
	}
	j.NodeInfo = p.info(start)
	return j
}

func (p *Parser) parseJoinTarget() ast.JoinTarget {
	start := p.tok.Pos
	lateral := p.match(token.LATERAL)

	if p.at(token.LPAREN) {
		p.next()
		q := p.parseQueryExpression()
		p.expect(token.RPAREN)
		return &ast.JoinSubquery{NodeInfo: p.info(start), Lateral: lateral, Query: q}
	}

	// Entity joins may name an entity spelled like a clause keyword.
	if !lateral && structural[p.tok.Type] && !p.peekIs(1, token.LPAREN) {
		path := p.simplePath(roleName)
		return &ast.JoinPath{NodeInfo: p.info(start), Path: path}
	}

	expr := p.asExpression(p.parsePrimary())
	if path, ok := expr.(ast.Path); ok && !lateral {
		return &ast.JoinPath{NodeInfo: p.info(start), Path: path}
	}
	return &ast.JoinFunction{NodeInfo: p.info(start), Lateral: lateral, Function: expr}
}

// parseCollectionJoin parses the legacy ", IN (path) alias" form.
func (p *Parser) parseCollectionJoin() *ast.Join {
	start := p.expect(token.COMMA).Pos
	p.expect(token.IN)
	p.expect(token.LPAREN)
	pathStart := p.tok.Pos
	target := &ast.JoinPath{Path: p.parsePath()}
	target.NodeInfo = p.info(pathStart)
	p.expect(token.RPAREN)
	j := &ast.Join{Kind: ast.JoinCollection, Target: target}
	j.Alias = p.alias()
	j.NodeInfo = p.info(start)
	return j
}

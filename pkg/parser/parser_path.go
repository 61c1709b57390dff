package parser

import (
	"fmt"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Path parsing.
//
// Grammar:
//
//	path        → (simple_path | domain_head [continuation] | function [continuation]) postfix*
//	simple_path → identifier ("." identifier)*
//	domain_head → TREAT "(" path AS simple_path ")"
//	            | (VALUE | ELEMENT | KEY | INDEX | FK) "(" path ")"
//	postfix     → "[" expression [":" expression] "]" [continuation]
//	continuation → ("." identifier)+

// parsePath parses an operand that must be a path.
func (p *Parser) parsePath() ast.Path {
	p.enter()
	defer p.leave()

	start := p.tok
	n := p.parsePathOrFunction(roleName)
	path, ok := n.(ast.Path)
	if !ok {
		span := token.Span{Start: start.Pos, End: p.prev.End}
		p.bail(&Diagnostic{
			Kind:     SyntaxError,
			Expected: ExpectedIdentifier,
			Want:     "path",
			Found:    p.text(span),
			Span:     span,
			Message:  fmt.Sprintf("expected path, found %q", p.text(span)),
		})
	}
	return path
}

// parsePathOrFunction parses a path, a domain path or a function call. The
// first identifier is resolved in ctx.
func (p *Parser) parsePathOrFunction(ctx roleContext) ast.Expression {
	start := p.tok.Pos

	if p.peekIs(1, token.LPAREN) {
		if head := p.parseDomainPathHead(); head != nil {
			path := &ast.SyntacticDomainPath{Head: head, Continuation: p.continuation()}
			path.NodeInfo = p.info(start)
			return p.parsePathPostfix(path, start)
		}
		if fn := p.parseSpecialFunction(); fn != nil {
			return p.parseFunctionPostfix(fn, start)
		}
	}

	if !p.isIdentifier(ctx) {
		if ctx == roleName {
			p.fail(ExpectedIdentifier)
		}
		p.fail(ExpectedExpression)
	}
	name := p.simplePath(ctx)
	if p.at(token.LPAREN) {
		return p.parseFunctionPostfix(p.parseGenericFunction(name), start)
	}
	return p.parsePathPostfix(name, start)
}

// parseDomainPathHead parses TREAT, VALUE, ELEMENT, KEY, INDEX or FK when
// followed by "(", and returns nil without consuming anything otherwise.
func (p *Parser) parseDomainPathHead() ast.DomainPathHead {
	start := p.tok.Pos
	switch p.tok.Type {
	case token.TREAT:
		p.next()
		p.expect(token.LPAREN)
		head := &ast.TreatPath{Path: p.parsePath()}
		p.expect(token.AS)
		head.Type = p.simplePath(roleName)
		p.expect(token.RPAREN)
		head.NodeInfo = p.info(start)
		return head
	case token.VALUE, token.ELEMENT:
		element := p.next().Type == token.ELEMENT
		p.expect(token.LPAREN)
		head := &ast.CollectionValuePath{Element: element, Path: p.parsePath()}
		p.expect(token.RPAREN)
		head.NodeInfo = p.info(start)
		return head
	case token.KEY, token.INDEX:
		index := p.next().Type == token.INDEX
		p.expect(token.LPAREN)
		head := &ast.MapKeyPath{Index: index, Path: p.parsePath()}
		p.expect(token.RPAREN)
		head.NodeInfo = p.info(start)
		return head
	case token.FK:
		p.next()
		p.expect(token.LPAREN)
		head := &ast.ForeignKeyPath{Path: p.parsePath()}
		p.expect(token.RPAREN)
		head.NodeInfo = p.info(start)
		return head
	}
	return nil
}

// parseFunctionPostfix turns fn(...).a.b or fn(...)[i] into a domain path.
func (p *Parser) parseFunctionPostfix(fn ast.Expression, start token.Position) ast.Expression {
	if p.at(token.DOT) {
		head := &ast.FunctionPath{NodeInfo: ast.NodeInfo{Span: token.Span{Start: start, End: fn.End()}}, Function: fn}
		path := &ast.SyntacticDomainPath{Head: head, Continuation: p.continuation()}
		path.NodeInfo = p.info(start)
		return p.parsePathPostfix(path, start)
	}
	return p.parsePathPostfix(fn, start)
}

// parsePathPostfix applies any number of [index] and [low:high] suffixes,
// each with an optional continuation.
func (p *Parser) parsePathPostfix(base ast.Expression, start token.Position) ast.Expression {
	for p.at(token.LBRACKET) {
		p.next()
		first := p.parseExpression()
		var head ast.DomainPathHead
		if p.match(token.COLON) {
			high := p.parseExpression()
			p.expect(token.RBRACKET)
			head = &ast.SlicedPath{NodeInfo: p.info(start), Base: base, Low: first, High: high}
		} else {
			p.expect(token.RBRACKET)
			head = &ast.IndexedPath{NodeInfo: p.info(start), Base: base, Index: first}
		}
		path := &ast.SyntacticDomainPath{Head: head, Continuation: p.continuation()}
		path.NodeInfo = p.info(start)
		base = path
	}
	return base
}

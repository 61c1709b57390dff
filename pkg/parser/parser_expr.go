package parser

import (
	"fmt"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Expression precedence parsing. Expressions and predicates share one
// descent, each level returning an ast.Node that is converted with
// asExpression or asPredicate only when an operator needs a specific kind.
//
// Precedence levels, loosest to tightest:
//
//	OR
//	AND
//	NOT                       (prefix)
//	comparison family         (IS, IN, BETWEEN, LIKE, MEMBER OF, CONTAINS, = <> < ...; non-associative)
//	precConcat         = 1    (||)
//	precAdditive       = 2    (+ -)
//	precMultiplicative = 3    (* / %)
//	duration                  (expr FIELD, expr BY FIELD)
//	unary sign                (+ -)
//	primary
//
// The binary levels use precedence climbing driven by
// ast.BinaryOperator.Precedence, so every binary operator is left-associative.

const (
	precConcat         = 1
	precAdditive       = 2
	precMultiplicative = 3
)

var binaryOperators = map[token.TokenType]ast.BinaryOperator{
	token.DPIPE:   ast.OpConcat,
	token.PLUS:    ast.OpAdd,
	token.MINUS:   ast.OpSubtract,
	token.STAR:    ast.OpMultiply,
	token.SLASH:   ast.OpDivide,
	token.PERCENT: ast.OpModulo,
}

// parseExpressionOrPredicate parses anything from a bare operand up to an
// OR chain.
func (p *Parser) parseExpressionOrPredicate() ast.Node {
	return p.parseOr()
}

// parsePredicate parses a predicate, wrapping a bare expression.
func (p *Parser) parsePredicate() ast.Predicate {
	return p.asPredicate(p.parseOr())
}

// parseExpression parses an expression: a concatenation or anything
// tighter. Predicate operators are left for the caller.
func (p *Parser) parseExpression() ast.Expression {
	return p.asExpression(p.parseExpressionWithPrecedence(precConcat))
}

// parseExpressionOrPredicateList parses a comma-separated list.
func (p *Parser) parseExpressionOrPredicateList() []ast.ExpressionOrPredicate {
	var out []ast.ExpressionOrPredicate
	for {
		out = append(out, p.parseExpressionOrPredicate())
		if !p.match(token.COMMA) {
			return out
		}
	}
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []ast.Expression {
	var out []ast.Expression
	for {
		out = append(out, p.parseExpression())
		if !p.match(token.COMMA) {
			return out
		}
	}
}

// parseExpressionWithPrecedence implements precedence climbing over the
// binary arithmetic and concatenation operators.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Node {
	left := p.parseDuration()
	for {
		op, ok := binaryOperators[p.tok.Type]
		if !ok || op.Precedence() < minPrecedence {
			return left
		}
		p.next()
		right := p.parseExpressionWithPrecedence(op.Precedence() + 1)
		left = &ast.BinaryExpression{
			NodeInfo: p.info(left.Pos()),
			Op:       op,
			Left:     p.asExpression(left),
			Right:    p.asExpression(right),
		}
	}
}

// parseDuration parses "operand FIELD" and "operand BY FIELD".
func (p *Parser) parseDuration() ast.Node {
	operand := p.parseUnary()
	for {
		by := false
		switch {
		case p.tok.Type.IsDateTimeField():
		case p.at(token.BY) && p.peek(1).Type.IsDateTimeField():
			p.next()
			by = true
		default:
			return operand
		}
		field := p.next()
		operand = &ast.DurationExpression{
			NodeInfo: p.info(operand.Pos()),
			Operand:  p.asExpression(operand),
			By:       by,
			Field:    ast.DateTimeField(field.Type.String()),
		}
	}
}

func (p *Parser) parseUnary() ast.Node {
	if !p.atAny(token.PLUS, token.MINUS) {
		return p.parsePrimary()
	}
	p.enter()
	defer p.leave()
	start := p.next()
	sign := ast.Plus
	if start.Type == token.MINUS {
		sign = ast.Minus
	}
	operand := p.asExpression(p.parseUnary())
	return &ast.UnaryExpression{NodeInfo: p.info(start.Pos), Sign: sign, Operand: operand}
}

// ---------- Kind conversion ----------

// asExpression returns n as an Expression, failing if it is a predicate.
func (p *Parser) asExpression(n ast.Node) ast.Expression {
	if e, ok := n.(ast.Expression); ok {
		return e
	}
	span := token.Span{Start: n.Pos(), End: n.End()}
	text := p.text(span)
	p.bail(&Diagnostic{
		Kind:     SyntaxError,
		Expected: ExpectedExpression,
		Found:    text,
		Span:     span,
		Message:  fmt.Sprintf("expected expression, found predicate %q", text),
	})
	return nil
}

// asPredicate returns n as a Predicate, wrapping an expression in an
// ExpressionPredicate.
func (p *Parser) asPredicate(n ast.Node) ast.Predicate {
	switch n := n.(type) {
	case ast.Predicate:
		return n
	case ast.Expression:
		return &ast.ExpressionPredicate{
			NodeInfo: ast.NodeInfo{Span: token.Span{Start: n.Pos(), End: n.End()}},
			Expr:     n,
		}
	}
	p.fail(ExpectedExpression)
	return nil
}

// text returns the source covered by span.
func (p *Parser) text(span token.Span) string {
	return span.Text(p.src)
}

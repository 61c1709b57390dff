package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Predicate grammar:
//
//	or_pred    → and_pred (OR and_pred)*
//	and_pred   → not_pred (AND not_pred)*
//	not_pred   → NOT not_pred | comparison
//	comparison → EXISTS (collection_quantifier "(" path ")" | expression)
//	           | expression IS [NOT] (NULL | EMPTY | TRUE | FALSE | DISTINCT FROM expression)
//	           | expression [NOT] IN in_list
//	           | expression [NOT] BETWEEN expression AND expression
//	           | expression [NOT] (LIKE | ILIKE) expression [ESCAPE expression]
//	           | expression [NOT] MEMBER [OF] path
//	           | expression [NOT] (CONTAINS | INCLUDES | INTERSECTS) expression
//	           | expression (= | <> | != | ^= | < | <= | > | >=) expression
//	           | expression
//	in_list    → (ELEMENTS | VALUES | INDICES | KEYS) "(" path ")"
//	           | "(" query_expression ")" | "(" [expr_or_pred ("," expr_or_pred)*] ")" | parameter

func (p *Parser) parseOr() ast.Node {
	left := p.parseAnd()
	for p.match(token.OR) {
		right := p.parseAnd()
		left = &ast.OrPredicate{
			NodeInfo: p.info(left.Pos()),
			Left:     p.asPredicate(left),
			Right:    p.asPredicate(right),
		}
	}
	return left
}

func (p *Parser) parseAnd() ast.Node {
	left := p.parseNot()
	for p.match(token.AND) {
		right := p.parseNot()
		left = &ast.AndPredicate{
			NodeInfo: p.info(left.Pos()),
			Left:     p.asPredicate(left),
			Right:    p.asPredicate(right),
		}
	}
	return left
}

func (p *Parser) parseNot() ast.Node {
	if !p.at(token.NOT) {
		return p.parseComparison()
	}
	p.enter()
	defer p.leave()
	start := p.next().Pos
	operand := p.asPredicate(p.parseNot())
	return &ast.NegatedPredicate{NodeInfo: p.info(start), Pred: operand}
}

var comparisonOperators = map[token.TokenType]ast.ComparisonOperator{
	token.EQ: ast.Equal,
	token.NE: ast.NotEqual,
	token.LT: ast.Less,
	token.LE: ast.LessEqual,
	token.GT: ast.Greater,
	token.GE: ast.GreaterEqual,
}

var collectionQuantifiers = map[token.TokenType]ast.CollectionQuantifier{
	token.ELEMENTS: ast.QuantifyElements,
	token.VALUES:   ast.QuantifyValues,
	token.INDICES:  ast.QuantifyIndices,
	token.KEYS:     ast.QuantifyKeys,
}

// negatable are the operators that accept a leading NOT.
var negatable = keywordSet(
	token.IN, token.BETWEEN, token.LIKE, token.ILIKE, token.MEMBER,
	token.CONTAINS, token.INCLUDES, token.INTERSECTS,
)

func (p *Parser) parseComparison() ast.Node {
	if p.at(token.EXISTS) && !p.peekIs(1, token.DOT) {
		return p.parseExists()
	}

	left := p.parseExpressionWithPrecedence(precConcat)
	start := left.Pos()

	if p.at(token.IS) {
		return p.parseIs(left)
	}

	not := false
	if p.at(token.NOT) && negatable[p.peek(1).Type] {
		p.next()
		not = true
	}

	switch p.tok.Type {
	case token.IN:
		p.next()
		expr := p.asExpression(left)
		list := p.parseInList()
		return &ast.InPredicate{NodeInfo: p.info(start), Expr: expr, Not: not, List: list}

	case token.BETWEEN:
		p.next()
		expr := p.asExpression(left)
		low := p.parseExpression()
		p.expect(token.AND)
		high := p.parseExpression()
		return &ast.BetweenPredicate{NodeInfo: p.info(start), Expr: expr, Not: not, Low: low, High: high}

	case token.LIKE, token.ILIKE:
		ci := p.next().Type == token.ILIKE
		pred := &ast.LikePredicate{Expr: p.asExpression(left), Not: not, CaseInsensitive: ci}
		pred.Pattern = p.parseExpression()
		if p.match(token.ESCAPE) {
			pred.Escape = p.parseExpression()
		}
		pred.NodeInfo = p.info(start)
		return pred

	case token.MEMBER:
		p.next()
		pred := &ast.MemberOfPredicate{Expr: p.asExpression(left), Not: not}
		pred.Of = p.match(token.OF)
		pred.Path = p.parsePath()
		pred.NodeInfo = p.info(start)
		return pred

	case token.CONTAINS, token.INCLUDES, token.INTERSECTS:
		op := ast.ContainmentOperator(p.next().Type.String())
		expr := p.asExpression(left)
		right := p.parseExpression()
		return &ast.ContainmentPredicate{NodeInfo: p.info(start), Op: op, Not: not, Left: expr, Right: right}
	}

	if op, ok := comparisonOperators[p.tok.Type]; ok {
		text := p.next().Literal
		expr := p.asExpression(left)
		right := p.parseExpression()
		return &ast.ComparisonPredicate{NodeInfo: p.info(start), Op: op, Text: text, Left: expr, Right: right}
	}
	return left
}

func (p *Parser) parseExists() ast.Node {
	start := p.expect(token.EXISTS).Pos
	if q, ok := collectionQuantifiers[p.tok.Type]; ok && p.peekIs(1, token.LPAREN) {
		p.next()
		p.next()
		path := p.parsePath()
		p.expect(token.RPAREN)
		return &ast.ExistsCollectionPredicate{NodeInfo: p.info(start), Quantifier: q, Path: path}
	}
	expr := p.parseExpression()
	return &ast.ExistsPredicate{NodeInfo: p.info(start), Expr: expr}
}

func (p *Parser) parseIs(left ast.Node) ast.Node {
	start := left.Pos()
	p.expect(token.IS)
	expr := p.asExpression(left)
	not := p.match(token.NOT)

	switch p.tok.Type {
	case token.NULL:
		p.next()
		return &ast.IsNullPredicate{NodeInfo: p.info(start), Expr: expr, Not: not}
	case token.EMPTY:
		p.next()
		return &ast.IsEmptyPredicate{NodeInfo: p.info(start), Expr: expr, Not: not}
	case token.TRUE, token.FALSE:
		value := p.next().Type == token.TRUE
		return &ast.IsBooleanPredicate{NodeInfo: p.info(start), Expr: expr, Not: not, Value: value}
	case token.DISTINCT:
		p.next()
		p.expect(token.FROM)
		right := p.parseExpression()
		return &ast.IsDistinctFromPredicate{NodeInfo: p.info(start), Left: expr, Not: not, Right: right}
	}
	p.bail(newSyntaxError(p.tok, ExpectedToken, "NULL, EMPTY, TRUE, FALSE or DISTINCT FROM"))
	return nil
}

func (p *Parser) parseInList() ast.InList {
	start := p.tok.Pos

	if q, ok := collectionQuantifiers[p.tok.Type]; ok && p.peekIs(1, token.LPAREN) {
		p.next()
		p.next()
		path := p.parsePath()
		p.expect(token.RPAREN)
		return &ast.CollectionInList{NodeInfo: p.info(start), Quantifier: q, Path: path}
	}

	if p.atAny(token.COLON, token.QUESTION) {
		param := p.parseParameter()
		return &ast.ParameterInList{NodeInfo: p.info(start), Parameter: param}
	}

	if !p.at(token.LPAREN) {
		p.bail(newSyntaxError(p.tok, ExpectedToken, `"(" or parameter`))
	}

	if q := p.tryParenthesizedQuery(); q != nil {
		return &ast.SubqueryInList{NodeInfo: p.info(start), Query: q}
	}

	p.expect(token.LPAREN)
	list := &ast.ExplicitInList{}
	if !p.at(token.RPAREN) {
		p.enter()
		list.Items = p.parseExpressionOrPredicateList()
		p.leave()
	}
	p.expect(token.RPAREN)
	list.NodeInfo = p.info(start)
	return list
}

// tryParenthesizedQuery parses "(" query_expression ")" at the current
// "(" if one is there, and returns nil without consuming anything
// otherwise. A "(" directly followed by SELECT, FROM or WITH is always a
// query; a "((" is resolved by backtracking.
func (p *Parser) tryParenthesizedQuery() *ast.QueryExpression {
	switch p.peek(1).Type {
	case token.SELECT, token.FROM, token.WITH:
		p.next()
		q := p.parseQueryExpression()
		p.expect(token.RPAREN)
		return q
	case token.LPAREN:
	default:
		return nil
	}

	if p.notQuery[p.pos] {
		return nil
	}
	start := p.pos
	var q *ast.QueryExpression
	if p.try(func() {
		p.next()
		q = p.parseQueryExpression()
		p.expect(token.RPAREN)
	}) {
		return q
	}
	if p.notQuery == nil {
		p.notQuery = make(map[int]bool)
	}
	p.notQuery[start] = true
	return nil
}

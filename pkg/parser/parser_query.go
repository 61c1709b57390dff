package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Query grammar:
//
//	query_expression → [with_clause] ordered_query (set_op [ALL] ordered_query)*
//	ordered_query    → (query | "(" query_expression ")") query_order
//	query_order      → [ORDER BY sort ("," sort)*] [LIMIT n] [OFFSET n [ROW|ROWS]]
//	                   [FETCH (FIRST|NEXT) n [PERCENT|"%"] (ROW|ROWS) (ONLY | WITH TIES)]
//	query            → select_clause [from_clause] [where] [group_by] [having]
//	                 | from_clause [where] [group_by] [having] [select_clause]
//	select_clause    → SELECT [DISTINCT] selection ("," selection)*
//	selection        → (instantiation | ENTRY "(" path ")" | OBJECT "(" name ")" | expr_or_pred) [[AS] alias]

func (p *Parser) parseQueryExpression() *ast.QueryExpression {
	start := p.tok.Pos
	var with *ast.WithClause
	if p.at(token.WITH) {
		with = p.parseWithClause()
	}
	return p.parseQueryExpressionBody(start, with)
}

func (p *Parser) parseQueryExpressionBody(start token.Position, with *ast.WithClause) *ast.QueryExpression {
	p.enter()
	defer p.leave()

	var body ast.QueryBody = p.parseOrderedQuery()
	for {
		var op ast.SetOperator
		switch p.tok.Type {
		case token.UNION:
			op = ast.Union
		case token.INTERSECT:
			op = ast.Intersect
		case token.EXCEPT:
			op = ast.Except
		default:
			return &ast.QueryExpression{NodeInfo: p.info(start), With: with, Body: body}
		}
		p.next()
		all := p.match(token.ALL)
		right := p.parseOrderedQuery()
		body = &ast.SetOperation{
			NodeInfo: p.info(body.Pos()),
			Left:     body,
			Op:       op,
			All:      all,
			Right:    right,
		}
	}
}

func (p *Parser) parseOrderedQuery() *ast.OrderedQuery {
	start := p.tok.Pos
	oq := &ast.OrderedQuery{}
	switch p.tok.Type {
	case token.LPAREN:
		p.next()
		oq.Nested = p.parseQueryExpression()
		p.expect(token.RPAREN)
	case token.SELECT, token.FROM:
		oq.Query = p.parseQuery()
	default:
		p.fail(ExpectedClause)
	}

	if p.at(token.ORDER) && p.peekIs(1, token.BY) {
		p.next()
		p.next()
		oq.OrderBy = p.parseSortSpecifications()
	}
	if p.match(token.LIMIT) {
		oq.Limit = p.parseRowCount(false)
	}
	if p.at(token.OFFSET) {
		oq.Offset = p.parseOffsetClause()
	}
	if p.at(token.FETCH) {
		oq.Fetch = p.parseFetchClause()
	}
	oq.NodeInfo = p.info(start)
	return oq
}

// parseRowCount parses the parameter or integer literal of LIMIT, OFFSET
// and FETCH. FETCH also accepts a decimal percentage.
func (p *Parser) parseRowCount(decimal bool) ast.Expression {
	switch p.tok.Type {
	case token.COLON, token.QUESTION:
		return p.parseParameter()
	case token.INTEGER, token.LONG, token.BIG_INTEGER:
		return p.parseLiteral()
	case token.DOUBLE, token.FLOAT, token.BIG_DECIMAL:
		if decimal {
			return p.parseLiteral()
		}
	}
	p.fail(ExpectedExpression)
	return nil
}

func (p *Parser) parseOffsetClause() *ast.OffsetClause {
	start := p.expect(token.OFFSET).Pos
	c := &ast.OffsetClause{Count: p.parseRowCount(false)}
	if p.atAny(token.ROW, token.ROWS) {
		c.Rows = p.next().Type.String()
	}
	c.NodeInfo = p.info(start)
	return c
}

func (p *Parser) parseFetchClause() *ast.FetchClause {
	start := p.expect(token.FETCH).Pos
	f := &ast.FetchClause{}
	switch {
	case p.match(token.NEXT):
		f.Next = true
	case p.match(token.FIRST):
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "FIRST or NEXT"))
	}
	f.Count = p.parseRowCount(true)
	if p.match(token.PERCENT_KW) || p.match(token.PERCENT) {
		f.Percent = true
	}
	if !p.atAny(token.ROW, token.ROWS) {
		p.bail(newSyntaxError(p.tok, ExpectedToken, "ROW or ROWS"))
	}
	f.Rows = p.next().Type.String()
	switch {
	case p.match(token.ONLY):
	case p.match(token.WITH):
		p.expect(token.TIES)
		f.WithTies = true
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "ONLY or WITH TIES"))
	}
	f.NodeInfo = p.info(start)
	return f
}

func (p *Parser) parseQuery() *ast.Query {
	start := p.tok.Pos
	q := &ast.Query{}
	if p.at(token.SELECT) {
		q.Form = ast.SelectFirst
		q.Select = p.parseSelectClause()
		if p.at(token.FROM) {
			q.From = p.parseFromClause()
		}
	} else {
		q.Form = ast.FromFirst
		q.From = p.parseFromClause()
	}

	if p.match(token.WHERE) {
		q.Where = p.parsePredicate()
	}
	if p.at(token.GROUP) {
		p.next()
		p.expect(token.BY)
		for {
			q.GroupBy = append(q.GroupBy, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if p.match(token.HAVING) {
		q.Having = p.parsePredicate()
	}
	if q.Form == ast.FromFirst && p.at(token.SELECT) {
		q.Select = p.parseSelectClause()
	}
	q.NodeInfo = p.info(start)
	return q
}

// ---------- SELECT ----------

func (p *Parser) parseSelectClause() *ast.SelectClause {
	start := p.expect(token.SELECT).Pos
	s := &ast.SelectClause{}
	s.Distinct = p.match(token.DISTINCT)
	for {
		s.Items = append(s.Items, p.parseSelection())
		if !p.match(token.COMMA) {
			break
		}
	}
	s.NodeInfo = p.info(start)
	return s
}

func (p *Parser) parseSelection() *ast.Selection {
	start := p.tok.Pos
	sel := &ast.Selection{}
	switch {
	case p.at(token.NEW):
		sel.Item = p.parseInstantiation()
	case p.at(token.ENTRY) && p.peekIs(1, token.LPAREN):
		p.next()
		p.next()
		entry := &ast.MapEntrySelection{Path: p.parsePath()}
		p.expect(token.RPAREN)
		entry.NodeInfo = p.info(start)
		sel.Item = entry
	case p.at(token.OBJECT) && p.peekIs(1, token.LPAREN):
		p.next()
		p.next()
		obj := &ast.ObjectSelection{Alias: p.identifier(roleName)}
		p.expect(token.RPAREN)
		obj.NodeInfo = p.info(start)
		sel.Item = obj
	default:
		sel.Item = p.parseExpressionOrPredicate()
	}
	sel.Alias = p.alias()
	sel.NodeInfo = p.info(start)
	return sel
}

// parseInstantiation parses NEW (LIST | MAP | class) "(" args ")".
func (p *Parser) parseInstantiation() *ast.Instantiation {
	start := p.expect(token.NEW).Pos
	inst := &ast.Instantiation{}
	switch {
	case p.at(token.LIST) && p.peekIs(1, token.LPAREN):
		p.next()
		inst.Kind = ast.InstantiateList
	case p.at(token.MAP) && p.peekIs(1, token.LPAREN):
		p.next()
		inst.Kind = ast.InstantiateMap
	default:
		inst.Kind = ast.InstantiateClass
		inst.Class = p.simplePath(roleName)
	}
	p.expect(token.LPAREN)
	p.enter()
	defer p.leave()
	for {
		argStart := p.tok.Pos
		arg := &ast.InstantiationArgument{}
		if p.at(token.NEW) {
			arg.Value = p.parseInstantiation()
		} else {
			arg.Value = p.parseExpressionOrPredicate()
		}
		arg.Alias = p.alias()
		arg.NodeInfo = p.info(argStart)
		inst.Args = append(inst.Args, arg)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	inst.NodeInfo = p.info(start)
	return inst
}

// ---------- ORDER BY ----------

func (p *Parser) parseSortSpecifications() []*ast.SortSpecification {
	var out []*ast.SortSpecification
	for {
		start := p.tok.Pos
		s := &ast.SortSpecification{Expr: p.parseExpression()}
		s.Direction = p.parseSortDirection()
		s.Nulls = p.parseNullPrecedence()
		s.NodeInfo = p.info(start)
		out = append(out, s)
		if !p.match(token.COMMA) {
			return out
		}
	}
}

func (p *Parser) parseSortDirection() ast.SortDirection {
	switch {
	case p.match(token.ASC):
		return ast.Ascending
	case p.match(token.DESC):
		return ast.Descending
	}
	return ast.SortDefault
}

func (p *Parser) parseNullPrecedence() ast.NullPrecedence {
	if !p.at(token.NULLS) {
		return ast.NullsDefault
	}
	p.next()
	switch {
	case p.match(token.FIRST):
		return ast.NullsFirst
	case p.match(token.LAST):
		return ast.NullsLast
	}
	p.bail(newSyntaxError(p.tok, ExpectedToken, "FIRST or LAST"))
	return ast.NullsDefault
}

// parseOrderByClause parses ORDER BY specs, used inside function modifiers.
func (p *Parser) parseOrderByClause() []*ast.SortSpecification {
	p.expect(token.ORDER)
	p.expect(token.BY)
	return p.parseSortSpecifications()
}

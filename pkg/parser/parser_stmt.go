package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Statement grammar:
//
//	statement   → [with_clause] (query_expression | update | delete | insert)
//	update      → UPDATE [VERSIONED] target SET assignment ("," assignment)* [WHERE predicate]
//	delete      → DELETE [FROM] target [WHERE predicate]
//	insert      → INSERT [INTO] target "(" simple_path ("," simple_path)* ")"
//	              (query_expression | VALUES row ("," row)*) [conflict]
//	conflict    → ON CONFLICT [ON CONSTRAINT name | "(" paths ")"]
//	              DO (NOTHING | UPDATE SET assignments [WHERE predicate])
//	with_clause → WITH cte ("," cte)*
//	cte         → name AS [[NOT] MATERIALIZED] "(" query_expression ")" [search] [cycle]

func (p *Parser) parseStatement() ast.Statement {
	start := p.tok.Pos
	var with *ast.WithClause
	if p.at(token.WITH) {
		with = p.parseWithClause()
	}

	switch p.tok.Type {
	case token.SELECT, token.FROM, token.LPAREN:
		qe := p.parseQueryExpressionBody(start, with)
		return &ast.SelectStatement{NodeInfo: p.info(start), Query: qe}
	case token.UPDATE:
		return p.parseUpdate(start, with)
	case token.DELETE:
		return p.parseDelete(start, with)
	case token.INSERT:
		return p.parseInsert(start, with)
	}
	p.fail(ExpectedClause)
	return nil
}

func (p *Parser) parseUpdate(start token.Position, with *ast.WithClause) *ast.UpdateStatement {
	p.expect(token.UPDATE)
	stmt := &ast.UpdateStatement{With: with}
	stmt.Versioned = p.match(token.VERSIONED)
	stmt.Target = p.parseTargetEntity()
	p.expect(token.SET)
	stmt.Set = p.parseAssignments()
	if p.match(token.WHERE) {
		stmt.Where = p.parsePredicate()
	}
	stmt.NodeInfo = p.info(start)
	return stmt
}

func (p *Parser) parseDelete(start token.Position, with *ast.WithClause) *ast.DeleteStatement {
	p.expect(token.DELETE)
	stmt := &ast.DeleteStatement{With: with}
	stmt.From = p.match(token.FROM)
	stmt.Target = p.parseTargetEntity()
	if p.match(token.WHERE) {
		stmt.Where = p.parsePredicate()
	}
	stmt.NodeInfo = p.info(start)
	return stmt
}

func (p *Parser) parseInsert(start token.Position, with *ast.WithClause) *ast.InsertStatement {
	p.expect(token.INSERT)
	stmt := &ast.InsertStatement{With: with}
	stmt.Into = p.match(token.INTO)
	stmt.Target = p.parseTargetEntity()

	p.expect(token.LPAREN)
	for {
		stmt.Fields = append(stmt.Fields, p.simplePath(roleName))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)

	if p.at(token.VALUES) {
		p.next()
		for {
			stmt.Values = append(stmt.Values, p.parseValuesRow())
			if !p.match(token.COMMA) {
				break
			}
		}
	} else {
		if !p.atAny(token.SELECT, token.FROM, token.WITH, token.LPAREN) {
			p.fail(ExpectedClause)
		}
		stmt.Query = p.parseQueryExpression()
	}

	if p.at(token.ON) && p.peekIs(1, token.CONFLICT) {
		stmt.Conflict = p.parseConflictClause()
	}
	stmt.NodeInfo = p.info(start)
	return stmt
}

func (p *Parser) parseValuesRow() *ast.ValuesRow {
	open := p.expect(token.LPAREN)
	if p.at(token.RPAREN) {
		p.next()
		p.failStructural(token.Span{Start: open.Pos, End: p.prev.End}, "()", "VALUES row must contain at least one value")
	}
	row := &ast.ValuesRow{}
	row.Values = p.parseExpressionOrPredicateList()
	p.expect(token.RPAREN)
	row.NodeInfo = p.info(open.Pos)
	return row
}

func (p *Parser) parseConflictClause() *ast.ConflictClause {
	start := p.tok.Pos
	p.expect(token.ON)
	p.expect(token.CONFLICT)
	c := &ast.ConflictClause{}
	switch {
	case p.at(token.ON) && p.peekIs(1, token.CONSTRAINT):
		p.next()
		p.next()
		c.Constraint = p.identifier(roleName)
	case p.at(token.LPAREN):
		p.next()
		for {
			c.Paths = append(c.Paths, p.simplePath(roleName))
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	p.expect(token.DO)
	switch {
	case p.match(token.NOTHING):
		c.Action = ast.ConflictDoNothing
	case p.match(token.UPDATE):
		c.Action = ast.ConflictDoUpdate
		p.expect(token.SET)
		c.Set = p.parseAssignments()
		if p.match(token.WHERE) {
			c.Where = p.parsePredicate()
		}
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "NOTHING or UPDATE"))
	}
	c.NodeInfo = p.info(start)
	return c
}

// parseTargetEntity parses entityName [[AS] alias].
func (p *Parser) parseTargetEntity() *ast.TargetEntity {
	start := p.tok.Pos
	t := &ast.TargetEntity{Entity: p.simplePath(roleName)}
	t.Alias = p.alias()
	t.NodeInfo = p.info(start)
	return t
}

func (p *Parser) parseAssignments() []*ast.Assignment {
	var out []*ast.Assignment
	for {
		start := p.tok.Pos
		a := &ast.Assignment{Path: p.simplePath(roleName)}
		p.expect(token.EQ)
		a.Value = p.parseExpressionOrPredicate()
		a.NodeInfo = p.info(start)
		out = append(out, a)
		if !p.match(token.COMMA) {
			return out
		}
	}
}

// ---------- WITH ----------

func (p *Parser) parseWithClause() *ast.WithClause {
	start := p.expect(token.WITH).Pos
	w := &ast.WithClause{}
	for {
		w.CTEs = append(w.CTEs, p.parseCTE())
		if !p.match(token.COMMA) {
			break
		}
	}
	w.NodeInfo = p.info(start)
	return w
}

func (p *Parser) parseCTE() *ast.CTE {
	start := p.tok.Pos
	cte := &ast.CTE{Name: p.identifier(roleName)}
	p.expect(token.AS)
	switch {
	case p.at(token.NOT) && p.peekIs(1, token.MATERIALIZED):
		p.next()
		p.next()
		cte.Materialization = ast.NotMaterialized
	case p.match(token.MATERIALIZED):
		cte.Materialization = ast.Materialized
	}
	p.expect(token.LPAREN)
	cte.Query = p.parseQueryExpression()
	p.expect(token.RPAREN)
	if p.at(token.SEARCH) {
		cte.Search = p.parseSearchClause()
	}
	if p.at(token.CYCLE) {
		cte.Cycle = p.parseCycleClause()
	}
	cte.NodeInfo = p.info(start)
	return cte
}

func (p *Parser) parseSearchClause() *ast.SearchClause {
	start := p.expect(token.SEARCH).Pos
	s := &ast.SearchClause{}
	switch {
	case p.match(token.BREADTH):
		s.Kind = ast.SearchBreadthFirst
	case p.match(token.DEPTH):
		s.Kind = ast.SearchDepthFirst
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "BREADTH or DEPTH"))
	}
	p.expect(token.FIRST)
	p.expect(token.BY)
	for {
		specStart := p.tok.Pos
		spec := &ast.SearchSpecification{Attribute: p.identifier(roleName)}
		spec.Direction = p.parseSortDirection()
		spec.Nulls = p.parseNullPrecedence()
		spec.NodeInfo = p.info(specStart)
		s.By = append(s.By, spec)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.SET)
	s.Set = p.identifier(roleName)
	s.NodeInfo = p.info(start)
	return s
}

func (p *Parser) parseCycleClause() *ast.CycleClause {
	start := p.expect(token.CYCLE).Pos
	c := &ast.CycleClause{}
	for {
		c.Attributes = append(c.Attributes, p.identifier(roleName))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.SET)
	c.Set = p.identifier(roleName)
	if p.match(token.TO) {
		c.MarkValue = p.parseLiteral()
		p.expect(token.DEFAULT)
		c.DefaultValue = p.parseLiteral()
	}
	if p.match(token.USING) {
		c.Using = p.identifier(roleName)
	}
	c.NodeInfo = p.info(start)
	return c
}

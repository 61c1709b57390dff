package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Function modifiers: FROM FIRST/LAST, null treatment, WITHIN GROUP,
// FILTER and OVER with window frames.
//
// Grammar:
//
//	modifiers    → [FROM (FIRST|LAST)] [(RESPECT|IGNORE) NULLS] [WITHIN GROUP "(" ORDER BY sort_list ")"]
//	               [FILTER "(" WHERE predicate ")"] [OVER window_spec]
//	window_spec  → "(" [PARTITION BY expr_list] [ORDER BY sort_list] [frame_spec] ")"
//	frame_spec   → (ROWS|RANGE|GROUPS) frame_extent [EXCLUDE (CURRENT ROW | GROUP | TIES | NO OTHERS)]
//	frame_extent → BETWEEN frame_bound AND frame_bound | frame_bound
//	frame_bound  → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW | expr PRECEDING | expr FOLLOWING

// parseFunctionModifiers parses the clauses that may trail a function call.
// It returns nil when none are present.
func (p *Parser) parseFunctionModifiers() *ast.FunctionModifiers {
	start := p.tok.Pos
	m := &ast.FunctionModifiers{}
	found := false

	// FROM FIRST is only a modifier when another modifier follows it;
	// otherwise "f(x) FROM First" starts a FROM clause.
	if p.at(token.FROM) && p.atNth() {
		p.next()
		if p.next().Type == token.FIRST {
			m.Nth = ast.FromFirstRow
		} else {
			m.Nth = ast.FromLastRow
		}
		found = true
	}

	if p.atAny(token.RESPECT, token.IGNORE) && p.peekIs(1, token.NULLS) {
		if p.next().Type == token.RESPECT {
			m.Nulls = ast.RespectNulls
		} else {
			m.Nulls = ast.IgnoreNulls
		}
		p.next()
		found = true
	}

	if p.at(token.WITHIN) && p.peekIs(1, token.GROUP) {
		p.next()
		p.next()
		p.expect(token.LPAREN)
		m.WithinGroup = p.parseOrderByClause()
		p.expect(token.RPAREN)
		found = true
	}

	if p.at(token.FILTER) && p.peekIs(1, token.LPAREN) {
		p.next()
		p.next()
		p.expect(token.WHERE)
		m.Filter = p.parsePredicate()
		p.expect(token.RPAREN)
		found = true
	}

	if p.at(token.OVER) {
		m.Over = p.parseOverClause()
		found = true
	}

	if !found {
		return nil
	}
	m.NodeInfo = p.info(start)
	return m
}

// atNth reports whether the tokens ahead read FROM (FIRST|LAST) followed by
// a null treatment or OVER.
func (p *Parser) atNth() bool {
	switch p.peek(1).Type {
	case token.FIRST, token.LAST:
	default:
		return false
	}
	switch p.peek(2).Type {
	case token.RESPECT, token.IGNORE, token.OVER:
		return true
	}
	return false
}

// parseOverClause parses a window specification.
func (p *Parser) parseOverClause() *ast.OverClause {
	start := p.expect(token.OVER).Pos
	p.expect(token.LPAREN)
	over := &ast.OverClause{}

	if p.match(token.PARTITION) {
		p.expect(token.BY)
		over.PartitionBy = p.parseExpressionList()
	}

	if p.at(token.ORDER) {
		over.OrderBy = p.parseOrderByClause()
	}

	if p.atAny(token.ROWS, token.RANGE, token.GROUPS) {
		over.Frame = p.parseFrameClause()
	}

	p.expect(token.RPAREN)
	over.NodeInfo = p.info(start)
	return over
}

var frameModes = map[token.TokenType]ast.FrameMode{
	token.ROWS:   ast.FrameRows,
	token.RANGE:  ast.FrameRange,
	token.GROUPS: ast.FrameGroups,
}

// parseFrameClause parses a window frame specification.
func (p *Parser) parseFrameClause() *ast.FrameClause {
	start := p.tok.Pos
	frame := &ast.FrameClause{Mode: frameModes[p.next().Type]}

	if p.match(token.BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		frame.Stop = p.parseFrameBound()
	} else {
		frame.Start = p.parseFrameBound()
	}

	if p.match(token.EXCLUDE) {
		switch {
		case p.match(token.CURRENT):
			p.expect(token.ROW)
			frame.Exclusion = ast.ExcludeCurrentRow
		case p.match(token.GROUP):
			frame.Exclusion = ast.ExcludeGroup
		case p.match(token.TIES):
			frame.Exclusion = ast.ExcludeTies
		case p.match(token.NO):
			p.expect(token.OTHERS)
			frame.Exclusion = ast.ExcludeNoOthers
		default:
			p.bail(newSyntaxError(p.tok, ExpectedToken, "CURRENT ROW, GROUP, TIES or NO OTHERS"))
		}
	}

	frame.NodeInfo = p.info(start)
	return frame
}

// parseFrameBound parses one end of a frame.
func (p *Parser) parseFrameBound() *ast.FrameBound {
	start := p.tok.Pos
	bound := &ast.FrameBound{}

	switch {
	case p.match(token.UNBOUNDED):
		switch {
		case p.match(token.PRECEDING):
			bound.Type = ast.FrameUnboundedPreceding
		case p.match(token.FOLLOWING):
			bound.Type = ast.FrameUnboundedFollowing
		default:
			p.bail(newSyntaxError(p.tok, ExpectedToken, "PRECEDING or FOLLOWING"))
		}

	case p.at(token.CURRENT) && p.peekIs(1, token.ROW):
		p.next()
		p.next()
		bound.Type = ast.FrameCurrentRow

	default:
		bound.Offset = p.parseExpression()
		switch {
		case p.match(token.PRECEDING):
			bound.Type = ast.FrameExprPreceding
		case p.match(token.FOLLOWING):
			bound.Type = ast.FrameExprFollowing
		default:
			p.bail(newSyntaxError(p.tok, ExpectedToken, "PRECEDING or FOLLOWING"))
		}
	}

	bound.NodeInfo = p.info(start)
	return bound
}

package parser

import (
	"strconv"
	"strings"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Primary expression parsing: literals, parameters, parenthesized forms,
// CASE, temporal literals and current-time functions. Paths and function
// calls are in parser_path.go and parser_function.go.
//
// Grammar:
//
//	primary     → "(" query_expression ")" | "(" type ":" STRING ")"
//	            | "(" expr_or_pred ("," expr_or_pred)* ")"
//	            | literal | parameter | "[" [expr ("," expr)*] "]"
//	            | "{" temporal "}" | "{" HEX ("," HEX)* "}" | (TS_ESCAPE | D_ESCAPE | T_ESCAPE) ... "}"
//	            | case_expr | temporal_kw | current_fn | path | function
//	literal     → STRING | HOST_STRING | numeric | HEX | BINARY | NULL | TRUE | FALSE
//	parameter   → ":" name | "?" [INTEGER]
//	temporal    → date [time [zone | offset]] | time
//	date        → INTEGER "-" INTEGER "-" INTEGER
//	time        → INTEGER ":" INTEGER [":" (INTEGER | DOUBLE)]
//	zone        → STRING | IDENT ["/" IDENT]
//	offset      → ("+" | "-") INTEGER [":" INTEGER]
//	temporal_kw → [LOCAL | ZONED | OFFSET] (DATE | TIME | DATETIME) temporal
//	case_expr   → CASE [expr_or_pred] (WHEN expr_or_pred THEN expr_or_pred)+ [ELSE expr_or_pred] END

func (p *Parser) parsePrimary() ast.Node {
	p.enter()
	defer p.leave()

	switch p.tok.Type {
	case token.LPAREN:
		return p.parseParenthesized()
	case token.STRING, token.HOST_STRING, token.INTEGER, token.LONG, token.BIG_INTEGER,
		token.FLOAT, token.DOUBLE, token.BIG_DECIMAL, token.HEX, token.BINARY:
		return p.parseLiteral()
	case token.NULL, token.TRUE, token.FALSE:
		if !p.peekIs(1, token.DOT) {
			return p.parseLiteral()
		}
	case token.COLON, token.QUESTION:
		return p.parseParameter()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseBraceLiteral()
	case token.TS_ESCAPE, token.D_ESCAPE, token.T_ESCAPE:
		return p.parseEscapeLiteral()
	case token.CASE:
		if !p.peekIs(1, token.DOT) {
			return p.parseCase()
		}
	case token.EVERY, token.ALL, token.ANY, token.SOME:
		if _, ok := collectionQuantifiers[p.peek(1).Type]; ok && p.peekIs(2, token.LPAREN) {
			return p.parseQuantified()
		}
	}

	if expr := p.parseTemporalKeyword(); expr != nil {
		return expr
	}
	return p.parsePathOrFunction(rolePrimary)
}

// ---------- Parenthesized ----------

func (p *Parser) parseParenthesized() ast.Node {
	start := p.tok.Pos
	if q := p.tryParenthesizedQuery(); q != nil {
		return &ast.SubqueryExpression{NodeInfo: p.info(start), Query: q}
	}
	if p.generalizedLiteralAhead() {
		return p.parseGeneralizedLiteral()
	}

	p.expect(token.LPAREN)
	items := p.parseExpressionOrPredicateList()
	p.expect(token.RPAREN)

	if len(items) > 1 {
		return &ast.TupleExpression{NodeInfo: p.info(start), Items: items}
	}
	if pred, ok := items[0].(ast.Predicate); ok {
		return &ast.GroupedPredicate{NodeInfo: p.info(start), Pred: pred}
	}
	return &ast.GroupedExpression{NodeInfo: p.info(start), Expr: p.asExpression(items[0])}
}

// generalizedLiteralAhead reports whether the tokens ahead read
// "(" type ":" STRING ")".
func (p *Parser) generalizedLiteralAhead() bool {
	typ := p.peek(1)
	if typ.Type != token.STRING && !identifierRole(roleName, typ, p.peek(2)) {
		return false
	}
	return p.peekIs(2, token.COLON) && p.peekIs(3, token.STRING) && p.peekIs(4, token.RPAREN)
}

func (p *Parser) parseGeneralizedLiteral() *ast.GeneralizedLiteral {
	start := p.expect(token.LPAREN).Pos
	typ := p.next()
	p.expect(token.COLON)
	text := p.expect(token.STRING)
	p.expect(token.RPAREN)
	return &ast.GeneralizedLiteral{NodeInfo: p.info(start), Type: typ.Literal, Text: text.Literal}
}

// ---------- Literals ----------

var literalKinds = map[token.TokenType]ast.LiteralKind{
	token.STRING:      ast.StringLiteral,
	token.HOST_STRING: ast.HostStringLiteral,
	token.NULL:        ast.NullLiteral,
	token.TRUE:        ast.BooleanLiteral,
	token.FALSE:       ast.BooleanLiteral,
	token.INTEGER:     ast.IntegerLiteral,
	token.LONG:        ast.LongLiteral,
	token.BIG_INTEGER: ast.BigIntegerLiteral,
	token.FLOAT:       ast.FloatLiteral,
	token.DOUBLE:      ast.DoubleLiteral,
	token.BIG_DECIMAL: ast.BigDecimalLiteral,
	token.HEX:         ast.HexLiteral,
	token.BINARY:      ast.BinaryLiteral,
}

// parseLiteral parses a scalar literal token.
func (p *Parser) parseLiteral() *ast.Literal {
	kind, ok := literalKinds[p.tok.Type]
	if !ok {
		p.fail(ExpectedExpression)
	}
	tok := p.next()
	lit := &ast.Literal{
		NodeInfo: ast.NodeInfo{Span: tok.Span()},
		Kind:     kind,
		Text:     tok.Literal,
		Value:    tok.Literal,
	}
	if tok.Type == token.STRING || tok.Type == token.HOST_STRING {
		lit.Value = tok.Value
	}
	return lit
}

func (p *Parser) parseParameter() *ast.Parameter {
	start := p.tok.Pos
	if p.match(token.COLON) {
		name := p.identifier(roleName)
		return &ast.Parameter{NodeInfo: p.info(start), Name: name.Name}
	}
	p.expect(token.QUESTION)
	param := &ast.Parameter{Ordinal: true}
	if p.at(token.INTEGER) && p.adjacent() {
		tok := p.next()
		n, err := strconv.Atoi(strings.ReplaceAll(tok.Literal, "_", ""))
		if err != nil || n < 1 {
			p.failStructural(tok.Span(), tok.Literal, "invalid parameter position "+strconv.Quote(tok.Literal))
		}
		param.Position = n
	}
	param.NodeInfo = p.info(start)
	return param
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	start := p.expect(token.LBRACKET).Pos
	arr := &ast.ArrayLiteral{}
	if !p.at(token.RBRACKET) {
		arr.Elements = p.parseExpressionList()
	}
	p.expect(token.RBRACKET)
	arr.NodeInfo = p.info(start)
	return arr
}

// ---------- CASE ----------

func (p *Parser) parseCase() *ast.CaseExpression {
	start := p.expect(token.CASE).Pos
	c := &ast.CaseExpression{}
	if !p.at(token.WHEN) {
		c.Operand = p.parseExpressionOrPredicate()
	}
	for p.at(token.WHEN) {
		whenStart := p.next().Pos
		w := &ast.CaseWhen{}
		if c.Operand == nil {
			w.Condition = p.parsePredicate()
		} else {
			w.Condition = p.parseExpressionOrPredicate()
		}
		p.expect(token.THEN)
		w.Result = p.parseExpressionOrPredicate()
		w.NodeInfo = p.info(whenStart)
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 {
		p.failToken(token.WHEN)
	}
	if p.match(token.ELSE) {
		c.Else = p.parseExpressionOrPredicate()
	}
	p.expect(token.END)
	c.NodeInfo = p.info(start)
	return c
}

// ---------- Temporal literals ----------

// parseBraceLiteral parses {date ...}, {time} and the binary form {0x01, 0x02}.
func (p *Parser) parseBraceLiteral() ast.Expression {
	start := p.expect(token.LBRACE).Pos

	if p.at(token.HEX) {
		lit := &ast.Literal{Kind: ast.BinaryLiteral}
		for {
			lit.Items = append(lit.Items, p.expect(token.HEX).Literal)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RBRACE)
		lit.NodeInfo = p.info(start)
		lit.Text = p.text(lit.Span)
		lit.Value = lit.Text
		return lit
	}

	lit := &ast.TemporalLiteral{Syntax: ast.BraceSyntax}
	p.parseTemporalBody(lit, false)
	p.expect(token.RBRACE)
	lit.NodeInfo = p.info(start)
	lit.Text = p.text(lit.Span)
	return lit
}

// parseEscapeLiteral parses the JDBC forms {d ...}, {t ...} and {ts ...}.
func (p *Parser) parseEscapeLiteral() *ast.TemporalLiteral {
	open := p.next()
	lit := &ast.TemporalLiteral{Syntax: ast.EscapeSyntax}
	switch open.Type {
	case token.D_ESCAPE:
		lit.Kind = ast.DateLiteral
	case token.T_ESCAPE:
		lit.Kind = ast.TimeLiteral
	default:
		lit.Kind = ast.LocalDateTimeLiteral
	}

	if p.at(token.STRING) {
		lit.Generic = p.next().Value
	} else {
		switch open.Type {
		case token.D_ESCAPE:
			lit.Date = p.parseDateText()
		case token.T_ESCAPE:
			lit.Time = p.parseTimeText()
		default:
			p.parseTemporalBody(lit, true)
		}
	}
	p.expect(token.RBRACE)
	lit.NodeInfo = p.info(open.Pos)
	lit.Text = p.text(lit.Span)
	return lit
}

// parseTemporalKeyword parses a keyword temporal literal such as
// "DATE 2020-01-01" or a current-time function. It returns nil without
// consuming anything when neither starts here.
func (p *Parser) parseTemporalKeyword() ast.Expression {
	t, n1, n2 := p.tok.Type, p.peek(1).Type, p.peek(2).Type
	if n1 == token.DOT {
		return nil
	}
	switch t {
	case token.DATE, token.TIME, token.DATETIME:
		if n1 == token.INTEGER {
			return p.parseKeywordTemporal()
		}
	case token.LOCAL, token.ZONED, token.OFFSET:
		isKind := n1 == token.DATE || n1 == token.TIME || n1 == token.DATETIME
		if isKind && n2 == token.INTEGER {
			return p.parseKeywordTemporal()
		}
		if t == token.LOCAL && isKind {
			return p.parseCurrentFunction()
		}
		if t == token.OFFSET && n1 == token.DATETIME {
			return p.parseCurrentFunction()
		}
	case token.LOCAL_DATETIME, token.OFFSET_DATETIME:
		if n1 == token.INTEGER {
			return p.parseKeywordTemporal()
		}
		return p.parseCurrentFunction()
	case token.CURRENT_DATE, token.CURRENT_TIME, token.CURRENT_TIMESTAMP, token.CURRENT_INSTANT,
		token.LOCAL_DATE, token.LOCAL_TIME, token.INSTANT:
		return p.parseCurrentFunction()
	case token.CURRENT:
		if n1 == token.DATE || n1 == token.TIME || n1 == token.TIMESTAMP {
			return p.parseCurrentFunction()
		}
	}
	return nil
}

func (p *Parser) parseKeywordTemporal() *ast.TemporalLiteral {
	start := p.tok.Pos
	lit := &ast.TemporalLiteral{Syntax: ast.KeywordSyntax}

	kind := p.tok.Type
	switch kind {
	case token.LOCAL, token.ZONED, token.OFFSET:
		lit.Prefix = p.next().Type.String()
		kind = p.tok.Type
		p.next()
	case token.LOCAL_DATETIME:
		lit.Prefix = token.LOCAL.String()
		kind = token.DATETIME
		p.next()
	case token.OFFSET_DATETIME:
		lit.Prefix = token.OFFSET.String()
		kind = token.DATETIME
		p.next()
	default:
		p.next()
	}

	switch kind {
	case token.DATE:
		lit.Kind = ast.DateLiteral
		lit.Date = p.parseDateText()
	case token.TIME:
		lit.Kind = ast.TimeLiteral
		lit.Time = p.parseTimeText()
	default:
		p.parseTemporalBody(lit, true)
	}
	lit.NodeInfo = p.info(start)
	lit.Text = p.text(lit.Span)
	return lit
}

// parseTemporalBody parses the parts of a temporal literal and sets its
// kind. With datetime set a date and time are required; otherwise a bare
// date or time is accepted. The prefix, if any, restricts the suffix.
func (p *Parser) parseTemporalBody(lit *ast.TemporalLiteral, datetime bool) {
	if !datetime && p.at(token.INTEGER) && p.peekIs(1, token.COLON) {
		lit.Kind = ast.TimeLiteral
		lit.Time = p.parseTimeText()
		return
	}

	lit.Date = p.parseDateText()
	if !datetime && !p.at(token.INTEGER) {
		lit.Kind = ast.DateLiteral
		return
	}
	lit.Time = p.parseTimeText()
	lit.Kind = ast.LocalDateTimeLiteral

	switch lit.Prefix {
	case "LOCAL":
		return
	case "ZONED":
		lit.Zone = p.parseZoneText()
		lit.Kind = ast.ZonedDateTimeLiteral
		return
	case "OFFSET":
		lit.Offset = p.parseOffsetText()
		lit.Kind = ast.OffsetDateTimeLiteral
		return
	}

	switch {
	case p.atAny(token.STRING, token.IDENT):
		lit.Zone = p.parseZoneText()
		lit.Kind = ast.ZonedDateTimeLiteral
	case p.atAny(token.PLUS, token.MINUS) && p.peekIs(1, token.INTEGER):
		lit.Offset = p.parseOffsetText()
		lit.Kind = ast.OffsetDateTimeLiteral
	}
}

func (p *Parser) parseDateText() string {
	start := p.tok.Pos
	p.expect(token.INTEGER)
	p.expect(token.MINUS)
	p.expect(token.INTEGER)
	p.expect(token.MINUS)
	p.expect(token.INTEGER)
	return p.text(p.info(start).Span)
}

func (p *Parser) parseTimeText() string {
	start := p.tok.Pos
	p.expect(token.INTEGER)
	p.expect(token.COLON)
	p.expect(token.INTEGER)
	if p.match(token.COLON) {
		if !p.atAny(token.INTEGER, token.DOUBLE) {
			p.bail(newSyntaxError(p.tok, ExpectedToken, "seconds"))
		}
		p.next()
	}
	return p.text(p.info(start).Span)
}

func (p *Parser) parseZoneText() string {
	start := p.tok.Pos
	switch p.tok.Type {
	case token.STRING:
		p.next()
	case token.IDENT:
		p.next()
		if p.match(token.SLASH) {
			p.expect(token.IDENT)
		}
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "time zone"))
	}
	return p.text(p.info(start).Span)
}

func (p *Parser) parseOffsetText() string {
	start := p.tok.Pos
	if !p.atAny(token.PLUS, token.MINUS) {
		p.bail(newSyntaxError(p.tok, ExpectedToken, "zone offset"))
	}
	p.next()
	p.expect(token.INTEGER)
	if p.match(token.COLON) {
		p.expect(token.INTEGER)
	}
	return p.text(p.info(start).Span)
}

// ---------- Current date and time ----------

var currentKinds = map[token.TokenType]ast.CurrentKind{
	token.CURRENT_DATE:      ast.CurrentDate,
	token.CURRENT_TIME:      ast.CurrentTime,
	token.CURRENT_TIMESTAMP: ast.CurrentTimestamp,
	token.CURRENT_INSTANT:   ast.CurrentInstant,
	token.INSTANT:           ast.CurrentInstant,
	token.LOCAL_DATE:        ast.LocalDate,
	token.LOCAL_TIME:        ast.LocalTime,
	token.LOCAL_DATETIME:    ast.LocalDateTime,
	token.OFFSET_DATETIME:   ast.OffsetDateTime,
}

// twoWordCurrent maps the spaced spellings such as CURRENT DATE.
var twoWordCurrent = map[[2]token.TokenType]ast.CurrentKind{
	{token.CURRENT, token.DATE}:      ast.CurrentDate,
	{token.CURRENT, token.TIME}:      ast.CurrentTime,
	{token.CURRENT, token.TIMESTAMP}: ast.CurrentTimestamp,
	{token.LOCAL, token.DATE}:        ast.LocalDate,
	{token.LOCAL, token.TIME}:        ast.LocalTime,
	{token.LOCAL, token.DATETIME}:    ast.LocalDateTime,
	{token.OFFSET, token.DATETIME}:   ast.OffsetDateTime,
}

func (p *Parser) parseCurrentFunction() *ast.CurrentFunction {
	start := p.tok.Pos
	fn := &ast.CurrentFunction{}
	if kind, ok := twoWordCurrent[[2]token.TokenType{p.tok.Type, p.peek(1).Type}]; ok {
		fn.Kind = kind
		p.next()
		p.next()
	} else {
		fn.Kind = currentKinds[p.next().Type]
		if p.at(token.LPAREN) && p.peekIs(1, token.RPAREN) {
			p.next()
			p.next()
		}
	}
	fn.NodeInfo = p.info(start)
	fn.Text = p.text(fn.Span)
	return fn
}

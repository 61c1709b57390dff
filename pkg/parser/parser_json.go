package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// JSON and XML function parsing.
//
// Grammar:
//
//	json_value   → JSON_VALUE "(" expr "," expr [passing] [RETURNING cast_target] on_clause* ")"
//	json_query   → JSON_QUERY "(" expr "," expr [passing] [wrapper] on_clause* ")"
//	json_exists  → JSON_EXISTS "(" expr "," expr [passing] [(ERROR|TRUE|FALSE) ON ERROR] ")"
//	json_array   → JSON_ARRAY "(" [expr_or_pred ("," expr_or_pred)*] [null_clause] ")"
//	json_object  → JSON_OBJECT "(" [entry ("," entry)*] [null_clause] ")"
//	entry        → [KEY] expr VALUE expr | expr ":" expr | expr "," expr
//	json_table   → JSON_TABLE "(" expr ["," expr] [passing] COLUMNS "(" column ("," column)* ")" [(ERROR|NULL) ON ERROR] ")"
//	passing      → PASSING expr AS name ("," expr AS name)*
//	wrapper      → WITH [CONDITIONAL|UNCONDITIONAL] [ARRAY] WRAPPER | WITHOUT [ARRAY] WRAPPER
//	on_clause    → (ERROR | NULL | EMPTY [ARRAY|OBJECT] | DEFAULT expr) ON (ERROR | EMPTY)
//	null_clause  → (ABSENT | NULL) ON NULL
//	xmlelement   → XMLELEMENT "(" NAME name ["," XMLATTRIBUTES "(" named ("," named)* ")"] ("," expr_or_pred)* ")"
//	xmltable     → XMLTABLE "(" expr PASSING expr COLUMNS xml_column ("," xml_column)* ")"

// parseJsonOrXmlFunction parses a JSON or XML function at the current
// keyword, or returns nil without consuming anything.
func (p *Parser) parseJsonOrXmlFunction() ast.Expression {
	switch p.tok.Type {
	case token.JSON_VALUE:
		return p.parseJsonValue()
	case token.JSON_QUERY:
		return p.parseJsonQuery()
	case token.JSON_EXISTS:
		return p.parseJsonExists()
	case token.JSON_ARRAY:
		return p.parseJsonArray()
	case token.JSON_OBJECT:
		return p.parseJsonObject()
	case token.JSON_ARRAYAGG:
		return p.parseJsonArrayAgg()
	case token.JSON_OBJECTAGG:
		return p.parseJsonObjectAgg()
	case token.JSON_TABLE:
		return p.parseJsonTable()
	case token.XMLELEMENT:
		return p.parseXmlElement()
	case token.XMLFOREST:
		return p.parseXmlForest()
	case token.XMLPI:
		return p.parseXmlPi()
	case token.XMLQUERY, token.XMLEXISTS:
		return p.parseXmlQuery()
	case token.XMLAGG:
		return p.parseXmlAgg()
	case token.XMLTABLE:
		return p.parseXmlTable()
	}
	return nil
}

// jsonCall reads name "(" doc "," path and optional PASSING.
func (p *Parser) jsonCall() (start token.Position, doc, path ast.Expression, passing []*ast.JsonPassing) {
	start = p.next().Pos
	p.expect(token.LPAREN)
	doc = p.parseExpression()
	p.expect(token.COMMA)
	path = p.parseExpression()
	passing = p.parseJsonPassing()
	return start, doc, path, passing
}

func (p *Parser) parseJsonPassing() []*ast.JsonPassing {
	if !p.match(token.PASSING) {
		return nil
	}
	var out []*ast.JsonPassing
	for {
		start := p.tok.Pos
		entry := &ast.JsonPassing{Value: p.parseExpressionOrPredicate()}
		p.expect(token.AS)
		entry.Alias = p.identifier(roleName)
		entry.NodeInfo = p.info(start)
		out = append(out, entry)
		if !p.match(token.COMMA) {
			return out
		}
	}
}

func (p *Parser) parseJsonValue() *ast.JsonValueFunction {
	start, doc, path, passing := p.jsonCall()
	fn := &ast.JsonValueFunction{Expr: doc, Path: path, Passing: passing}
	if p.match(token.RETURNING) {
		fn.Returning = p.parseCastTarget()
	}
	fn.On = p.parseJsonOnClauses(false)
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseJsonQuery() *ast.JsonQueryFunction {
	start, doc, path, passing := p.jsonCall()
	fn := &ast.JsonQueryFunction{Expr: doc, Path: path, Passing: passing}
	fn.Wrapper = p.parseJsonWrapper()
	fn.On = p.parseJsonOnClauses(true)
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseJsonExists() *ast.JsonExistsFunction {
	start, doc, path, passing := p.jsonCall()
	fn := &ast.JsonExistsFunction{Expr: doc, Path: path, Passing: passing}
	if p.atAny(token.ERROR, token.TRUE, token.FALSE) {
		onStart := p.tok.Pos
		behavior := ast.JsonBehavior(p.next().Type.String())
		p.expect(token.ON)
		p.expect(token.ERROR)
		fn.OnError = &ast.JsonOnClause{NodeInfo: p.info(onStart), Behavior: behavior}
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// parseJsonWrapper reads a wrapper clause and returns it in canonical form.
func (p *Parser) parseJsonWrapper() string {
	switch {
	case p.at(token.WITH) && p.peekIs(1, token.UNIQUE):
		return ""
	case p.match(token.WITH):
		out := "WITH"
		if p.atAny(token.CONDITIONAL, token.UNCONDITIONAL) {
			out += " " + p.next().Type.String()
		}
		if p.match(token.ARRAY) {
			out += " ARRAY"
		}
		p.expect(token.WRAPPER)
		return out + " WRAPPER"
	case p.match(token.WITHOUT):
		out := "WITHOUT"
		if p.match(token.ARRAY) {
			out += " ARRAY"
		}
		p.expect(token.WRAPPER)
		return out + " WRAPPER"
	}
	return ""
}

// parseJsonOnClauses reads any number of "behavior ON ERROR|EMPTY" clauses.
// EMPTY [ARRAY|OBJECT] behaviors are only valid for query-like results.
func (p *Parser) parseJsonOnClauses(query bool) []*ast.JsonOnClause {
	var out []*ast.JsonOnClause
	for {
		start := p.tok.Pos
		c := &ast.JsonOnClause{}
		switch {
		case p.at(token.ERROR) && p.peekIs(1, token.ON):
			p.next()
			c.Behavior = ast.JsonBehaviorError
		case p.at(token.NULL) && p.peekIs(1, token.ON):
			p.next()
			c.Behavior = ast.JsonBehaviorNull
		case p.at(token.DEFAULT) && !query:
			p.next()
			c.Behavior = ast.JsonBehaviorDefault
			c.Default = p.parseExpression()
		case p.at(token.EMPTY) && query:
			p.next()
			c.Behavior = ast.JsonBehaviorEmpty
			switch {
			case p.match(token.ARRAY):
				c.Behavior = ast.JsonBehaviorEmptyArray
			case p.match(token.OBJECT):
				c.Behavior = ast.JsonBehaviorEmptyObject
			}
		default:
			return out
		}
		p.expect(token.ON)
		switch {
		case p.match(token.ERROR):
		case p.match(token.EMPTY):
			c.OnEmpty = true
		default:
			p.bail(newSyntaxError(p.tok, ExpectedToken, "ERROR or EMPTY"))
		}
		c.NodeInfo = p.info(start)
		out = append(out, c)
	}
}

func (p *Parser) parseJsonNullClause() ast.JsonNullClause {
	switch {
	case p.at(token.ABSENT):
		p.next()
		p.expect(token.ON)
		p.expect(token.NULL)
		return ast.JsonAbsentOnNull
	case p.at(token.NULL) && p.peekIs(1, token.ON):
		p.next()
		p.next()
		p.expect(token.NULL)
		return ast.JsonNullOnNull
	}
	return ast.JsonNullDefault
}

// atJsonNullClause reports whether a null clause starts here.
func (p *Parser) atJsonNullClause() bool {
	return p.at(token.ABSENT) || (p.at(token.NULL) && p.peekIs(1, token.ON))
}

func (p *Parser) parseJsonArray() *ast.JsonArrayFunction {
	start := p.expect(token.JSON_ARRAY).Pos
	p.expect(token.LPAREN)
	fn := &ast.JsonArrayFunction{}
	if !p.at(token.RPAREN) && !p.atJsonNullClause() {
		for {
			fn.Values = append(fn.Values, p.parseExpressionOrPredicate())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	fn.Nulls = p.parseJsonNullClause()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseJsonObject() *ast.JsonObjectFunction {
	start := p.expect(token.JSON_OBJECT).Pos
	p.expect(token.LPAREN)
	fn := &ast.JsonObjectFunction{}

	for !p.at(token.RPAREN) && !p.atJsonNullClause() {
		entryStart := p.tok.Pos
		entry := &ast.JsonObjectEntry{}
		if p.at(token.KEY) && !p.peekIs(1, token.LPAREN) && !p.peekIs(1, token.DOT) {
			p.next()
			entry.KeyWord = true
		}
		entry.Key = p.parseExpressionOrPredicate()
		switch {
		case p.match(token.VALUE):
			entry.Syntax = ast.JsonEntryKeyValue
		case p.match(token.COLON):
			entry.Syntax = ast.JsonEntryColon
		case p.match(token.COMMA):
			entry.Syntax = ast.JsonEntryComma
		default:
			span := token.Span{Start: entryStart, End: p.prev.End}
			p.failStructural(span, p.text(span), "JSON_OBJECT entry without value")
		}
		if entry.KeyWord && entry.Syntax != ast.JsonEntryKeyValue {
			p.failToken(token.VALUE)
		}
		entry.Value = p.parseExpressionOrPredicate()
		entry.NodeInfo = p.info(entryStart)
		fn.Entries = append(fn.Entries, entry)
		if !p.match(token.COMMA) {
			break
		}
	}

	fn.Nulls = p.parseJsonNullClause()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseJsonArrayAgg() *ast.JsonArrayAggFunction {
	start := p.expect(token.JSON_ARRAYAGG).Pos
	p.expect(token.LPAREN)
	fn := &ast.JsonArrayAggFunction{Expr: p.parseExpressionOrPredicate()}
	fn.Nulls = p.parseJsonNullClause()
	if p.at(token.ORDER) {
		fn.OrderBy = p.parseOrderByClause()
	}
	p.expect(token.RPAREN)
	fn.Modifiers = p.parseFunctionModifiers()
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseJsonObjectAgg() *ast.JsonObjectAggFunction {
	start := p.expect(token.JSON_OBJECTAGG).Pos
	p.expect(token.LPAREN)
	fn := &ast.JsonObjectAggFunction{}
	if p.at(token.KEY) && !p.peekIs(1, token.LPAREN) && !p.peekIs(1, token.DOT) {
		p.next()
		fn.KeyWord = true
	}
	fn.Key = p.parseExpressionOrPredicate()
	switch {
	case p.match(token.VALUE):
	case !fn.KeyWord && p.match(token.COLON):
		fn.Colon = true
	default:
		p.failToken(token.VALUE)
	}
	fn.Value = p.parseExpressionOrPredicate()
	fn.Nulls = p.parseJsonNullClause()
	switch {
	case p.at(token.WITH) && p.peekIs(1, token.UNIQUE):
		p.next()
		p.next()
		p.expect(token.KEYS)
		fn.UniqueKeys = ast.JsonWithUniqueKeys
	case p.at(token.WITHOUT) && p.peekIs(1, token.UNIQUE):
		p.next()
		p.next()
		p.expect(token.KEYS)
		fn.UniqueKeys = ast.JsonWithoutUniqueKeys
	}
	p.expect(token.RPAREN)
	fn.Modifiers = p.parseFunctionModifiers()
	fn.NodeInfo = p.info(start)
	return fn
}

// ---------- JSON_TABLE ----------

func (p *Parser) parseJsonTable() *ast.JsonTableFunction {
	start := p.expect(token.JSON_TABLE).Pos
	p.expect(token.LPAREN)
	fn := &ast.JsonTableFunction{Expr: p.parseExpression()}
	if p.match(token.COMMA) {
		fn.Path = p.parseExpression()
	}
	fn.Passing = p.parseJsonPassing()
	fn.Columns = p.parseJsonColumns()
	if p.atAny(token.ERROR, token.NULL) && p.peekIs(1, token.ON) {
		onStart := p.tok.Pos
		behavior := ast.JsonBehavior(p.next().Type.String())
		p.expect(token.ON)
		p.expect(token.ERROR)
		fn.OnError = &ast.JsonOnClause{NodeInfo: p.info(onStart), Behavior: behavior}
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseJsonColumns() []*ast.JsonTableColumn {
	p.expect(token.COLUMNS)
	p.expect(token.LPAREN)
	var out []*ast.JsonTableColumn
	for {
		out = append(out, p.parseJsonColumn())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return out
}

func (p *Parser) parseJsonColumn() *ast.JsonTableColumn {
	start := p.tok.Pos
	col := &ast.JsonTableColumn{}

	if p.at(token.NESTED) && !p.peekIs(1, token.FOR) {
		p.next()
		col.Kind = ast.JsonColumnNested
		p.match(token.PATH)
		col.Path = p.parseStringLiteral()
		col.Columns = p.parseJsonColumns()
		col.NodeInfo = p.info(start)
		return col
	}

	col.Name = p.identifier(roleName)
	switch {
	case p.at(token.FOR) && p.peekIs(1, token.ORDINALITY):
		p.next()
		p.next()
		col.Kind = ast.JsonColumnOrdinality
	case p.at(token.JSON) && !p.peekIs(1, token.DOT) && !p.peekIs(1, token.LPAREN):
		p.next()
		col.Kind = ast.JsonColumnQuery
		col.Wrapper = p.parseJsonWrapper()
		col.Path = p.parseColumnPath()
		col.On = p.parseJsonOnClauses(true)
	default:
		col.Type = p.parseCastTarget()
		if p.match(token.EXISTS) {
			col.Kind = ast.JsonColumnExists
			col.Path = p.parseColumnPath()
			if p.atAny(token.ERROR, token.TRUE, token.FALSE) && p.peekIs(1, token.ON) {
				onStart := p.tok.Pos
				behavior := ast.JsonBehavior(p.next().Type.String())
				p.expect(token.ON)
				p.expect(token.ERROR)
				col.On = []*ast.JsonOnClause{{NodeInfo: p.info(onStart), Behavior: behavior}}
			}
		} else {
			col.Kind = ast.JsonColumnValue
			col.Path = p.parseColumnPath()
			col.On = p.parseJsonOnClauses(false)
		}
	}
	col.NodeInfo = p.info(start)
	return col
}

// parseColumnPath reads an optional PATH 'string'.
func (p *Parser) parseColumnPath() *ast.Literal {
	if !p.match(token.PATH) {
		return nil
	}
	return p.parseStringLiteral()
}

func (p *Parser) parseStringLiteral() *ast.Literal {
	if !p.at(token.STRING) {
		p.failToken(token.STRING)
	}
	return p.parseLiteral()
}

// ---------- XML ----------

func (p *Parser) parseXmlElement() *ast.XmlElementFunction {
	start := p.expect(token.XMLELEMENT).Pos
	p.expect(token.LPAREN)
	p.expect(token.NAME)
	fn := &ast.XmlElementFunction{Name: p.identifier(roleName)}
	for p.match(token.COMMA) {
		if p.at(token.XMLATTRIBUTES) && p.peekIs(1, token.LPAREN) && fn.Attributes == nil && fn.Content == nil {
			p.next()
			p.next()
			fn.Attributes = p.parseXmlNamedValues(true)
			p.expect(token.RPAREN)
			continue
		}
		fn.Content = append(fn.Content, p.parseExpressionOrPredicate())
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// parseXmlNamedValues reads "value [AS name]" entries. With requireName set
// every entry must carry AS name.
func (p *Parser) parseXmlNamedValues(requireName bool) []*ast.XmlNamedValue {
	var out []*ast.XmlNamedValue
	for {
		start := p.tok.Pos
		v := &ast.XmlNamedValue{Value: p.parseExpressionOrPredicate()}
		if requireName {
			p.expect(token.AS)
			v.Name = p.identifier(roleName)
		} else if p.match(token.AS) {
			v.Name = p.identifier(roleName)
		}
		v.NodeInfo = p.info(start)
		out = append(out, v)
		if !p.match(token.COMMA) {
			return out
		}
	}
}

func (p *Parser) parseXmlForest() *ast.XmlForestFunction {
	start := p.expect(token.XMLFOREST).Pos
	p.expect(token.LPAREN)
	fn := &ast.XmlForestFunction{Items: p.parseXmlNamedValues(false)}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseXmlPi() *ast.XmlPiFunction {
	start := p.expect(token.XMLPI).Pos
	p.expect(token.LPAREN)
	p.expect(token.NAME)
	fn := &ast.XmlPiFunction{Name: p.identifier(roleName)}
	if p.match(token.COMMA) {
		fn.Content = p.parseExpression()
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// parseXmlQuery parses XMLQUERY and XMLEXISTS, which share their syntax.
func (p *Parser) parseXmlQuery() ast.Expression {
	start := p.tok.Pos
	exists := p.next().Type == token.XMLEXISTS
	p.expect(token.LPAREN)
	query := p.parseExpression()
	p.expect(token.PASSING)
	passing := p.parseExpression()
	p.expect(token.RPAREN)
	if exists {
		return &ast.XmlExistsFunction{NodeInfo: p.info(start), Query: query, Passing: passing}
	}
	return &ast.XmlQueryFunction{NodeInfo: p.info(start), Query: query, Passing: passing}
}

func (p *Parser) parseXmlAgg() *ast.XmlAggFunction {
	start := p.expect(token.XMLAGG).Pos
	p.expect(token.LPAREN)
	fn := &ast.XmlAggFunction{Expr: p.parseExpression()}
	if p.at(token.ORDER) {
		fn.OrderBy = p.parseOrderByClause()
	}
	p.expect(token.RPAREN)
	fn.Modifiers = p.parseFunctionModifiers()
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseXmlTable() *ast.XmlTableFunction {
	start := p.expect(token.XMLTABLE).Pos
	p.expect(token.LPAREN)
	fn := &ast.XmlTableFunction{Query: p.parseExpression()}
	p.expect(token.PASSING)
	fn.Passing = p.parseExpression()
	p.expect(token.COLUMNS)
	for {
		fn.Columns = append(fn.Columns, p.parseXmlColumn())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseXmlColumn() *ast.XmlTableColumn {
	start := p.tok.Pos
	col := &ast.XmlTableColumn{Name: p.identifier(roleName)}
	switch {
	case p.at(token.FOR) && p.peekIs(1, token.ORDINALITY):
		p.next()
		p.next()
		col.Kind = ast.XmlColumnOrdinality
	case p.at(token.XML) && !p.peekIs(1, token.DOT) && !p.peekIs(1, token.LPAREN):
		p.next()
		col.Kind = ast.XmlColumnXML
		col.Path = p.parseColumnPath()
		if p.match(token.DEFAULT) {
			col.Default = p.parseExpression()
		}
	default:
		col.Kind = ast.XmlColumnValue
		col.Type = p.parseCastTarget()
		col.Path = p.parseColumnPath()
		if p.match(token.DEFAULT) {
			col.Default = p.parseExpression()
		}
	}
	col.NodeInfo = p.info(start)
	return col
}

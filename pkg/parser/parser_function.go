package parser

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/token"
)

// Function call parsing.
//
// Functions with their own argument syntax are dispatched on the keyword
// that names them; everything else is a generic call:
//
//	generic_fn  → simple_path "(" [DISTINCT] [field ","] [expr_or_pred ("," expr_or_pred)* | "*"] ")" modifiers
//	cast_fn     → CAST "(" expr AS cast_target ")"
//	cast_target → simple_path ["(" INTEGER ["," INTEGER] ")"]
//	extract_fn  → EXTRACT "(" extract_field FROM expr ")" | datetime_field "(" expr ")"
//	trim_fn     → TRIM "(" [LEADING|TRAILING|BOTH] [expr] [FROM] expr ")"
//	quantified  → (EVERY|ALL|ANY|SOME) ("(" (query | predicate) ")" | collection_quantifier "(" path ")") modifiers
//	listagg_fn  → LISTAGG "(" [DISTINCT] expr "," expr [ON OVERFLOW (ERROR | TRUNCATE [expr] [(WITH|WITHOUT) COUNT])] ")" modifiers

// parseSpecialFunction parses a function with dedicated syntax at the
// current keyword, which is followed by "(". It returns nil without
// consuming anything when the keyword has no dedicated syntax.
func (p *Parser) parseSpecialFunction() ast.Expression {
	switch p.tok.Type {
	case token.CAST:
		return p.parseCast()
	case token.EXTRACT:
		return p.parseExtract()
	case token.TRUNC, token.TRUNCATE:
		return p.parseTrunc()
	case token.TRIM:
		return p.parseTrim()
	case token.PAD:
		return p.parsePad()
	case token.SUBSTRING:
		return p.parseSubstring()
	case token.OVERLAY:
		return p.parseOverlay()
	case token.POSITION:
		return p.parsePosition()
	case token.FORMAT:
		return p.parseFormat()
	case token.COLLATE:
		return p.parseCollate()
	case token.CUBE, token.ROLLUP:
		return p.parseGrouping()
	case token.EVERY, token.ALL, token.ANY, token.SOME:
		return p.parseQuantified()
	case token.LISTAGG:
		return p.parseListagg()
	case token.SIZE, token.MAXINDEX, token.MININDEX, token.MAXELEMENT, token.MINELEMENT,
		token.ELEMENTS, token.VALUES, token.INDICES, token.KEYS:
		return p.parseCollectionFunction()
	case token.TYPE, token.ID, token.VERSION, token.NATURALID:
		return p.parseEntityReference()
	case token.DATE, token.TIME, token.TIMEZONE_HOUR, token.TIMEZONE_MINUTE:
		return p.parseExtractShorthand()
	}
	if p.tok.Type.IsDateTimeField() {
		return p.parseExtractShorthand()
	}
	return p.parseJsonOrXmlFunction()
}

// parseGenericFunction parses the argument list and modifiers of a call
// whose name has already been read.
func (p *Parser) parseGenericFunction(name *ast.SimplePath) *ast.GenericFunction {
	p.expect(token.LPAREN)
	fn := &ast.GenericFunction{Name: name}
	switch {
	case p.at(token.STAR) && p.peekIs(1, token.RPAREN):
		p.next()
		fn.Star = true
	case p.at(token.RPAREN):
	default:
		if p.match(token.DISTINCT) {
			fn.Distinct = true
		} else if p.tok.Type.IsDateTimeField() && p.peekIs(1, token.COMMA) {
			fn.Field = ast.DateTimeField(p.next().Type.String())
			p.next()
		}
		fn.Args = p.parseExpressionOrPredicateList()
	}
	p.expect(token.RPAREN)
	fn.Modifiers = p.parseFunctionModifiers()
	fn.NodeInfo = p.info(name.Pos())
	return fn
}

func (p *Parser) parseCastTarget() *ast.CastTarget {
	start := p.tok.Pos
	target := &ast.CastTarget{Type: p.simplePath(roleName)}
	if p.match(token.LPAREN) {
		target.Params = append(target.Params, p.expect(token.INTEGER).Literal)
		if p.match(token.COMMA) {
			target.Params = append(target.Params, p.expect(token.INTEGER).Literal)
		}
		p.expect(token.RPAREN)
	}
	target.NodeInfo = p.info(start)
	return target
}

func (p *Parser) parseCast() *ast.CastFunction {
	start := p.expect(token.CAST).Pos
	p.expect(token.LPAREN)
	fn := &ast.CastFunction{Expr: p.parseExpression()}
	p.expect(token.AS)
	fn.Target = p.parseCastTarget()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// ---------- Temporal functions ----------

func (p *Parser) parseExtract() *ast.ExtractFunction {
	start := p.expect(token.EXTRACT).Pos
	p.expect(token.LPAREN)
	fn := &ast.ExtractFunction{Field: p.parseExtractField()}
	p.expect(token.FROM)
	fn.Source = p.parseExpression()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseExtractShorthand() *ast.ExtractFunction {
	start := p.tok.Pos
	field := p.next().Type.String()
	p.expect(token.LPAREN)
	fn := &ast.ExtractFunction{Field: field, Shorthand: true, Source: p.parseExpression()}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// parseExtractField reads the unit of EXTRACT, including the compound
// forms DAY OF WEEK, WEEK OF YEAR and OFFSET HOUR.
func (p *Parser) parseExtractField() string {
	switch p.tok.Type {
	case token.DAY:
		p.next()
		if p.match(token.OF) {
			if !p.atAny(token.MONTH, token.WEEK, token.YEAR) {
				p.bail(newSyntaxError(p.tok, ExpectedToken, "MONTH, WEEK or YEAR"))
			}
			return "DAY OF " + p.next().Type.String()
		}
		return "DAY"
	case token.WEEK:
		p.next()
		if p.match(token.OF) {
			if !p.atAny(token.MONTH, token.YEAR) {
				p.bail(newSyntaxError(p.tok, ExpectedToken, "MONTH or YEAR"))
			}
			return "WEEK OF " + p.next().Type.String()
		}
		return "WEEK"
	case token.OFFSET:
		p.next()
		if p.atAny(token.HOUR, token.MINUTE) {
			return "OFFSET " + p.next().Type.String()
		}
		return "OFFSET"
	case token.TIMEZONE_HOUR, token.TIMEZONE_MINUTE, token.DATE, token.TIME:
		return p.next().Type.String()
	}
	if p.tok.Type.IsDateTimeField() {
		return p.next().Type.String()
	}
	p.bail(newSyntaxError(p.tok, ExpectedToken, "datetime field"))
	return ""
}

func (p *Parser) parseTrunc() *ast.TruncFunction {
	start := p.tok.Pos
	fn := &ast.TruncFunction{Truncate: p.next().Type == token.TRUNCATE}
	p.expect(token.LPAREN)
	fn.Expr = p.parseExpression()
	if p.match(token.COMMA) {
		if p.tok.Type.IsDateTimeField() && p.peekIs(1, token.RPAREN) {
			fn.Field = ast.DateTimeField(p.next().Type.String())
		} else {
			fn.Places = p.parseExpression()
		}
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// ---------- String functions ----------

var trimSpecs = map[token.TokenType]ast.TrimSpec{
	token.LEADING:  ast.TrimLeading,
	token.TRAILING: ast.TrimTrailing,
	token.BOTH:     ast.TrimBoth,
}

func (p *Parser) parseTrim() *ast.TrimFunction {
	start := p.expect(token.TRIM).Pos
	p.expect(token.LPAREN)
	fn := &ast.TrimFunction{}
	if spec, ok := trimSpecs[p.tok.Type]; ok {
		p.next()
		fn.Spec = spec
	}
	if p.match(token.FROM) {
		fn.From = true
		fn.Expr = p.parseExpression()
	} else {
		// The first operand is the trim character only when FROM follows.
		first := p.parseExpression()
		if p.match(token.FROM) {
			fn.From = true
			fn.Character = first
			fn.Expr = p.parseExpression()
		} else {
			fn.Expr = first
		}
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parsePad() *ast.PadFunction {
	start := p.expect(token.PAD).Pos
	p.expect(token.LPAREN)
	fn := &ast.PadFunction{Expr: p.parseExpression()}
	p.expect(token.WITH)
	fn.Length = p.parseExpression()
	switch {
	case p.match(token.LEADING):
		fn.Spec = ast.TrimLeading
	case p.match(token.TRAILING):
		fn.Spec = ast.TrimTrailing
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "LEADING or TRAILING"))
	}
	if !p.at(token.RPAREN) {
		fn.Character = p.parseExpression()
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseSubstring() *ast.SubstringFunction {
	start := p.expect(token.SUBSTRING).Pos
	p.expect(token.LPAREN)
	fn := &ast.SubstringFunction{Expr: p.parseExpression()}
	if p.match(token.FROM) {
		fn.FromSyntax = true
		fn.Start = p.parseExpression()
		if p.match(token.FOR) {
			fn.Length = p.parseExpression()
		}
	} else {
		p.expect(token.COMMA)
		fn.Start = p.parseExpression()
		if p.match(token.COMMA) {
			fn.Length = p.parseExpression()
		}
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseOverlay() *ast.OverlayFunction {
	start := p.expect(token.OVERLAY).Pos
	p.expect(token.LPAREN)
	fn := &ast.OverlayFunction{Expr: p.parseExpression()}
	p.expect(token.PLACING)
	fn.Placing = p.parseExpression()
	p.expect(token.FROM)
	fn.From = p.parseExpression()
	if p.match(token.FOR) {
		fn.For = p.parseExpression()
	}
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parsePosition() *ast.PositionFunction {
	start := p.expect(token.POSITION).Pos
	p.expect(token.LPAREN)
	fn := &ast.PositionFunction{Pattern: p.parseExpression()}
	p.expect(token.IN)
	fn.Expr = p.parseExpression()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseFormat() *ast.FormatFunction {
	start := p.expect(token.FORMAT).Pos
	p.expect(token.LPAREN)
	fn := &ast.FormatFunction{Expr: p.parseExpression()}
	p.expect(token.AS)
	if !p.at(token.STRING) {
		p.failToken(token.STRING)
	}
	fn.Pattern = p.parseLiteral()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseCollate() *ast.CollateFunction {
	start := p.expect(token.COLLATE).Pos
	p.expect(token.LPAREN)
	fn := &ast.CollateFunction{Expr: p.parseExpression()}
	p.expect(token.AS)
	fn.Collation = p.simplePath(roleName)
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// ---------- Grouping, quantifiers and aggregates ----------

func (p *Parser) parseGrouping() *ast.GroupingFunction {
	start := p.tok.Pos
	fn := &ast.GroupingFunction{Kind: ast.Cube}
	if p.next().Type == token.ROLLUP {
		fn.Kind = ast.Rollup
	}
	p.expect(token.LPAREN)
	fn.Args = p.parseExpressionOrPredicateList()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

var quantifiers = map[token.TokenType]ast.Quantifier{
	token.EVERY: ast.QuantifierEvery,
	token.ALL:   ast.QuantifierAll,
	token.ANY:   ast.QuantifierAny,
	token.SOME:  ast.QuantifierSome,
}

func (p *Parser) parseQuantified() *ast.QuantifiedFunction {
	start := p.tok.Pos
	fn := &ast.QuantifiedFunction{Quantifier: quantifiers[p.next().Type]}

	if q, ok := collectionQuantifiers[p.tok.Type]; ok {
		p.next()
		p.expect(token.LPAREN)
		fn.Collection = q
		fn.Path = p.parsePath()
		p.expect(token.RPAREN)
	} else {
		switch p.peek(1).Type {
		case token.SELECT, token.FROM, token.WITH:
			p.expect(token.LPAREN)
			fn.Query = p.parseQueryExpression()
		default:
			p.expect(token.LPAREN)
			fn.Predicate = p.parsePredicate()
		}
		p.expect(token.RPAREN)
	}
	fn.Modifiers = p.parseFunctionModifiers()
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseListagg() *ast.ListaggFunction {
	start := p.expect(token.LISTAGG).Pos
	p.expect(token.LPAREN)
	fn := &ast.ListaggFunction{Distinct: p.match(token.DISTINCT)}
	fn.Expr = p.parseExpressionOrPredicate()
	p.expect(token.COMMA)
	fn.Separator = p.parseExpressionOrPredicate()
	if p.at(token.ON) {
		fn.Overflow = p.parseOnOverflow()
	}
	p.expect(token.RPAREN)
	fn.Modifiers = p.parseFunctionModifiers()
	fn.NodeInfo = p.info(start)
	return fn
}

func (p *Parser) parseOnOverflow() *ast.OnOverflow {
	start := p.expect(token.ON).Pos
	p.expect(token.OVERFLOW)
	o := &ast.OnOverflow{}
	switch {
	case p.match(token.ERROR):
		o.Error = true
	case p.match(token.TRUNCATE):
		if !p.atAny(token.WITH, token.WITHOUT, token.RPAREN) {
			o.Filler = p.parseExpression()
		}
		if p.atAny(token.WITH, token.WITHOUT) {
			o.Count = p.next().Type.String() + " COUNT"
			p.expect(token.COUNT)
		}
	default:
		p.bail(newSyntaxError(p.tok, ExpectedToken, "ERROR or TRUNCATE"))
	}
	o.NodeInfo = p.info(start)
	return o
}

var collectionFunctions = map[token.TokenType]ast.CollectionFunctionKind{
	token.SIZE:       ast.CollectionSize,
	token.MAXINDEX:   ast.CollectionMaxIndex,
	token.MININDEX:   ast.CollectionMinIndex,
	token.MAXELEMENT: ast.CollectionMaxElement,
	token.MINELEMENT: ast.CollectionMinElement,
	token.ELEMENTS:   ast.CollectionElements,
	token.VALUES:     ast.CollectionValues,
	token.INDICES:    ast.CollectionIndices,
	token.KEYS:       ast.CollectionKeys,
}

func (p *Parser) parseCollectionFunction() *ast.CollectionFunction {
	start := p.tok.Pos
	fn := &ast.CollectionFunction{Kind: collectionFunctions[p.next().Type]}
	p.expect(token.LPAREN)
	fn.Path = p.parsePath()
	p.expect(token.RPAREN)
	fn.NodeInfo = p.info(start)
	return fn
}

// ---------- Entity references ----------

func (p *Parser) parseEntityReference() ast.Expression {
	start := p.tok.Pos
	kind := p.next().Type
	p.expect(token.LPAREN)

	switch kind {
	case token.TYPE:
		ref := &ast.EntityTypeReference{}
		if p.atAny(token.COLON, token.QUESTION) {
			ref.Parameter = p.parseParameter()
		} else {
			ref.Path = p.parsePath()
		}
		p.expect(token.RPAREN)
		ref.NodeInfo = p.info(start)
		return ref
	case token.ID:
		ref := &ast.EntityIdReference{Path: p.parsePath()}
		p.expect(token.RPAREN)
		ref.Continuation = p.continuation()
		ref.NodeInfo = p.info(start)
		return ref
	case token.VERSION:
		ref := &ast.EntityVersionReference{Path: p.parsePath()}
		p.expect(token.RPAREN)
		ref.NodeInfo = p.info(start)
		return ref
	}
	ref := &ast.EntityNaturalIdReference{Path: p.parsePath()}
	p.expect(token.RPAREN)
	ref.Continuation = p.continuation()
	ref.NodeInfo = p.info(start)
	return ref
}

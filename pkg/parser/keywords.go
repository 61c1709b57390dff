package parser

import "github.com/tangwind/spring-data-jpa/pkg/token"

// roleContext is the grammatical position in which a token may act as an
// identifier. Almost every keyword doubles as a name; what a keyword means
// depends only on where it appears and on the token after it.
type roleContext int

const (
	// roleName is a position where only a name can appear: after a dot,
	// after AS, CTE and parameter names, entity and type names.
	roleName roleContext = iota
	// rolePrimary is the start of an expression operand.
	rolePrimary
	// roleAlias is a naked alias following a select item, root or join.
	roleAlias
)

// structural keywords never start an operand unless a dot follows, as in
// "order.id".
var structural = keywordSet(
	token.ALL, token.AND, token.AS, token.ASC, token.BETWEEN, token.BY, token.CROSS,
	token.DELETE, token.DESC, token.DISTINCT, token.DO, token.ELSE, token.END,
	token.ESCAPE, token.EXCEPT, token.EXISTS, token.FETCH, token.FILTER, token.FROM,
	token.GROUP, token.HAVING, token.ILIKE, token.IN, token.INSERT, token.INTERSECT,
	token.INTO, token.IS, token.JOIN, token.LIKE, token.LIMIT, token.MEMBER, token.NOT,
	token.NULLS, token.OFFSET, token.ON, token.OR, token.ORDER, token.OVER, token.SELECT,
	token.SET, token.THEN, token.UNION, token.UPDATE, token.WHEN, token.WHERE, token.WITH,
	token.WITHIN, token.CONTAINS, token.INCLUDES, token.INTERSECTS,
)

// aliasExcluded keywords cannot be a naked alias: each of them can legally
// follow a select item, root or join target.
var aliasExcluded = keywordSet(
	token.AND, token.AS, token.ASC, token.BETWEEN, token.BY, token.CROSS, token.DESC,
	token.DO, token.ELSE, token.END, token.ESCAPE, token.EXCEPT, token.FETCH,
	token.FILTER, token.FROM, token.FULL, token.GROUP, token.HAVING, token.ILIKE,
	token.IN, token.INNER, token.INTERSECT, token.IS, token.JOIN, token.LEFT, token.LIKE,
	token.LIMIT, token.MEMBER, token.NOT, token.NULLS, token.OFFSET, token.ON, token.OR,
	token.ORDER, token.OUTER, token.OVER, token.SELECT, token.SET, token.THEN,
	token.UNION, token.VALUES, token.WHEN, token.WHERE, token.WITH, token.WITHIN,
	token.CONTAINS, token.INCLUDES, token.INTERSECTS, token.RESPECT, token.IGNORE,
	token.LATERAL,
)

// joinTypeWords are the keywords that name a join kind.
var joinTypeWords = keywordSet(token.FULL, token.INNER, token.LEFT, token.OUTER, token.RIGHT)

func keywordSet(types ...token.TokenType) map[token.TokenType]bool {
	m := make(map[token.TokenType]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}

// identifierRole reports whether tok acts as an identifier in ctx, given the
// token that follows it.
func identifierRole(ctx roleContext, tok, next token.Token) bool {
	switch tok.Type {
	case token.IDENT, token.QUOTED_IDENT:
		return true
	}
	if !tok.Type.IsKeyword() {
		return false
	}

	switch ctx {
	case roleName:
		return true
	case rolePrimary:
		if next.Type == token.DOT {
			return true
		}
		return !structural[tok.Type]
	case roleAlias:
		if tok.Type == token.RIGHT {
			return next.Type != token.JOIN && next.Type != token.OUTER
		}
		return !aliasExcluded[tok.Type] && !tok.Type.IsDateTimeField()
	}
	return false
}

// isJoinStart reports whether tok, followed by next, begins a join.
func isJoinStart(tok, next token.Token) bool {
	switch tok.Type {
	case token.JOIN:
		return true
	case token.INNER, token.CROSS:
		return next.Type == token.JOIN
	case token.LEFT, token.RIGHT, token.FULL:
		return next.Type == token.JOIN || next.Type == token.OUTER
	case token.OUTER:
		return next.Type == token.JOIN
	}
	return false
}

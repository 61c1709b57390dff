// Package token defines the lexical tokens of the HQL query language.
//
// Operators and literal kinds are fixed constants. Keywords occupy a
// contiguous range so that IsKeyword is a bounds check; their spelling is
// derived from the upper-case name table.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads better at call sites than token.Type
type TokenType int32

//nolint:revive // ALL_CAPS names mirror the keyword spelling
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	literalBeg
	IDENT        // employee, e, $x
	QUOTED_IDENT // `order`
	STRING       // 'text'
	HOST_STRING  // "text", j'text'
	INTEGER      // 42, 1_000
	LONG         // 42L
	BIG_INTEGER  // 42BI
	FLOAT        // 1.5F
	DOUBLE       // 1.5, 1e10, 1.5D
	BIG_DECIMAL  // 1.5BD
	HEX          // 0xFF, 0xFFL
	BINARY       // X'0A0B'
	literalEnd

	operatorBeg
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != <> ^=
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	COLON     // :
	QUESTION  // ?
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	TS_ESCAPE // {ts
	D_ESCAPE  // {d
	T_ESCAPE  // {t
	operatorEnd

	keywordBeg
	ABSENT
	ALL
	AND
	ANY
	ARRAY
	AS
	ASC
	BETWEEN
	BOTH
	BREADTH
	BY
	CASE
	CAST
	COLLATE
	COLUMNS
	CONDITIONAL
	CONFLICT
	CONSTRAINT
	CONTAINS
	COUNT
	CROSS
	CUBE
	CURRENT
	CURRENT_DATE
	CURRENT_INSTANT
	CURRENT_TIME
	CURRENT_TIMESTAMP
	CYCLE
	DATE
	DATETIME
	DAY
	DEFAULT
	DELETE
	DEPTH
	DESC
	DISTINCT
	DO
	ELEMENT
	ELEMENTS
	ELSE
	EMPTY
	END
	ENTRY
	EPOCH
	ERROR
	ESCAPE
	EVERY
	EXCEPT
	EXCLUDE
	EXISTS
	EXTRACT
	FALSE
	FETCH
	FILTER
	FIRST
	FK
	FOLLOWING
	FOR
	FORMAT
	FROM
	FULL
	FUNCTION
	GROUP
	GROUPS
	HAVING
	HOUR
	ID
	IGNORE
	ILIKE
	IN
	INCLUDES
	INDEX
	INDICES
	INNER
	INSERT
	INSTANT
	INTERSECT
	INTERSECTS
	INTO
	IS
	JOIN
	JSON
	JSON_ARRAY
	JSON_ARRAYAGG
	JSON_EXISTS
	JSON_OBJECT
	JSON_OBJECTAGG
	JSON_QUERY
	JSON_TABLE
	JSON_VALUE
	KEY
	KEYS
	LAST
	LATERAL
	LEADING
	LEFT
	LIKE
	LIMIT
	LIST
	LISTAGG
	LOCAL
	LOCAL_DATE
	LOCAL_DATETIME
	LOCAL_TIME
	MAP
	MATERIALIZED
	MAXELEMENT
	MAXINDEX
	MEMBER
	MINELEMENT
	MININDEX
	MINUTE
	MONTH
	NAME
	NANOSECOND
	NATURALID
	NESTED
	NEW
	NEXT
	NO
	NOT
	NOTHING
	NULL
	NULLS
	OBJECT
	OF
	OFFSET
	OFFSET_DATETIME
	ON
	ONLY
	OR
	ORDER
	ORDINALITY
	OTHERS
	OUTER
	OVER
	OVERFLOW
	OVERLAY
	PAD
	PARTITION
	PASSING
	PATH
	PERCENT_KW
	PLACING
	POSITION
	PRECEDING
	QUARTER
	RANGE
	RESPECT
	RETURNING
	RIGHT
	ROLLUP
	ROW
	ROWS
	SEARCH
	SECOND
	SELECT
	SET
	SIZE
	SOME
	SUBSTRING
	THEN
	TIES
	TIME
	TIMESTAMP
	TIMEZONE_HOUR
	TIMEZONE_MINUTE
	TO
	TRAILING
	TREAT
	TRIM
	TRUE
	TRUNC
	TRUNCATE
	TYPE
	UNBOUNDED
	UNCONDITIONAL
	UNION
	UNIQUE
	UPDATE
	USING
	VALUE
	VALUES
	VERSION
	VERSIONED
	WEEK
	WHEN
	WHERE
	WITH
	WITHIN
	WITHOUT
	WRAPPER
	XML
	XMLAGG
	XMLATTRIBUTES
	XMLELEMENT
	XMLEXISTS
	XMLFOREST
	XMLPI
	XMLQUERY
	XMLTABLE
	YEAR
	ZONED
	keywordEnd
)

var tokenNames = map[TokenType]string{
	EOF:          "EOF",
	ILLEGAL:      "ILLEGAL",
	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	STRING:       "STRING",
	HOST_STRING:  "HOST_STRING",
	INTEGER:      "INTEGER",
	LONG:         "LONG",
	BIG_INTEGER:  "BIG_INTEGER",
	FLOAT:        "FLOAT",
	DOUBLE:       "DOUBLE",
	BIG_DECIMAL:  "BIG_DECIMAL",
	HEX:          "HEX",
	BINARY:       "BINARY",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	COLON:     ":",
	QUESTION:  "?",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
	TS_ESCAPE: "{ts",
	D_ESCAPE:  "{d",
	T_ESCAPE:  "{t",

	ABSENT: "ABSENT", ALL: "ALL", AND: "AND", ANY: "ANY", ARRAY: "ARRAY", AS: "AS", ASC: "ASC",
	BETWEEN: "BETWEEN", BOTH: "BOTH", BREADTH: "BREADTH", BY: "BY",
	CASE: "CASE", CAST: "CAST", COLLATE: "COLLATE", COLUMNS: "COLUMNS", CONDITIONAL: "CONDITIONAL",
	CONFLICT: "CONFLICT", CONSTRAINT: "CONSTRAINT", CONTAINS: "CONTAINS", COUNT: "COUNT",
	CROSS: "CROSS", CUBE: "CUBE", CURRENT: "CURRENT", CURRENT_DATE: "CURRENT_DATE",
	CURRENT_INSTANT: "CURRENT_INSTANT", CURRENT_TIME: "CURRENT_TIME",
	CURRENT_TIMESTAMP: "CURRENT_TIMESTAMP", CYCLE: "CYCLE",
	DATE: "DATE", DATETIME: "DATETIME", DAY: "DAY", DEFAULT: "DEFAULT", DELETE: "DELETE",
	DEPTH: "DEPTH", DESC: "DESC", DISTINCT: "DISTINCT", DO: "DO",
	ELEMENT: "ELEMENT", ELEMENTS: "ELEMENTS", ELSE: "ELSE", EMPTY: "EMPTY", END: "END",
	ENTRY: "ENTRY", EPOCH: "EPOCH", ERROR: "ERROR", ESCAPE: "ESCAPE", EVERY: "EVERY",
	EXCEPT: "EXCEPT", EXCLUDE: "EXCLUDE", EXISTS: "EXISTS", EXTRACT: "EXTRACT",
	FALSE: "FALSE", FETCH: "FETCH", FILTER: "FILTER", FIRST: "FIRST", FK: "FK",
	FOLLOWING: "FOLLOWING", FOR: "FOR", FORMAT: "FORMAT", FROM: "FROM", FULL: "FULL",
	FUNCTION: "FUNCTION",
	GROUP: "GROUP", GROUPS: "GROUPS",
	HAVING: "HAVING", HOUR: "HOUR",
	ID: "ID", IGNORE: "IGNORE", ILIKE: "ILIKE", IN: "IN", INCLUDES: "INCLUDES", INDEX: "INDEX",
	INDICES: "INDICES", INNER: "INNER", INSERT: "INSERT", INSTANT: "INSTANT",
	INTERSECT: "INTERSECT", INTERSECTS: "INTERSECTS", INTO: "INTO", IS: "IS",
	JOIN: "JOIN", JSON: "JSON", JSON_ARRAY: "JSON_ARRAY", JSON_ARRAYAGG: "JSON_ARRAYAGG",
	JSON_EXISTS: "JSON_EXISTS", JSON_OBJECT: "JSON_OBJECT", JSON_OBJECTAGG: "JSON_OBJECTAGG",
	JSON_QUERY: "JSON_QUERY", JSON_TABLE: "JSON_TABLE", JSON_VALUE: "JSON_VALUE",
	KEY: "KEY", KEYS: "KEYS",
	LAST: "LAST", LATERAL: "LATERAL", LEADING: "LEADING", LEFT: "LEFT", LIKE: "LIKE",
	LIMIT: "LIMIT", LIST: "LIST", LISTAGG: "LISTAGG", LOCAL: "LOCAL", LOCAL_DATE: "LOCAL_DATE",
	LOCAL_DATETIME: "LOCAL_DATETIME", LOCAL_TIME: "LOCAL_TIME",
	MAP: "MAP", MATERIALIZED: "MATERIALIZED", MAXELEMENT: "MAXELEMENT", MAXINDEX: "MAXINDEX",
	MEMBER: "MEMBER", MINELEMENT: "MINELEMENT", MININDEX: "MININDEX", MINUTE: "MINUTE",
	MONTH: "MONTH",
	NAME: "NAME", NANOSECOND: "NANOSECOND", NATURALID: "NATURALID", NESTED: "NESTED",
	NEW: "NEW", NEXT: "NEXT", NO: "NO", NOT: "NOT", NOTHING: "NOTHING", NULL: "NULL",
	NULLS: "NULLS",
	OBJECT: "OBJECT", OF: "OF", OFFSET: "OFFSET", OFFSET_DATETIME: "OFFSET_DATETIME",
	ON: "ON", ONLY: "ONLY", OR: "OR", ORDER: "ORDER", ORDINALITY: "ORDINALITY",
	OTHERS: "OTHERS", OUTER: "OUTER", OVER: "OVER", OVERFLOW: "OVERFLOW", OVERLAY: "OVERLAY",
	PAD: "PAD", PARTITION: "PARTITION", PASSING: "PASSING", PATH: "PATH",
	PERCENT_KW: "PERCENT", PLACING: "PLACING", POSITION: "POSITION", PRECEDING: "PRECEDING",
	QUARTER: "QUARTER",
	RANGE: "RANGE", RESPECT: "RESPECT", RETURNING: "RETURNING", RIGHT: "RIGHT",
	ROLLUP: "ROLLUP", ROW: "ROW", ROWS: "ROWS",
	SEARCH: "SEARCH", SECOND: "SECOND", SELECT: "SELECT", SET: "SET", SIZE: "SIZE",
	SOME: "SOME", SUBSTRING: "SUBSTRING",
	THEN: "THEN", TIES: "TIES", TIME: "TIME", TIMESTAMP: "TIMESTAMP",
	TIMEZONE_HOUR: "TIMEZONE_HOUR", TIMEZONE_MINUTE: "TIMEZONE_MINUTE", TO: "TO",
	TRAILING: "TRAILING", TREAT: "TREAT", TRIM: "TRIM", TRUE: "TRUE", TRUNC: "TRUNC",
	TRUNCATE: "TRUNCATE", TYPE: "TYPE",
	UNBOUNDED: "UNBOUNDED", UNCONDITIONAL: "UNCONDITIONAL", UNION: "UNION", UNIQUE: "UNIQUE",
	UPDATE: "UPDATE", USING: "USING",
	VALUE: "VALUE", VALUES: "VALUES", VERSION: "VERSION", VERSIONED: "VERSIONED",
	WEEK: "WEEK", WHEN: "WHEN", WHERE: "WHERE", WITH: "WITH", WITHIN: "WITHIN",
	WITHOUT: "WITHOUT", WRAPPER: "WRAPPER",
	XML: "XML", XMLAGG: "XMLAGG", XMLATTRIBUTES: "XMLATTRIBUTES", XMLELEMENT: "XMLELEMENT",
	XMLEXISTS: "XMLEXISTS", XMLFOREST: "XMLFOREST", XMLPI: "XMLPI", XMLQUERY: "XMLQUERY",
	XMLTABLE: "XMLTABLE",
	YEAR: "YEAR",
	ZONED: "ZONED",
}

// keywords maps lower-case keyword spelling to its token type.
var keywords map[string]TokenType

func init() {
	keywords = make(map[string]TokenType, keywordEnd-keywordBeg)
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		keywords[strings.ToLower(tokenNames[t])] = t
	}
}

// String returns the display name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Lookup returns the keyword token type for ident, or IDENT.
// Matching is case-insensitive.
func Lookup(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is a keyword.
func (t TokenType) IsKeyword() bool {
	return t > keywordBeg && t < keywordEnd
}

// IsOperator reports whether t is punctuation or an operator.
func (t TokenType) IsOperator() bool {
	return t > operatorBeg && t < operatorEnd
}

// IsLiteral reports whether t is an identifier or literal token.
func (t TokenType) IsLiteral() bool {
	return t > literalBeg && t < literalEnd
}

// IsNumeric reports whether t is one of the numeric literal kinds.
func (t TokenType) IsNumeric() bool {
	switch t {
	case INTEGER, LONG, BIG_INTEGER, FLOAT, DOUBLE, BIG_DECIMAL, HEX:
		return true
	}
	return false
}

// IsDateTimeField reports whether t names a temporal unit usable in
// duration conversions, extract and trunc.
func (t TokenType) IsDateTimeField() bool {
	switch t {
	case YEAR, QUARTER, MONTH, WEEK, DAY, HOUR, MINUTE, SECOND, NANOSECOND, EPOCH:
		return true
	}
	return false
}

// Keywords returns the lower-case spelling of every keyword.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		out = append(out, strings.ToLower(tokenNames[t]))
	}
	return out
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string // verbatim source text
	Value   string // decoded text of string literals and quoted identifiers
	Pos     Position
	End     Position // position just past the last character
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}

// String returns a compact description used in diagnostics and dumps.
func (t Token) String() string {
	switch {
	case t.Type == EOF:
		return "end of input"
	case t.Type.IsKeyword():
		return t.Literal
	case t.Type.IsLiteral():
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	default:
		return fmt.Sprintf("'%s'", t.Literal)
	}
}

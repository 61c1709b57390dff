package ast

// ---------- Structural expressions ----------

// GroupedExpression is (expression).
type GroupedExpression struct {
	NodeInfo
	Expr Expression
}

func (*GroupedExpression) exprNode() {}

// TupleExpression is (a, b, ...) with at least two items.
type TupleExpression struct {
	NodeInfo
	Items []ExpressionOrPredicate
}

func (*TupleExpression) exprNode() {}

// SubqueryExpression is a parenthesized query used as a value.
type SubqueryExpression struct {
	NodeInfo
	Query *QueryExpression
}

func (*SubqueryExpression) exprNode() {}

// Sign is the operator of a unary expression.
type Sign string

// Sign values.
const (
	Plus  Sign = "+"
	Minus Sign = "-"
)

// UnaryExpression is +operand or -operand.
type UnaryExpression struct {
	NodeInfo
	Sign    Sign
	Operand Expression
}

func (*UnaryExpression) exprNode() {}

// BinaryOperator is an arithmetic or concatenation operator.
type BinaryOperator string

// BinaryOperator values.
const (
	OpMultiply BinaryOperator = "*"
	OpDivide   BinaryOperator = "/"
	OpModulo   BinaryOperator = "%"
	OpAdd      BinaryOperator = "+"
	OpSubtract BinaryOperator = "-"
	OpConcat   BinaryOperator = "||"
)

// Precedence returns the binding strength of the operator. Larger binds
// tighter.
func (op BinaryOperator) Precedence() int {
	switch op {
	case OpMultiply, OpDivide, OpModulo:
		return 3
	case OpAdd, OpSubtract:
		return 2
	case OpConcat:
		return 1
	}
	return 0
}

// BinaryExpression is Left op Right.
type BinaryExpression struct {
	NodeInfo
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (*BinaryExpression) exprNode() {}

// DateTimeField is a temporal unit keyword such as DAY or NANOSECOND.
type DateTimeField string

// DurationExpression converts a value to or from a duration: "expr DAY"
// (to a duration) or "expr BY DAY" (a duration expressed in days).
type DurationExpression struct {
	NodeInfo
	Operand Expression
	By      bool
	Field   DateTimeField
}

func (*DurationExpression) exprNode() {}

// CaseExpression is a simple CASE (Operand set) or a searched CASE (Operand
// nil, WHEN conditions are predicates).
type CaseExpression struct {
	NodeInfo
	Operand ExpressionOrPredicate
	Whens   []*CaseWhen
	Else    ExpressionOrPredicate
}

func (*CaseExpression) exprNode() {}

// CaseWhen is WHEN condition THEN result.
type CaseWhen struct {
	NodeInfo
	Condition ExpressionOrPredicate
	Result    ExpressionOrPredicate
}

// Parameter is :name or ?n or a bare ?.
type Parameter struct {
	NodeInfo
	Name     string // named parameter
	Position int    // ?n ordinal; 0 when absent
	Ordinal  bool   // written with ?
}

func (*Parameter) exprNode() {}

// ---------- Entity references ----------

// EntityTypeReference is TYPE(path) or TYPE(:param).
type EntityTypeReference struct {
	NodeInfo
	Path      Path
	Parameter *Parameter
}

func (*EntityTypeReference) exprNode() {}

// EntityIdReference is ID(path) with an optional continuation.
type EntityIdReference struct {
	NodeInfo
	Path         Path
	Continuation *SimplePath
}

func (*EntityIdReference) exprNode() {}

// EntityVersionReference is VERSION(path).
type EntityVersionReference struct {
	NodeInfo
	Path Path
}

func (*EntityVersionReference) exprNode() {}

// EntityNaturalIdReference is NATURALID(path) with an optional continuation.
type EntityNaturalIdReference struct {
	NodeInfo
	Path         Path
	Continuation *SimplePath
}

func (*EntityNaturalIdReference) exprNode() {}

// ---------- Literals ----------

// LiteralKind classifies a scalar literal.
type LiteralKind string

// LiteralKind values.
const (
	StringLiteral     LiteralKind = "STRING"
	HostStringLiteral LiteralKind = "HOST_STRING"
	NullLiteral       LiteralKind = "NULL"
	BooleanLiteral    LiteralKind = "BOOLEAN"
	IntegerLiteral    LiteralKind = "INTEGER"
	LongLiteral       LiteralKind = "LONG"
	BigIntegerLiteral LiteralKind = "BIG_INTEGER"
	FloatLiteral      LiteralKind = "FLOAT"
	DoubleLiteral     LiteralKind = "DOUBLE"
	BigDecimalLiteral LiteralKind = "BIG_DECIMAL"
	HexLiteral        LiteralKind = "HEX"
	BinaryLiteral     LiteralKind = "BINARY"
)

// Literal is a scalar literal. Text is the verbatim source; Value is the
// decoded content of string literals (quotes removed, escapes resolved) and
// equals Text for every other kind. Binary literals written as {0x01, 0x02}
// keep their hex items in Items.
type Literal struct {
	NodeInfo
	Kind  LiteralKind
	Text  string
	Value string
	Items []string
}

func (*Literal) exprNode() {}

// TemporalKind classifies a temporal literal.
type TemporalKind string

// TemporalKind values.
const (
	DateLiteral           TemporalKind = "DATE"
	TimeLiteral           TemporalKind = "TIME"
	LocalDateTimeLiteral  TemporalKind = "LOCAL_DATETIME"
	ZonedDateTimeLiteral  TemporalKind = "ZONED_DATETIME"
	OffsetDateTimeLiteral TemporalKind = "OFFSET_DATETIME"
)

// TemporalSyntax records how a temporal literal was written.
type TemporalSyntax string

// TemporalSyntax values.
const (
	BraceSyntax   TemporalSyntax = "BRACE"   // {2020-01-01}
	KeywordSyntax TemporalSyntax = "KEYWORD" // DATE 2020-01-01
	EscapeSyntax  TemporalSyntax = "ESCAPE"  // {d '2020-01-01'}
)

// TemporalLiteral is a date, time or datetime literal. Text is the verbatim
// source of the whole literal. Date, Time, Zone and Offset hold the
// source text of each part when present. Generic is set for the escape
// forms that wrap a quoted string, such as {ts '...'}.
type TemporalLiteral struct {
	NodeInfo
	Kind    TemporalKind
	Syntax  TemporalSyntax
	Prefix  string // LOCAL, ZONED or OFFSET when written
	Text    string
	Date    string
	Time    string
	Zone    string
	Offset  string
	Generic string
}

func (*TemporalLiteral) exprNode() {}

// ArrayLiteral is [a, b, ...].
type ArrayLiteral struct {
	NodeInfo
	Elements []Expression
}

func (*ArrayLiteral) exprNode() {}

// GeneralizedLiteral is (type: 'text'). The text is not interpreted.
type GeneralizedLiteral struct {
	NodeInfo
	Type string // identifier or quoted type name, verbatim
	Text string // verbatim, including quotes
}

func (*GeneralizedLiteral) exprNode() {}

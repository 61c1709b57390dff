package ast

// ---------- Generic functions and modifiers ----------

// GenericFunction is name(args) for any function without dedicated syntax.
// Field is set for the form name(DAY, ...) whose first argument is a
// temporal unit.
type GenericFunction struct {
	NodeInfo
	Name      *SimplePath
	Distinct  bool
	Star      bool
	Field     DateTimeField
	Args      []ExpressionOrPredicate
	Modifiers *FunctionModifiers
}

func (*GenericFunction) exprNode() {}

// NthFrom is FROM FIRST or FROM LAST.
type NthFrom string

// NthFrom values.
const (
	FromFirstRow NthFrom = "FROM FIRST"
	FromLastRow  NthFrom = "FROM LAST"
)

// NullTreatment is RESPECT NULLS or IGNORE NULLS.
type NullTreatment string

// NullTreatment values.
const (
	RespectNulls NullTreatment = "RESPECT NULLS"
	IgnoreNulls  NullTreatment = "IGNORE NULLS"
)

// FunctionModifiers are the trailing clauses an aggregate or window
// function may carry. Nil when none were written.
type FunctionModifiers struct {
	NodeInfo
	Nth         NthFrom
	Nulls       NullTreatment
	WithinGroup []*SortSpecification
	Filter      Predicate
	Over        *OverClause
}

// OverClause is OVER ([PARTITION BY ...] [ORDER BY ...] [frame]).
type OverClause struct {
	NodeInfo
	PartitionBy []Expression
	OrderBy     []*SortSpecification
	Frame       *FrameClause
}

// FrameMode is ROWS, RANGE or GROUPS.
type FrameMode string

// FrameMode values.
const (
	FrameRows   FrameMode = "ROWS"
	FrameRange  FrameMode = "RANGE"
	FrameGroups FrameMode = "GROUPS"
)

// FrameBoundType is the kind of a frame bound.
type FrameBoundType string

// FrameBoundType values.
const (
	FrameUnboundedPreceding FrameBoundType = "UNBOUNDED PRECEDING"
	FrameUnboundedFollowing FrameBoundType = "UNBOUNDED FOLLOWING"
	FrameCurrentRow         FrameBoundType = "CURRENT ROW"
	FrameExprPreceding      FrameBoundType = "EXPR PRECEDING"
	FrameExprFollowing      FrameBoundType = "EXPR FOLLOWING"
)

// FrameBound is one end of a window frame.
type FrameBound struct {
	NodeInfo
	Type   FrameBoundType
	Offset Expression
}

// FrameExclusion is the EXCLUDE option of a frame.
type FrameExclusion string

// FrameExclusion values.
const (
	ExcludeNone       FrameExclusion = ""
	ExcludeCurrentRow FrameExclusion = "EXCLUDE CURRENT ROW"
	ExcludeGroup      FrameExclusion = "EXCLUDE GROUP"
	ExcludeTies       FrameExclusion = "EXCLUDE TIES"
	ExcludeNoOthers   FrameExclusion = "EXCLUDE NO OTHERS"
)

// FrameClause is mode start | mode BETWEEN start AND end, plus exclusion.
type FrameClause struct {
	NodeInfo
	Mode      FrameMode
	Start     *FrameBound
	Stop      *FrameBound // nil without BETWEEN
	Exclusion FrameExclusion
}

// ---------- Standard functions ----------

// CastTarget is a type name with optional length or precision and scale.
type CastTarget struct {
	NodeInfo
	Type   *SimplePath
	Params []string // integer literals as written
}

// CastFunction is CAST(expr AS type).
type CastFunction struct {
	NodeInfo
	Expr   Expression
	Target *CastTarget
}

func (*CastFunction) exprNode() {}

// ExtractFunction is EXTRACT(field FROM expr) or the shorthand field(expr).
// Field holds the unit as written in canonical upper case, for example
// "DAY OF WEEK" or "OFFSET HOUR".
type ExtractFunction struct {
	NodeInfo
	Field     string
	Source    Expression
	Shorthand bool
}

func (*ExtractFunction) exprNode() {}

// TruncFunction is TRUNC(expr [, field|places]) or TRUNCATE(...).
type TruncFunction struct {
	NodeInfo
	Truncate bool // spelled TRUNCATE
	Expr     Expression
	Field    DateTimeField
	Places   Expression
}

func (*TruncFunction) exprNode() {}

// TrimSpec is LEADING, TRAILING or BOTH.
type TrimSpec string

// TrimSpec values.
const (
	TrimDefault  TrimSpec = ""
	TrimLeading  TrimSpec = "LEADING"
	TrimTrailing TrimSpec = "TRAILING"
	TrimBoth     TrimSpec = "BOTH"
)

// TrimFunction is TRIM([spec] [char] [FROM] expr).
type TrimFunction struct {
	NodeInfo
	Spec      TrimSpec
	Character Expression
	From      bool
	Expr      Expression
}

func (*TrimFunction) exprNode() {}

// PadFunction is PAD(expr WITH length LEADING|TRAILING [char]).
type PadFunction struct {
	NodeInfo
	Expr      Expression
	Length    Expression
	Spec      TrimSpec
	Character Expression
}

func (*PadFunction) exprNode() {}

// SubstringFunction is SUBSTRING(expr, start [, length]) or
// SUBSTRING(expr FROM start [FOR length]).
type SubstringFunction struct {
	NodeInfo
	Expr       Expression
	Start      Expression
	Length     Expression
	FromSyntax bool
}

func (*SubstringFunction) exprNode() {}

// OverlayFunction is OVERLAY(expr PLACING replacement FROM start [FOR length]).
type OverlayFunction struct {
	NodeInfo
	Expr    Expression
	Placing Expression
	From    Expression
	For     Expression
}

func (*OverlayFunction) exprNode() {}

// PositionFunction is POSITION(pattern IN expr).
type PositionFunction struct {
	NodeInfo
	Pattern Expression
	Expr    Expression
}

func (*PositionFunction) exprNode() {}

// FormatFunction is FORMAT(expr AS 'pattern').
type FormatFunction struct {
	NodeInfo
	Expr    Expression
	Pattern *Literal
}

func (*FormatFunction) exprNode() {}

// CollateFunction is COLLATE(expr AS collation).
type CollateFunction struct {
	NodeInfo
	Expr      Expression
	Collation *SimplePath
}

func (*CollateFunction) exprNode() {}

// CurrentKind names the value a CurrentFunction produces.
type CurrentKind string

// CurrentKind values.
const (
	CurrentDate      CurrentKind = "CURRENT_DATE"
	CurrentTime      CurrentKind = "CURRENT_TIME"
	CurrentTimestamp CurrentKind = "CURRENT_TIMESTAMP"
	CurrentInstant   CurrentKind = "INSTANT"
	LocalDate        CurrentKind = "LOCAL_DATE"
	LocalTime        CurrentKind = "LOCAL_TIME"
	LocalDateTime    CurrentKind = "LOCAL_DATETIME"
	OffsetDateTime   CurrentKind = "OFFSET_DATETIME"
)

// CurrentFunction is CURRENT_DATE, CURRENT DATE, LOCAL DATETIME, INSTANT and
// the other current-time functions. Text is the spelling used.
type CurrentFunction struct {
	NodeInfo
	Kind CurrentKind
	Text string
}

func (*CurrentFunction) exprNode() {}

// GroupingKind is CUBE or ROLLUP.
type GroupingKind string

// GroupingKind values.
const (
	Cube   GroupingKind = "CUBE"
	Rollup GroupingKind = "ROLLUP"
)

// GroupingFunction is CUBE(...) or ROLLUP(...).
type GroupingFunction struct {
	NodeInfo
	Kind GroupingKind
	Args []ExpressionOrPredicate
}

func (*GroupingFunction) exprNode() {}

// Quantifier is EVERY, ALL, ANY or SOME.
type Quantifier string

// Quantifier values.
const (
	QuantifierEvery Quantifier = "EVERY"
	QuantifierAll   Quantifier = "ALL"
	QuantifierAny   Quantifier = "ANY"
	QuantifierSome  Quantifier = "SOME"
)

// QuantifiedFunction is EVERY/ALL/ANY/SOME applied to a predicate, a
// subquery or a collection. Exactly one of Predicate, Query and Path is set.
type QuantifiedFunction struct {
	NodeInfo
	Quantifier Quantifier
	Predicate  Predicate
	Query      *QueryExpression
	Collection CollectionQuantifier
	Path       Path
	Modifiers  *FunctionModifiers
}

func (*QuantifiedFunction) exprNode() {}

// OnOverflow is the ON OVERFLOW clause of LISTAGG.
type OnOverflow struct {
	NodeInfo
	Error  bool // ON OVERFLOW ERROR
	Filler Expression
	Count  string // "", "WITH COUNT" or "WITHOUT COUNT"
}

// ListaggFunction is LISTAGG([DISTINCT] expr, separator [ON OVERFLOW ...]).
type ListaggFunction struct {
	NodeInfo
	Distinct  bool
	Expr      ExpressionOrPredicate
	Separator ExpressionOrPredicate
	Overflow  *OnOverflow
	Modifiers *FunctionModifiers
}

func (*ListaggFunction) exprNode() {}

// CollectionFunctionKind names a collection function.
type CollectionFunctionKind string

// CollectionFunctionKind values.
const (
	CollectionSize       CollectionFunctionKind = "SIZE"
	CollectionMaxIndex   CollectionFunctionKind = "MAXINDEX"
	CollectionMinIndex   CollectionFunctionKind = "MININDEX"
	CollectionMaxElement CollectionFunctionKind = "MAXELEMENT"
	CollectionMinElement CollectionFunctionKind = "MINELEMENT"
	CollectionElements   CollectionFunctionKind = "ELEMENTS"
	CollectionValues     CollectionFunctionKind = "VALUES"
	CollectionIndices    CollectionFunctionKind = "INDICES"
	CollectionKeys       CollectionFunctionKind = "KEYS"
)

// CollectionFunction is SIZE(path), MAXINDEX(path) and the other functions
// over a plural path.
type CollectionFunction struct {
	NodeInfo
	Kind CollectionFunctionKind
	Path Path
}

func (*CollectionFunction) exprNode() {}

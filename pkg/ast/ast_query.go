package ast

// ---------- Query expressions ----------

// QueryExpression is [WITH ...] followed by one or more ordered queries
// joined by set operators.
type QueryExpression struct {
	NodeInfo
	With *WithClause
	Body QueryBody
}

// Queries returns the ordered queries of the expression from left to right.
func (q *QueryExpression) Queries() []*OrderedQuery {
	var out []*OrderedQuery
	var collect func(b QueryBody)
	collect = func(b QueryBody) {
		switch b := b.(type) {
		case *OrderedQuery:
			out = append(out, b)
		case *SetOperation:
			collect(b.Left)
			out = append(out, b.Right)
		}
	}
	collect(q.Body)
	return out
}

// QueryBody is either an *OrderedQuery or a *SetOperation.
type QueryBody interface {
	Node
	queryBody()
}

// SetOperator combines two queries.
type SetOperator string

// SetOperator values.
const (
	Union     SetOperator = "UNION"
	Intersect SetOperator = "INTERSECT"
	Except    SetOperator = "EXCEPT"
)

// SetOperation is Left op [ALL] Right. Chains fold to the left, so
// a UNION b EXCEPT c is (a UNION b) EXCEPT c.
type SetOperation struct {
	NodeInfo
	Left  QueryBody
	Op    SetOperator
	All   bool
	Right *OrderedQuery
}

func (*SetOperation) queryBody() {}

// OrderedQuery is a query, or a parenthesized query expression, with its
// optional ORDER BY, LIMIT, OFFSET and FETCH clauses. Exactly one of Query
// and Nested is set.
type OrderedQuery struct {
	NodeInfo
	Query   *Query
	Nested  *QueryExpression
	OrderBy []*SortSpecification
	Limit   Expression
	Offset  *OffsetClause
	Fetch   *FetchClause
}

func (*OrderedQuery) queryBody() {}

// OffsetClause is OFFSET n [ROW|ROWS].
type OffsetClause struct {
	NodeInfo
	Count Expression
	Rows  string // "", "ROW" or "ROWS" as written
}

// FetchClause is FETCH FIRST|NEXT n [PERCENT] ROW|ROWS ONLY|WITH TIES.
type FetchClause struct {
	NodeInfo
	Next     bool // NEXT rather than FIRST
	Count    Expression
	Percent  bool
	Rows     string // "ROW" or "ROWS" as written
	WithTies bool
}

// QueryForm records which clause a query starts with.
type QueryForm string

// QueryForm values.
const (
	SelectFirst QueryForm = "SELECT"
	FromFirst   QueryForm = "FROM"
)

// Query is a single select/from block. A SelectFirst query always has a
// Select clause; a FromFirst query always has a From clause. Neither form
// infers the missing part.
type Query struct {
	NodeInfo
	Form    QueryForm
	Select  *SelectClause
	From    *FromClause
	Where   Predicate
	GroupBy []Expression
	Having  Predicate
}

// ---------- Selection ----------

// SelectClause is SELECT [DISTINCT] items.
type SelectClause struct {
	NodeInfo
	Distinct bool
	Items    []*Selection
}

// Selection is one select item. Item is an Expression, a Predicate, an
// *Instantiation, a *MapEntrySelection or an *ObjectSelection.
type Selection struct {
	NodeInfo
	Item  Node
	Alias *Identifier
}

// InstantiationKind is the target family of NEW.
type InstantiationKind string

// InstantiationKind values.
const (
	InstantiateList  InstantiationKind = "LIST"
	InstantiateMap   InstantiationKind = "MAP"
	InstantiateClass InstantiationKind = "CLASS"
)

// Instantiation is NEW LIST(...), NEW MAP(...) or NEW some.Class(...).
type Instantiation struct {
	NodeInfo
	Kind  InstantiationKind
	Class *SimplePath // set when Kind is InstantiateClass
	Args  []*InstantiationArgument
}

// InstantiationArgument is one constructor argument with an optional alias.
// Value is an ExpressionOrPredicate or a nested *Instantiation.
type InstantiationArgument struct {
	NodeInfo
	Value Node
	Alias *Identifier
}

// MapEntrySelection is ENTRY(path).
type MapEntrySelection struct {
	NodeInfo
	Path Path
}

// ObjectSelection is OBJECT(alias).
type ObjectSelection struct {
	NodeInfo
	Alias *Identifier
}

// ---------- Ordering ----------

// SortDirection is ASC or DESC; empty when not written.
type SortDirection string

// SortDirection values.
const (
	SortDefault SortDirection = ""
	Ascending   SortDirection = "ASC"
	Descending  SortDirection = "DESC"
)

// NullPrecedence is NULLS FIRST or NULLS LAST; empty when not written.
type NullPrecedence string

// NullPrecedence values.
const (
	NullsDefault NullPrecedence = ""
	NullsFirst   NullPrecedence = "NULLS FIRST"
	NullsLast    NullPrecedence = "NULLS LAST"
)

// SortSpecification is expr [ASC|DESC] [NULLS FIRST|LAST].
type SortSpecification struct {
	NodeInfo
	Expr      Expression
	Direction SortDirection
	Nulls     NullPrecedence
}

// ---------- FROM ----------

// FromClause holds the comma-separated roots of a query.
type FromClause struct {
	NodeInfo
	Roots []*EntityWithJoins
}

// EntityWithJoins is a root with the joins that follow it.
type EntityWithJoins struct {
	NodeInfo
	Root  FromRoot
	Joins []*Join
}

// FromRoot is *RootEntity, *RootSubquery or *RootFunction.
type FromRoot interface {
	Node
	fromRoot()
}

// RootEntity is entityName [AS] alias.
type RootEntity struct {
	NodeInfo
	Entity *SimplePath
	Alias  *Identifier
}

func (*RootEntity) fromRoot() {}

// RootSubquery is [LATERAL] (query) [AS] alias.
type RootSubquery struct {
	NodeInfo
	Lateral bool
	Query   *QueryExpression
	Alias   *Identifier
}

func (*RootSubquery) fromRoot() {}

// RootFunction is a set-returning function used as a root.
type RootFunction struct {
	NodeInfo
	Lateral  bool
	Function Expression
	Alias    *Identifier
}

func (*RootFunction) fromRoot() {}

// JoinKind is the kind of a join. The zero value is an inner join.
type JoinKind string

// JoinKind values.
const (
	JoinInner      JoinKind = "INNER"
	JoinLeft       JoinKind = "LEFT"
	JoinRight      JoinKind = "RIGHT"
	JoinFull       JoinKind = "FULL"
	JoinCross      JoinKind = "CROSS"
	JoinCollection JoinKind = "IN" // legacy ", IN (path) alias"
)

// Join is one join following a root.
type Join struct {
	NodeInfo
	Kind        JoinKind
	Explicit    bool // the join kind keyword was written (INNER, LEFT, ...)
	Outer       bool
	Fetch       bool
	Target      JoinTarget
	Alias       *Identifier
	Restriction *JoinRestriction
}

// JoinRestriction is ON predicate or WITH predicate.
type JoinRestriction struct {
	NodeInfo
	With      bool // WITH rather than ON
	Predicate Predicate
}

// JoinTarget is *JoinPath, *JoinSubquery or *JoinFunction.
type JoinTarget interface {
	Node
	joinTarget()
}

// JoinPath joins along an association path.
type JoinPath struct {
	NodeInfo
	Path Path
}

func (*JoinPath) joinTarget() {}

// JoinSubquery joins a [LATERAL] subquery.
type JoinSubquery struct {
	NodeInfo
	Lateral bool
	Query   *QueryExpression
}

func (*JoinSubquery) joinTarget() {}

// JoinFunction joins a [LATERAL] set-returning function.
type JoinFunction struct {
	NodeInfo
	Lateral  bool
	Function Expression
}

func (*JoinFunction) joinTarget() {}

package ast

// GroupedPredicate is (predicate).
type GroupedPredicate struct {
	NodeInfo
	Pred Predicate
}

func (*GroupedPredicate) predNode() {}

// IsNullPredicate is expr IS [NOT] NULL.
type IsNullPredicate struct {
	NodeInfo
	Expr Expression
	Not  bool
}

func (*IsNullPredicate) predNode() {}

// IsEmptyPredicate is expr IS [NOT] EMPTY.
type IsEmptyPredicate struct {
	NodeInfo
	Expr Expression
	Not  bool
}

func (*IsEmptyPredicate) predNode() {}

// IsBooleanPredicate is expr IS [NOT] TRUE|FALSE.
type IsBooleanPredicate struct {
	NodeInfo
	Expr  Expression
	Not   bool
	Value bool
}

func (*IsBooleanPredicate) predNode() {}

// IsDistinctFromPredicate is left IS [NOT] DISTINCT FROM right.
type IsDistinctFromPredicate struct {
	NodeInfo
	Left  Expression
	Not   bool
	Right Expression
}

func (*IsDistinctFromPredicate) predNode() {}

// MemberOfPredicate is expr [NOT] MEMBER [OF] path.
type MemberOfPredicate struct {
	NodeInfo
	Expr Expression
	Not  bool
	Of   bool
	Path Path
}

func (*MemberOfPredicate) predNode() {}

// InPredicate is expr [NOT] IN list.
type InPredicate struct {
	NodeInfo
	Expr Expression
	Not  bool
	List InList
}

func (*InPredicate) predNode() {}

// InList is the right-hand side of IN.
type InList interface {
	Node
	inList()
}

// ExplicitInList is (a, b, ...). The list may be empty.
type ExplicitInList struct {
	NodeInfo
	Items []ExpressionOrPredicate
}

func (*ExplicitInList) inList() {}

// SubqueryInList is (subquery).
type SubqueryInList struct {
	NodeInfo
	Query *QueryExpression
}

func (*SubqueryInList) inList() {}

// ParameterInList is a bare parameter bound to a collection.
type ParameterInList struct {
	NodeInfo
	Parameter *Parameter
}

func (*ParameterInList) inList() {}

// CollectionQuantifier selects the elements or indices of a collection.
type CollectionQuantifier string

// CollectionQuantifier values.
const (
	QuantifyElements CollectionQuantifier = "ELEMENTS"
	QuantifyValues   CollectionQuantifier = "VALUES"
	QuantifyIndices  CollectionQuantifier = "INDICES"
	QuantifyKeys     CollectionQuantifier = "KEYS"
)

// CollectionInList is ELEMENTS(path), INDICES(path) and friends.
type CollectionInList struct {
	NodeInfo
	Quantifier CollectionQuantifier
	Path       Path
}

func (*CollectionInList) inList() {}

// BetweenPredicate is expr [NOT] BETWEEN low AND high.
type BetweenPredicate struct {
	NodeInfo
	Expr Expression
	Not  bool
	Low  Expression
	High Expression
}

func (*BetweenPredicate) predNode() {}

// ContainmentOperator is CONTAINS, INCLUDES or INTERSECTS.
type ContainmentOperator string

// ContainmentOperator values.
const (
	Contains   ContainmentOperator = "CONTAINS"
	Includes   ContainmentOperator = "INCLUDES"
	Intersects ContainmentOperator = "INTERSECTS"
)

// ContainmentPredicate is left [NOT] CONTAINS|INCLUDES|INTERSECTS right.
type ContainmentPredicate struct {
	NodeInfo
	Op    ContainmentOperator
	Not   bool
	Left  Expression
	Right Expression
}

func (*ContainmentPredicate) predNode() {}

// ComparisonOperator is a relational operator.
type ComparisonOperator string

// ComparisonOperator values. The three spellings of inequality share
// NotEqual; Text on the predicate keeps the original.
const (
	Equal        ComparisonOperator = "="
	NotEqual     ComparisonOperator = "<>"
	Greater      ComparisonOperator = ">"
	GreaterEqual ComparisonOperator = ">="
	Less         ComparisonOperator = "<"
	LessEqual    ComparisonOperator = "<="
)

// ComparisonPredicate is left op right.
type ComparisonPredicate struct {
	NodeInfo
	Op    ComparisonOperator
	Text  string // operator as written: "!=", "<>", "^=", ...
	Left  Expression
	Right Expression
}

func (*ComparisonPredicate) predNode() {}

// LikePredicate is expr [NOT] LIKE|ILIKE pattern [ESCAPE char].
type LikePredicate struct {
	NodeInfo
	Expr            Expression
	Not             bool
	CaseInsensitive bool
	Pattern         Expression
	Escape          Expression
}

func (*LikePredicate) predNode() {}

// ExistsPredicate is EXISTS expr, usually a subquery.
type ExistsPredicate struct {
	NodeInfo
	Expr Expression
}

func (*ExistsPredicate) predNode() {}

// ExistsCollectionPredicate is EXISTS ELEMENTS(path) and friends.
type ExistsCollectionPredicate struct {
	NodeInfo
	Quantifier CollectionQuantifier
	Path       Path
}

func (*ExistsCollectionPredicate) predNode() {}

// NegatedPredicate is NOT predicate.
type NegatedPredicate struct {
	NodeInfo
	Pred Predicate
}

func (*NegatedPredicate) predNode() {}

// AndPredicate is Left AND Right.
type AndPredicate struct {
	NodeInfo
	Left  Predicate
	Right Predicate
}

func (*AndPredicate) predNode() {}

// OrPredicate is Left OR Right.
type OrPredicate struct {
	NodeInfo
	Left  Predicate
	Right Predicate
}

func (*OrPredicate) predNode() {}

// ExpressionPredicate wraps an expression used where a predicate is
// required, such as a boolean path in a WHERE clause.
type ExpressionPredicate struct {
	NodeInfo
	Expr Expression
}

func (*ExpressionPredicate) predNode() {}

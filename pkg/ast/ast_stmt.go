package ast

// ---------- Statements ----------

// SelectStatement is a query. Its CTEs live on the query expression so that
// nested query expressions can carry their own WITH clause.
type SelectStatement struct {
	NodeInfo
	Query *QueryExpression
}

func (*SelectStatement) stmtNode() {}

// UpdateStatement is UPDATE [VERSIONED] target SET assignments [WHERE].
type UpdateStatement struct {
	NodeInfo
	With      *WithClause
	Versioned bool
	Target    *TargetEntity
	Set       []*Assignment
	Where     Predicate
}

func (*UpdateStatement) stmtNode() {}

// DeleteStatement is DELETE [FROM] target [WHERE].
type DeleteStatement struct {
	NodeInfo
	With   *WithClause
	From   bool // FROM keyword written
	Target *TargetEntity
	Where  Predicate
}

func (*DeleteStatement) stmtNode() {}

// InsertStatement is INSERT [INTO] target (fields) followed by either a query
// expression or a VALUES list, and an optional conflict clause. Exactly one
// of Query and Values is set.
type InsertStatement struct {
	NodeInfo
	With     *WithClause
	Into     bool
	Target   *TargetEntity
	Fields   []*SimplePath
	Query    *QueryExpression
	Values   []*ValuesRow
	Conflict *ConflictClause
}

func (*InsertStatement) stmtNode() {}

// TargetEntity names the entity a DML statement operates on.
type TargetEntity struct {
	NodeInfo
	Entity *SimplePath
	Alias  *Identifier
}

// Assignment is path = value inside a SET clause.
type Assignment struct {
	NodeInfo
	Path  *SimplePath
	Value ExpressionOrPredicate
}

// ValuesRow is one parenthesized row of an INSERT ... VALUES list.
type ValuesRow struct {
	NodeInfo
	Values []ExpressionOrPredicate
}

// ConflictAction is the DO branch of ON CONFLICT.
type ConflictAction string

// ConflictAction values.
const (
	ConflictDoNothing ConflictAction = "DO NOTHING"
	ConflictDoUpdate  ConflictAction = "DO UPDATE"
)

// ConflictClause is ON CONFLICT [target] DO NOTHING | DO UPDATE SET ... [WHERE].
// Constraint and Paths are mutually exclusive and both may be empty.
type ConflictClause struct {
	NodeInfo
	Constraint *Identifier
	Paths      []*SimplePath
	Action     ConflictAction
	Set        []*Assignment
	Where      Predicate
}

// ---------- Common table expressions ----------

// WithClause introduces one or more CTEs.
type WithClause struct {
	NodeInfo
	CTEs []*CTE
}

// Materialization is the optional materialization hint of a CTE.
type Materialization string

// Materialization values.
const (
	MaterializationDefault Materialization = ""
	Materialized           Materialization = "MATERIALIZED"
	NotMaterialized        Materialization = "NOT MATERIALIZED"
)

// CTE is name AS [[NOT] MATERIALIZED] (query) [search] [cycle].
type CTE struct {
	NodeInfo
	Name            *Identifier
	Materialization Materialization
	Query           *QueryExpression
	Search          *SearchClause
	Cycle           *CycleClause
}

// SearchKind selects breadth- or depth-first ordering of a recursive CTE.
type SearchKind string

// SearchKind values.
const (
	SearchBreadthFirst SearchKind = "BREADTH FIRST"
	SearchDepthFirst   SearchKind = "DEPTH FIRST"
)

// SearchClause is SEARCH BREADTH|DEPTH FIRST BY specs SET column.
type SearchClause struct {
	NodeInfo
	Kind SearchKind
	By   []*SearchSpecification
	Set  *Identifier
}

// SearchSpecification is one ordering attribute of a SEARCH clause.
type SearchSpecification struct {
	NodeInfo
	Attribute *Identifier
	Direction SortDirection
	Nulls     NullPrecedence
}

// CycleClause is CYCLE attrs SET mark [TO value DEFAULT value] [USING path].
type CycleClause struct {
	NodeInfo
	Attributes   []*Identifier
	Set          *Identifier
	MarkValue    Expression // nil unless TO ... DEFAULT ... was given
	DefaultValue Expression
	Using        *Identifier
}

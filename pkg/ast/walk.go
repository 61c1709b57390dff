package ast

import "reflect"

// Walk traverses the tree rooted at node depth-first and calls fn for each
// node before its children. If fn returns false the children of that node
// are skipped. Nil children are never passed to fn.
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) {
		return
	}
	if !fn(node) {
		return
	}
	walkChildren(node, fn)
}

// Inspect calls fn for every node under root and stops the whole traversal
// as soon as fn returns false.
func Inspect(root Node, fn func(Node) bool) {
	stopped := false
	Walk(root, func(n Node) bool {
		if stopped {
			return false
		}
		if !fn(n) {
			stopped = true
			return false
		}
		return true
	})
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func walkList[T Node](list []T, fn func(Node) bool) {
	for _, n := range list {
		Walk(n, fn)
	}
}

// walkChildren visits the children of node. Leaves (*Identifier, literals,
// *Parameter, *CurrentFunction) fall through the switch.
//
//nolint:gocyclo // one case per node type
func walkChildren(node Node, fn func(Node) bool) {
	switch n := node.(type) {
	// Statements
	case *SelectStatement:
		Walk(n.Query, fn)
	case *UpdateStatement:
		Walk(n.With, fn)
		Walk(n.Target, fn)
		walkList(n.Set, fn)
		Walk(n.Where, fn)
	case *DeleteStatement:
		Walk(n.With, fn)
		Walk(n.Target, fn)
		Walk(n.Where, fn)
	case *InsertStatement:
		Walk(n.With, fn)
		Walk(n.Target, fn)
		walkList(n.Fields, fn)
		Walk(n.Query, fn)
		walkList(n.Values, fn)
		Walk(n.Conflict, fn)
	case *TargetEntity:
		Walk(n.Entity, fn)
		Walk(n.Alias, fn)
	case *Assignment:
		Walk(n.Path, fn)
		Walk(n.Value, fn)
	case *ValuesRow:
		walkList(n.Values, fn)
	case *ConflictClause:
		Walk(n.Constraint, fn)
		walkList(n.Paths, fn)
		walkList(n.Set, fn)
		Walk(n.Where, fn)
	case *WithClause:
		walkList(n.CTEs, fn)
	case *CTE:
		Walk(n.Name, fn)
		Walk(n.Query, fn)
		Walk(n.Search, fn)
		Walk(n.Cycle, fn)
	case *SearchClause:
		walkList(n.By, fn)
		Walk(n.Set, fn)
	case *SearchSpecification:
		Walk(n.Attribute, fn)
	case *CycleClause:
		walkList(n.Attributes, fn)
		Walk(n.Set, fn)
		Walk(n.MarkValue, fn)
		Walk(n.DefaultValue, fn)
		Walk(n.Using, fn)

	// Queries
	case *QueryExpression:
		Walk(n.With, fn)
		Walk(n.Body, fn)
	case *SetOperation:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *OrderedQuery:
		Walk(n.Query, fn)
		Walk(n.Nested, fn)
		walkList(n.OrderBy, fn)
		Walk(n.Limit, fn)
		Walk(n.Offset, fn)
		Walk(n.Fetch, fn)
	case *OffsetClause:
		Walk(n.Count, fn)
	case *FetchClause:
		Walk(n.Count, fn)
	case *Query:
		Walk(n.Select, fn)
		Walk(n.From, fn)
		Walk(n.Where, fn)
		walkList(n.GroupBy, fn)
		Walk(n.Having, fn)
	case *SelectClause:
		walkList(n.Items, fn)
	case *Selection:
		Walk(n.Item, fn)
		Walk(n.Alias, fn)
	case *Instantiation:
		Walk(n.Class, fn)
		walkList(n.Args, fn)
	case *InstantiationArgument:
		Walk(n.Value, fn)
		Walk(n.Alias, fn)
	case *MapEntrySelection:
		Walk(n.Path, fn)
	case *ObjectSelection:
		Walk(n.Alias, fn)
	case *SortSpecification:
		Walk(n.Expr, fn)
	case *FromClause:
		walkList(n.Roots, fn)
	case *EntityWithJoins:
		Walk(n.Root, fn)
		walkList(n.Joins, fn)
	case *RootEntity:
		Walk(n.Entity, fn)
		Walk(n.Alias, fn)
	case *RootSubquery:
		Walk(n.Query, fn)
		Walk(n.Alias, fn)
	case *RootFunction:
		Walk(n.Function, fn)
		Walk(n.Alias, fn)
	case *Join:
		Walk(n.Target, fn)
		Walk(n.Alias, fn)
		Walk(n.Restriction, fn)
	case *JoinRestriction:
		Walk(n.Predicate, fn)
	case *JoinPath:
		Walk(n.Path, fn)
	case *JoinSubquery:
		Walk(n.Query, fn)
	case *JoinFunction:
		Walk(n.Function, fn)

	// Paths
	case *SimplePath:
		walkList(n.Parts, fn)
	case *SyntacticDomainPath:
		Walk(n.Head, fn)
		Walk(n.Continuation, fn)
	case *TreatPath:
		Walk(n.Path, fn)
		Walk(n.Type, fn)
	case *CollectionValuePath:
		Walk(n.Path, fn)
	case *MapKeyPath:
		Walk(n.Path, fn)
	case *ForeignKeyPath:
		Walk(n.Path, fn)
	case *IndexedPath:
		Walk(n.Base, fn)
		Walk(n.Index, fn)
	case *SlicedPath:
		Walk(n.Base, fn)
		Walk(n.Low, fn)
		Walk(n.High, fn)
	case *FunctionPath:
		Walk(n.Function, fn)

	// Expressions
	case *GroupedExpression:
		Walk(n.Expr, fn)
	case *TupleExpression:
		walkList(n.Items, fn)
	case *SubqueryExpression:
		Walk(n.Query, fn)
	case *UnaryExpression:
		Walk(n.Operand, fn)
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *DurationExpression:
		Walk(n.Operand, fn)
	case *CaseExpression:
		Walk(n.Operand, fn)
		walkList(n.Whens, fn)
		Walk(n.Else, fn)
	case *CaseWhen:
		Walk(n.Condition, fn)
		Walk(n.Result, fn)
	case *EntityTypeReference:
		Walk(n.Path, fn)
		Walk(n.Parameter, fn)
	case *EntityIdReference:
		Walk(n.Path, fn)
		Walk(n.Continuation, fn)
	case *EntityVersionReference:
		Walk(n.Path, fn)
	case *EntityNaturalIdReference:
		Walk(n.Path, fn)
		Walk(n.Continuation, fn)
	case *ArrayLiteral:
		walkList(n.Elements, fn)

	// Predicates
	case *GroupedPredicate:
		Walk(n.Pred, fn)
	case *IsNullPredicate:
		Walk(n.Expr, fn)
	case *IsEmptyPredicate:
		Walk(n.Expr, fn)
	case *IsBooleanPredicate:
		Walk(n.Expr, fn)
	case *IsDistinctFromPredicate:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *MemberOfPredicate:
		Walk(n.Expr, fn)
		Walk(n.Path, fn)
	case *InPredicate:
		Walk(n.Expr, fn)
		Walk(n.List, fn)
	case *ExplicitInList:
		walkList(n.Items, fn)
	case *SubqueryInList:
		Walk(n.Query, fn)
	case *ParameterInList:
		Walk(n.Parameter, fn)
	case *CollectionInList:
		Walk(n.Path, fn)
	case *BetweenPredicate:
		Walk(n.Expr, fn)
		Walk(n.Low, fn)
		Walk(n.High, fn)
	case *ContainmentPredicate:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ComparisonPredicate:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *LikePredicate:
		Walk(n.Expr, fn)
		Walk(n.Pattern, fn)
		Walk(n.Escape, fn)
	case *ExistsPredicate:
		Walk(n.Expr, fn)
	case *ExistsCollectionPredicate:
		Walk(n.Path, fn)
	case *NegatedPredicate:
		Walk(n.Pred, fn)
	case *AndPredicate:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *OrPredicate:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ExpressionPredicate:
		Walk(n.Expr, fn)

	// Functions
	case *GenericFunction:
		Walk(n.Name, fn)
		walkList(n.Args, fn)
		Walk(n.Modifiers, fn)
	case *FunctionModifiers:
		walkList(n.WithinGroup, fn)
		Walk(n.Filter, fn)
		Walk(n.Over, fn)
	case *OverClause:
		walkList(n.PartitionBy, fn)
		walkList(n.OrderBy, fn)
		Walk(n.Frame, fn)
	case *FrameClause:
		Walk(n.Start, fn)
		Walk(n.Stop, fn)
	case *FrameBound:
		Walk(n.Offset, fn)
	case *CastTarget:
		Walk(n.Type, fn)
	case *CastFunction:
		Walk(n.Expr, fn)
		Walk(n.Target, fn)
	case *ExtractFunction:
		Walk(n.Source, fn)
	case *TruncFunction:
		Walk(n.Expr, fn)
		Walk(n.Places, fn)
	case *TrimFunction:
		Walk(n.Character, fn)
		Walk(n.Expr, fn)
	case *PadFunction:
		Walk(n.Expr, fn)
		Walk(n.Length, fn)
		Walk(n.Character, fn)
	case *SubstringFunction:
		Walk(n.Expr, fn)
		Walk(n.Start, fn)
		Walk(n.Length, fn)
	case *OverlayFunction:
		Walk(n.Expr, fn)
		Walk(n.Placing, fn)
		Walk(n.From, fn)
		Walk(n.For, fn)
	case *PositionFunction:
		Walk(n.Pattern, fn)
		Walk(n.Expr, fn)
	case *FormatFunction:
		Walk(n.Expr, fn)
		Walk(n.Pattern, fn)
	case *CollateFunction:
		Walk(n.Expr, fn)
		Walk(n.Collation, fn)
	case *GroupingFunction:
		walkList(n.Args, fn)
	case *QuantifiedFunction:
		Walk(n.Predicate, fn)
		Walk(n.Query, fn)
		Walk(n.Path, fn)
		Walk(n.Modifiers, fn)
	case *ListaggFunction:
		Walk(n.Expr, fn)
		Walk(n.Separator, fn)
		Walk(n.Overflow, fn)
		Walk(n.Modifiers, fn)
	case *OnOverflow:
		Walk(n.Filler, fn)
	case *CollectionFunction:
		Walk(n.Path, fn)

	// JSON
	case *JsonPassing:
		Walk(n.Value, fn)
		Walk(n.Alias, fn)
	case *JsonOnClause:
		Walk(n.Default, fn)
	case *JsonValueFunction:
		Walk(n.Expr, fn)
		Walk(n.Path, fn)
		walkList(n.Passing, fn)
		Walk(n.Returning, fn)
		walkList(n.On, fn)
	case *JsonQueryFunction:
		Walk(n.Expr, fn)
		Walk(n.Path, fn)
		walkList(n.Passing, fn)
		walkList(n.On, fn)
	case *JsonExistsFunction:
		Walk(n.Expr, fn)
		Walk(n.Path, fn)
		walkList(n.Passing, fn)
		Walk(n.OnError, fn)
	case *JsonArrayFunction:
		walkList(n.Values, fn)
	case *JsonObjectEntry:
		Walk(n.Key, fn)
		Walk(n.Value, fn)
	case *JsonObjectFunction:
		walkList(n.Entries, fn)
	case *JsonArrayAggFunction:
		Walk(n.Expr, fn)
		walkList(n.OrderBy, fn)
		Walk(n.Modifiers, fn)
	case *JsonObjectAggFunction:
		Walk(n.Key, fn)
		Walk(n.Value, fn)
		Walk(n.Modifiers, fn)
	case *JsonTableColumn:
		Walk(n.Name, fn)
		Walk(n.Type, fn)
		Walk(n.Path, fn)
		walkList(n.On, fn)
		walkList(n.Columns, fn)
	case *JsonTableFunction:
		Walk(n.Expr, fn)
		Walk(n.Path, fn)
		walkList(n.Passing, fn)
		walkList(n.Columns, fn)
		Walk(n.OnError, fn)

	// XML
	case *XmlNamedValue:
		Walk(n.Value, fn)
		Walk(n.Name, fn)
	case *XmlElementFunction:
		Walk(n.Name, fn)
		walkList(n.Attributes, fn)
		walkList(n.Content, fn)
	case *XmlForestFunction:
		walkList(n.Items, fn)
	case *XmlPiFunction:
		Walk(n.Name, fn)
		Walk(n.Content, fn)
	case *XmlQueryFunction:
		Walk(n.Query, fn)
		Walk(n.Passing, fn)
	case *XmlExistsFunction:
		Walk(n.Query, fn)
		Walk(n.Passing, fn)
	case *XmlAggFunction:
		Walk(n.Expr, fn)
		walkList(n.OrderBy, fn)
		Walk(n.Modifiers, fn)
	case *XmlTableColumn:
		Walk(n.Name, fn)
		Walk(n.Type, fn)
		Walk(n.Path, fn)
		Walk(n.Default, fn)
	case *XmlTableFunction:
		Walk(n.Query, fn)
		Walk(n.Passing, fn)
		walkList(n.Columns, fn)
	}
}

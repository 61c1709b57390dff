package format

import (
	"strconv"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

// formatAny dispatches on the category of n. Clause-level nodes that belong
// to no category are handled individually.
//
//nolint:gocyclo // one case per node type
func (p *Printer) formatAny(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case ast.Statement:
		p.formatStatement(n)
	case ast.Expression:
		p.formatExpr(n)
	case ast.Predicate:
		p.formatPredicate(n)
	case ast.QueryBody:
		p.formatQueryBody(n)
	case ast.DomainPathHead:
		p.formatDomainHead(n)
	case ast.InList:
		p.formatInList(n)
	case ast.FromRoot:
		p.formatFromRoot(n)
	case ast.JoinTarget:
		p.formatJoinTarget(n)
	case *ast.Identifier:
		p.ident(n)
	case *ast.QueryExpression:
		p.formatQueryExpression(n)
	case *ast.Query:
		p.formatQuery(n)
	case *ast.SelectClause:
		p.formatSelectClause(n, p.keyword)
	case *ast.Selection:
		p.formatSelection(n)
	case *ast.Instantiation:
		p.formatInstantiation(n)
	case *ast.InstantiationArgument:
		p.formatAny(n.Value)
		p.asAlias(n.Alias)
	case *ast.MapEntrySelection:
		p.keyword("ENTRY")
		p.parens(func() { p.formatExpr(n.Path) })
	case *ast.ObjectSelection:
		p.keyword("OBJECT")
		p.parens(func() { p.ident(n.Alias) })
	case *ast.FromClause:
		p.keyword("FROM")
		p.space()
		p.formatFromClause(n)
	case *ast.EntityWithJoins:
		p.formatEntityWithJoins(n)
	case *ast.Join:
		p.formatJoin(n)
	case *ast.SortSpecification:
		p.formatSortSpecification(n)
	case *ast.OffsetClause:
		p.formatOffset(n)
	case *ast.FetchClause:
		p.formatFetch(n)
	case *ast.WithClause:
		p.formatWithClause(n)
	case *ast.CTE:
		p.formatCTE(n)
	case *ast.SearchClause:
		p.formatSearch(n)
	case *ast.CycleClause:
		p.formatCycle(n)
	case *ast.TargetEntity:
		p.formatTarget(n)
	case *ast.Assignment:
		p.formatAssignment(n)
	case *ast.ValuesRow:
		p.formatValuesRow(n)
	case *ast.ConflictClause:
		p.formatConflict(n)
	case *ast.FunctionModifiers:
		p.formatModifiers(n)
	case *ast.OverClause:
		p.formatOver(n)
	case *ast.CastTarget:
		p.formatCastTarget(n)
	case *ast.JsonOnClause:
		p.formatJsonOnClause(n)
	case *ast.JsonTableColumn:
		p.formatJsonColumn(n)
	case *ast.XmlTableColumn:
		p.formatXmlColumn(n)
	}
}

// formatNodeList prints a comma-separated list of expressions or predicates.
func (p *Printer) formatNodeList(items []ast.ExpressionOrPredicate) {
	p.formatList(len(items), func(i int) { p.formatAny(items[i]) }, ", ")
}

//nolint:gocyclo // one case per node type
func (p *Printer) formatExpr(e ast.Expression) {
	switch expr := e.(type) {
	case nil:
	case *ast.SimplePath:
		p.simplePath(expr)
	case *ast.SyntacticDomainPath:
		p.formatDomainHead(expr.Head)
		p.continuation(expr.Continuation)
	case *ast.GroupedExpression:
		p.parens(func() { p.formatExpr(expr.Expr) })
	case *ast.TupleExpression:
		p.parens(func() { p.formatNodeList(expr.Items) })
	case *ast.SubqueryExpression:
		p.block(func() { p.formatQueryExpression(expr.Query) })
	case *ast.UnaryExpression:
		p.write(string(expr.Sign))
		if _, nested := expr.Operand.(*ast.UnaryExpression); nested {
			p.write(" ")
		}
		p.formatExpr(expr.Operand)
	case *ast.BinaryExpression:
		p.formatExpr(expr.Left)
		p.write(" " + string(expr.Op) + " ")
		p.formatExpr(expr.Right)
	case *ast.DurationExpression:
		p.formatExpr(expr.Operand)
		if expr.By {
			p.kw("BY")
		}
		p.kw(string(expr.Field))
	case *ast.CaseExpression:
		p.formatCase(expr)
	case *ast.Parameter:
		p.formatParameter(expr)
	case *ast.Literal:
		p.write(expr.Text)
	case *ast.TemporalLiteral:
		p.write(expr.Text)
	case *ast.ArrayLiteral:
		p.write("[")
		p.formatList(len(expr.Elements), func(i int) { p.formatExpr(expr.Elements[i]) }, ", ")
		p.write("]")
	case *ast.GeneralizedLiteral:
		p.write("(" + expr.Type + ": " + expr.Text + ")")
	case *ast.EntityTypeReference:
		p.keyword("TYPE")
		p.parens(func() {
			if expr.Parameter != nil {
				p.formatParameter(expr.Parameter)
				return
			}
			p.formatExpr(expr.Path)
		})
	case *ast.EntityIdReference:
		p.keyword("ID")
		p.parens(func() { p.formatExpr(expr.Path) })
		p.continuation(expr.Continuation)
	case *ast.EntityVersionReference:
		p.keyword("VERSION")
		p.parens(func() { p.formatExpr(expr.Path) })
	case *ast.EntityNaturalIdReference:
		p.keyword("NATURALID")
		p.parens(func() { p.formatExpr(expr.Path) })
		p.continuation(expr.Continuation)
	default:
		p.formatFunction(e)
	}
}

func (p *Printer) formatCase(c *ast.CaseExpression) {
	p.keyword("CASE")
	if c.Operand != nil {
		p.space()
		p.formatAny(c.Operand)
	}
	for _, w := range c.Whens {
		p.kw("WHEN")
		p.space()
		p.formatAny(w.Condition)
		p.kw("THEN")
		p.space()
		p.formatAny(w.Result)
	}
	if c.Else != nil {
		p.kw("ELSE")
		p.space()
		p.formatAny(c.Else)
	}
	p.kw("END")
}

func (p *Printer) formatParameter(param *ast.Parameter) {
	switch {
	case !param.Ordinal:
		p.write(":" + param.Name)
	case param.Position > 0:
		p.write("?" + strconv.Itoa(param.Position))
	default:
		p.write("?")
	}
}

// ---------- Paths ----------

func (p *Printer) formatDomainHead(head ast.DomainPathHead) {
	switch h := head.(type) {
	case *ast.TreatPath:
		p.keyword("TREAT")
		p.parens(func() {
			p.formatExpr(h.Path)
			p.kw("AS")
			p.space()
			p.simplePath(h.Type)
		})
	case *ast.CollectionValuePath:
		if h.Element {
			p.keyword("ELEMENT")
		} else {
			p.keyword("VALUE")
		}
		p.parens(func() { p.formatExpr(h.Path) })
	case *ast.MapKeyPath:
		if h.Index {
			p.keyword("INDEX")
		} else {
			p.keyword("KEY")
		}
		p.parens(func() { p.formatExpr(h.Path) })
	case *ast.ForeignKeyPath:
		p.keyword("FK")
		p.parens(func() { p.formatExpr(h.Path) })
	case *ast.IndexedPath:
		p.formatExpr(h.Base)
		p.write("[")
		p.formatExpr(h.Index)
		p.write("]")
	case *ast.SlicedPath:
		p.formatExpr(h.Base)
		p.write("[")
		p.formatExpr(h.Low)
		p.write(":")
		if param, ok := h.High.(*ast.Parameter); ok && !param.Ordinal {
			p.write(" ")
		}
		p.formatExpr(h.High)
		p.write("]")
	case *ast.FunctionPath:
		p.formatExpr(h.Function)
	}
}

// ---------- Predicates ----------

//nolint:gocyclo // one case per node type
func (p *Printer) formatPredicate(pred ast.Predicate) {
	switch pr := pred.(type) {
	case nil:
	case *ast.GroupedPredicate:
		p.parens(func() { p.formatPredicate(pr.Pred) })
	case *ast.IsNullPredicate:
		p.formatExpr(pr.Expr)
		p.formatIs(pr.Not)
		p.kw("NULL")
	case *ast.IsEmptyPredicate:
		p.formatExpr(pr.Expr)
		p.formatIs(pr.Not)
		p.kw("EMPTY")
	case *ast.IsBooleanPredicate:
		p.formatExpr(pr.Expr)
		p.formatIs(pr.Not)
		if pr.Value {
			p.kw("TRUE")
		} else {
			p.kw("FALSE")
		}
	case *ast.IsDistinctFromPredicate:
		p.formatExpr(pr.Left)
		p.formatIs(pr.Not)
		p.kw("DISTINCT FROM")
		p.space()
		p.formatExpr(pr.Right)
	case *ast.MemberOfPredicate:
		p.formatExpr(pr.Expr)
		p.formatNot(pr.Not)
		p.kw("MEMBER")
		if pr.Of {
			p.kw("OF")
		}
		p.space()
		p.formatExpr(pr.Path)
	case *ast.InPredicate:
		p.formatExpr(pr.Expr)
		p.formatNot(pr.Not)
		p.kw("IN")
		p.space()
		p.formatInList(pr.List)
	case *ast.BetweenPredicate:
		p.formatExpr(pr.Expr)
		p.formatNot(pr.Not)
		p.kw("BETWEEN")
		p.space()
		p.formatExpr(pr.Low)
		p.kw("AND")
		p.space()
		p.formatExpr(pr.High)
	case *ast.ContainmentPredicate:
		p.formatExpr(pr.Left)
		p.formatNot(pr.Not)
		p.kw(string(pr.Op))
		p.space()
		p.formatExpr(pr.Right)
	case *ast.ComparisonPredicate:
		p.formatExpr(pr.Left)
		p.write(" " + string(pr.Op) + " ")
		p.formatExpr(pr.Right)
	case *ast.LikePredicate:
		p.formatExpr(pr.Expr)
		p.formatNot(pr.Not)
		if pr.CaseInsensitive {
			p.kw("ILIKE")
		} else {
			p.kw("LIKE")
		}
		p.space()
		p.formatExpr(pr.Pattern)
		if pr.Escape != nil {
			p.kw("ESCAPE")
			p.space()
			p.formatExpr(pr.Escape)
		}
	case *ast.ExistsPredicate:
		p.keyword("EXISTS")
		p.space()
		p.formatExpr(pr.Expr)
	case *ast.ExistsCollectionPredicate:
		p.keyword("EXISTS")
		p.kw(string(pr.Quantifier))
		p.parens(func() { p.formatExpr(pr.Path) })
	case *ast.NegatedPredicate:
		p.keyword("NOT")
		p.space()
		p.formatPredicate(pr.Pred)
	case *ast.AndPredicate:
		p.formatPredicate(pr.Left)
		p.kw("AND")
		p.space()
		p.formatPredicate(pr.Right)
	case *ast.OrPredicate:
		p.formatPredicate(pr.Left)
		p.kw("OR")
		p.space()
		p.formatPredicate(pr.Right)
	case *ast.ExpressionPredicate:
		p.formatExpr(pr.Expr)
	}
}

func (p *Printer) formatIs(not bool) {
	p.kw("IS")
	p.formatNot(not)
}

func (p *Printer) formatNot(not bool) {
	if not {
		p.kw("NOT")
	}
}

func (p *Printer) formatInList(list ast.InList) {
	switch l := list.(type) {
	case *ast.ExplicitInList:
		p.parens(func() { p.formatNodeList(l.Items) })
	case *ast.SubqueryInList:
		p.block(func() { p.formatQueryExpression(l.Query) })
	case *ast.ParameterInList:
		p.formatParameter(l.Parameter)
	case *ast.CollectionInList:
		p.keyword(string(l.Quantifier))
		p.parens(func() { p.formatExpr(l.Path) })
	}
}

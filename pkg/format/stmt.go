package format

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

func (p *Printer) formatStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.SelectStatement:
		p.formatQueryExpression(s.Query)
	case *ast.UpdateStatement:
		p.formatUpdate(s)
	case *ast.DeleteStatement:
		p.formatDelete(s)
	case *ast.InsertStatement:
		p.formatInsert(s)
	}
}

// newClause separates two clauses.
func (p *Printer) newClause() {
	if p.multiline && !p.atLineStart && p.output.Len() > 0 {
		p.writeln()
		return
	}
	p.space()
}

func (p *Printer) formatLeadingWith(with *ast.WithClause) {
	if with == nil {
		return
	}
	p.formatWithClause(with)
	p.newClause()
}

func (p *Printer) formatUpdate(stmt *ast.UpdateStatement) {
	p.formatLeadingWith(stmt.With)
	p.keyword("UPDATE")
	if stmt.Versioned {
		p.kw("VERSIONED")
	}
	p.space()
	p.formatTarget(stmt.Target)
	p.clause("SET")
	p.space()
	p.formatAssignments(stmt.Set)
	p.formatWhere(stmt.Where)
}

func (p *Printer) formatDelete(stmt *ast.DeleteStatement) {
	p.formatLeadingWith(stmt.With)
	p.keyword("DELETE")
	if stmt.From {
		p.kw("FROM")
	}
	p.space()
	p.formatTarget(stmt.Target)
	p.formatWhere(stmt.Where)
}

func (p *Printer) formatInsert(stmt *ast.InsertStatement) {
	p.formatLeadingWith(stmt.With)
	p.keyword("INSERT")
	if stmt.Into {
		p.kw("INTO")
	}
	p.space()
	p.formatTarget(stmt.Target)
	p.space()
	p.parens(func() {
		p.formatList(len(stmt.Fields), func(i int) { p.simplePath(stmt.Fields[i]) }, ", ")
	})

	if stmt.Query != nil {
		p.newClause()
		p.formatQueryExpression(stmt.Query)
	} else {
		p.clause("VALUES")
		p.space()
		p.formatList(len(stmt.Values), func(i int) { p.formatValuesRow(stmt.Values[i]) }, ", ")
	}

	if stmt.Conflict != nil {
		p.newClause()
		p.formatConflict(stmt.Conflict)
	}
}

func (p *Printer) formatValuesRow(row *ast.ValuesRow) {
	p.parens(func() { p.formatNodeList(row.Values) })
}

func (p *Printer) formatConflict(c *ast.ConflictClause) {
	p.keyword("ON CONFLICT")
	switch {
	case c.Constraint != nil:
		p.kw("ON CONSTRAINT")
		p.space()
		p.ident(c.Constraint)
	case len(c.Paths) > 0:
		p.space()
		p.parens(func() {
			p.formatList(len(c.Paths), func(i int) { p.simplePath(c.Paths[i]) }, ", ")
		})
	}
	p.kw(string(c.Action))
	if c.Action == ast.ConflictDoUpdate {
		p.kw("SET")
		p.space()
		p.formatAssignments(c.Set)
		if c.Where != nil {
			p.kw("WHERE")
			p.space()
			p.formatPredicate(c.Where)
		}
	}
}

func (p *Printer) formatTarget(t *ast.TargetEntity) {
	if t == nil {
		return
	}
	p.simplePath(t.Entity)
	p.alias(t.Alias)
}

func (p *Printer) formatAssignments(set []*ast.Assignment) {
	p.formatList(len(set), func(i int) { p.formatAssignment(set[i]) }, ", ")
}

func (p *Printer) formatAssignment(a *ast.Assignment) {
	p.simplePath(a.Path)
	p.write(" = ")
	p.formatAny(a.Value)
}

func (p *Printer) formatWhere(where ast.Predicate) {
	if where == nil {
		return
	}
	p.clause("WHERE")
	p.space()
	p.formatPredicate(where)
}

// ---------- WITH ----------

func (p *Printer) formatWithClause(with *ast.WithClause) {
	p.keyword("WITH")
	p.space()
	p.formatList(len(with.CTEs), func(i int) { p.formatCTE(with.CTEs[i]) }, ", ")
}

func (p *Printer) formatCTE(cte *ast.CTE) {
	p.ident(cte.Name)
	p.kw("AS")
	if cte.Materialization != ast.MaterializationDefault {
		p.kw(string(cte.Materialization))
	}
	p.space()
	p.block(func() { p.formatQueryExpression(cte.Query) })
	if cte.Search != nil {
		p.space()
		p.formatSearch(cte.Search)
	}
	if cte.Cycle != nil {
		p.space()
		p.formatCycle(cte.Cycle)
	}
}

func (p *Printer) formatSearch(s *ast.SearchClause) {
	p.keyword("SEARCH")
	p.kw(string(s.Kind), "BY")
	p.space()
	p.formatList(len(s.By), func(i int) {
		spec := s.By[i]
		p.ident(spec.Attribute)
		p.formatOrdering(spec.Direction, spec.Nulls)
	}, ", ")
	p.kw("SET")
	p.space()
	p.ident(s.Set)
}

func (p *Printer) formatCycle(c *ast.CycleClause) {
	p.keyword("CYCLE")
	p.space()
	p.formatList(len(c.Attributes), func(i int) { p.ident(c.Attributes[i]) }, ", ")
	p.kw("SET")
	p.space()
	p.ident(c.Set)
	if c.MarkValue != nil {
		p.kw("TO")
		p.space()
		p.formatExpr(c.MarkValue)
		p.kw("DEFAULT")
		p.space()
		p.formatExpr(c.DefaultValue)
	}
	if c.Using != nil {
		p.kw("USING")
		p.space()
		p.ident(c.Using)
	}
}

// ---------- Queries ----------

func (p *Printer) formatQueryExpression(q *ast.QueryExpression) {
	if q == nil {
		return
	}
	p.formatLeadingWith(q.With)
	p.formatQueryBody(q.Body)
}

func (p *Printer) formatQueryBody(body ast.QueryBody) {
	switch b := body.(type) {
	case *ast.OrderedQuery:
		p.formatOrderedQuery(b)
	case *ast.SetOperation:
		p.formatQueryBody(b.Left)
		p.clause(string(b.Op))
		if b.All {
			p.kw("ALL")
		}
		p.newClause()
		p.formatOrderedQuery(b.Right)
	}
}

func (p *Printer) formatOrderedQuery(oq *ast.OrderedQuery) {
	if oq.Nested != nil {
		p.block(func() { p.formatQueryExpression(oq.Nested) })
	} else {
		p.formatQuery(oq.Query)
	}

	if len(oq.OrderBy) > 0 {
		p.clause("ORDER BY")
		p.space()
		p.formatSortSpecifications(oq.OrderBy)
	}
	if oq.Limit != nil {
		p.clause("LIMIT")
		p.space()
		p.formatExpr(oq.Limit)
	}
	if oq.Offset != nil {
		p.newClause()
		p.formatOffset(oq.Offset)
	}
	if oq.Fetch != nil {
		p.newClause()
		p.formatFetch(oq.Fetch)
	}
}

func (p *Printer) formatOffset(o *ast.OffsetClause) {
	p.keyword("OFFSET")
	p.space()
	p.formatExpr(o.Count)
	if o.Rows != "" {
		p.kw(o.Rows)
	}
}

func (p *Printer) formatFetch(f *ast.FetchClause) {
	p.keyword("FETCH")
	if f.Next {
		p.kw("NEXT")
	} else {
		p.kw("FIRST")
	}
	p.space()
	p.formatExpr(f.Count)
	if f.Percent {
		p.kw("PERCENT")
	}
	p.kw(f.Rows)
	if f.WithTies {
		p.kw("WITH TIES")
	} else {
		p.kw("ONLY")
	}
}

func (p *Printer) formatQuery(q *ast.Query) {
	if q == nil {
		return
	}
	first := true
	start := func(words string) {
		if first {
			p.keyword(words)
			first = false
			return
		}
		p.clause(words)
	}

	if q.Form == ast.SelectFirst {
		p.formatSelectClause(q.Select, start)
	}
	if q.From != nil {
		start("FROM")
		p.space()
		p.formatFromClause(q.From)
	}
	if q.Where != nil {
		start("WHERE")
		p.space()
		p.formatPredicate(q.Where)
	}
	if len(q.GroupBy) > 0 {
		start("GROUP BY")
		p.space()
		p.formatList(len(q.GroupBy), func(i int) { p.formatExpr(q.GroupBy[i]) }, ", ")
	}
	if q.Having != nil {
		start("HAVING")
		p.space()
		p.formatPredicate(q.Having)
	}
	if q.Form == ast.FromFirst {
		p.formatSelectClause(q.Select, start)
	}
}

func (p *Printer) formatSelectClause(s *ast.SelectClause, start func(string)) {
	if s == nil {
		return
	}
	start("SELECT")
	if s.Distinct {
		p.kw("DISTINCT")
	}
	p.space()
	p.formatList(len(s.Items), func(i int) { p.formatSelection(s.Items[i]) }, ", ")
}

func (p *Printer) formatSelection(sel *ast.Selection) {
	p.formatAny(sel.Item)
	p.asAlias(sel.Alias)
}

func (p *Printer) formatInstantiation(inst *ast.Instantiation) {
	p.keyword("NEW")
	p.space()
	if inst.Kind == ast.InstantiateClass {
		p.simplePath(inst.Class)
	} else {
		p.keyword(string(inst.Kind))
	}
	p.parens(func() {
		p.formatList(len(inst.Args), func(i int) {
			arg := inst.Args[i]
			p.formatAny(arg.Value)
			p.asAlias(arg.Alias)
		}, ", ")
	})
}

func (p *Printer) formatSortSpecifications(specs []*ast.SortSpecification) {
	p.formatList(len(specs), func(i int) { p.formatSortSpecification(specs[i]) }, ", ")
}

func (p *Printer) formatSortSpecification(s *ast.SortSpecification) {
	p.formatExpr(s.Expr)
	p.formatOrdering(s.Direction, s.Nulls)
}

func (p *Printer) formatOrdering(dir ast.SortDirection, nulls ast.NullPrecedence) {
	if dir != ast.SortDefault {
		p.kw(string(dir))
	}
	if nulls != ast.NullsDefault {
		p.kw(string(nulls))
	}
}

// ---------- FROM ----------

func (p *Printer) formatFromClause(from *ast.FromClause) {
	p.formatList(len(from.Roots), func(i int) { p.formatEntityWithJoins(from.Roots[i]) }, ", ")
}

func (p *Printer) formatEntityWithJoins(ewj *ast.EntityWithJoins) {
	p.formatFromRoot(ewj.Root)
	for _, j := range ewj.Joins {
		switch {
		case j.Kind == ast.JoinCollection:
			p.write(", ")
			p.formatJoin(j)
		case p.multiline:
			p.indent()
			p.newClause()
			p.formatJoin(j)
			p.dedent()
		default:
			p.space()
			p.formatJoin(j)
		}
	}
}

func (p *Printer) formatFromRoot(root ast.FromRoot) {
	switch r := root.(type) {
	case *ast.RootEntity:
		p.simplePath(r.Entity)
		p.alias(r.Alias)
	case *ast.RootSubquery:
		p.lateral(r.Lateral)
		p.block(func() { p.formatQueryExpression(r.Query) })
		p.alias(r.Alias)
	case *ast.RootFunction:
		p.lateral(r.Lateral)
		p.formatExpr(r.Function)
		p.alias(r.Alias)
	}
}

func (p *Printer) lateral(lateral bool) {
	if lateral {
		p.keyword("LATERAL")
		p.space()
	}
}

func (p *Printer) formatJoin(j *ast.Join) {
	if j.Kind == ast.JoinCollection {
		p.keyword("IN")
		p.space()
		p.parens(func() { p.formatJoinTarget(j.Target) })
		p.alias(j.Alias)
		return
	}

	switch {
	case j.Kind == ast.JoinCross:
		p.keyword("CROSS JOIN")
	case j.Kind == ast.JoinInner && j.Explicit:
		p.keyword("INNER JOIN")
	case j.Kind == ast.JoinInner:
		p.keyword("JOIN")
	case !j.Explicit:
		p.keyword("OUTER JOIN")
	case j.Outer:
		p.keyword(string(j.Kind) + " OUTER JOIN")
	default:
		p.keyword(string(j.Kind) + " JOIN")
	}
	if j.Fetch {
		p.kw("FETCH")
	}
	p.space()
	p.formatJoinTarget(j.Target)
	p.alias(j.Alias)

	if r := j.Restriction; r != nil {
		if r.With {
			p.kw("WITH")
		} else {
			p.kw("ON")
		}
		p.space()
		p.formatPredicate(r.Predicate)
	}
}

func (p *Printer) formatJoinTarget(target ast.JoinTarget) {
	switch t := target.(type) {
	case *ast.JoinPath:
		p.formatExpr(t.Path)
	case *ast.JoinSubquery:
		p.lateral(t.Lateral)
		p.block(func() { p.formatQueryExpression(t.Query) })
	case *ast.JoinFunction:
		p.lateral(t.Lateral)
		p.formatExpr(t.Function)
	}
}

package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tangwind/spring-data-jpa/internal/testutil"
	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

func mustParse(t *testing.T, query string) ast.Statement {
	t.Helper()
	stmt, err := parser.Parse(query, parser.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	require.NotNil(t, stmt)
	return stmt
}

// firstQuery returns the leftmost query of a select statement.
func firstQuery(t *testing.T, stmt ast.Statement) *ast.OrderedQuery {
	t.Helper()
	sel, ok := stmt.(*ast.SelectStatement)
	require.True(t, ok, "got %T", stmt)
	queries := sel.Query.Queries()
	require.NotEmpty(t, queries)
	return queries[0]
}

func mustExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	expr, err := parser.ParseExpression(input)
	require.NoError(t, err)
	return expr
}

func mustPred(t *testing.T, input string) ast.Predicate {
	t.Helper()
	pred, err := parser.ParsePredicate(input)
	require.NoError(t, err)
	return pred
}

func pathString(t *testing.T, n ast.Node) string {
	t.Helper()
	p, ok := n.(*ast.SimplePath)
	require.True(t, ok, "got %T", n)
	return p.String()
}

func requireDiagnostic(t *testing.T, err error, kind parser.ErrorKind) *parser.Diagnostic {
	t.Helper()
	require.Error(t, err)
	diags := parser.Diagnostics(err)
	require.Len(t, diags, 1)
	assert.Equal(t, kind, diags[0].Kind)
	return diags[0]
}

// ---------- Statements ----------

func TestParseSelectFirst(t *testing.T) {
	oq := firstQuery(t, mustParse(t, "SELECT e FROM Employee e"))
	require.NotNil(t, oq.Query)
	q := oq.Query

	assert.Equal(t, ast.SelectFirst, q.Form)
	require.Len(t, q.Select.Items, 1)
	assert.Equal(t, "e", pathString(t, q.Select.Items[0].Item))
	assert.Nil(t, q.Select.Items[0].Alias)

	require.Len(t, q.From.Roots, 1)
	root, ok := q.From.Roots[0].Root.(*ast.RootEntity)
	require.True(t, ok)
	assert.Equal(t, "Employee", root.Entity.String())
	assert.Equal(t, "e", root.Alias.Name)
}

func TestParseFromFirst(t *testing.T) {
	q := firstQuery(t, mustParse(t, "FROM Employee e WHERE e.active SELECT e.title")).Query

	assert.Equal(t, ast.FromFirst, q.Form)
	require.NotNil(t, q.Select)
	require.NotNil(t, q.Where)
	where, ok := q.Where.(*ast.ExpressionPredicate)
	require.True(t, ok, "got %T", q.Where)
	assert.Equal(t, "e.active", pathString(t, where.Expr))
}

func TestParseFromOnlyKeepsSelectNil(t *testing.T) {
	q := firstQuery(t, mustParse(t, "from Employee")).Query
	assert.Equal(t, ast.FromFirst, q.Form)
	assert.Nil(t, q.Select)
}

func TestParseKeywordAsAttribute(t *testing.T) {
	q := firstQuery(t, mustParse(t, "SELECT e.size FROM Employee e")).Query
	path, ok := q.Select.Items[0].Item.(*ast.SimplePath)
	require.True(t, ok)
	require.Len(t, path.Parts, 2)
	assert.Equal(t, "size", path.Parts[1].Name)
	assert.True(t, path.Parts[1].Keyword)
	assert.False(t, path.Parts[0].Keyword)
}

func TestParseKeywordsAsNames(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"entity named like clause", "FROM Order o WHERE o.from = :from"},
		{"keyword alias", "SELECT e.title value FROM Employee e"},
		{"keyword path head", "SELECT order.id FROM Order AS order"},
		{"right as alias", "FROM Person right"},
		{"quoted identifier", "SELECT `select`.x FROM Entity `select`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.query)
			assert.NoError(t, err)
		})
	}
}

func TestParseLeftIsNotAnAlias(t *testing.T) {
	_, err := parser.Parse("FROM Person left")
	d := requireDiagnostic(t, err, parser.SyntaxError)
	assert.Equal(t, parser.ExpectedToken, d.Expected)
	assert.Equal(t, "end of input", d.Want)
	assert.Equal(t, "left", d.Found)
}

func TestParseClauseKeywordAsRootEntity(t *testing.T) {
	tests := []struct {
		query string
		found string
		col   int
	}{
		{"SELECT e FROM WHERE", "WHERE", 15},
		{"FROM ORDER BY e.id", "ORDER", 6},
		{"SELECT e FROM Employee e, GROUP", "GROUP", 27},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := parser.Parse(tt.query)
			d := requireDiagnostic(t, err, parser.SyntaxError)
			assert.Equal(t, parser.ExpectedIdentifier, d.Expected)
			assert.Equal(t, tt.found, d.Found)
			assert.Equal(t, tt.col, d.Span.Start.Column)
		})
	}

	for _, query := range []string{
		"FROM Order o",
		"FROM Order AS o",
		"FROM Order, Item i",
		"FROM Order JOIN lines l",
		"FROM com.acme.Order o",
	} {
		t.Run(query, func(t *testing.T) {
			_, err := parser.Parse(query)
			assert.NoError(t, err)
		})
	}
}

func TestParseLogging(t *testing.T) {
	logger, rec := testutil.NewRecorder()

	_, err := parser.Parse("FROM Person right", parser.WithLogger(logger))
	require.NoError(t, err)
	word, ok := rec.Attr("reserved word used as identifier", "word")
	require.True(t, ok)
	assert.Equal(t, "right", word)
	kind, _ := rec.Attr("parsed statement", "kind")
	assert.Equal(t, "*ast.SelectStatement", kind)

	_, err = parser.Parse("FROM", parser.WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, rec.Messages(), "parse failed")
}

func TestParseUpdate(t *testing.T) {
	stmt := mustParse(t, "UPDATE Employee e SET e.salary = e.salary * 1.1 WHERE e.dept = :dept")
	upd, ok := stmt.(*ast.UpdateStatement)
	require.True(t, ok)

	assert.Equal(t, "Employee", upd.Target.Entity.String())
	assert.Equal(t, "e", upd.Target.Alias.Name)
	require.Len(t, upd.Set, 1)
	assert.Equal(t, "e.salary", upd.Set[0].Path.String())
	bin, ok := upd.Set[0].Value.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.OpMultiply, bin.Op)

	cmp, ok := upd.Where.(*ast.ComparisonPredicate)
	require.True(t, ok)
	param, ok := cmp.Right.(*ast.Parameter)
	require.True(t, ok)
	assert.Equal(t, "dept", param.Name)
	assert.False(t, param.Ordinal)
}

func TestParseDelete(t *testing.T) {
	stmt := mustParse(t, "DELETE FROM Employee e WHERE e.id = ?1")
	del, ok := stmt.(*ast.DeleteStatement)
	require.True(t, ok)
	assert.True(t, del.From)
	cmp := del.Where.(*ast.ComparisonPredicate)
	param := cmp.Right.(*ast.Parameter)
	assert.True(t, param.Ordinal)
	assert.Equal(t, 1, param.Position)
}

func TestParseInsert(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		stmt := mustParse(t, "INSERT INTO Person (id, name) VALUES (1, 'a'), (2, 'b')")
		ins, ok := stmt.(*ast.InsertStatement)
		require.True(t, ok)
		assert.True(t, ins.Into)
		require.Len(t, ins.Fields, 2)
		assert.Equal(t, "name", ins.Fields[1].String())
		require.Len(t, ins.Values, 2)
		assert.Len(t, ins.Values[1].Values, 2)
		assert.Nil(t, ins.Query)
	})

	t.Run("query", func(t *testing.T) {
		stmt := mustParse(t, "INSERT Person (id) SELECT e.id FROM Employee e")
		ins := stmt.(*ast.InsertStatement)
		assert.False(t, ins.Into)
		require.NotNil(t, ins.Query)
	})

	t.Run("on conflict", func(t *testing.T) {
		stmt := mustParse(t, "INSERT INTO Person (id, name) VALUES (1, 'a') ON CONFLICT (id) DO UPDATE SET name = 'b'")
		ins := stmt.(*ast.InsertStatement)
		require.NotNil(t, ins.Conflict)
		assert.Equal(t, ast.ConflictDoUpdate, ins.Conflict.Action)
		require.Len(t, ins.Conflict.Paths, 1)
		require.Len(t, ins.Conflict.Set, 1)
	})

	t.Run("empty values row", func(t *testing.T) {
		_, err := parser.Parse("INSERT INTO Person (id) VALUES ()")
		d := requireDiagnostic(t, err, parser.StructuralError)
		assert.True(t, errors.Is(err, parser.ErrStructural))
		assert.Contains(t, d.Message, "at least one value")
	})
}

func TestParseWithClause(t *testing.T) {
	stmt := mustParse(t, `WITH tree AS MATERIALIZED (SELECT n.id id FROM Node n)
		SEARCH DEPTH FIRST BY id SET ord
		SELECT t.id FROM tree t`)
	sel := stmt.(*ast.SelectStatement)
	require.NotNil(t, sel.Query.With)
	require.Len(t, sel.Query.With.CTEs, 1)
	cte := sel.Query.With.CTEs[0]
	assert.Equal(t, "tree", cte.Name.Name)
	assert.Equal(t, ast.Materialized, cte.Materialization)
	require.NotNil(t, cte.Search)
	assert.Equal(t, ast.SearchDepthFirst, cte.Search.Kind)
	assert.Equal(t, "ord", cte.Search.Set.Name)
}

// ---------- Query structure ----------

func TestParseSetOperationsFoldLeft(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM A a UNION ALL SELECT b FROM B b EXCEPT SELECT c FROM C c")
	sel := stmt.(*ast.SelectStatement)

	outer, ok := sel.Query.Body.(*ast.SetOperation)
	require.True(t, ok)
	assert.Equal(t, ast.Except, outer.Op)
	assert.False(t, outer.All)

	inner, ok := outer.Left.(*ast.SetOperation)
	require.True(t, ok)
	assert.Equal(t, ast.Union, inner.Op)
	assert.True(t, inner.All)
	assert.Len(t, sel.Query.Queries(), 3)
}

func TestParseOrderLimitOffsetFetch(t *testing.T) {
	oq := firstQuery(t, mustParse(t,
		"SELECT e FROM Employee e ORDER BY e.name DESC NULLS LAST, e.id OFFSET 10 ROWS FETCH FIRST 1 ROWS ONLY"))

	require.Len(t, oq.OrderBy, 2)
	assert.Equal(t, ast.Descending, oq.OrderBy[0].Direction)
	assert.Equal(t, ast.NullsLast, oq.OrderBy[0].Nulls)
	assert.Equal(t, ast.SortDefault, oq.OrderBy[1].Direction)

	require.NotNil(t, oq.Offset)
	assert.Equal(t, "ROWS", oq.Offset.Rows)
	require.NotNil(t, oq.Fetch)
	assert.False(t, oq.Fetch.Next)
	assert.Equal(t, "ROWS", oq.Fetch.Rows)
	assert.False(t, oq.Fetch.WithTies)
	lit, ok := oq.Fetch.Count.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "1", lit.Text)
}

func TestParseLimitAndFetchTogether(t *testing.T) {
	oq := firstQuery(t, mustParse(t, "FROM Employee e LIMIT :max FETCH NEXT 10 PERCENT ROWS WITH TIES"))
	require.NotNil(t, oq.Limit)
	require.NotNil(t, oq.Fetch)
	assert.True(t, oq.Fetch.Next)
	assert.True(t, oq.Fetch.Percent)
	assert.True(t, oq.Fetch.WithTies)
}

func TestParseJoins(t *testing.T) {
	q := firstQuery(t, mustParse(t, `SELECT e FROM Employee e
		JOIN e.dept d
		LEFT OUTER JOIN FETCH e.projects p ON p.active = true
		RIGHT JOIN e.manager m
		CROSS JOIN Company c
		OUTER JOIN e.tags t WITH t.visible`)).Query

	joins := q.From.Roots[0].Joins
	require.Len(t, joins, 5)

	assert.Equal(t, ast.JoinInner, joins[0].Kind)
	assert.False(t, joins[0].Explicit)
	assert.Equal(t, "d", joins[0].Alias.Name)

	assert.Equal(t, ast.JoinLeft, joins[1].Kind)
	assert.True(t, joins[1].Outer)
	assert.True(t, joins[1].Fetch)
	require.NotNil(t, joins[1].Restriction)
	assert.False(t, joins[1].Restriction.With)

	assert.Equal(t, ast.JoinRight, joins[2].Kind)
	assert.Equal(t, ast.JoinCross, joins[3].Kind)

	assert.Equal(t, ast.JoinLeft, joins[4].Kind)
	assert.True(t, joins[4].Outer)
	require.NotNil(t, joins[4].Restriction)
	assert.True(t, joins[4].Restriction.With)

	target, ok := joins[0].Target.(*ast.JoinPath)
	require.True(t, ok)
	assert.Equal(t, "e.dept", pathString(t, target.Path))
}

func TestParseFromSubqueryAndCollectionJoin(t *testing.T) {
	q := firstQuery(t, mustParse(t, "SELECT x FROM (SELECT e.id id FROM Employee e) x, IN (x.items) i")).Query
	root := q.From.Roots[0]
	_, ok := root.Root.(*ast.RootSubquery)
	require.True(t, ok)
	require.Len(t, root.Joins, 1)
	assert.Equal(t, ast.JoinCollection, root.Joins[0].Kind)
	assert.Equal(t, "i", root.Joins[0].Alias.Name)
}

func TestParseInstantiation(t *testing.T) {
	q := firstQuery(t, mustParse(t, "SELECT NEW com.acme.Summary(e.id, e.title AS t, NEW map(e.id)) FROM Employee e")).Query
	inst, ok := q.Select.Items[0].Item.(*ast.Instantiation)
	require.True(t, ok)
	assert.Equal(t, ast.InstantiateClass, inst.Kind)
	assert.Equal(t, "com.acme.Summary", inst.Class.String())
	require.Len(t, inst.Args, 3)
	assert.Equal(t, "t", inst.Args[1].Alias.Name)
	nested, ok := inst.Args[2].Value.(*ast.Instantiation)
	require.True(t, ok)
	assert.Equal(t, ast.InstantiateMap, nested.Kind)
}

// ---------- Expressions and predicates ----------

func TestPrecedence(t *testing.T) {
	expr := mustExpr(t, "1 + 2 * 3")
	add, ok := expr.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	mul, ok := add.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.OpMultiply, mul.Op)

	expr = mustExpr(t, "a - b - c")
	outer := expr.(*ast.BinaryExpression)
	assert.Equal(t, ast.OpSubtract, outer.Op)
	_, leftIsBinary := outer.Left.(*ast.BinaryExpression)
	assert.True(t, leftIsBinary, "subtraction is left-associative")

	expr = mustExpr(t, "a || b + c")
	concat := expr.(*ast.BinaryExpression)
	assert.Equal(t, ast.OpConcat, concat.Op)
}

func TestPredicatePrecedence(t *testing.T) {
	pred := mustPred(t, "a OR b AND c")
	or, ok := pred.(*ast.OrPredicate)
	require.True(t, ok)
	_, ok = or.Right.(*ast.AndPredicate)
	assert.True(t, ok)

	pred = mustPred(t, "NOT a = b")
	not, ok := pred.(*ast.NegatedPredicate)
	require.True(t, ok)
	_, ok = not.Pred.(*ast.ComparisonPredicate)
	assert.True(t, ok)
}

func TestComparisonKeepsSpelling(t *testing.T) {
	for _, op := range []string{"<>", "!=", "^="} {
		t.Run(op, func(t *testing.T) {
			cmp, ok := mustPred(t, "a "+op+" b").(*ast.ComparisonPredicate)
			require.True(t, ok)
			assert.Equal(t, ast.NotEqual, cmp.Op)
			assert.Equal(t, op, cmp.Text)
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, p ast.Predicate)
	}{
		{"e.name IS NOT NULL", func(t *testing.T, p ast.Predicate) {
			is := p.(*ast.IsNullPredicate)
			assert.True(t, is.Not)
		}},
		{"e.tags IS EMPTY", func(t *testing.T, p ast.Predicate) {
			assert.IsType(t, &ast.IsEmptyPredicate{}, p)
		}},
		{"a IS DISTINCT FROM b", func(t *testing.T, p ast.Predicate) {
			assert.IsType(t, &ast.IsDistinctFromPredicate{}, p)
		}},
		{"e.age NOT BETWEEN 18 AND 65", func(t *testing.T, p ast.Predicate) {
			b := p.(*ast.BetweenPredicate)
			assert.True(t, b.Not)
		}},
		{"e.name ILIKE 'a%' ESCAPE '!'", func(t *testing.T, p ast.Predicate) {
			l := p.(*ast.LikePredicate)
			assert.True(t, l.CaseInsensitive)
			assert.NotNil(t, l.Escape)
		}},
		{":p MEMBER OF e.projects", func(t *testing.T, p ast.Predicate) {
			m := p.(*ast.MemberOfPredicate)
			assert.True(t, m.Of)
			assert.Equal(t, "e.projects", pathString(t, m.Path))
		}},
		{"e.id IN (1, 2, 3)", func(t *testing.T, p ast.Predicate) {
			in := p.(*ast.InPredicate)
			list := in.List.(*ast.ExplicitInList)
			assert.Len(t, list.Items, 3)
		}},
		{"e.id IN ()", func(t *testing.T, p ast.Predicate) {
			in := p.(*ast.InPredicate)
			list := in.List.(*ast.ExplicitInList)
			assert.Empty(t, list.Items)
		}},
		{"e.id NOT IN :ids", func(t *testing.T, p ast.Predicate) {
			in := p.(*ast.InPredicate)
			assert.True(t, in.Not)
			assert.IsType(t, &ast.ParameterInList{}, in.List)
		}},
		{"e.id IN (SELECT x.id FROM X x)", func(t *testing.T, p ast.Predicate) {
			in := p.(*ast.InPredicate)
			assert.IsType(t, &ast.SubqueryInList{}, in.List)
		}},
		{"e.id IN elements(d.ids)", func(t *testing.T, p ast.Predicate) {
			in := p.(*ast.InPredicate)
			list := in.List.(*ast.CollectionInList)
			assert.Equal(t, ast.QuantifyElements, list.Quantifier)
		}},
		{"EXISTS (SELECT 1 FROM X x)", func(t *testing.T, p ast.Predicate) {
			ex := p.(*ast.ExistsPredicate)
			assert.IsType(t, &ast.SubqueryExpression{}, ex.Expr)
		}},
		{"exists elements(e.tags)", func(t *testing.T, p ast.Predicate) {
			assert.IsType(t, &ast.ExistsCollectionPredicate{}, p)
		}},
		{"e.tags CONTAINS :t", func(t *testing.T, p ast.Predicate) {
			c := p.(*ast.ContainmentPredicate)
			assert.Equal(t, ast.ContainmentOperator("CONTAINS"), c.Op)
		}},
		{"(a = 1)", func(t *testing.T, p ast.Predicate) {
			assert.IsType(t, &ast.GroupedPredicate{}, p)
		}},
		{"e.salary > ALL (SELECT x.salary FROM X x)", func(t *testing.T, p ast.Predicate) {
			cmp := p.(*ast.ComparisonPredicate)
			q := cmp.Right.(*ast.QuantifiedFunction)
			assert.Equal(t, ast.QuantifierAll, q.Quantifier)
			assert.NotNil(t, q.Query)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, mustPred(t, tt.input))
		})
	}
}

func TestPredicateWhereExpressionRequired(t *testing.T) {
	_, err := parser.ParseExpression("a = b")
	d := requireDiagnostic(t, err, parser.SyntaxError)
	assert.Equal(t, parser.ExpectedExpression, d.Expected)

	_, err = parser.ParsePredicate("(a = 1) + 2")
	requireDiagnostic(t, err, parser.SyntaxError)
}

func TestParseTuple(t *testing.T) {
	pred := mustPred(t, "(e.a, e.b) = (1, 2)")
	cmp := pred.(*ast.ComparisonPredicate)
	tuple, ok := cmp.Left.(*ast.TupleExpression)
	require.True(t, ok)
	assert.Len(t, tuple.Items, 2)
	assert.IsType(t, &ast.GroupedExpression{}, mustExpr(t, "(1)"))
}

func TestParseDurationAndUnary(t *testing.T) {
	d, ok := mustExpr(t, "(e.end - e.start) by day").(*ast.DurationExpression)
	require.True(t, ok)
	assert.True(t, d.By)
	assert.Equal(t, ast.DateTimeField("DAY"), d.Field)

	d, ok = mustExpr(t, "3 hour").(*ast.DurationExpression)
	require.True(t, ok)
	assert.False(t, d.By)

	u, ok := mustExpr(t, "-e.salary").(*ast.UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.Minus, u.Sign)
}

func TestParseCase(t *testing.T) {
	c, ok := mustExpr(t, "CASE WHEN e.age > 18 THEN 'adult' ELSE 'minor' END").(*ast.CaseExpression)
	require.True(t, ok)
	assert.Nil(t, c.Operand)
	require.Len(t, c.Whens, 1)
	assert.IsType(t, &ast.ComparisonPredicate{}, c.Whens[0].Condition)
	assert.NotNil(t, c.Else)

	c, ok = mustExpr(t, "case e.kind when 1 then 'a' when 2 then 'b' end").(*ast.CaseExpression)
	require.True(t, ok)
	assert.NotNil(t, c.Operand)
	assert.Len(t, c.Whens, 2)
	assert.Nil(t, c.Else)
}

// ---------- Literals ----------

func TestLiteralsKeepSourceText(t *testing.T) {
	tests := []struct {
		input     string
		kind      ast.LiteralKind
		wantValue string
	}{
		{"1_000L", ast.LongLiteral, "1_000L"},
		{"1.5e3", ast.DoubleLiteral, "1.5e3"},
		{"10.00BD", ast.BigDecimalLiteral, "10.00BD"},
		{"'it''s'", ast.StringLiteral, "it's"},
		{`"a\nb"`, ast.HostStringLiteral, "a\nb"},
		{"0xFF", ast.HexLiteral, "0xFF"},
		{"X'0A'", ast.BinaryLiteral, "X'0A'"},
		{"TRUE", ast.BooleanLiteral, "TRUE"},
		{"null", ast.NullLiteral, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit, ok := mustExpr(t, tt.input).(*ast.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.kind, lit.Kind)
			assert.Equal(t, tt.input, lit.Text)
			assert.Equal(t, tt.wantValue, lit.Value)
		})
	}
}

func TestBinaryBraceLiteral(t *testing.T) {
	lit, ok := mustExpr(t, "{0x01, 0xFF}").(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryLiteral, lit.Kind)
	assert.Equal(t, []string{"0x01", "0xFF"}, lit.Items)
	assert.Equal(t, "{0x01, 0xFF}", lit.Text)
}

func TestTemporalLiterals(t *testing.T) {
	tests := []struct {
		input  string
		kind   ast.TemporalKind
		syntax ast.TemporalSyntax
		date   string
		time   string
		zone   string
		offset string
	}{
		{"{2020-01-01}", ast.DateLiteral, ast.BraceSyntax, "2020-01-01", "", "", ""},
		{"{10:15}", ast.TimeLiteral, ast.BraceSyntax, "", "10:15", "", ""},
		{"{2020-01-01 10:15:30}", ast.LocalDateTimeLiteral, ast.BraceSyntax, "2020-01-01", "10:15:30", "", ""},
		{"{2020-01-01 10:15:30 +02:00}", ast.OffsetDateTimeLiteral, ast.BraceSyntax, "2020-01-01", "10:15:30", "", "+02:00"},
		{"{2020-01-01 10:15 'UTC'}", ast.ZonedDateTimeLiteral, ast.BraceSyntax, "2020-01-01", "10:15", "'UTC'", ""},
		{"DATE 2020-01-01", ast.DateLiteral, ast.KeywordSyntax, "2020-01-01", "", "", ""},
		{"time 10:15:30.5", ast.TimeLiteral, ast.KeywordSyntax, "", "10:15:30.5", "", ""},
		{"datetime 2020-01-01 10:00 Europe/Paris", ast.ZonedDateTimeLiteral, ast.KeywordSyntax, "2020-01-01", "10:00", "Europe/Paris", ""},
		{"offset datetime 2020-01-01 10:00 -05", ast.OffsetDateTimeLiteral, ast.KeywordSyntax, "2020-01-01", "10:00", "", "-05"},
		{"local datetime 2020-01-01 10:00", ast.LocalDateTimeLiteral, ast.KeywordSyntax, "2020-01-01", "10:00", "", ""},
		{"{d 2020-01-01}", ast.DateLiteral, ast.EscapeSyntax, "2020-01-01", "", "", ""},
		{"{t 10:00}", ast.TimeLiteral, ast.EscapeSyntax, "", "10:00", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit, ok := mustExpr(t, tt.input).(*ast.TemporalLiteral)
			require.True(t, ok)
			assert.Equal(t, tt.kind, lit.Kind)
			assert.Equal(t, tt.syntax, lit.Syntax)
			assert.Equal(t, tt.input, lit.Text)
			assert.Equal(t, tt.date, lit.Date)
			assert.Equal(t, tt.time, lit.Time)
			assert.Equal(t, tt.zone, lit.Zone)
			assert.Equal(t, tt.offset, lit.Offset)
		})
	}
}

func TestEscapeTemporalWithString(t *testing.T) {
	lit, ok := mustExpr(t, "{ts '2020-01-01 10:00:00'}").(*ast.TemporalLiteral)
	require.True(t, ok)
	assert.Equal(t, ast.LocalDateTimeLiteral, lit.Kind)
	assert.Equal(t, ast.EscapeSyntax, lit.Syntax)
	assert.Equal(t, "2020-01-01 10:00:00", lit.Generic)
}

func TestCurrentFunctions(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.CurrentKind
	}{
		{"current_date", ast.CurrentDate},
		{"current date", ast.CurrentDate},
		{"CURRENT_TIMESTAMP", ast.CurrentTimestamp},
		{"instant", ast.CurrentInstant},
		{"local datetime", ast.LocalDateTime},
		{"local_datetime()", ast.LocalDateTime},
		{"offset datetime", ast.OffsetDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fn, ok := mustExpr(t, tt.input).(*ast.CurrentFunction)
			require.True(t, ok)
			assert.Equal(t, tt.kind, fn.Kind)
			assert.Equal(t, tt.input, fn.Text)
		})
	}
}

func TestGeneralizedAndArrayLiterals(t *testing.T) {
	g, ok := mustExpr(t, "(uuid: '0a1b')").(*ast.GeneralizedLiteral)
	require.True(t, ok)
	assert.Equal(t, "uuid", g.Type)
	assert.Equal(t, "'0a1b'", g.Text)

	arr, ok := mustExpr(t, "[1, 2]").(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 2)

	arr, ok = mustExpr(t, "[]").(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Empty(t, arr.Elements)
}

// ---------- Paths ----------

func TestDomainPaths(t *testing.T) {
	q := firstQuery(t, mustParse(t, "SELECT TREAT(e AS Manager).bonus FROM Employee e")).Query
	path, ok := q.Select.Items[0].Item.(*ast.SyntacticDomainPath)
	require.True(t, ok)
	treat, ok := path.Head.(*ast.TreatPath)
	require.True(t, ok)
	assert.Equal(t, "e", pathString(t, treat.Path))
	assert.Equal(t, "Manager", treat.Type.String())
	assert.Equal(t, "bonus", path.Continuation.String())

	tests := []struct {
		input string
		head  ast.DomainPathHead
	}{
		{"value(m).name", &ast.CollectionValuePath{}},
		{"key(m)", &ast.MapKeyPath{}},
		{"index(l)", &ast.MapKeyPath{}},
		{"fk(e.dept)", &ast.ForeignKeyPath{}},
		{"e.items[0].name", &ast.IndexedPath{}},
		{"e.text[1:3]", &ast.SlicedPath{}},
		{"lookup(e).name", &ast.FunctionPath{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			path, ok := mustExpr(t, tt.input).(*ast.SyntacticDomainPath)
			require.True(t, ok)
			assert.IsType(t, tt.head, path.Head)
		})
	}
}

func TestIndexedPathBase(t *testing.T) {
	path := mustExpr(t, "e.items[0].name").(*ast.SyntacticDomainPath)
	idx := path.Head.(*ast.IndexedPath)
	assert.Equal(t, "e.items", pathString(t, idx.Base))
	assert.Equal(t, "name", path.Continuation.String())
}

// ---------- Functions ----------

func TestGenericFunctions(t *testing.T) {
	fn, ok := mustExpr(t, "count(distinct e.id)").(*ast.GenericFunction)
	require.True(t, ok)
	assert.Equal(t, "count", fn.Name.String())
	assert.True(t, fn.Distinct)
	assert.Len(t, fn.Args, 1)
	assert.Nil(t, fn.Modifiers)

	fn = mustExpr(t, "count(*)").(*ast.GenericFunction)
	assert.True(t, fn.Star)

	fn = mustExpr(t, "datediff(day, e.start, e.end)").(*ast.GenericFunction)
	assert.Equal(t, ast.DateTimeField("DAY"), fn.Field)
	assert.Len(t, fn.Args, 2)

	fn = mustExpr(t, "now()").(*ast.GenericFunction)
	assert.Empty(t, fn.Args)
}

func TestFunctionModifiers(t *testing.T) {
	fn := mustExpr(t, `row_number() over (partition by e.dept order by e.salary desc
		rows between unbounded preceding and current row exclude ties)`).(*ast.GenericFunction)
	require.NotNil(t, fn.Modifiers)
	over := fn.Modifiers.Over
	require.NotNil(t, over)
	assert.Len(t, over.PartitionBy, 1)
	assert.Len(t, over.OrderBy, 1)
	require.NotNil(t, over.Frame)
	assert.Equal(t, ast.FrameRows, over.Frame.Mode)
	assert.Equal(t, ast.FrameUnboundedPreceding, over.Frame.Start.Type)
	assert.Equal(t, ast.FrameCurrentRow, over.Frame.Stop.Type)
	assert.Equal(t, ast.ExcludeTies, over.Frame.Exclusion)

	fn = mustExpr(t, "count(*) filter (where e.active = true)").(*ast.GenericFunction)
	require.NotNil(t, fn.Modifiers)
	assert.NotNil(t, fn.Modifiers.Filter)

	fn = mustExpr(t, "percentile_cont(0.5) within group (order by e.salary)").(*ast.GenericFunction)
	require.NotNil(t, fn.Modifiers)
	assert.Len(t, fn.Modifiers.WithinGroup, 1)

	fn = mustExpr(t, "nth_value(e.salary, 2) from last ignore nulls over (order by e.id)").(*ast.GenericFunction)
	require.NotNil(t, fn.Modifiers)
	assert.Equal(t, ast.FromLastRow, fn.Modifiers.Nth)
	assert.Equal(t, ast.IgnoreNulls, fn.Modifiers.Nulls)
	assert.Equal(t, ast.FrameExprPreceding, mustFrame(t, "sum(x) over (rows 2 preceding)").Start.Type)
}

func mustFrame(t *testing.T, input string) *ast.FrameClause {
	t.Helper()
	fn := mustExpr(t, input).(*ast.GenericFunction)
	require.NotNil(t, fn.Modifiers)
	require.NotNil(t, fn.Modifiers.Over)
	require.NotNil(t, fn.Modifiers.Over.Frame)
	return fn.Modifiers.Over.Frame
}

func TestFromFirstIsNotAModifierBeforeFromClause(t *testing.T) {
	q := firstQuery(t, mustParse(t, "SELECT max(e.id) FROM First e")).Query
	fn := q.Select.Items[0].Item.(*ast.GenericFunction)
	assert.Nil(t, fn.Modifiers)
	root := q.From.Roots[0].Root.(*ast.RootEntity)
	assert.Equal(t, "First", root.Entity.String())
}

func TestSpecialFunctions(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, e ast.Expression)
	}{
		{"cast(e.salary as BigDecimal(10, 2))", func(t *testing.T, e ast.Expression) {
			c := e.(*ast.CastFunction)
			assert.Equal(t, "BigDecimal", c.Target.Type.String())
			assert.Equal(t, []string{"10", "2"}, c.Target.Params)
		}},
		{"extract(day of week from e.date)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.ExtractFunction)
			assert.Equal(t, "DAY OF WEEK", x.Field)
			assert.False(t, x.Shorthand)
		}},
		{"year(e.born)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.ExtractFunction)
			assert.Equal(t, "YEAR", x.Field)
			assert.True(t, x.Shorthand)
		}},
		{"trunc(e.created, month)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.TruncFunction)
			assert.Equal(t, ast.DateTimeField("MONTH"), x.Field)
		}},
		{"trim(leading 'x' from e.name)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.TrimFunction)
			assert.Equal(t, ast.TrimLeading, x.Spec)
			assert.NotNil(t, x.Character)
			assert.True(t, x.From)
		}},
		{"trim(e.name)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.TrimFunction)
			assert.Nil(t, x.Character)
			assert.False(t, x.From)
		}},
		{"pad(e.code with 5 leading '0')", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.PadFunction)
			assert.Equal(t, ast.TrimLeading, x.Spec)
			assert.NotNil(t, x.Character)
		}},
		{"substring(e.name from 2 for 3)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.SubstringFunction)
			assert.True(t, x.FromSyntax)
			assert.NotNil(t, x.Length)
		}},
		{"overlay(e.name placing 'x' from 2)", func(t *testing.T, e ast.Expression) {
			assert.IsType(t, &ast.OverlayFunction{}, e)
		}},
		{"position('a' in e.name)", func(t *testing.T, e ast.Expression) {
			assert.IsType(t, &ast.PositionFunction{}, e)
		}},
		{"format(e.date as 'yyyy')", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.FormatFunction)
			assert.Equal(t, "yyyy", x.Pattern.Value)
		}},
		{"collate(e.name as ucs_basic)", func(t *testing.T, e ast.Expression) {
			assert.IsType(t, &ast.CollateFunction{}, e)
		}},
		{"size(e.tags)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.CollectionFunction)
			assert.Equal(t, ast.CollectionSize, x.Kind)
		}},
		{"type(e)", func(t *testing.T, e ast.Expression) {
			assert.IsType(t, &ast.EntityTypeReference{}, e)
		}},
		{"id(e).value", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.EntityIdReference)
			assert.Equal(t, "value", x.Continuation.String())
		}},
		{"every(e.active = true)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.QuantifiedFunction)
			assert.NotNil(t, x.Predicate)
		}},
		{"any elements(e.tags)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.QuantifiedFunction)
			assert.Equal(t, ast.QuantifyElements, x.Collection)
		}},
		{"listagg(e.name, ', ' on overflow truncate '...' with count) within group (order by e.name)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.ListaggFunction)
			require.NotNil(t, x.Overflow)
			assert.Equal(t, "WITH COUNT", x.Overflow.Count)
			require.NotNil(t, x.Modifiers)
			assert.Len(t, x.Modifiers.WithinGroup, 1)
		}},
		{"rollup(e.a, e.b)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.GroupingFunction)
			assert.Equal(t, ast.Rollup, x.Kind)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, mustExpr(t, tt.input))
		})
	}
}

func TestJsonAndXmlFunctions(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, e ast.Expression)
	}{
		{"json_value(e.doc, '$.name' returning String default 'x' on empty error on error)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonValueFunction)
			require.NotNil(t, x.Returning)
			require.Len(t, x.On, 2)
			assert.Equal(t, ast.JsonBehaviorDefault, x.On[0].Behavior)
			assert.True(t, x.On[0].OnEmpty)
			assert.Equal(t, ast.JsonBehaviorError, x.On[1].Behavior)
		}},
		{"json_query(e.doc, '$.a' with conditional array wrapper empty object on empty)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonQueryFunction)
			assert.Equal(t, "WITH CONDITIONAL ARRAY WRAPPER", x.Wrapper)
			require.Len(t, x.On, 1)
			assert.Equal(t, ast.JsonBehaviorEmptyObject, x.On[0].Behavior)
		}},
		{"json_exists(e.doc, '$.a' passing :p as p true on error)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonExistsFunction)
			assert.Len(t, x.Passing, 1)
			require.NotNil(t, x.OnError)
		}},
		{"json_array(1, 'a' absent on null)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonArrayFunction)
			assert.Len(t, x.Values, 2)
			assert.Equal(t, ast.JsonAbsentOnNull, x.Nulls)
		}},
		{"json_object(key 'a' value 1, 'b' : 2, 'c', 3)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonObjectFunction)
			require.Len(t, x.Entries, 3)
			assert.Equal(t, ast.JsonEntryKeyValue, x.Entries[0].Syntax)
			assert.True(t, x.Entries[0].KeyWord)
			assert.Equal(t, ast.JsonEntryColon, x.Entries[1].Syntax)
			assert.Equal(t, ast.JsonEntryComma, x.Entries[2].Syntax)
		}},
		{"json_object()", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonObjectFunction)
			assert.Empty(t, x.Entries)
		}},
		{"json_arrayagg(e.name null on null order by e.name) filter (where e.active)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonArrayAggFunction)
			assert.Equal(t, ast.JsonNullOnNull, x.Nulls)
			assert.Len(t, x.OrderBy, 1)
			require.NotNil(t, x.Modifiers)
		}},
		{"json_objectagg(e.name value e.id with unique keys)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonObjectAggFunction)
			assert.Equal(t, ast.JsonWithUniqueKeys, x.UniqueKeys)
		}},
		{"json_table(e.doc, '$[*]' columns(id Integer path '$.id', n for ordinality, nested path '$.kids' columns(kid String)))", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.JsonTableFunction)
			require.Len(t, x.Columns, 3)
			assert.Equal(t, ast.JsonColumnValue, x.Columns[0].Kind)
			assert.Equal(t, "'$.id'", x.Columns[0].Path.Text)
			assert.Equal(t, ast.JsonColumnOrdinality, x.Columns[1].Kind)
			assert.Equal(t, ast.JsonColumnNested, x.Columns[2].Kind)
			assert.Len(t, x.Columns[2].Columns, 1)
		}},
		{"xmlelement(name foo, xmlattributes(e.id as id), e.name)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.XmlElementFunction)
			assert.Equal(t, "foo", x.Name.Name)
			assert.Len(t, x.Attributes, 1)
			assert.Len(t, x.Content, 1)
		}},
		{"xmlforest(e.id, e.name as n)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.XmlForestFunction)
			require.Len(t, x.Items, 2)
			assert.Nil(t, x.Items[0].Name)
		}},
		{"xmlexists('/a' passing e.doc)", func(t *testing.T, e ast.Expression) {
			assert.IsType(t, &ast.XmlExistsFunction{}, e)
		}},
		{"xmltable('/r' passing e.doc columns a String path 'a', n for ordinality)", func(t *testing.T, e ast.Expression) {
			x := e.(*ast.XmlTableFunction)
			require.Len(t, x.Columns, 2)
			assert.Equal(t, ast.XmlColumnValue, x.Columns[0].Kind)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, mustExpr(t, tt.input))
		})
	}
}

func TestJsonObjectOddArguments(t *testing.T) {
	_, err := parser.ParseExpression("json_object('a', 1, 'b')")
	d := requireDiagnostic(t, err, parser.StructuralError)
	assert.Equal(t, parser.MalformedConstruct, d.Expected)
	assert.Contains(t, d.Message, "without value")
}

// ---------- Diagnostics ----------

func TestMalformedInputReturnsErrors(t *testing.T) {
	inputs := []string{
		"SELECT e FROM E e WHERE e.id IN (SELECT x FROM)",
		"((SELECT a FROM A a) UNION",
		"TREAT(e AS",
		"CASE WHEN THEN END",
		"e.a[1:",
		"json_object('a' VALUE",
		")",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := parser.Parse(input)
				assert.Error(t, err)
				_, err = parser.ParseExpression(input)
				assert.Error(t, err)
				_, err = parser.ParsePredicate(input)
				assert.Error(t, err)
			})
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected parser.Expectation
		found    string
		column   int
	}{
		{"clauses without operands", "SELECT FROM WHERE", parser.ExpectedExpression, "FROM", 8},
		{"empty input", "", parser.ExpectedClause, "end of input", 1},
		{"not a statement", "employee", parser.ExpectedClause, "employee", 1},
		{"missing paren", "SELECT count(e FROM Employee e", parser.ExpectedToken, "FROM", 16},
		{"trailing tokens", "FROM Employee e e2", parser.ExpectedToken, "e2", 17},
		{"dangling operator", "FROM E e WHERE e.a = ", parser.ExpectedExpression, "end of input", 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := parser.Parse(tt.query)
			assert.Nil(t, stmt)
			d := requireDiagnostic(t, err, parser.SyntaxError)
			assert.True(t, errors.Is(err, parser.ErrSyntax))
			assert.Equal(t, tt.expected, d.Expected)
			assert.Equal(t, tt.found, d.Found)
			assert.Equal(t, tt.column, d.Span.Start.Column)
		})
	}
}

func TestLexicalErrorFromParse(t *testing.T) {
	_, err := parser.Parse("FROM E e WHERE e.name = 'open")
	d := requireDiagnostic(t, err, parser.LexicalError)
	assert.Equal(t, parser.UnterminatedLiteral, d.Expected)

	_, err = parser.Parse("SELECT a\xffb FROM E e")
	d = requireDiagnostic(t, err, parser.LexicalError)
	assert.Equal(t, parser.UnrecognizedCharacter, d.Expected)
	assert.Equal(t, "\xff", d.Found)

	mustParse(t, "SELECT é.naïve FROM Employé é")
}

func TestNestingLimit(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	_, err := parser.ParseExpression(deep)
	d := requireDiagnostic(t, err, parser.SyntaxError)
	assert.Equal(t, parser.NestingTooDeep, d.Expected)

	_, err = parser.ParsePredicate(strings.Repeat("NOT ", 300) + "a")
	d = requireDiagnostic(t, err, parser.SyntaxError)
	assert.Equal(t, parser.NestingTooDeep, d.Expected)

	shallow := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)
	_, err = parser.ParseExpression(shallow)
	require.NoError(t, err)

	_, err = parser.ParseExpression(shallow, parser.WithMaxDepth(10))
	d = requireDiagnostic(t, err, parser.SyntaxError)
	assert.Equal(t, parser.NestingTooDeep, d.Expected)
}

func TestNestingLimitDomainPaths(t *testing.T) {
	nest := func(open string, n int, inner, closer string) string {
		return strings.Repeat(open, n) + inner + strings.Repeat(closer, n)
	}

	tests := []struct {
		name  string
		parse func(string, ...parser.Option) error
		deep  string
		ok    string
	}{
		{
			name:  "value",
			parse: expressionParse,
			deep:  nest("VALUE(", 300, "e.m", ")"),
			ok:    nest("VALUE(", 3, "e.m", ")"),
		},
		{
			name:  "treat",
			parse: expressionParse,
			deep:  nest("TREAT(", 300, "e", " AS Manager)"),
			ok:    nest("TREAT(", 3, "e", " AS Manager)"),
		},
		{
			name:  "foreign key",
			parse: expressionParse,
			deep:  nest("FK(", 100000, "e.dept", ")"),
			ok:    nest("FK(", 3, "e.dept", ")"),
		},
		{
			name:  "member of key",
			parse: predicateParse,
			deep:  "1 MEMBER OF " + nest("KEY(", 300, "e.m", ")"),
			ok:    "1 MEMBER OF " + nest("KEY(", 3, "e.m", ")"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := requireDiagnostic(t, tt.parse(tt.deep, parser.WithMaxDepth(10)), parser.SyntaxError)
			assert.Equal(t, parser.NestingTooDeep, d.Expected)

			d = requireDiagnostic(t, tt.parse(tt.deep), parser.SyntaxError)
			assert.Equal(t, parser.NestingTooDeep, d.Expected)

			assert.NoError(t, tt.parse(tt.ok, parser.WithMaxDepth(10)))
		})
	}
}

func expressionParse(s string, opts ...parser.Option) error {
	_, err := parser.ParseExpression(s, opts...)
	return err
}

func predicateParse(s string, opts ...parser.Option) error {
	_, err := parser.ParsePredicate(s, opts...)
	return err
}

func TestNestedParenthesizedSubqueries(t *testing.T) {
	pred := mustPred(t, "e.id IN ((SELECT x.id FROM X x) UNION (SELECT y.id FROM Y y))")
	in := pred.(*ast.InPredicate)
	sub, ok := in.List.(*ast.SubqueryInList)
	require.True(t, ok)
	assert.Len(t, sub.Query.Queries(), 2)

	expr := mustExpr(t, "((1 + 2)) * 3")
	mul := expr.(*ast.BinaryExpression)
	assert.IsType(t, &ast.GroupedExpression{}, mul.Left)
}

func TestSpans(t *testing.T) {
	query := "SELECT e.title FROM Employee e"
	stmt := mustParse(t, query)
	assert.Equal(t, 0, stmt.Pos().Offset)
	assert.Equal(t, len(query), stmt.End().Offset)

	item := firstQuery(t, stmt).Query.Select.Items[0].Item
	assert.Equal(t, "e.title", query[item.Pos().Offset:item.End().Offset])
}

func TestParseConcurrently(t *testing.T) {
	queries := []string{
		"SELECT e FROM Employee e WHERE e.salary > :min",
		"UPDATE Employee e SET e.active = false",
		"FROM Order o JOIN o.lines l WHERE l.qty BETWEEN 1 AND 10",
		"SELECT FROM WHERE",
	}

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		query := queries[i%len(queries)]
		g.Go(func() error {
			_, err := parser.Parse(query)
			if query == "SELECT FROM WHERE" {
				if !errors.Is(err, parser.ErrSyntax) {
					return errors.New("expected syntax error")
				}
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
}

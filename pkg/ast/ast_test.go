package ast_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

const sample = "SELECT e.name FROM Employee e WHERE e.age > 18"

func parse(t *testing.T, query string) ast.Statement {
	t.Helper()
	stmt, err := parser.Parse(query)
	require.NoError(t, err)
	return stmt
}

func TestWalkVisitsEveryNode(t *testing.T) {
	stmt := parse(t, sample)

	var idents []string
	var literals int
	ast.Walk(stmt, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Identifier:
			idents = append(idents, n.Name)
		case *ast.Literal:
			literals++
		}
		return true
	})

	assert.Equal(t, []string{"e", "name", "Employee", "e", "e", "age"}, idents)
	assert.Equal(t, 1, literals)
}

func TestWalkSkipsChildren(t *testing.T) {
	stmt := parse(t, sample)

	var visited []string
	ast.Walk(stmt, func(n ast.Node) bool {
		visited = append(visited, typeName(n))
		_, isQuery := n.(*ast.Query)
		return !isQuery
	})

	assert.Equal(t, []string{"SelectStatement", "QueryExpression", "OrderedQuery", "Query"}, visited)
}

func TestInspectStops(t *testing.T) {
	stmt := parse(t, sample)

	calls := 0
	var found *ast.Identifier
	ast.Inspect(stmt, func(n ast.Node) bool {
		calls++
		if id, ok := n.(*ast.Identifier); ok {
			found = id
			return false
		}
		return true
	})

	require.NotNil(t, found)
	assert.Equal(t, "e", found.Name)
	assert.Equal(t, 8, calls)
}

func TestWalkNil(t *testing.T) {
	called := false
	ast.Walk(nil, func(ast.Node) bool {
		called = true
		return true
	})
	var path *ast.SimplePath
	ast.Walk(path, func(ast.Node) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestWalkFunctionTree(t *testing.T) {
	expr, err := parser.ParseExpression(
		"json_value(e.doc, '$.a' returning String default 'x' on empty) || cast(count(*) over (partition by e.dept) as String)")
	require.NoError(t, err)

	seen := make(map[string]bool)
	ast.Walk(expr, func(n ast.Node) bool {
		seen[typeName(n)] = true
		return true
	})

	for _, want := range []string{
		"BinaryExpression", "JsonValueFunction", "CastTarget", "JsonOnClause",
		"CastFunction", "GenericFunction", "FunctionModifiers", "OverClause",
	} {
		assert.True(t, seen[want], want)
	}
}

func TestWalkWindowFrame(t *testing.T) {
	expr, err := parser.ParseExpression(
		"sum(e.salary) over (order by e.hired rows between 2 preceding and current row exclude ties)")
	require.NoError(t, err)

	var frames int
	var bounds []ast.FrameBoundType
	var offsets int
	ast.Walk(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FrameClause:
			frames++
			assert.Equal(t, ast.FrameCurrentRow, n.Stop.Type)
		case *ast.FrameBound:
			bounds = append(bounds, n.Type)
			if n.Offset != nil {
				offsets++
			}
		}
		return true
	})

	assert.Equal(t, 1, frames)
	assert.Equal(t, []ast.FrameBoundType{ast.FrameExprPreceding, ast.FrameCurrentRow}, bounds)
	assert.Equal(t, 1, offsets)
}

func TestDescribe(t *testing.T) {
	d := ast.Describe(parse(t, sample))
	require.NotNil(t, d)
	assert.Equal(t, "SelectStatement", d.Type)
	assert.Equal(t, "1:1-1:47", d.Span)
	require.Len(t, d.Children, 1)
	assert.Equal(t, "Query", d.Children[0].Field)

	assert.Nil(t, ast.Describe(nil))
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ast.Fprint(&buf, parse(t, sample)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "SelectStatement @1:1-1:47\n"))
	assert.Contains(t, out, `Where: ComparisonPredicate Op=">" Text=">"`)
	assert.Contains(t, out, `Right: Literal Kind="INTEGER" Text="18" Value="18"`)
	assert.Contains(t, out, `Form="SELECT"`)

	buf.Reset()
	require.NoError(t, ast.Fprint(&buf, nil))
	assert.Equal(t, "<nil>\n", buf.String())
}

func TestDescriptionSerializes(t *testing.T) {
	d := ast.Describe(parse(t, "FROM Employee e"))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"SelectStatement"`)
	assert.Contains(t, string(data), `"name":"Form","value":"FROM"`)

	var back ast.Description
	require.NoError(t, yaml.Unmarshal(mustYAML(t, d), &back))
	assert.Equal(t, d.String(), back.String())
}

func mustYAML(t *testing.T, d *ast.Description) []byte {
	t.Helper()
	data, err := yaml.Marshal(d)
	require.NoError(t, err)
	return data
}

func TestKindHelpers(t *testing.T) {
	expr, err := parser.ParseExpression("e.salary * 2")
	require.NoError(t, err)
	assert.True(t, ast.IsExpression(expr))
	assert.False(t, ast.IsPredicate(expr))

	pred, err := parser.ParsePredicate("e.salary > 2")
	require.NoError(t, err)
	assert.True(t, ast.IsPredicate(pred))
	assert.False(t, ast.IsExpression(pred))
}

func TestPrecedenceOrdering(t *testing.T) {
	assert.Greater(t, ast.OpMultiply.Precedence(), ast.OpAdd.Precedence())
	assert.Greater(t, ast.OpSubtract.Precedence(), ast.OpConcat.Precedence())
	assert.Equal(t, 0, ast.BinaryOperator("?").Precedence())
}

func TestStringersTolerateNil(t *testing.T) {
	var id *ast.Identifier
	var path *ast.SimplePath
	assert.Equal(t, "", id.String())
	assert.Equal(t, "", path.String())
}

func typeName(n ast.Node) string {
	return ast.Describe(n).Type
}

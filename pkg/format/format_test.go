package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
	"github.com/tangwind/spring-data-jpa/pkg/format"
	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

func mustParse(t *testing.T, query string) ast.Statement {
	t.Helper()
	stmt, err := parser.Parse(query)
	require.NoError(t, err, query)
	return stmt
}

func must(c format.KeywordCase, err error) format.KeywordCase {
	if err != nil {
		panic(err)
	}
	return c
}

func TestStatementCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple select",
			input:    "select e.name from Employee e where e.age > 18",
			expected: "SELECT e.name FROM Employee e WHERE e.age > 18",
		},
		{
			name:     "from only",
			input:    "from   Employee   e",
			expected: "FROM Employee e",
		},
		{
			name:     "from first with trailing select",
			input:    "from Employee e where e.a = 1 select e.name",
			expected: "FROM Employee e WHERE e.a = 1 SELECT e.name",
		},
		{
			name:     "select alias gets AS",
			input:    "select e.name n from Employee e",
			expected: "SELECT e.name AS n FROM Employee e",
		},
		{
			name:     "keyword alias keeps AS",
			input:    "SELECT o FROM Order AS order",
			expected: "SELECT o FROM Order AS order",
		},
		{
			name:     "joins",
			input:    "select e from Employee as e join e.dept d left outer join fetch e.projects p with p.active = true order by e.name desc nulls last",
			expected: "SELECT e FROM Employee e JOIN e.dept d LEFT OUTER JOIN FETCH e.projects p WITH p.active = true ORDER BY e.name DESC NULLS LAST",
		},
		{
			name:     "grouping",
			input:    "select count(*), e.dept from Employee e group by e.dept having count(*) > 1",
			expected: "SELECT count(*), e.dept FROM Employee e GROUP BY e.dept HAVING count(*) > 1",
		},
		{
			name:     "inequality is normalized",
			input:    "select e from Employee e where e.x != 1 or e.y ^= 2",
			expected: "SELECT e FROM Employee e WHERE e.x <> 1 OR e.y <> 2",
		},
		{
			name:     "subquery and like",
			input:    "select e from Employee e where e.id in (select m.id from Manager m) and not e.name like 'A%' escape '!'",
			expected: "SELECT e FROM Employee e WHERE e.id IN (SELECT m.id FROM Manager m) AND NOT e.name LIKE 'A%' ESCAPE '!'",
		},
		{
			name:     "set operation with paging",
			input:    "select e from Employee e union all select m from Manager m order by 1 limit 10 offset 5 rows",
			expected: "SELECT e FROM Employee e UNION ALL SELECT m FROM Manager m ORDER BY 1 LIMIT 10 OFFSET 5 ROWS",
		},
		{
			name:     "cte",
			input:    "with t as (select e.id from Employee e) select t.id from t",
			expected: "WITH t AS (SELECT e.id FROM Employee e) SELECT t.id FROM t",
		},
		{
			name:     "case",
			input:    "select case when e.age < 18 then 'minor' else 'adult' end from Employee e",
			expected: "SELECT CASE WHEN e.age < 18 THEN 'minor' ELSE 'adult' END FROM Employee e",
		},
		{
			name:     "instantiation",
			input:    "select new com.acme.Dto(e.id, e.name as n) from Employee e",
			expected: "SELECT NEW com.acme.Dto(e.id, e.name AS n) FROM Employee e",
		},
		{
			name:     "standard functions",
			input:    "select cast(e.salary as BigDecimal(10,2)), trim(leading 'x' from e.name), substring(e.name, 1, 3), extract(year from e.hired) from Employee e",
			expected: "SELECT CAST(e.salary AS BigDecimal(10, 2)), TRIM(LEADING 'x' FROM e.name), SUBSTRING(e.name, 1, 3), EXTRACT(YEAR FROM e.hired) FROM Employee e",
		},
		{
			name:     "window",
			input:    "select sum(e.salary) over (partition by e.dept order by e.hired rows between unbounded preceding and current row) from Employee e",
			expected: "SELECT sum(e.salary) OVER (PARTITION BY e.dept ORDER BY e.hired ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM Employee e",
		},
		{
			name:     "literals verbatim",
			input:    "select e from Employee e where e.hired > {d '2020-01-01'} and e.id = ?1 and e.code = :code",
			expected: "SELECT e FROM Employee e WHERE e.hired > {d '2020-01-01'} AND e.id = ?1 AND e.code = :code",
		},
		{
			name:     "current functions",
			input:    "select current date, local datetime from Employee e",
			expected: "SELECT CURRENT_DATE, LOCAL_DATETIME FROM Employee e",
		},
		{
			name:     "update",
			input:    "update Employee e set e.salary = e.salary * 1.1 where e.id = :id",
			expected: "UPDATE Employee e SET e.salary = e.salary * 1.1 WHERE e.id = :id",
		},
		{
			name:     "delete",
			input:    "delete from Employee e where e.active = false",
			expected: "DELETE FROM Employee e WHERE e.active = false",
		},
		{
			name:     "insert values",
			input:    "insert into Employee (name, age) values ('a', 1), ('b', 2)",
			expected: "INSERT INTO Employee (name, age) VALUES ('a', 1), ('b', 2)",
		},
		{
			name:     "quoted identifiers",
			input:    "select `order`.`select` from Order `order`",
			expected: "SELECT `order`.`select` FROM Order `order`",
		},
		{
			name:     "nested unary",
			input:    "select - -1, -e.x from Employee e",
			expected: "SELECT - -1, -e.x FROM Employee e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.Statement(mustParse(t, tt.input)))
		})
	}
}

func TestKeywordCase(t *testing.T) {
	stmt := mustParse(t, "SELECT e.name FROM Employee e WHERE e.age > 18 ORDER BY e.name")

	assert.Equal(t,
		"select e.name from Employee e where e.age > 18 order by e.name",
		format.Statement(stmt, format.WithKeywordCase(format.Lower)))
	assert.Equal(t,
		"SELECT e.name FROM Employee e WHERE e.age > 18 ORDER BY e.name",
		format.Statement(stmt, format.WithKeywordCase(format.Upper)))
}

func TestParseKeywordCase(t *testing.T) {
	tests := []struct {
		input   string
		want    format.KeywordCase
		wantErr bool
	}{
		{"", format.Upper, false},
		{"upper", format.Upper, false},
		{"LOWER", format.Lower, false},
		{"camel", format.Upper, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := format.ParseKeywordCase(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, must(format.ParseKeywordCase(got.String())))
		})
	}
}

func TestMultiline(t *testing.T) {
	stmt := mustParse(t, "select e from Employee e join e.dept d where e.id in (select m.id from Manager m) order by e.name")

	expected := `SELECT e
FROM Employee e
  JOIN e.dept d
WHERE e.id IN (
  SELECT m.id
  FROM Manager m
)
ORDER BY e.name`
	out := format.Statement(stmt, format.WithMultiline())
	assert.Equal(t, expected, out)

	again := mustParse(t, out)
	assert.Equal(t, format.Statement(stmt), format.Statement(again))
}

func TestExpressionAndPredicate(t *testing.T) {
	expr, err := parser.ParseExpression("(e.a+e.b)*e.c||'x'")
	require.NoError(t, err)
	assert.Equal(t, "(e.a + e.b) * e.c || 'x'", format.Expression(expr))

	pred, err := parser.ParsePredicate("e.a is not null and (e.b between 1 and 2 or e.c not member of e.list)")
	require.NoError(t, err)
	assert.Equal(t, "e.a IS NOT NULL AND (e.b BETWEEN 1 AND 2 OR e.c NOT MEMBER OF e.list)", format.Predicate(pred))
	assert.Equal(t, "e.a is not null and (e.b between 1 and 2 or e.c not member of e.list)",
		format.Predicate(pred, format.WithKeywordCase(format.Lower)))

	assert.Empty(t, format.Expression(nil))
	assert.Empty(t, format.Predicate(nil))
}

func TestNode(t *testing.T) {
	stmt := mustParse(t, "select e from Employee e left join e.dept d on d.id = 1")
	query := stmt.(*ast.SelectStatement).Query.Body.(*ast.OrderedQuery).Query
	join := query.From.Roots[0].Joins[0]

	assert.Equal(t, "LEFT JOIN e.dept d ON d.id = 1", format.Node(join))
	assert.Equal(t, "FROM Employee e LEFT JOIN e.dept d ON d.id = 1", format.Node(query.From))
	assert.Equal(t, "SELECT e", format.Node(query.Select))
	assert.Empty(t, format.Node(nil))
}

// roundTrip are queries covering every node type. Formatting the re-parse
// of formatted output must reproduce it exactly.
var roundTrip = []string{
	"select e from Employee e where e.tags is not empty and e.boss is null",
	"select e from Employee e where :p member of e.roles and e.r not member e.roles",
	"select e from Employee e where e.age not between 18 and 65",
	"select e from Employee e where exists (select 1 from Dept d where d = e.dept)",
	"select e from Employee e where exists elements(e.tags)",
	"select e from Employee e where e.a is distinct from e.b and e.c is not distinct from e.d",
	"select e from Employee e where e.flag is true or e.other is not false",
	"select treat(e as Manager).reports from Employee e",
	"select key(m), value(m), index(t), element(t), fk(e.dept) from Employee e join e.map m join e.tags t",
	"select e.list[0], e.arr[1:2], e.arr[1].name from Employee e",
	"select size(e.tags), maxindex(e.tags), minelement(e.tags) from Employee e",
	"select type(e), id(e), version(e), naturalid(e) from Employee e where type(e) = :t",
	"select -e.salary, - -1, +e.x from Employee e",
	"select e.hired + 1 day, (e.end - e.start) by day from Employee e",
	"select listagg(e.name, ', ') within group (order by e.name) from Employee e",
	"select listagg(distinct e.name, ',' on overflow truncate '...' with count) from Employee e",
	"select count(distinct e.dept) filter (where e.active = true) from Employee e",
	"select first_value(e.name) ignore nulls over (order by e.id rows 2 preceding exclude ties) from Employee e",
	"select nth_value(e.x, 2) from first respect nulls over (order by e.id) from Employee e",
	"select json_value(e.doc, '$.a' returning String default 'x' on empty error on error) from Employee e",
	"select json_query(e.doc, '$.a' with conditional array wrapper empty object on empty) from Employee e",
	"select json_exists(e.doc, '$.a' passing e.id as id true on error) from Employee e",
	"select json_array(e.a, e.b null on null), json_array(), json_array(absent on null) from Employee e",
	"select json_object(key 'a' value e.a, 'b': e.b, 'c', e.c absent on null) from Employee e",
	"select json_arrayagg(e.name order by e.id), json_objectagg(e.name value e.id with unique keys) from Employee e",
	"select j.x from Employee e join lateral json_table(e.doc, '$[*]' columns (x Integer path '$.x', o for ordinality, nested path '$.y' columns (z String))) j",
	"select json_table(e.doc columns (a String exists path '$.a' false on error, b json with wrapper path '$.b') error on error) from Employee e",
	"select xmlelement(name foo, xmlattributes(e.id as id), e.name), xmlforest(e.a, e.b as bee) from Employee e",
	"select xmlagg(xmlelement(name x, e.name) order by e.id), xmlpi(name php, 'x'), xmlquery('/a' passing e.doc) from Employee e",
	"select xmltable('/r' passing e.doc columns a Integer path 'a' default 0, b xml path 'b', n for ordinality) from Employee e where xmlexists('/a' passing e.doc)",
	"select e from Employee e order by e.name fetch first 10 rows only",
	"select e from Employee e offset 10 fetch next 50 percent rows with ties",
	"insert into Employee (id, name) select p.id, p.name from Person p on conflict (id) do update set name = 'x' where id > 0",
	"insert Employee (id) values (1) on conflict on constraint pk do nothing",
	"with t as materialized (select e from Employee e) search depth first by id desc set ord cycle id set cyc to true default false using trail select t from t",
	"with a as not materialized (select 1 from A x), b as (select 2 from B y) select a from a",
	"select e from Employee e cross join Dept d, in (e.tags) t",
	"select e from Employee e right join e.boss b on b.id = 1 full outer join e.x x inner join e.y y outer join e.z z",
	"select e from (select m from Manager m) e",
	"select x from Employee e, lateral (select d from Dept d where d.id = e.id) x",
	"select f.x from generate_series(1, 10) f",
	"select e from Employee e where e.name ilike 'a%' and e.v not in ()",
	"select e from Employee e where e.id in :ids and e.id in elements(e.list) and e.id in (1, 2)",
	"select e from Employee e where e.x contains e.y and e.z not intersects e.w and e.q includes e.r",
	"select all(select 1 from Dept d), every(e.active = true) from Employee e",
	"select e from Employee e where e.salary > all elements(e.limits) and e.x = some(select 1 from D d)",
	"select position('a' in e.name), overlay(e.name placing 'x' from 2 for 1), pad(e.name with 10 leading '0') from Employee e",
	"select format(e.hired as 'yyyy'), collate(e.name as ucs_basic), trunc(e.x, 2), truncate(e.d, day), trunc(e.y) from Employee e",
	"select substring(e.name from 2 for 3), trim(e.name), trim(both from e.name), trim(trailing e.name) from Employee e",
	"select e.a from Employee e group by rollup(e.a, e.b), cube(e.c)",
	"select year(e.hired), dateadd(day, 1, e.hired), extract(day of week from e.hired) from Employee e",
	"select (Money: '10 USD'), [1, 2, 3], {0x01, 0xFF}, X'0A', 1L, 1.5BD, \"host\" from Employee e",
	"select e from Employee e where e.d = {2020-01-01} or e.t = local datetime 2020-01-01 10:00 or e.u = {ts '2020-01-01 10:00:00'}",
	"select object(e), entry(m) from Employee e join e.map m",
	"select new map(e.id as id, e.name as name), new list(e.id), new Dto(new Inner(e.a)) from Employee e",
	"select e.a || e.b, e.c % 2, (e.a + e.b) * e.c, e.a / (e.b - e.c) from Employee e",
	"select e.name as value, e.id as key from Employee e",
	"select e from Employee e join e.a as right",
	"delete Employee",
	"update versioned Employee set name = 'x', age = age + 1",
	"(select e from Employee e) union (select m from Manager m) order by 1",
	"select e from Employee e intersect select e from Employee e except select m from Manager m",
	"select e from Employee e where e.d > current_date - 1 day and e.t < instant",
	"select case e.kind when 1 then 'a' when 2 then 'b' end from Employee e",
	"select e from Employee e where (e.a = 1 or e.b = 2) and not (e.c = 3)",
	"select e from Employee e where e.id = ? and e.code = ?2",
	"select distinct e.dept from Employee e",
	"select e from Employee e where (e.a, e.b) = (1, 2)",
	"select lookup(e).name from Employee e",
}

func TestRoundTrip(t *testing.T) {
	for _, query := range roundTrip {
		t.Run(query, func(t *testing.T) {
			first := format.Statement(mustParse(t, query))
			second := format.Statement(mustParse(t, first))
			assert.Equal(t, first, second)

			lower := format.Statement(mustParse(t, query), format.WithKeywordCase(format.Lower))
			assert.Equal(t, first, format.Statement(mustParse(t, lower)))

			multi := format.Statement(mustParse(t, query), format.WithMultiline())
			assert.Equal(t, first, format.Statement(mustParse(t, multi)))
		})
	}
}

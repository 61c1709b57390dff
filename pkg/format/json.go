package format

import (
	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

//nolint:gocyclo // one case per function form
func (p *Printer) formatJsonOrXml(e ast.Expression) {
	switch fn := e.(type) {
	case *ast.JsonValueFunction:
		p.keyword("JSON_VALUE")
		p.parens(func() {
			p.formatJsonCall(fn.Expr, fn.Path, fn.Passing)
			if fn.Returning != nil {
				p.kw("RETURNING")
				p.space()
				p.formatCastTarget(fn.Returning)
			}
			p.formatJsonOnClauses(fn.On)
		})
	case *ast.JsonQueryFunction:
		p.keyword("JSON_QUERY")
		p.parens(func() {
			p.formatJsonCall(fn.Expr, fn.Path, fn.Passing)
			if fn.Wrapper != "" {
				p.kw(fn.Wrapper)
			}
			p.formatJsonOnClauses(fn.On)
		})
	case *ast.JsonExistsFunction:
		p.keyword("JSON_EXISTS")
		p.parens(func() {
			p.formatJsonCall(fn.Expr, fn.Path, fn.Passing)
			if fn.OnError != nil {
				p.space()
				p.formatJsonOnClause(fn.OnError)
			}
		})
	case *ast.JsonArrayFunction:
		p.keyword("JSON_ARRAY")
		p.parens(func() {
			p.formatNodeList(fn.Values)
			p.formatJsonNulls(fn.Nulls, len(fn.Values) > 0)
		})
	case *ast.JsonObjectFunction:
		p.keyword("JSON_OBJECT")
		p.parens(func() {
			p.formatList(len(fn.Entries), func(i int) { p.formatJsonEntry(fn.Entries[i]) }, ", ")
			p.formatJsonNulls(fn.Nulls, len(fn.Entries) > 0)
		})
	case *ast.JsonArrayAggFunction:
		p.keyword("JSON_ARRAYAGG")
		p.parens(func() {
			p.formatAny(fn.Expr)
			p.formatJsonNulls(fn.Nulls, true)
			p.formatInlineOrderBy(fn.OrderBy)
		})
		p.formatModifiers(fn.Modifiers)
	case *ast.JsonObjectAggFunction:
		p.keyword("JSON_OBJECTAGG")
		p.parens(func() {
			p.formatKeyValue(fn.KeyWord, fn.Colon, fn.Key, fn.Value)
			p.formatJsonNulls(fn.Nulls, true)
			if fn.UniqueKeys != ast.JsonUniqueDefault {
				p.kw(string(fn.UniqueKeys))
			}
		})
		p.formatModifiers(fn.Modifiers)
	case *ast.JsonTableFunction:
		p.keyword("JSON_TABLE")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			if fn.Path != nil {
				p.write(", ")
				p.formatExpr(fn.Path)
			}
			p.formatJsonPassing(fn.Passing)
			p.space()
			p.formatJsonColumns(fn.Columns)
			if fn.OnError != nil {
				p.space()
				p.formatJsonOnClause(fn.OnError)
			}
		})
	case *ast.XmlElementFunction:
		p.keyword("XMLELEMENT")
		p.parens(func() {
			p.keyword("NAME")
			p.space()
			p.ident(fn.Name)
			if len(fn.Attributes) > 0 {
				p.write(", ")
				p.keyword("XMLATTRIBUTES")
				p.parens(func() { p.formatXmlNamedValues(fn.Attributes) })
			}
			for _, c := range fn.Content {
				p.write(", ")
				p.formatAny(c)
			}
		})
	case *ast.XmlForestFunction:
		p.keyword("XMLFOREST")
		p.parens(func() { p.formatXmlNamedValues(fn.Items) })
	case *ast.XmlPiFunction:
		p.keyword("XMLPI")
		p.parens(func() {
			p.keyword("NAME")
			p.space()
			p.ident(fn.Name)
			if fn.Content != nil {
				p.write(", ")
				p.formatExpr(fn.Content)
			}
		})
	case *ast.XmlQueryFunction:
		p.keyword("XMLQUERY")
		p.parens(func() { p.formatXmlPassing(fn.Query, fn.Passing) })
	case *ast.XmlExistsFunction:
		p.keyword("XMLEXISTS")
		p.parens(func() { p.formatXmlPassing(fn.Query, fn.Passing) })
	case *ast.XmlAggFunction:
		p.keyword("XMLAGG")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			p.formatInlineOrderBy(fn.OrderBy)
		})
		p.formatModifiers(fn.Modifiers)
	case *ast.XmlTableFunction:
		p.keyword("XMLTABLE")
		p.parens(func() {
			p.formatXmlPassing(fn.Query, fn.Passing)
			p.kw("COLUMNS")
			p.space()
			p.formatList(len(fn.Columns), func(i int) { p.formatXmlColumn(fn.Columns[i]) }, ", ")
		})
	}
}

// formatJsonCall writes doc, path [PASSING ...].
func (p *Printer) formatJsonCall(doc, path ast.Expression, passing []*ast.JsonPassing) {
	p.formatExpr(doc)
	p.write(", ")
	p.formatExpr(path)
	p.formatJsonPassing(passing)
}

func (p *Printer) formatJsonPassing(passing []*ast.JsonPassing) {
	if len(passing) == 0 {
		return
	}
	p.kw("PASSING")
	p.space()
	p.formatList(len(passing), func(i int) {
		p.formatAny(passing[i].Value)
		p.asAlias(passing[i].Alias)
	}, ", ")
}

func (p *Printer) formatJsonOnClauses(clauses []*ast.JsonOnClause) {
	for _, c := range clauses {
		p.space()
		p.formatJsonOnClause(c)
	}
}

func (p *Printer) formatJsonOnClause(c *ast.JsonOnClause) {
	p.keyword(string(c.Behavior))
	if c.Behavior == ast.JsonBehaviorDefault {
		p.space()
		p.formatExpr(c.Default)
	}
	if c.OnEmpty {
		p.kw("ON EMPTY")
	} else {
		p.kw("ON ERROR")
	}
}

// formatJsonNulls writes a null clause, preceded by a space when it follows
// other arguments.
func (p *Printer) formatJsonNulls(nulls ast.JsonNullClause, afterArgs bool) {
	if nulls == ast.JsonNullDefault {
		return
	}
	if afterArgs {
		p.space()
	}
	p.keyword(string(nulls))
}

func (p *Printer) formatInlineOrderBy(specs []*ast.SortSpecification) {
	if len(specs) == 0 {
		return
	}
	p.kw("ORDER BY")
	p.space()
	p.formatSortSpecifications(specs)
}

func (p *Printer) formatJsonEntry(entry *ast.JsonObjectEntry) {
	if entry.Syntax == ast.JsonEntryComma {
		p.formatAny(entry.Key)
		p.write(", ")
		p.formatAny(entry.Value)
		return
	}
	p.formatKeyValue(entry.KeyWord, entry.Syntax == ast.JsonEntryColon, entry.Key, entry.Value)
}

// formatKeyValue writes [KEY] k VALUE v or k: v.
func (p *Printer) formatKeyValue(keyWord, colon bool, key, value ast.Node) {
	if keyWord {
		p.keyword("KEY")
		p.space()
	}
	p.formatAny(key)
	if colon {
		p.write(": ")
	} else {
		p.kw("VALUE")
		p.space()
	}
	p.formatAny(value)
}

func (p *Printer) formatJsonColumns(cols []*ast.JsonTableColumn) {
	p.keyword("COLUMNS")
	p.parens(func() {
		p.formatList(len(cols), func(i int) { p.formatJsonColumn(cols[i]) }, ", ")
	})
}

func (p *Printer) formatJsonColumn(col *ast.JsonTableColumn) {
	if col.Kind == ast.JsonColumnNested {
		p.keyword("NESTED PATH")
		p.space()
		p.formatExpr(col.Path)
		p.space()
		p.formatJsonColumns(col.Columns)
		return
	}

	p.ident(col.Name)
	switch col.Kind {
	case ast.JsonColumnOrdinality:
		p.kw("FOR ORDINALITY")
		return
	case ast.JsonColumnQuery:
		p.kw("JSON")
		if col.Wrapper != "" {
			p.kw(col.Wrapper)
		}
	case ast.JsonColumnExists:
		p.space()
		p.formatCastTarget(col.Type)
		p.kw("EXISTS")
	default:
		p.space()
		p.formatCastTarget(col.Type)
	}
	if col.Path != nil {
		p.kw("PATH")
		p.space()
		p.formatExpr(col.Path)
	}
	p.formatJsonOnClauses(col.On)
}

func (p *Printer) formatXmlNamedValues(items []*ast.XmlNamedValue) {
	p.formatList(len(items), func(i int) {
		p.formatAny(items[i].Value)
		p.asAlias(items[i].Name)
	}, ", ")
}

func (p *Printer) formatXmlPassing(query, passing ast.Expression) {
	p.formatExpr(query)
	p.kw("PASSING")
	p.space()
	p.formatExpr(passing)
}

func (p *Printer) formatXmlColumn(col *ast.XmlTableColumn) {
	p.ident(col.Name)
	switch col.Kind {
	case ast.XmlColumnOrdinality:
		p.kw("FOR ORDINALITY")
		return
	case ast.XmlColumnXML:
		p.kw("XML")
	default:
		p.space()
		p.formatCastTarget(col.Type)
	}
	if col.Path != nil {
		p.kw("PATH")
		p.space()
		p.formatExpr(col.Path)
	}
	if col.Default != nil {
		p.kw("DEFAULT")
		p.space()
		p.formatExpr(col.Default)
	}
}

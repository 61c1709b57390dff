package format

import (
	"strings"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

//nolint:gocyclo // one case per function form
func (p *Printer) formatFunction(e ast.Expression) {
	switch fn := e.(type) {
	case *ast.GenericFunction:
		p.formatGenericFunction(fn)
	case *ast.CastFunction:
		p.keyword("CAST")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			p.kw("AS")
			p.space()
			p.formatCastTarget(fn.Target)
		})
	case *ast.ExtractFunction:
		if fn.Shorthand {
			p.keyword(fn.Field)
			p.parens(func() { p.formatExpr(fn.Source) })
			return
		}
		p.keyword("EXTRACT")
		p.parens(func() {
			p.keyword(fn.Field)
			p.kw("FROM")
			p.space()
			p.formatExpr(fn.Source)
		})
	case *ast.TruncFunction:
		if fn.Truncate {
			p.keyword("TRUNCATE")
		} else {
			p.keyword("TRUNC")
		}
		p.parens(func() {
			p.formatExpr(fn.Expr)
			switch {
			case fn.Field != "":
				p.write(", ")
				p.keyword(string(fn.Field))
			case fn.Places != nil:
				p.write(", ")
				p.formatExpr(fn.Places)
			}
		})
	case *ast.TrimFunction:
		p.keyword("TRIM")
		p.parens(func() { p.formatTrimArgs(fn) })
	case *ast.PadFunction:
		p.keyword("PAD")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			p.kw("WITH")
			p.space()
			p.formatExpr(fn.Length)
			p.kw(string(fn.Spec))
			if fn.Character != nil {
				p.space()
				p.formatExpr(fn.Character)
			}
		})
	case *ast.SubstringFunction:
		p.keyword("SUBSTRING")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			if fn.FromSyntax {
				p.kw("FROM")
				p.space()
				p.formatExpr(fn.Start)
				if fn.Length != nil {
					p.kw("FOR")
					p.space()
					p.formatExpr(fn.Length)
				}
				return
			}
			p.write(", ")
			p.formatExpr(fn.Start)
			if fn.Length != nil {
				p.write(", ")
				p.formatExpr(fn.Length)
			}
		})
	case *ast.OverlayFunction:
		p.keyword("OVERLAY")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			p.kw("PLACING")
			p.space()
			p.formatExpr(fn.Placing)
			p.kw("FROM")
			p.space()
			p.formatExpr(fn.From)
			if fn.For != nil {
				p.kw("FOR")
				p.space()
				p.formatExpr(fn.For)
			}
		})
	case *ast.PositionFunction:
		p.keyword("POSITION")
		p.parens(func() {
			p.formatExpr(fn.Pattern)
			p.kw("IN")
			p.space()
			p.formatExpr(fn.Expr)
		})
	case *ast.FormatFunction:
		p.keyword("FORMAT")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			p.kw("AS")
			p.space()
			p.formatExpr(fn.Pattern)
		})
	case *ast.CollateFunction:
		p.keyword("COLLATE")
		p.parens(func() {
			p.formatExpr(fn.Expr)
			p.kw("AS")
			p.space()
			p.simplePath(fn.Collation)
		})
	case *ast.CurrentFunction:
		p.keyword(string(fn.Kind))
	case *ast.GroupingFunction:
		p.keyword(string(fn.Kind))
		p.parens(func() { p.formatNodeList(fn.Args) })
	case *ast.QuantifiedFunction:
		p.formatQuantified(fn)
	case *ast.ListaggFunction:
		p.formatListagg(fn)
	case *ast.CollectionFunction:
		p.keyword(string(fn.Kind))
		p.parens(func() { p.formatExpr(fn.Path) })
	default:
		p.formatJsonOrXml(e)
	}
}

func (p *Printer) formatGenericFunction(fn *ast.GenericFunction) {
	p.simplePath(fn.Name)
	p.parens(func() {
		switch {
		case fn.Star:
			p.write("*")
			return
		case fn.Distinct:
			p.keyword("DISTINCT")
			p.space()
		case fn.Field != "":
			p.keyword(string(fn.Field))
			p.write(", ")
		}
		p.formatNodeList(fn.Args)
	})
	p.formatModifiers(fn.Modifiers)
}

func (p *Printer) formatCastTarget(t *ast.CastTarget) {
	if t == nil {
		return
	}
	p.simplePath(t.Type)
	if len(t.Params) > 0 {
		p.write("(" + strings.Join(t.Params, ", ") + ")")
	}
}

// formatTrimArgs writes [spec] [char] [FROM] expr.
func (p *Printer) formatTrimArgs(fn *ast.TrimFunction) {
	if fn.Spec != ast.TrimDefault {
		p.keyword(string(fn.Spec))
		p.space()
	}
	if fn.Character != nil {
		p.formatExpr(fn.Character)
		p.space()
	}
	if fn.From {
		p.keyword("FROM")
		p.space()
	}
	p.formatExpr(fn.Expr)
}

func (p *Printer) formatQuantified(fn *ast.QuantifiedFunction) {
	p.keyword(string(fn.Quantifier))
	switch {
	case fn.Path != nil:
		p.kw(string(fn.Collection))
		p.parens(func() { p.formatExpr(fn.Path) })
	case fn.Query != nil:
		p.block(func() { p.formatQueryExpression(fn.Query) })
	default:
		p.parens(func() { p.formatPredicate(fn.Predicate) })
	}
	p.formatModifiers(fn.Modifiers)
}

func (p *Printer) formatListagg(fn *ast.ListaggFunction) {
	p.keyword("LISTAGG")
	p.parens(func() {
		if fn.Distinct {
			p.keyword("DISTINCT")
			p.space()
		}
		p.formatAny(fn.Expr)
		p.write(", ")
		p.formatAny(fn.Separator)
		if o := fn.Overflow; o != nil {
			p.kw("ON OVERFLOW")
			if o.Error {
				p.kw("ERROR")
				return
			}
			p.kw("TRUNCATE")
			if o.Filler != nil {
				p.space()
				p.formatExpr(o.Filler)
			}
			if o.Count != "" {
				p.kw(o.Count)
			}
		}
	})
	p.formatModifiers(fn.Modifiers)
}

// ---------- Modifiers and windows ----------

func (p *Printer) formatModifiers(m *ast.FunctionModifiers) {
	if m == nil {
		return
	}
	if m.Nth != "" {
		p.kw(string(m.Nth))
	}
	if m.Nulls != "" {
		p.kw(string(m.Nulls))
	}
	if len(m.WithinGroup) > 0 {
		p.kw("WITHIN GROUP")
		p.space()
		p.parens(func() {
			p.keyword("ORDER BY")
			p.space()
			p.formatSortSpecifications(m.WithinGroup)
		})
	}
	if m.Filter != nil {
		p.kw("FILTER")
		p.space()
		p.parens(func() {
			p.keyword("WHERE")
			p.space()
			p.formatPredicate(m.Filter)
		})
	}
	if m.Over != nil {
		p.space()
		p.formatOver(m.Over)
	}
}

func (p *Printer) formatOver(over *ast.OverClause) {
	p.keyword("OVER")
	p.space()
	p.parens(func() {
		sep := ""
		if len(over.PartitionBy) > 0 {
			p.keyword("PARTITION BY")
			p.space()
			p.formatList(len(over.PartitionBy), func(i int) { p.formatExpr(over.PartitionBy[i]) }, ", ")
			sep = " "
		}
		if len(over.OrderBy) > 0 {
			p.write(sep)
			p.keyword("ORDER BY")
			p.space()
			p.formatSortSpecifications(over.OrderBy)
			sep = " "
		}
		if over.Frame != nil {
			p.write(sep)
			p.formatFrame(over.Frame)
		}
	})
}

func (p *Printer) formatFrame(f *ast.FrameClause) {
	p.keyword(string(f.Mode))
	if f.Stop != nil {
		p.kw("BETWEEN")
		p.space()
		p.formatFrameBound(f.Start)
		p.kw("AND")
		p.space()
		p.formatFrameBound(f.Stop)
	} else {
		p.space()
		p.formatFrameBound(f.Start)
	}
	if f.Exclusion != ast.ExcludeNone {
		p.kw(string(f.Exclusion))
	}
}

func (p *Printer) formatFrameBound(b *ast.FrameBound) {
	switch b.Type {
	case ast.FrameExprPreceding:
		p.formatExpr(b.Offset)
		p.kw("PRECEDING")
	case ast.FrameExprFollowing:
		p.formatExpr(b.Offset)
		p.kw("FOLLOWING")
	default:
		p.keyword(string(b.Type))
	}
}

package format

import (
	"bytes"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tangwind/spring-data-jpa/pkg/ast"
)

const indentSize = 2

// Printer accumulates formatted output. It is not safe for concurrent use.
type Printer struct {
	output      *bytes.Buffer
	caser       cases.Caser
	multiline   bool
	depth       int
	atLineStart bool
}

func newPrinter(opts []Option) *Printer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	caser := cases.Upper(language.Und)
	if o.keywordCase == Lower {
		caser = cases.Lower(language.Und)
	}
	return &Printer{
		output:      &bytes.Buffer{},
		caser:       caser,
		multiline:   o.multiline,
		atLineStart: true,
	}
}

// String returns the formatted output without a trailing newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), " \n")
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

// keyword writes one or more keywords in the configured case.
func (p *Printer) keyword(s string) {
	p.write(p.caser.String(s))
}

// kw writes a space-separated keyword sequence, each word preceded by a
// space unless the line is fresh.
func (p *Printer) kw(words ...string) {
	for _, w := range words {
		p.space()
		p.keyword(w)
	}
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	if p.atLineStart || p.output.Len() == 0 {
		return
	}
	p.output.WriteByte(' ')
}

// clause starts a top-level clause: on a new line in multiline mode,
// after a space otherwise.
func (p *Printer) clause(words string) {
	if p.multiline && !p.atLineStart && p.output.Len() > 0 {
		p.writeln()
	} else {
		p.space()
	}
	p.keyword(words)
}

// formatList prints count items separated by sep.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}

// parens wraps body in parentheses.
func (p *Printer) parens(body func()) {
	p.write("(")
	body()
	p.write(")")
}

// block wraps a nested query in parentheses, indenting it in multiline mode.
func (p *Printer) block(body func()) {
	p.write("(")
	if p.multiline {
		p.indent()
		p.writeln()
		body()
		p.dedent()
		p.writeln()
	} else {
		body()
	}
	p.write(")")
}

var identEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\b", `\b`,
	"\f", `\f`,
)

func (p *Printer) ident(id *ast.Identifier) {
	if id == nil {
		return
	}
	if id.Quoted {
		p.write("`" + identEscaper.Replace(id.Name) + "`")
		return
	}
	p.write(id.Name)
}

func (p *Printer) simplePath(path *ast.SimplePath) {
	if path == nil {
		return
	}
	p.formatList(len(path.Parts), func(i int) { p.ident(path.Parts[i]) }, ".")
}

// continuation writes a trailing .a.b.
func (p *Printer) continuation(path *ast.SimplePath) {
	if path == nil {
		return
	}
	for _, part := range path.Parts {
		p.write(".")
		p.ident(part)
	}
}

// alias writes a naked alias, or AS alias when the name is a keyword.
func (p *Printer) alias(id *ast.Identifier) {
	if id == nil {
		return
	}
	if id.Keyword && !id.Quoted {
		p.kw("AS")
	}
	p.space()
	p.ident(id)
}

// asAlias always writes AS alias.
func (p *Printer) asAlias(id *ast.Identifier) {
	if id == nil {
		return
	}
	p.kw("AS")
	p.space()
	p.ident(id)
}

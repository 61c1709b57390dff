package output

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tangwind/spring-data-jpa/pkg/parser"
)

// DiagnosticRecord is the structured form of a diagnostic.
type DiagnosticRecord struct {
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Kind     string `json:"kind" yaml:"kind"`
	Expected string `json:"expected" yaml:"expected"`
	Found    string `json:"found" yaml:"found"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	EndLine  int    `json:"end_line" yaml:"end_line"`
	EndCol   int    `json:"end_column" yaml:"end_column"`
	Message  string `json:"message" yaml:"message"`
}

// NewDiagnosticRecord converts d for JSON or YAML output.
func NewDiagnosticRecord(file string, d *parser.Diagnostic) DiagnosticRecord {
	return DiagnosticRecord{
		File:     file,
		Kind:     d.Kind.String(),
		Expected: string(d.Expected),
		Found:    d.Found,
		Line:     d.Span.Start.Line,
		Column:   d.Span.Start.Column,
		EndLine:  d.Span.End.Line,
		EndCol:   d.Span.End.Column,
		Message:  d.Message,
	}
}

// Diagnostic writes d to the diagnostic writer with the offending source
// line and a caret underline:
//
//	query.hql:1:15: syntax error: expected expression, found "WHERE"
//	  1 | SELECT e FROM WHERE
//	    |               ^^^^^
func (r *Renderer) Diagnostic(file, src string, d *parser.Diagnostic) {
	_, _ = fmt.Fprint(r.errOut, r.FormatDiagnostic(file, src, d))
}

// FormatDiagnostic returns the text written by Diagnostic.
func (r *Renderer) FormatDiagnostic(file, src string, d *parser.Diagnostic) string {
	var b strings.Builder
	start := d.Span.Start

	loc := fmt.Sprintf("%d:%d", start.Line, start.Column)
	if file != "" {
		loc = file + ":" + loc
	}
	fmt.Fprintf(&b, "%s: %s: %s\n", r.styles.Bold.Render(loc), r.styles.Error.Render(d.Kind.String()), d.Message)

	line, ok := sourceLine(src, start.Line)
	if !ok {
		return b.String()
	}
	num := strconv.Itoa(start.Line)
	gutter := strings.Repeat(" ", len(num))
	bar := r.styles.Muted.Render("|")

	fmt.Fprintf(&b, "  %s %s %s\n", r.styles.Muted.Render(num), bar, line)
	fmt.Fprintf(&b, "  %s %s %s%s\n", gutter, bar, caretPadding(line, start.Column), r.styles.Caret.Render(carets(line, d)))
	return b.String()
}

func sourceLine(src string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caretPadding keeps tabs so the caret lines up under the source text.
func caretPadding(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	for ; i < column; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}

func carets(line string, d *parser.Diagnostic) string {
	start, end := d.Span.Start, d.Span.End
	width := 1
	switch {
	case end.Line == start.Line && end.Column > start.Column:
		width = end.Column - start.Column
	case end.Line > start.Line:
		if rest := utf8.RuneCountInString(line) - start.Column + 1; rest > 0 {
			width = rest
		}
	}
	return strings.Repeat("^", width)
}
